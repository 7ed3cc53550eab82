package repl

import (
	"fmt"
	"strings"

	"tarn/evaluator"
	"tarn/lexer"
	"tarn/object"
	"tarn/parser"
	"tarn/text"

	"github.com/lmorg/readline"
)

func Start() {
	rline := readline.NewInstance()
	env := object.NewEnvironment()
	env.Store = evaluator.StandardLibrary()
	for {
		rline.SetPrompt(text.PROMPT)
		line, err := rline.Readline()
		if err != nil {
			fmt.Println(text.ERROR, err)
			return
		}

		line = strings.TrimSpace(line)

		if line == "" {
			continue
		}
		if line == ":q" || line == ":quit" {
			break
		}
		if line == ":env" {
			fmt.Print(env.StringDumpVariables())
			continue
		}
		if rest, found := strings.CutPrefix(line, ":lex "); found {
			lexer.LexDump(rest)
			continue
		}

		program, perr := parser.ParseString("REPL input", line)
		if perr != nil {
			fmt.Println(perr.Inspect(object.ViewStdOut))
			continue
		}
		evaluator.Eval(program, env)
		fmt.Println(env.Result.Inspect(object.ViewStdOut))
	}
}
