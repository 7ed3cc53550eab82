package main

import (
	"fmt"
	"os"

	"tarn/evaluator"
	"tarn/object"
	"tarn/parser"
	"tarn/repl"
	"tarn/text"
)

func main() {
	if len(os.Args) > 1 {
		for _, filename := range os.Args[1:] {
			if !runFile(filename) {
				os.Exit(1)
			}
		}
		return
	}
	fmt.Print(text.Logo())
	repl.Start()
}

func runFile(filename string) bool {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(text.ERROR + err.Error())
		return false
	}
	program, perr := parser.ParseString(filename, string(source))
	if perr != nil {
		fmt.Println(perr.Inspect(object.ViewStdOut))
		return false
	}
	env := evaluator.Interpret(program)
	fmt.Println(env.Result.Inspect(object.ViewStdOut))
	return env.Result.Type() != object.ERROR_OBJ
}
