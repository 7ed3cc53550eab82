package evaluator

import (
	"tarn/object"
	"tarn/token"
)

// Errors travel as data, not as host exceptions: raising one pushes a
// synthetic call to the unwind builtin with the error as its sole argument,
// and the loop carries on. Keeping the whole mechanism on the work stack is
// what keeps the machine's state inspectable and deterministic.

func unwindWithError(ident string, tok token.Token, prog *WorkStack, env *object.Environment, args ...any) {
	raiseError(object.CreateErr(ident, tok, args...), tok, prog, env)
}

func raiseError(err *object.Error, tok token.Token, prog *WorkStack, env *object.Environment) {
	if err.Token.Source == "" {
		err.Token = tok
	}
	env.PushFrame()
	env.AppendParam(err)
	prog.Push(&object.Call{Fn: unwindBuiltin, Token: tok})
}

// builtinUnwind puts its argument in the result register and then scans
// backward through the pending work: teardown markers are honored,
// half-finished calls have their argument frames discarded, and the scan
// stops at the first Wind marker — or consumes the whole stack, in which
// case the error becomes the program's final result. It does not catch:
// whatever follows the Wind marker must inspect the result for an error.
func builtinUnwind(prog *WorkStack, env *object.Environment) *object.Error {
	if frame, ok := env.TopFrame(); ok && len(frame) > 0 {
		env.Result = frame[0]
	}
	for {
		top, ok := prog.Pop()
		if !ok {
			return nil
		}
		switch node := top.(type) {
		case *object.Deparameterize:
			for _, name := range node.Names {
				env.Unbind(name)
			}
		case *object.Call:
			env.PopFrame()
		case *object.Wind:
			return nil
		}
	}
}

var unwindBuiltin = &object.Builtin{Name: "unwind", Fn: builtinUnwind}
