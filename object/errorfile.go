package object

import (
	"fmt"

	"tarn/token"
)

// A map from error identifiers to functions that supply the corresponding
// error messages.
//
// Errors in the map are in alphabetical order of their identifiers.
//
// Major categories are built, eval, mac, and parse. Two otherwise identical
// errors thrown in different places in the Go code must be assigned
// different identifiers, if only by suffixing /a, /b, etc to the identifier.

var ErrorCreatorMap = map[string]ErrorCreator{

	"built/arity": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("`%v' takes %v argument(s), was given %v", args[0], args[1], args[2])
		},
	},

	"built/cmp": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("`%v' cannot compare a value of type <%v>", args[0], args[1])
		},
	},

	"built/div/zero": {
		Message: func(tok token.Token, args ...any) string {
			return "division by zero"
		},
	},

	"built/num": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("`%v' expects numbers but was given a value of type <%v>", args[0], args[1])
		},
	},

	"eval/arity": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("during library function call: arity mismatch, %v parameter(s) but %v argument(s)", args[0], args[1])
		},
	},

	"eval/binding/empty": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("`%v' does exist but its stack is empty", args[0])
		},
	},

	"eval/call/function": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("calling: element of type <%v> not recognized as callable", args[0])
		},
	},

	"eval/call/prepare": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("during prepare routine: element of type <%v> not recognized as callable", args[0])
		},
	},

	"eval/unbound": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("`%v' does not exist", args[0])
		},
	},

	"mac/define/form": {
		Message: func(tok token.Token, args ...any) string {
			return "`define' takes a symbol and a single expression"
		},
	},

	"mac/define/symbol": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("`define' expects a symbol to bind, not a value of type <%v>", args[0])
		},
	},

	"mac/fn/body": {
		Message: func(tok token.Token, args ...any) string {
			return fmt.Sprintf("`%v' needs at least one body form", args[0])
		},
	},

	"mac/fn/params": {
		Message: func(tok token.Token, args ...any) string {
			return "`fn' expects a list of parameter symbols"
		},
	},

	"mac/if/form": {
		Message: func(tok token.Token, args ...any) string {
			return "`if' takes a condition, a consequent, and an optional alternative"
		},
	},

	"mac/mo/form": {
		Message: func(tok token.Token, args ...any) string {
			return "`mo' expects a symbol to bind its argument list to"
		},
	},

	"parse/paren/close": {
		Message: func(tok token.Token, args ...any) string {
			return "unmatched closing parenthesis"
		},
	},

	"parse/paren/open": {
		Message: func(tok token.Token, args ...any) string {
			return "unmatched opening parenthesis"
		},
	},
}

type ErrorCreator struct {
	Message func(tok token.Token, args ...any) string
}

// CreateErr builds an Error with a String payload from the catalog. Unknown
// identifiers are themselves a bug, hence the panic.
func CreateErr(ident string, tok token.Token, args ...any) *Error {
	creator, ok := ErrorCreatorMap[ident]
	if !ok {
		panic("unknown error identifier " + ident)
	}
	return &Error{
		ErrorId: ident,
		Payload: &String{Value: creator.Message(tok, args...)},
		Token:   tok,
	}
}
