package evaluator

import (
	"math/big"
	"strings"

	"tarn/object"
	"tarn/token"
)

// StandardLibrary builds the initial binding table: native functions, native
// macros, and the constants, all in one map because the store is the
// registry — user definitions made with define land in exactly the same
// place and are looked up exactly the same way.
func StandardLibrary() map[string][]object.Object {
	functions := map[string]object.BuiltinFunction{
		"+":     builtinPlus,
		"-":     builtinMinus,
		"*":     builtinTimes,
		"/":     builtinDivide,
		"=":     builtinEq,
		"<":     builtinLess,
		">":     builtinGreater,
		"not":   builtinNot,
		"head":  builtinHead,
		"tail":  builtinTail,
		"pair":  builtinPair,
		"same?": builtinSame,
		"error": builtinError,
		"eval":  builtinEval,
	}
	macros := map[string]object.BuiltinMacroFunction{
		"'":      macroQuote,
		"\"":     macroString,
		"if":     macroIf,
		"define": macroDefine,
		"fn":     macroFn,
		"mo":     macroMo,
		"wind":   macroWind,
		"and":    macroAnd,
		"or":     macroOr,
	}
	store := make(map[string][]object.Object)
	for name, fn := range functions {
		store[name] = []object.Object{&object.Builtin{Name: name, Fn: fn}}
	}
	for name, fn := range macros {
		store[name] = []object.Object{&object.BuiltinMacro{Name: name, Fn: fn}}
	}
	store["unwind"] = []object.Object{unwindBuiltin}
	store["true"] = []object.Object{object.TRUE}
	store["false"] = []object.Object{object.FALSE}
	return store
}

// Natives read their arguments from the top frame; the evaluator pops it
// after they return.
func nativeArgs(env *object.Environment) []object.Object {
	frame, _ := env.TopFrame()
	return frame
}

// Arithmetic runs on rationals throughout and renders back to an integer
// whenever the result is integral, so (/ 6 2) is 3 but (/ 7 2) is 7/2. The
// full numeric tower (complex promotion, powers) is not implemented.

func toRat(o object.Object) (*big.Rat, bool) {
	switch number := o.(type) {
	case *object.Integer:
		return new(big.Rat).SetInt(number.Value), true
	case *object.Rational:
		return number.Value, true
	}
	return nil, false
}

func ratToObject(r *big.Rat) object.Object {
	if r.IsInt() {
		return &object.Integer{Value: new(big.Int).Set(r.Num())}
	}
	return &object.Rational{Value: r}
}

func builtinPlus(prog *WorkStack, env *object.Environment) *object.Error {
	acc := new(big.Rat)
	for _, arg := range nativeArgs(env) {
		r, ok := toRat(arg)
		if !ok {
			return object.CreateErr("built/num", token.Token{}, "+", arg.Type())
		}
		acc.Add(acc, r)
	}
	env.Result = ratToObject(acc)
	return nil
}

func builtinTimes(prog *WorkStack, env *object.Environment) *object.Error {
	acc := big.NewRat(1, 1)
	for _, arg := range nativeArgs(env) {
		r, ok := toRat(arg)
		if !ok {
			return object.CreateErr("built/num", token.Token{}, "*", arg.Type())
		}
		acc.Mul(acc, r)
	}
	env.Result = ratToObject(acc)
	return nil
}

func builtinMinus(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) == 0 {
		return object.CreateErr("built/arity", token.Token{}, "-", "at least 1", 0)
	}
	first, ok := toRat(args[0])
	if !ok {
		return object.CreateErr("built/num", token.Token{}, "-", args[0].Type())
	}
	if len(args) == 1 {
		env.Result = ratToObject(new(big.Rat).Neg(first))
		return nil
	}
	acc := new(big.Rat).Set(first)
	for _, arg := range args[1:] {
		r, ok := toRat(arg)
		if !ok {
			return object.CreateErr("built/num", token.Token{}, "-", arg.Type())
		}
		acc.Sub(acc, r)
	}
	env.Result = ratToObject(acc)
	return nil
}

func builtinDivide(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) == 0 {
		return object.CreateErr("built/arity", token.Token{}, "/", "at least 1", 0)
	}
	first, ok := toRat(args[0])
	if !ok {
		return object.CreateErr("built/num", token.Token{}, "/", args[0].Type())
	}
	if len(args) == 1 {
		if first.Sign() == 0 {
			return object.CreateErr("built/div/zero", token.Token{})
		}
		env.Result = ratToObject(new(big.Rat).Inv(first))
		return nil
	}
	acc := new(big.Rat).Set(first)
	for _, arg := range args[1:] {
		r, ok := toRat(arg)
		if !ok {
			return object.CreateErr("built/num", token.Token{}, "/", arg.Type())
		}
		if r.Sign() == 0 {
			return object.CreateErr("built/div/zero", token.Token{})
		}
		acc.Quo(acc, r)
	}
	env.Result = ratToObject(acc)
	return nil
}

func compareChain(name string, env *object.Environment, accept func(int) bool) *object.Error {
	args := nativeArgs(env)
	rats := make([]*big.Rat, len(args))
	for i, arg := range args {
		r, ok := toRat(arg)
		if !ok {
			return object.CreateErr("built/cmp", token.Token{}, name, arg.Type())
		}
		rats[i] = r
	}
	for i := 1; i < len(rats); i++ {
		if !accept(rats[i-1].Cmp(rats[i])) {
			env.Result = object.FALSE
			return nil
		}
	}
	env.Result = object.TRUE
	return nil
}

func builtinEq(prog *WorkStack, env *object.Environment) *object.Error {
	return compareChain("=", env, func(c int) bool { return c == 0 })
}

func builtinLess(prog *WorkStack, env *object.Environment) *object.Error {
	return compareChain("<", env, func(c int) bool { return c < 0 })
}

func builtinGreater(prog *WorkStack, env *object.Environment) *object.Error {
	return compareChain(">", env, func(c int) bool { return c > 0 })
}

func builtinNot(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) != 1 {
		return object.CreateErr("built/arity", token.Token{}, "not", 1, len(args))
	}
	b, ok := args[0].(*object.Boolean)
	env.Result = object.MakeBool(ok && !b.Value)
	return nil
}

func builtinHead(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) != 1 {
		return object.CreateErr("built/arity", token.Token{}, "head", 1, len(args))
	}
	env.Result = object.Head(args[0])
	return nil
}

func builtinTail(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) != 1 {
		return object.CreateErr("built/arity", token.Token{}, "tail", 1, len(args))
	}
	env.Result = object.Tail(args[0])
	return nil
}

func builtinPair(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) != 2 {
		return object.CreateErr("built/arity", token.Token{}, "pair", 2, len(args))
	}
	env.Result = &object.Pair{Head: args[0], Tail: args[1]}
	return nil
}

func builtinSame(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) != 2 {
		return object.CreateErr("built/arity", token.Token{}, "same?", 2, len(args))
	}
	env.Result = object.MakeBool(object.Equals(args[0], args[1]))
	return nil
}

// builtinError wraps its argument in an error value and hands it to the
// evaluator through the error-return channel, so a user error unwinds
// exactly like a machine-raised one.
func builtinError(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) != 1 {
		return object.CreateErr("built/arity", token.Token{}, "error", 1, len(args))
	}
	return &object.Error{ErrorId: "eval/user", Payload: args[0]}
}

func builtinEval(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	if len(args) != 1 {
		return object.CreateErr("built/arity", token.Token{}, "eval", 1, len(args))
	}
	prog.Push(args[0])
	return nil
}

// defineInternal finishes a define: by the time it runs, the frame that the
// define macro seeded holds the symbol and the now-evaluated value.
var defineInternal = &object.Builtin{Name: "define", Fn: func(prog *WorkStack, env *object.Environment) *object.Error {
	args := nativeArgs(env)
	sym := args[0].(*object.Symbol)
	env.Bind(sym.Value, args[1])
	env.Result = args[1]
	return nil
}}

func argsToken(env *object.Environment) token.Token {
	tok, _ := object.WhereIs(env.Result)
	return tok
}

// (' x) yields x unevaluated.
func macroQuote(prog *WorkStack, env *object.Environment) {
	env.Result = object.Head(env.Result)
}

// (" once upon a time) yields the string "once upon a time": the reader has
// no string syntax, strings are built from the raw symbols at runtime.
func macroString(prog *WorkStack, env *object.Environment) {
	parts := []string{}
	for _, arg := range object.ListToSlice(env.Result) {
		if sym, ok := arg.(*object.Symbol); ok {
			parts = append(parts, sym.Value)
		} else {
			parts = append(parts, arg.Inspect(object.ViewStdOut))
		}
	}
	env.Result = &object.String{Value: strings.Join(parts, " ")}
}

func macroIf(prog *WorkStack, env *object.Environment) {
	tok := argsToken(env)
	args := object.ListToSlice(env.Result)
	if len(args) < 2 || len(args) > 3 {
		unwindWithError("mac/if/form", tok, prog, env)
		return
	}
	alternative := object.Object(object.NULL)
	if len(args) == 3 {
		alternative = args[2]
	}
	prog.Push(&object.If{Then: args[1], Else: alternative})
	prog.Push(args[0])
}

// macroDefine seeds a fresh frame with the symbol, schedules the value
// expression through Parameterize, and lets defineInternal complete the
// binding once the value exists. No command beyond the machine's closed set
// is needed.
func macroDefine(prog *WorkStack, env *object.Environment) {
	tok := argsToken(env)
	args := object.ListToSlice(env.Result)
	if len(args) != 2 {
		unwindWithError("mac/define/form", tok, prog, env)
		return
	}
	sym, ok := args[0].(*object.Symbol)
	if !ok {
		unwindWithError("mac/define/symbol", tok, prog, env, args[0].Type())
		return
	}
	env.PushFrame()
	env.AppendParam(sym)
	prog.Push(&object.Call{Fn: defineInternal, Token: sym.Token})
	prog.Push(&object.Parameterize{})
	prog.Push(args[1])
}

func macroFn(prog *WorkStack, env *object.Environment) {
	tok := argsToken(env)
	args := object.ListToSlice(env.Result)
	if len(args) < 2 {
		unwindWithError("mac/fn/body", tok, prog, env, "fn")
		return
	}
	if _, isSym := args[0].(*object.Symbol); isSym {
		unwindWithError("mac/fn/params", tok, prog, env)
		return
	}
	params := []string{}
	for _, param := range object.ListToSlice(args[0]) {
		sym, ok := param.(*object.Symbol)
		if !ok {
			unwindWithError("mac/fn/params", tok, prog, env)
			return
		}
		params = append(params, sym.Value)
	}
	body := append([]object.Object{}, args[1:]...)
	env.Result = &object.Func{Params: params, Body: body}
}

func macroMo(prog *WorkStack, env *object.Environment) {
	tok := argsToken(env)
	args := object.ListToSlice(env.Result)
	if len(args) < 2 {
		unwindWithError("mac/fn/body", tok, prog, env, "mo")
		return
	}
	sym, ok := args[0].(*object.Symbol)
	if !ok {
		unwindWithError("mac/mo/form", tok, prog, env)
		return
	}
	body := append([]object.Object{}, args[1:]...)
	env.Result = &object.Macro{Bound: sym.Value, Body: body}
}

// macroWind drops the barrier marker and then runs its body over it. It does
// not catch anything by itself: an unwind started inside the body stops its
// scan at the marker, and whatever follows sees the error in the result
// register.
func macroWind(prog *WorkStack, env *object.Environment) {
	body := object.ListToSlice(env.Result)
	prog.Push(&object.Wind{})
	pushBody(prog, body)
}

// and and or expand to If chains through their own names, so evaluation
// short-circuits. or yields the boolean true for a truthy operand rather
// than the operand itself: by the time the If command runs, the operand's
// value has left the result register.
func macroAnd(prog *WorkStack, env *object.Environment) {
	args := object.ListToSlice(env.Result)
	switch len(args) {
	case 0:
		env.Result = object.TRUE
	case 1:
		prog.Push(args[0])
	default:
		rest := object.Tail(env.Result)
		prog.Push(&object.If{
			Then: &object.Pair{Head: &object.Symbol{Value: "and"}, Tail: rest},
			Else: object.FALSE,
		})
		prog.Push(args[0])
	}
}

func macroOr(prog *WorkStack, env *object.Environment) {
	args := object.ListToSlice(env.Result)
	switch len(args) {
	case 0:
		env.Result = object.FALSE
	case 1:
		prog.Push(args[0])
	default:
		rest := object.Tail(env.Result)
		prog.Push(&object.If{
			Then: object.TRUE,
			Else: &object.Pair{Head: &object.Symbol{Value: "or"}, Tail: rest},
		})
		prog.Push(args[0])
	}
}
