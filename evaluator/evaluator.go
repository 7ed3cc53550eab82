package evaluator

// The work-stack machine. There is no recursion into Eval and no use of the
// Go call stack for Tarn control flow: every pending expression and every
// synthetic instruction sits on one explicit stack of objects, which is what
// buys us proper tail calls, fexpr-style macros, and an unwindable error
// channel. At any instant the triple (work stack, environment, result)
// determines the rest of the computation.

import (
	"math/big"

	"tarn/object"
	"tarn/stack"
	"tarn/token"
)

type WorkStack = stack.Stack[object.Object]

// Interpret sets up an environment with the standard library and evaluates
// the program in it. The program's value is left in the returned
// environment's Result register; callers check its Type for ERROR_OBJ to
// detect toplevel failure.
func Interpret(program []object.Object) *object.Environment {
	env := object.NewEnvironment()
	env.Store = StandardLibrary()
	return Eval(program, env)
}

// Eval evaluates a program — an ordered sequence of top-level forms — in the
// given environment. The program is pushed reversed so that popping yields
// left-to-right order; it is completely evaluated when the work stack is
// empty, and the last form's value is what remains in env.Result.
func Eval(program []object.Object, env *object.Environment) *object.Environment {
	prog := stack.NewStack[object.Object]()
	for i := len(program) - 1; i >= 0; i-- {
		prog.Push(program[i])
	}
	for {
		top, ok := prog.Pop()
		if !ok {
			return env
		}
		switch node := top.(type) {
		case *object.Pair:
			// Defer the arguments until the operator has been evaluated.
			headTok := headToken(node)
			prog.Push(&object.Prepare{Args: node.Tail, Token: headTok})
			prog.Push(node.Head)
		case *object.Symbol:
			evalSymbol(node, prog, env)
		case *object.Prepare:
			evalPrepare(node, prog, env)
		case *object.Call:
			evalCall(node, prog, env)
		case *object.Parameterize:
			if !env.AppendParam(env.Result) {
				// A missing frame here means the machine itself is broken,
				// not the program being run.
				panic("tarn evaluator: the parameter stack is nonexistent during parameterization")
			}
		case *object.Deparameterize:
			for _, name := range node.Names {
				env.Unbind(name)
			}
		case *object.Evaluate:
			prog.Push(env.Result)
		case *object.If:
			// The Boolean false is the sole falsy value; Null and the empty
			// list are truthy.
			if b, ok := env.Result.(*object.Boolean); ok && !b.Value {
				prog.Push(node.Else)
			} else {
				prog.Push(node.Then)
			}
		case *object.Wind:
			// Nothing to do; it exists to be found by the unwind scan.
		default:
			env.Result = top
		}
	}
}

// A symbol that parses as a base-10 integer is always the literal, even if a
// variable of that exact spelling is bound.
func evalSymbol(node *object.Symbol, prog *WorkStack, env *object.Environment) {
	if number, ok := new(big.Int).SetString(node.Value, 10); ok {
		env.Result = &object.Integer{Value: number}
		return
	}
	if !env.Exists(node.Value) {
		unwindWithError("eval/unbound", node.Token, prog, env, node.Value)
		return
	}
	if value, ok := env.Get(node.Value); ok {
		env.Result = value
		return
	}
	unwindWithError("eval/binding/empty", node.Token, prog, env, node.Value)
}

// evalPrepare inspects the just-evaluated operator and decides how to treat
// the still-unevaluated argument list.
func evalPrepare(node *object.Prepare, prog *WorkStack, env *object.Environment) {
	switch callee := env.Result.(type) {
	case *object.Func, *object.Builtin:
		env.PushFrame()
		prog.Push(&object.Call{Fn: env.Result, Token: node.Token})
		// Each argument evaluates and then appends itself to the new frame.
		// Pushed back to front so the first argument pops, evaluates, and is
		// appended first: the frame fills in source order.
		arguments := object.ListToSlice(node.Args)
		for i := len(arguments) - 1; i >= 0; i-- {
			prog.Push(&object.Parameterize{})
			prog.Push(arguments[i])
		}
	case *object.BuiltinMacro:
		env.Result = node.Args
		callee.Fn(prog, env)
	case *object.Macro:
		// Call-by-unevaluated-argument: the raw argument list is bound to
		// the macro's one name, the body runs, and Evaluate re-enters
		// whatever expression the body constructed.
		prog.Push(&object.Evaluate{})
		names := optimizeTailCall(prog, env, []string{callee.Bound})
		env.Bind(callee.Bound, node.Args)
		prog.Push(&object.Deparameterize{Names: names})
		pushBody(prog, callee.Body)
	default:
		unwindWithError("eval/call/prepare", node.Token, prog, env, env.Result.Type())
	}
}

func evalCall(node *object.Call, prog *WorkStack, env *object.Environment) {
	switch callee := node.Fn.(type) {
	case *object.Builtin:
		err := callee.Fn(prog, env)
		if _, ok := env.PopFrame(); !ok {
			panic("tarn evaluator: parameter stack not poppable during builtin call")
		}
		if err != nil {
			raiseError(err, node.Token, prog, env)
		}
	case *object.Func:
		arguments, ok := env.PopFrame()
		if !ok {
			panic("tarn evaluator: parameter stack not poppable during library call")
		}
		if len(arguments) != len(callee.Params) {
			unwindWithError("eval/arity", node.Token, prog, env, len(callee.Params), len(arguments))
			return
		}
		// The teardown marker is merged before the new bindings go on, so a
		// call in tail position reuses the pending marker instead of
		// stacking a fresh one.
		names := optimizeTailCall(prog, env, callee.Params)
		for i, param := range callee.Params {
			env.Bind(param, arguments[i])
		}
		prog.Push(&object.Deparameterize{Names: names})
		pushBody(prog, callee.Body)
	default:
		unwindWithError("eval/call/function", node.Token, prog, env, node.Fn.Type())
	}
}

// pushBody schedules a body's forms so they pop in source order.
func pushBody(prog *WorkStack, body []object.Object) {
	for i := len(body) - 1; i >= 0; i-- {
		prog.Push(body[i])
	}
}

func headToken(node *object.Pair) token.Token {
	if tok, ok := object.WhereIs(node.Head); ok {
		return tok
	}
	return node.Token
}
