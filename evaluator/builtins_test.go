package evaluator

import (
	"testing"

	"tarn/object"
)

func expectInspect(t *testing.T, env *object.Environment, want string) {
	t.Helper()
	if got := env.Result.Inspect(object.ViewTarnLiteral); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func expectBool(t *testing.T, env *object.Environment, want bool) {
	t.Helper()
	result, ok := env.Result.(*object.Boolean)
	if !ok {
		t.Fatalf("expected a boolean, got <%s> %s", env.Result.Type(), env.Result.Inspect(object.ViewTarnLiteral))
	}
	if result.Value != want {
		t.Errorf("expected %v, got %v", want, result.Value)
	}
}

func TestQuote(t *testing.T) {
	expectInspect(t, evalString(t, "(' (a b))"), "(a b)")
	expectInspect(t, evalString(t, "(' foo)"), "foo")
}

func TestStringMacro(t *testing.T) {
	env := evalString(t, `(" once upon a time)`)
	str, ok := env.Result.(*object.String)
	if !ok || str.Value != "once upon a time" {
		t.Fatalf("expected the string \"once upon a time\", got %s", env.Result.Inspect(object.ViewTarnLiteral))
	}
	if env.Result.Inspect(object.ViewStdOut) != "once upon a time" {
		t.Errorf("stdout view should print the bare text")
	}
}

func TestSubtraction(t *testing.T) {
	expectInt(t, evalString(t, "(- 10 1 2)"), "7")
	expectInt(t, evalString(t, "(- 5)"), "-5")
}

func TestMultiplication(t *testing.T) {
	expectInt(t, evalString(t, "(* 2 3 4)"), "24")
}

func TestDivision(t *testing.T) {
	expectInt(t, evalString(t, "(/ 6 2)"), "3")
	expectInspect(t, evalString(t, "(/ 7 2)"), "7/2")
	expectInt(t, evalString(t, "(+ (/ 1 2) (/ 1 2))"), "1")
	expectError(t, evalString(t, "(/ 1 0)"), "division by zero")
}

func TestDivisionUnaryInverse(t *testing.T) {
	expectInspect(t, evalString(t, "(/ 2)"), "1/2")
}

func TestNumericTypeError(t *testing.T) {
	expectError(t, evalString(t, `(+ 1 (" x))`), "expects numbers")
}

func TestComparisons(t *testing.T) {
	expectBool(t, evalString(t, "(< 1 2 3)"), true)
	expectBool(t, evalString(t, "(< 1 3 2)"), false)
	expectBool(t, evalString(t, "(> 3 2 1)"), true)
	expectBool(t, evalString(t, "(= 2 2 2)"), true)
	expectBool(t, evalString(t, "(= (/ 1 2) (/ 2 4))"), true)
}

func TestNot(t *testing.T) {
	expectBool(t, evalString(t, "(not false)"), true)
	expectBool(t, evalString(t, "(not true)"), false)
	expectBool(t, evalString(t, "(not 5)"), false)
}

func TestHeadAndTail(t *testing.T) {
	expectInspect(t, evalString(t, "(head (' (1 2)))"), "1")
	expectInspect(t, evalString(t, "(tail (' (1 2)))"), "(2)")
	expectInspect(t, evalString(t, "(head ())"), "()")
	expectInspect(t, evalString(t, "(tail 5)"), "()")
}

func TestQuotedElementsStaySymbols(t *testing.T) {
	// The reader leaves numerals as symbols; quoting preserves the parsed
	// tree untouched, so only evaluation turns them into integers.
	env := evalString(t, "(head (' (1 2)))")
	if _, ok := env.Result.(*object.Symbol); !ok {
		t.Fatalf("expected the raw symbol, got <%s> %s", env.Result.Type(), env.Result.Inspect(object.ViewTarnLiteral))
	}
	expectInt(t, evalString(t, "(eval (head (' (1 2))))"), "1")
}

func TestPairAndSame(t *testing.T) {
	expectInspect(t, evalString(t, "(pair 1 2)"), "(1 . 2)")
	expectInspect(t, evalString(t, "(pair 1 (pair 2 ()))"), "(1 2)")
	expectBool(t, evalString(t, "(same? (' (a b)) (' (a b)))"), true)
	expectBool(t, evalString(t, "(same? 1 2)"), false)
}

func TestDefineAndFn(t *testing.T) {
	expectInt(t, evalString(t, "(define add (fn (a b) (+ a b))) (add 2 3)"), "5")
}

func TestFnBodyLastFormWins(t *testing.T) {
	expectInt(t, evalString(t, "(define f (fn (x) (+ x 1) (* x 2))) (f 5)"), "10")
}

func TestDefineReturnsValue(t *testing.T) {
	expectInt(t, evalString(t, "(define x 9)"), "9")
}

func TestUserMacro(t *testing.T) {
	env := evalString(t, `
		(define when (mo args (pair (' if) args)))
		(when true 1 2)`)
	expectInt(t, env, "1")
}

func TestUserMacroSeesRawArguments(t *testing.T) {
	// args is bound to the unevaluated list, so quoting survives.
	env := evalString(t, `
		(define firstarg (mo args (pair (' ') (pair (head args) ()))))
		(firstarg (+ 1 2))`)
	expectInspect(t, env, "(+ 1 2)")
}

func TestEvalBuiltin(t *testing.T) {
	expectInt(t, evalString(t, "(eval (' (+ 1 2)))"), "3")
}

func TestWindPassesValueThrough(t *testing.T) {
	expectInt(t, evalString(t, "(wind (+ 1 2))"), "3")
	expectInt(t, evalString(t, "(wind 1 2)"), "2")
}

func TestAnd(t *testing.T) {
	expectBool(t, evalString(t, "(and)"), true)
	expectBool(t, evalString(t, "(and true true)"), true)
	expectBool(t, evalString(t, "(and true false)"), false)
}

func TestAndShortCircuits(t *testing.T) {
	env := evalString(t, "(and false (boom))")
	expectBool(t, env, false)
}

func TestOr(t *testing.T) {
	expectBool(t, evalString(t, "(or)"), false)
	expectBool(t, evalString(t, "(or false false true)"), true)
}

func TestOrShortCircuits(t *testing.T) {
	env := evalString(t, "(or true (boom))")
	expectBool(t, env, true)
}

func TestMacroFormErrors(t *testing.T) {
	expectError(t, evalString(t, "(define x)"), "`define' takes")
	expectError(t, evalString(t, "(define (a) 2)"), "expects a symbol")
	expectError(t, evalString(t, "(fn x 1)"), "list of parameter symbols")
	expectError(t, evalString(t, "(fn (a))"), "at least one body form")
	expectError(t, evalString(t, "(if true)"), "`if' takes")
	expectError(t, evalString(t, "(mo (a) 1)"), "`mo' expects")
}

func TestBuiltinArityErrors(t *testing.T) {
	expectError(t, evalString(t, "(head 1 2)"), "takes 1 argument(s), was given 2")
	expectError(t, evalString(t, "(pair 1)"), "takes 2 argument(s), was given 1")
	expectError(t, evalString(t, "(-)"), "takes at least 1 argument(s)")
}
