package evaluator

import (
	"math/big"
	"testing"

	"tarn/object"
	"tarn/stack"
)

func TestMergePendingTeardown(t *testing.T) {
	prog := stack.NewStack[object.Object]()
	prog.Push(&object.Deparameterize{Names: []string{"n"}})

	env := object.NewEnvironment()
	env.Bind("n", &object.Integer{Value: big.NewInt(1)})
	env.Bind("n", &object.Integer{Value: big.NewInt(2)})

	merged := optimizeTailCall(prog, env, []string{"n", "acc"})
	if len(merged) != 2 || !contains(merged, "n") || !contains(merged, "acc") {
		t.Errorf("expected the merged list {n acc}, got %v", merged)
	}
	if prog.Len() != 0 {
		t.Errorf("expected the pending marker consumed, stack has %d entries", prog.Len())
	}
	if env.Depth("n") != 1 {
		t.Errorf("expected the shared name unbound once, got depth %d", env.Depth("n"))
	}
}

func TestNoMergeWithoutPendingTeardown(t *testing.T) {
	prog := stack.NewStack[object.Object]()
	marker := &object.Call{Fn: object.NULL}
	prog.Push(marker)

	env := object.NewEnvironment()
	params := optimizeTailCall(prog, env, []string{"x"})
	if len(params) != 1 || params[0] != "x" {
		t.Errorf("expected the parameter list back verbatim, got %v", params)
	}
	top, ok := prog.HeadValue()
	if !ok || top != object.Object(marker) {
		t.Errorf("expected the stack untouched")
	}
}

func TestMergeOnEmptyStack(t *testing.T) {
	prog := stack.NewStack[object.Object]()
	env := object.NewEnvironment()
	params := optimizeTailCall(prog, env, []string{"x"})
	if len(params) != 1 || params[0] != "x" {
		t.Errorf("expected the parameter list back verbatim, got %v", params)
	}
}
