package evaluator

import "tarn/object"

// optimizeTailCall merges a new teardown list into an already-pending
// Deparameterize marker, if one is on top of the work stack. A name shared
// between the two lists gets its old binding unbound right now — the new
// call's binding replaces it, so the old teardown would never have anything
// left to do — and appears once in the merged list. If the top of the stack
// is anything else it is put back untouched and the new list is returned
// verbatim, so the caller creates a fresh marker.
//
// The effect is that a function whose last action is a call never grows the
// work stack or any binding stack: iteration is bounded by churn, not depth.
func optimizeTailCall(prog *WorkStack, env *object.Environment, params []string) []string {
	top, ok := prog.Pop()
	if !ok {
		return params
	}
	pending, ok := top.(*object.Deparameterize)
	if !ok {
		prog.Push(top)
		return params
	}
	merged := append([]string{}, pending.Names...)
	for _, name := range params {
		if contains(pending.Names, name) {
			env.Unbind(name)
		} else {
			merged = append(merged, name)
		}
	}
	return merged
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
