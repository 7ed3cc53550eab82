package object

import "sort"

// Environment is the whole of the evaluator's mutable state, threaded
// explicitly through every step — there is no hidden global, so independent
// evaluations never share anything.
//
// Store maps each name to a LIFO stack of live bindings: recursion and
// shadowing push, returning pops. Params holds one argument-accumulation
// frame per in-flight call. Result is the single register by which a
// sub-evaluation hands its value to its continuation.
type Environment struct {
	Store  map[string][]Object
	Params [][]Object
	Result Object
}

func NewEnvironment() *Environment {
	return &Environment{
		Store:  make(map[string][]Object),
		Params: [][]Object{},
		Result: NULL,
	}
}

func (e *Environment) Exists(name string) bool {
	_, ok := e.Store[name]
	return ok
}

// Get returns the top binding of name. A false result means either that the
// name was never bound or that its binding stack is currently empty; use
// Exists to tell the two apart.
func (e *Environment) Get(name string) (Object, bool) {
	bindings, ok := e.Store[name]
	if !ok || len(bindings) == 0 {
		return nil, false
	}
	return bindings[len(bindings)-1], true
}

func (e *Environment) Bind(name string, val Object) {
	e.Store[name] = append(e.Store[name], val)
}

// Unbind pops one binding of name, removing the entry entirely when its
// stack empties. Unbinding an absent name is a no-op.
func (e *Environment) Unbind(name string) {
	bindings, ok := e.Store[name]
	if !ok || len(bindings) == 0 {
		return
	}
	if len(bindings) == 1 {
		delete(e.Store, name)
		return
	}
	e.Store[name] = bindings[:len(bindings)-1]
}

// Depth reports how many live bindings a name currently has.
func (e *Environment) Depth(name string) int {
	return len(e.Store[name])
}

func (e *Environment) PushFrame() {
	e.Params = append(e.Params, []Object{})
}

func (e *Environment) PopFrame() ([]Object, bool) {
	if len(e.Params) == 0 {
		return nil, false
	}
	frame := e.Params[len(e.Params)-1]
	e.Params = e.Params[:len(e.Params)-1]
	return frame, true
}

func (e *Environment) TopFrame() ([]Object, bool) {
	if len(e.Params) == 0 {
		return nil, false
	}
	return e.Params[len(e.Params)-1], true
}

// AppendParam appends a value to the current argument frame, reporting
// whether there was one to append to.
func (e *Environment) AppendParam(val Object) bool {
	if len(e.Params) == 0 {
		return false
	}
	e.Params[len(e.Params)-1] = append(e.Params[len(e.Params)-1], val)
	return true
}

// StringDumpVariables lists the current top bindings, skipping natives, in
// name order.
func (e *Environment) StringDumpVariables() string {
	names := []string{}
	for name := range e.Store {
		names = append(names, name)
	}
	sort.Strings(names)
	result := ""
	for _, name := range names {
		top, ok := e.Get(name)
		if !ok {
			continue
		}
		if top.Type() == BUILTIN_OBJ || top.Type() == BUILTIN_MACRO_OBJ {
			continue
		}
		result = result + name + " = " + top.Inspect(ViewTarnLiteral) + "\n"
	}
	return result
}
