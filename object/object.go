package object

import (
	"bytes"
	"math/big"
	"strings"

	"tarn/stack"
	"tarn/text"
	"tarn/token"
)

type View int

const (
	ViewStdOut = iota
	ViewTarnLiteral
)

type ObjectType string

const (
	ERROR_OBJ = "error"

	NULL_OBJ     = "null"
	BOOLEAN_OBJ  = "bool"
	INTEGER_OBJ  = "int"
	RATIONAL_OBJ = "rational"
	COMPLEX_OBJ  = "complex"
	STRING_OBJ   = "string"
	SYMBOL_OBJ   = "symbol"
	PAIR_OBJ     = "pair"

	FUNC_OBJ          = "func"
	BUILTIN_OBJ       = "builtin"
	MACRO_OBJ         = "macro"
	BUILTIN_MACRO_OBJ = "builtin macro"

	// Internal objects are the evaluator's own instruction markers. They share
	// the Object type so they can interleave with ordinary expressions on one
	// work stack, but the parser never produces one.
	INTERNAL_OBJ = "internal"
)

// Object is the one cell type for both code and data: the parser emits
// Objects, the evaluator consumes and produces Objects, and the final result
// of a program is an Object. Objects are immutable once built and freely
// shared by pointer; derived values are always fresh allocations.
type Object interface {
	Type() ObjectType
	Inspect(view View) string
}

// BuiltinFunction is the native function contract. When one runs, the top
// frame of env.Params holds its evaluated arguments in order; the evaluator
// pops that frame afterwards. A non-nil return is wrapped with the call
// position and routed through the unwind scan.
type BuiltinFunction func(prog *stack.Stack[Object], env *Environment) *Error

// BuiltinMacroFunction is the native macro contract: it runs with env.Result
// already set to the unevaluated argument list, and may push further work
// onto the stack, set env.Result directly, or raise an unwind itself.
type BuiltinMacroFunction func(prog *stack.Stack[Object], env *Environment)

type Null struct{}

func (n *Null) Type() ObjectType         { return NULL_OBJ }
func (n *Null) Inspect(view View) string { return "()" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect(view View) string {
	if b.Value {
		return "true"
	}
	return "false"
}

type Integer struct {
	Value *big.Int
}

func (i *Integer) Type() ObjectType         { return INTEGER_OBJ }
func (i *Integer) Inspect(view View) string { return i.Value.String() }

type Rational struct {
	Value *big.Rat
}

func (r *Rational) Type() ObjectType         { return RATIONAL_OBJ }
func (r *Rational) Inspect(view View) string { return r.Value.RatString() }

type Complex struct {
	Re *big.Rat
	Im *big.Rat
}

func (c *Complex) Type() ObjectType { return COMPLEX_OBJ }
func (c *Complex) Inspect(view View) string {
	im := c.Im.RatString()
	if c.Im.Sign() >= 0 {
		im = "+" + im
	}
	return c.Re.RatString() + im + "i"
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect(view View) string {
	if view == ViewStdOut {
		return s.Value
	}
	return "(\" " + s.Value + ")"
}

type Symbol struct {
	Value string
	Token token.Token
}

func (s *Symbol) Type() ObjectType         { return SYMBOL_OBJ }
func (s *Symbol) Inspect(view View) string { return s.Value }

// Pair is the cons cell; Null-terminated pairs form lists. The Token is the
// position of the head of the list the pair opens, absent on derived pairs.
type Pair struct {
	Head  Object
	Tail  Object
	Token token.Token
}

func (p *Pair) Type() ObjectType { return PAIR_OBJ }
func (p *Pair) Inspect(view View) string {
	var out bytes.Buffer
	out.WriteString("(")
	var node Object = p
	first := true
	for {
		pair, ok := node.(*Pair)
		if !ok {
			break
		}
		if !first {
			out.WriteString(" ")
		}
		first = false
		out.WriteString(pair.Head.Inspect(view))
		node = pair.Tail
	}
	if _, ok := node.(*Null); !ok {
		out.WriteString(" . ")
		out.WriteString(node.Inspect(view))
	}
	out.WriteString(")")
	return out.String()
}

type Func struct {
	Params []string
	Body   []Object // in source order; the last form's value is the result
}

func (fn *Func) Type() ObjectType { return FUNC_OBJ }
func (fn *Func) Inspect(view View) string {
	forms := []string{}
	for _, form := range fn.Body {
		forms = append(forms, form.Inspect(view))
	}
	return "(fn (" + strings.Join(fn.Params, " ") + ") " + strings.Join(forms, " ") + ")"
}

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType         { return BUILTIN_OBJ }
func (b *Builtin) Inspect(view View) string { return "(builtin " + b.Name + ")" }

type Macro struct {
	Bound string
	Body  []Object
}

func (m *Macro) Type() ObjectType { return MACRO_OBJ }
func (m *Macro) Inspect(view View) string {
	forms := []string{}
	for _, form := range m.Body {
		forms = append(forms, form.Inspect(view))
	}
	return "(mo " + m.Bound + " " + strings.Join(forms, " ") + ")"
}

type BuiltinMacro struct {
	Name string
	Fn   BuiltinMacroFunction
}

func (m *BuiltinMacro) Type() ObjectType         { return BUILTIN_MACRO_OBJ }
func (m *BuiltinMacro) Inspect(view View) string { return "(builtin mo " + m.Name + ")" }

// Error is ordinary data: the unwind scan moves it into the result register
// rather than throwing anything, and a program's final result may be one.
type Error struct {
	ErrorId string
	Payload Object
	Token   token.Token
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect(view View) string {
	if view == ViewStdOut {
		message := text.ERROR + e.Message()
		if e.Token.Source != "" {
			message = message + text.PosDescription(e.Token)
		}
		return message + "."
	}
	return "(error " + e.Payload.Inspect(view) + ")"
}

func (e *Error) Message() string {
	if s, ok := e.Payload.(*String); ok {
		return s.Value
	}
	return e.Payload.Inspect(ViewTarnLiteral)
}

// The internal command set. Each is a synthetic instruction the evaluator
// pushes for itself; see the evaluator package for what each one does.

type Call struct {
	Fn    Object
	Token token.Token
}

func (c *Call) Type() ObjectType         { return INTERNAL_OBJ }
func (c *Call) Inspect(view View) string { return "call " + c.Fn.Inspect(view) }

type Prepare struct {
	Args  Object
	Token token.Token
}

func (p *Prepare) Type() ObjectType         { return INTERNAL_OBJ }
func (p *Prepare) Inspect(view View) string { return "prepare " + p.Args.Inspect(view) }

type Parameterize struct{}

func (p *Parameterize) Type() ObjectType         { return INTERNAL_OBJ }
func (p *Parameterize) Inspect(view View) string { return "parameterize" }

type Deparameterize struct {
	Names []string
}

func (d *Deparameterize) Type() ObjectType { return INTERNAL_OBJ }
func (d *Deparameterize) Inspect(view View) string {
	return "deparameterize (" + strings.Join(d.Names, " ") + ")"
}

type If struct {
	Then Object
	Else Object
}

func (i *If) Type() ObjectType { return INTERNAL_OBJ }
func (i *If) Inspect(view View) string {
	return "if " + i.Then.Inspect(view) + " " + i.Else.Inspect(view)
}

type Evaluate struct{}

func (e *Evaluate) Type() ObjectType         { return INTERNAL_OBJ }
func (e *Evaluate) Inspect(view View) string { return "evaluate" }

type Wind struct{}

func (w *Wind) Type() ObjectType         { return INTERNAL_OBJ }
func (w *Wind) Inspect(view View) string { return "wind" }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
	NULL  = &Null{}
)

func MakeBool(input bool) *Boolean {
	if input {
		return TRUE
	}
	return FALSE
}

// Head returns the head of a pair; for anything else, including Null, it
// returns Null. Tail likewise. This is the accessor contract the head and
// tail builtins expose to programs.
func Head(o Object) Object {
	if pair, ok := o.(*Pair); ok {
		return pair.Head
	}
	return NULL
}

func Tail(o Object) Object {
	if pair, ok := o.(*Pair); ok {
		return pair.Tail
	}
	return NULL
}

// ListToSlice collects a Null-terminated pair chain into a slice, stopping
// at the first non-pair tail.
func ListToSlice(list Object) []Object {
	result := []Object{}
	for {
		pair, ok := list.(*Pair)
		if !ok {
			return result
		}
		result = append(result, pair.Head)
		list = pair.Tail
	}
}

// WhereIs reports the source position of an object, for the node kinds that
// carry one. Synthesized nodes don't.
func WhereIs(o Object) (token.Token, bool) {
	switch node := o.(type) {
	case *Symbol:
		return node.Token, node.Token.Source != ""
	case *Pair:
		return node.Token, node.Token.Source != ""
	case *Error:
		return node.Token, node.Token.Source != ""
	case *Call:
		return node.Token, node.Token.Source != ""
	case *Prepare:
		return node.Token, node.Token.Source != ""
	}
	return token.Token{}, false
}

func Equals(lhs, rhs Object) bool {
	if lhs.Type() != rhs.Type() {
		return false
	}
	if lhs == rhs {
		return true
	}
	switch lhs.Type() {
	case NULL_OBJ:
		return true
	case BOOLEAN_OBJ:
		return lhs.(*Boolean).Value == rhs.(*Boolean).Value
	case INTEGER_OBJ:
		return lhs.(*Integer).Value.Cmp(rhs.(*Integer).Value) == 0
	case RATIONAL_OBJ:
		return lhs.(*Rational).Value.Cmp(rhs.(*Rational).Value) == 0
	case COMPLEX_OBJ:
		return lhs.(*Complex).Re.Cmp(rhs.(*Complex).Re) == 0 &&
			lhs.(*Complex).Im.Cmp(rhs.(*Complex).Im) == 0
	case STRING_OBJ:
		return lhs.(*String).Value == rhs.(*String).Value
	case SYMBOL_OBJ:
		return lhs.(*Symbol).Value == rhs.(*Symbol).Value
	case PAIR_OBJ:
		return Equals(lhs.(*Pair).Head, rhs.(*Pair).Head) &&
			Equals(lhs.(*Pair).Tail, rhs.(*Pair).Tail)
	case ERROR_OBJ:
		return Equals(lhs.(*Error).Payload, rhs.(*Error).Payload)
	default:
		return false
	}
}
