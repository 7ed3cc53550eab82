package parser

import (
	"tarn/object"
	"testing"
)

func TestParseAccepts(t *testing.T) {
	inputs := []string{
		"", " ", "  ", "[", "]", "{", "}", ".", ",", "'", "\"",
		"()", " ()", "() ", " () ", " ( ) ",
		"test", "(test)", " (test)", "(test) ", " (test) ",
		"(test1 (test2))",
		"(test1 (test2 test3 test4) test5) test6",
	}
	for _, input := range inputs {
		if _, err := ParseString("test", input); err != nil {
			t.Errorf("expected %q to parse, got %s", input, err.Message())
		}
	}
}

func TestParseRejects(t *testing.T) {
	inputs := []string{
		"(",
		")",
		"(test",
		"test)",
		"(test1 (test2)",
	}
	for _, input := range inputs {
		if _, err := ParseString("test", input); err == nil {
			t.Errorf("expected %q to be rejected", input)
		}
	}
}

func TestParseStructure(t *testing.T) {
	program, err := ParseString("test", "(a (b c) d) e")
	if err != nil {
		t.Fatal(err.Message())
	}
	if len(program) != 2 {
		t.Fatalf("expected 2 top-level forms, got %d", len(program))
	}
	if got := program[0].Inspect(object.ViewTarnLiteral); got != "(a (b c) d)" {
		t.Errorf("expected (a (b c) d), got %s", got)
	}
	sym, ok := program[1].(*object.Symbol)
	if !ok || sym.Value != "e" {
		t.Errorf("expected trailing symbol e, got %s", program[1].Inspect(object.ViewTarnLiteral))
	}
}

func TestParseEmptyList(t *testing.T) {
	program, err := ParseString("test", "()")
	if err != nil {
		t.Fatal(err.Message())
	}
	if len(program) != 1 || program[0].Type() != object.NULL_OBJ {
		t.Fatalf("expected a single null, got %v", program)
	}
}

func TestParsePositions(t *testing.T) {
	program, err := ParseString("test", "\n  (foo bar)")
	if err != nil {
		t.Fatal(err.Message())
	}
	pair, ok := program[0].(*object.Pair)
	if !ok {
		t.Fatalf("expected a pair, got %s", program[0].Inspect(object.ViewTarnLiteral))
	}
	if pair.Token.Line != 2 {
		t.Errorf("expected the form's position on line 2, got %d", pair.Token.Line)
	}
	if pair.Token.Source != "test" {
		t.Errorf("expected source 'test', got %q", pair.Token.Source)
	}
}
