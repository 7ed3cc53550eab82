package parser

import (
	"tarn/lexer"
	"tarn/object"
	"tarn/token"
)

// The parser builds the program directly as objects: there is no separate
// AST, because in Tarn code and data are the same pair trees. Atoms become
// Symbols (numeric literals stay symbols until the evaluator resolves them)
// and parenthesized forms become Null-terminated Pair chains.

type Parser struct {
	lexer    *lexer.Lexer
	levels   [][]object.Object // one slice of finished objects per open paren
	openings []token.Token     // positions of the unmatched opening parens
}

func New(source, input string) *Parser {
	return &Parser{
		lexer:    lexer.New(source, input),
		levels:   [][]object.Object{{}},
		openings: []token.Token{},
	}
}

// ParseString parses a whole source text into the ordered sequence of
// top-level forms that the evaluator takes as its program.
func ParseString(source, input string) ([]object.Object, *object.Error) {
	return New(source, input).Parse()
}

func (p *Parser) Parse() ([]object.Object, *object.Error) {
	for {
		tok := p.lexer.NextNonCommentToken()
		switch tok.Type {
		case token.EOF:
			if len(p.openings) > 0 {
				return nil, object.CreateErr("parse/paren/open", p.openings[len(p.openings)-1])
			}
			return p.levels[0], nil
		case token.LPAREN:
			p.openings = append(p.openings, tok)
			p.levels = append(p.levels, []object.Object{})
		case token.RPAREN:
			if len(p.openings) == 0 {
				return nil, object.CreateErr("parse/paren/close", tok)
			}
			opening := p.openings[len(p.openings)-1]
			p.openings = p.openings[:len(p.openings)-1]
			elements := p.levels[len(p.levels)-1]
			p.levels = p.levels[:len(p.levels)-1]
			p.emit(foldList(elements, opening))
		default:
			p.emit(&object.Symbol{Value: tok.Literal, Token: tok})
		}
	}
}

func (p *Parser) emit(o object.Object) {
	p.levels[len(p.levels)-1] = append(p.levels[len(p.levels)-1], o)
}

// foldList builds the Pair chain right to left. Inner pairs carry their
// head's position; the outermost pair carries the opening parenthesis, so a
// whole form can be pointed at in diagnostics.
func foldList(elements []object.Object, opening token.Token) object.Object {
	var active object.Object = object.NULL
	for i := len(elements) - 1; i >= 0; i-- {
		headTok, _ := object.WhereIs(elements[i])
		active = &object.Pair{Head: elements[i], Tail: active, Token: headTok}
	}
	if pair, ok := active.(*object.Pair); ok {
		pair.Token = opening
	}
	return active
}
