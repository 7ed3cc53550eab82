package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tarn/token"
)

type Lexer struct {
	input  string
	pos    int  // byte offset of ch in input
	next   int  // byte offset after ch
	ch     rune // current rune under examination
	line   int  // the line number
	char   int  // the character number within the line
	tstart int  // the value of char at the start of a token
	source string
}

func New(source, input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		char:   0,
		source: source,
	}
	l.readChar()
	return l
}

func LexDump(input string) {
	fmt.Print("\nLexer output: \n\n")
	l := New("", input)
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		fmt.Println(tok)
	}
	fmt.Println()
}

func (l *Lexer) NextNonCommentToken() token.Token {
	for tok := l.NextToken(); ; tok = l.NextToken() {
		if tok.Type != token.COMMENT {
			return tok
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	l.tstart = l.char

	switch l.ch {
	case 0:
		return l.NewToken(token.EOF, "")
	case '(':
		tok := l.NewToken(token.LPAREN, "(")
		l.readChar()
		return tok
	case ')':
		tok := l.NewToken(token.RPAREN, ")")
		l.readChar()
		return tok
	case ';':
		return l.readComment()
	default:
		return l.readAtom()
	}
}

// An atom runs until whitespace, a parenthesis, a comment, or the end of the
// input. Whether it is a number, a symbol, or a sigil like ' or " is the
// evaluator's business, not ours.
func (l *Lexer) readAtom() token.Token {
	var out strings.Builder
	for l.ch != 0 && l.ch != '(' && l.ch != ')' && l.ch != ';' && !isWhitespace(l.ch) {
		out.WriteRune(l.ch)
		l.readChar()
	}
	tok := l.NewToken(token.ATOM, out.String())
	tok.ChEnd = l.char
	return tok
}

func (l *Lexer) readComment() token.Token {
	l.readChar() // step over the ';'
	var out strings.Builder
	for l.ch != 0 && l.ch != '\n' {
		out.WriteRune(l.ch)
		l.readChar()
	}
	tok := l.NewToken(token.COMMENT, out.String())
	tok.ChEnd = l.char
	return tok
}

func (l *Lexer) NewToken(tokenType token.TokenType, st string) token.Token {
	return token.Token{
		Type:    tokenType,
		Literal: st,
		Line:    l.line,
		ChStart: l.tstart,
		ChEnd:   l.char,
		Source:  l.source,
	}
}

func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.char = 0
	}
	if l.next >= len(l.input) {
		l.ch = 0
		l.pos = l.next
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.pos = l.next
	l.next = l.next + width
	l.char++
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
