package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// An atom is anything that isn't a parenthesis, whitespace, or a comment:
	// symbols, numeric literals, and the quote and string sigils all lex
	// alike and are told apart at evaluation time.
	ATOM = "ATOM"

	COMMENT = "COMMENT" // ; foo bar zort troz

	LPAREN = "("
	RPAREN = ")"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	ChStart int
	ChEnd   int
	Source  string
}
