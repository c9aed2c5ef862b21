package pattern

import (
	"fmt"
	"regexp"
)

// TokenKind identifies the kinds of tokens an expression is made of.
type TokenKind int

const (
	TokenAtom TokenKind = iota
	TokenLParen
	TokenRParen
	TokenAnd
	TokenOr
	TokenNot
)

// Token is a single lexical token of an expression.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int // starting byte position in the expression
}

// Lexer tokenizes expression strings into atoms and the reserved operator
// tokens. The atom pattern is supplied by the registry's atom strategy, so one
// lexer serves exactly one atom domain.
type Lexer struct {
	re *regexp.Regexp
}

// NewLexer compiles the combined expression pattern for the given atom
// pattern. Operator alternatives are listed before the atom alternative, so the
// reserved words win at any position where both could match; the reserved words
// are word-bounded, so atoms like "android" are not split apart.
func NewLexer(atomPattern string) (*Lexer, error) {
	re, err := regexp.Compile(`[()]|\band\b|\bor\b|\bnot\b|(?:` + atomPattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("invalid atom pattern %q: %w", atomPattern, err)
	}
	return &Lexer{re: re}, nil
}

// Tokenize scans expr left to right, producing each match of the combined
// pattern in order. Input not matched by any alternative (whitespace, stray
// separators) is skipped; that permissiveness is what lets expressions be
// whitespace-formatted freely.
func (l *Lexer) Tokenize(expr string) []Token {
	locs := l.re.FindAllStringIndex(expr, -1)
	toks := make([]Token, 0, len(locs))
	for _, loc := range locs {
		text := expr[loc[0]:loc[1]]
		toks = append(toks, Token{Kind: kindOf(text), Text: text, Pos: loc[0]})
	}
	return toks
}

func kindOf(text string) TokenKind {
	switch text {
	case "(":
		return TokenLParen
	case ")":
		return TokenRParen
	case "and":
		return TokenAnd
	case "or":
		return TokenOr
	case "not":
		return TokenNot
	default:
		return TokenAtom
	}
}
