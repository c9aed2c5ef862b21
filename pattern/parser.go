package pattern

// parser is a recursive-descent parser over the token stream produced by the
// lexer. Precedence, tightest first: not, and, or. Tokens are consumed
// destructively from the front with single-token lookahead.
type parser[A any] struct {
	toks     []Token
	strategy Strategy[A]
	expr     string // the full expression, for error reporting
}

// parseExpression compiles one expression string into a matcher tree,
// consuming every token the lexer produced.
func parseExpression[A any](lx *Lexer, strategy Strategy[A], expr string) (Node[A], error) {
	p := &parser[A]{toks: lx.Tokenize(expr), strategy: strategy, expr: expr}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if len(p.toks) > 0 {
		return nil, &ParseError{
			Kind: GrammarError,
			Text: expr,
			Msg:  "unconsumed input after expression, starting at " + quoteTok(p.toks[0]),
		}
	}
	return root, nil
}

// or_expr := and_expr ( 'or' and_expr )*
func (p *parser[A]) parseOr() (Node[A], error) {
	kid, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	kids := []Node[A]{kid}
	for p.peekIs(TokenOr) {
		p.next()
		kid, err = p.parseAnd()
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)
	}
	if len(kids) == 1 {
		return kids[0], nil
	}
	return Or[A]{Kids: kids}, nil
}

// and_expr := not_expr ( 'and' not_expr )*
func (p *parser[A]) parseAnd() (Node[A], error) {
	kid, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	kids := []Node[A]{kid}
	for p.peekIs(TokenAnd) {
		p.next()
		kid, err = p.parseNot()
		if err != nil {
			return nil, err
		}
		kids = append(kids, kid)
	}
	if len(kids) == 1 {
		return kids[0], nil
	}
	return And[A]{Kids: kids}, nil
}

// not_expr := 'not' atom | atom
func (p *parser[A]) parseNot() (Node[A], error) {
	if p.peekIs(TokenNot) {
		p.next()
		kid, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return Not[A]{Kid: kid}, nil
	}
	return p.parseAtom()
}

// atom := '(' or_expr ')' | <atom-token>
func (p *parser[A]) parseAtom() (Node[A], error) {
	tok, ok := p.next()
	if !ok {
		return nil, &ParseError{
			Kind: MalformedInput,
			Text: p.expr,
			Msg:  "expected an operand but input is empty",
		}
	}
	switch tok.Kind {
	case TokenLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRParen, ")"); err != nil {
			return nil, err
		}
		return inner, nil
	case TokenAtom:
		atom, err := p.strategy.BuildAtom(tok.Text)
		if err != nil {
			return nil, &ParseError{
				Kind: UnknownAtom,
				Text: p.expr,
				Msg:  "cannot build atom from " + quoteTok(tok) + ": " + err.Error(),
			}
		}
		return Leaf[A]{Atom: atom, Text: tok.Text}, nil
	default:
		return nil, &ParseError{
			Kind:     GrammarError,
			Text:     p.expr,
			Expected: "an atom or '('",
			Found:    tok.Text,
		}
	}
}

// expect consumes the next token and fails unless it has the given kind. The
// two failure shapes are distinct so callers can tell "wrong token" from
// "input exhausted" when reporting.
func (p *parser[A]) expect(kind TokenKind, literal string) error {
	tok, ok := p.next()
	if !ok {
		return &ParseError{
			Kind:     MalformedInput,
			Text:     p.expr,
			Expected: literal,
		}
	}
	if tok.Kind != kind {
		return &ParseError{
			Kind:     GrammarError,
			Text:     p.expr,
			Expected: literal,
			Found:    tok.Text,
		}
	}
	return nil
}

func (p *parser[A]) peekIs(kind TokenKind) bool {
	return len(p.toks) > 0 && p.toks[0].Kind == kind
}

func (p *parser[A]) next() (Token, bool) {
	if len(p.toks) == 0 {
		return Token{}, false
	}
	tok := p.toks[0]
	p.toks = p.toks[1:]
	return tok, true
}

func quoteTok(t Token) string {
	return "\"" + t.Text + "\""
}
