package pattern

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

// Strategy supplies the atom domain a Registry compiles expressions over:
// AtomPattern recognizes a valid atom token inside an expression and BuildAtom
// turns a matched atom substring into an atom value. Injecting the pair is
// what lets the same combinator machinery serve different atomic-predicate
// domains without modification.
type Strategy[A any] interface {
	AtomPattern() string
	BuildAtom(text string) (A, error)
}

var statementRE = regexp.MustCompile(`^(\w+)\s*:\s*(.+)$`)

// Registry owns a name -> matcher-tree mapping for one atom domain. It is not
// internally synchronized: concurrent lookups are safe, but a concurrent
// re-parse must be fenced by the caller.
type Registry[A any] struct {
	strategy Strategy[A]
	lexer    *Lexer
	defs     map[string]Node[A]
	strict   bool
}

// NewRegistry builds a registry for the given atom strategy.
func NewRegistry[A any](strategy Strategy[A]) (*Registry[A], error) {
	lx, err := NewLexer(strategy.AtomPattern())
	if err != nil {
		return nil, err
	}
	return &Registry[A]{
		strategy: strategy,
		lexer:    lx,
		defs:     make(map[string]Node[A]),
	}, nil
}

// SetStrict controls redefinition handling. By default a later statement with
// an already-bound name silently overwrites the earlier binding; in strict
// mode it is a malformed-input error instead.
func (r *Registry[A]) SetStrict(strict bool) {
	r.strict = strict
}

// ParseFile reads the file fully into memory and parses it as a block.
func (r *Registry[A]) ParseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading rule file %s: %w", path, err)
	}
	return r.ParseBlock(string(data))
}

// ParseBlock splits text into statements and parses each in order. Parsing
// stops at the first failing statement; bindings made by earlier statements
// are kept.
func (r *Registry[A]) ParseBlock(text string) error {
	sc := NewStatementScanner(text)
	for sc.Scan() {
		if err := r.ParseStatement(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ParseStatement parses one `name : expression` statement and binds the
// compiled tree under name. A malformed statement leaves the registry
// untouched.
func (r *Registry[A]) ParseStatement(stmt string) error {
	m := statementRE.FindStringSubmatch(stmt)
	if m == nil {
		return &ParseError{
			Kind: MalformedInput,
			Text: stmt,
			Msg:  "statement does not match `name : expression`",
		}
	}
	name, expr := m[1], m[2]
	if r.strict {
		if _, dup := r.defs[name]; dup {
			return &ParseError{
				Kind: MalformedInput,
				Text: stmt,
				Msg:  fmt.Sprintf("duplicate definition of %q", name),
			}
		}
	}
	root, err := parseExpression(r.lexer, r.strategy, expr)
	if err != nil {
		return err
	}
	r.defs[name] = root
	return nil
}

// Lookup returns the matcher tree bound to name.
func (r *Registry[A]) Lookup(name string) (Node[A], bool) {
	n, ok := r.defs[name]
	return n, ok
}

// Names returns all bound names, sorted.
func (r *Registry[A]) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound names.
func (r *Registry[A]) Len() int {
	return len(r.defs)
}

// Clear drops every binding.
func (r *Registry[A]) Clear() {
	r.defs = make(map[string]Node[A])
}
