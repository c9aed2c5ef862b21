// Package tokentest is the smallest concrete atom domain for the generic
// boolean combinator framework: atoms that test one annotated token position.
// Higher-level pattern types plug their own domains into the registry the same
// way this package does.
package tokentest

import (
	"fmt"
	"strings"

	"github.com/SRI-AIC/valet-sub001/pattern"
	"github.com/SRI-AIC/valet-sub001/seq"
)

// Atom tests one token position. Either Field is set ("text", "lemma", "pos",
// "tag") and the atom tests an annotation of the token, or Ref names another
// registry entry whose tree is evaluated at the same position.
//
// Atom syntax: text[dog], lemma[run], pos[NOUN], tag[key=value], or a bare
// identifier referencing another definition. pos is a prefix test, since
// taggers emit hierarchical tags like "名詞,一般,*,*"; the others are exact.
type Atom struct {
	Field string
	Key   string // tag key, only when Field == "tag"
	Value string
	Ref   string
}

func (a Atom) String() string {
	if a.Ref != "" {
		return a.Ref
	}
	if a.Field == "tag" {
		return fmt.Sprintf("tag[%s=%s]", a.Key, a.Value)
	}
	return fmt.Sprintf("%s[%s]", a.Field, a.Value)
}

// Strategy is the atom-construction strategy injected into the registry.
type Strategy struct{}

func (Strategy) AtomPattern() string {
	return `\w+\[[^\]]*\]|\w+`
}

func (Strategy) BuildAtom(text string) (Atom, error) {
	open := strings.IndexByte(text, '[')
	if open < 0 {
		return Atom{Ref: text}, nil
	}
	field := text[:open]
	value := strings.TrimSuffix(text[open+1:], "]")
	switch field {
	case "text", "lemma", "pos":
		return Atom{Field: field, Value: value}, nil
	case "tag":
		k, v, ok := strings.Cut(value, "=")
		if !ok {
			return Atom{}, fmt.Errorf("tag atom wants key=value, got %q", value)
		}
		return Atom{Field: "tag", Key: k, Value: v}, nil
	default:
		return Atom{}, fmt.Errorf("unknown test field %q", field)
	}
}

// NewRegistry builds a matcher registry over this atom domain.
func NewRegistry() (*pattern.Registry[Atom], error) {
	return pattern.NewRegistry[Atom](Strategy{})
}

// Resolver resolves name-reference atoms; *pattern.Registry[Atom] satisfies it.
type Resolver interface {
	Lookup(name string) (pattern.Node[Atom], bool)
}

// References deeper than this fail to match rather than recurse forever; the
// registry cannot rule out reference cycles at parse time because a name may
// legally be referenced before it is defined.
const maxRefDepth = 32

// Eval tests a matcher tree against token position i of s. Unresolvable
// references and unset annotations simply fail to match.
func Eval(n pattern.Node[Atom], s *seq.Sequence, i int, r Resolver) bool {
	return eval(n, s, i, r, 0)
}

func eval(n pattern.Node[Atom], s *seq.Sequence, i int, r Resolver, depth int) bool {
	return pattern.Eval(n, func(a Atom) bool {
		return a.matches(s, i, r, depth)
	})
}

func (a Atom) matches(s *seq.Sequence, i int, r Resolver, depth int) bool {
	if a.Ref != "" {
		if r == nil || depth >= maxRefDepth {
			return false
		}
		node, ok := r.Lookup(a.Ref)
		if !ok {
			return false
		}
		return eval(node, s, i, r, depth+1)
	}
	tok := s.At(i)
	switch a.Field {
	case "text":
		return s.TokenText(i) == a.Value
	case "lemma":
		v, ok := tok.Tag(seq.Lemma)
		return ok && v == a.Value
	case "pos":
		v, ok := tok.Tag(seq.POS)
		return ok && strings.HasPrefix(v, a.Value)
	case "tag":
		v, ok := tok.Tag(a.Key)
		return ok && v == a.Value
	default:
		return false
	}
}
