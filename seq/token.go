// Package seq holds the canonical token sequence model: tokens with rune
// offsets into the source text, annotation slots merged on during
// construction, and dependency edges between token positions.
package seq

import "fmt"

// Well-known annotation kinds. Any other string is a valid kind too.
const (
	POS   = "pos"
	Lemma = "lemma"
)

// Token is one unit of text, located by rune offset and rune length into the
// source string the owning Sequence references. Tokens are immutable once the
// sequence is constructed; annotation values are attached through
// Sequence.AddAnnotations exactly once per kind.
type Token struct {
	Offset int
	Length int
	tags   map[string]string
}

// Tag returns the annotation value of the given kind. Absence is a first-class
// state: a token that no annotation aligned to reports ok == false rather than
// any default.
func (t *Token) Tag(kind string) (string, bool) {
	v, ok := t.tags[kind]
	return v, ok
}

// Text slices the token out of the given source text.
func (t *Token) Text(source string) string {
	runes := []rune(source)
	if t.Offset < 0 || t.Offset+t.Length > len(runes) {
		return ""
	}
	return string(runes[t.Offset : t.Offset+t.Length])
}

// Edge is a directed dependency edge between two token positions of the same
// sequence: Child depends on Head under relation Rel.
type Edge struct {
	Child int
	Head  int
	Rel   string
}

// Sequence is an ordered, indexable collection of tokens covering one
// sentence or segment of Source. Tokens are ordered by non-decreasing offset
// and do not overlap. A sequence is built once (tokens, then annotations, then
// dependencies) and read-only afterward.
type Sequence struct {
	Source string
	Offset int // rune offset of this segment within Source
	Length int // rune length of this segment
	tokens []Token
	edges  []Edge
}

// NewSequence constructs a sequence over source from (offset, length) token
// spans. Spans must be sorted by offset and non-overlapping.
func NewSequence(source string, spans [][2]int) (*Sequence, error) {
	toks := make([]Token, len(spans))
	prevEnd := -1
	for i, sp := range spans {
		if sp[0] < prevEnd {
			return nil, fmt.Errorf("token %d at offset %d overlaps previous token ending at %d", i, sp[0], prevEnd)
		}
		toks[i] = Token{Offset: sp[0], Length: sp[1]}
		prevEnd = sp[0] + sp[1]
	}
	s := &Sequence{Source: source, tokens: toks}
	if len(toks) > 0 {
		s.Offset = toks[0].Offset
		s.Length = prevEnd - s.Offset
	}
	return s, nil
}

// Len returns the number of tokens.
func (s *Sequence) Len() int {
	return len(s.tokens)
}

// At returns the token at position i.
func (s *Sequence) At(i int) *Token {
	return &s.tokens[i]
}

// TokenText returns the source text of the token at position i.
func (s *Sequence) TokenText(i int) string {
	return s.tokens[i].Text(s.Source)
}

// Span returns the (offset, length) of the token at position i.
func (s *Sequence) Span(i int) (int, int) {
	return s.tokens[i].Offset, s.tokens[i].Length
}

// Edges returns the dependency edges of the sequence. The returned slice is
// shared; callers must not modify it.
func (s *Sequence) Edges() []Edge {
	return s.edges
}

// AddAnnotations attaches values of one annotation kind onto tokens by index.
// Performed once per kind during construction, by the alignment layer or a
// tokenizer that carries its own tags. Indices out of range are ignored.
func (s *Sequence) AddAnnotations(kind string, byIndex map[int]string) {
	for i, v := range byIndex {
		if i < 0 || i >= len(s.tokens) {
			continue
		}
		if s.tokens[i].tags == nil {
			s.tokens[i].tags = make(map[string]string)
		}
		s.tokens[i].tags[kind] = v
	}
}

// AddDependencies attaches dependency edges, validating that endpoints are in
// range and that no edge loops onto itself. Performed once during
// construction.
func (s *Sequence) AddDependencies(edges []Edge) error {
	for _, e := range edges {
		if e.Child == e.Head {
			return fmt.Errorf("dependency edge %d -> %d loops onto itself", e.Child, e.Head)
		}
		if e.Child < 0 || e.Child >= len(s.tokens) || e.Head < 0 || e.Head >= len(s.tokens) {
			return fmt.Errorf("dependency edge %d -> %d out of range for %d tokens", e.Child, e.Head, len(s.tokens))
		}
	}
	s.edges = append(s.edges, edges...)
	return nil
}
