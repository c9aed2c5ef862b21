// Package align reconciles two independently produced tokenizations of the
// same text: the canonical token sequence and an external analysis engine's
// own tokenization carrying linguistic tags and dependency edges. Tags are
// transferred onto canonical tokens by character-span overlap and edges are
// remapped onto canonical token indices.
package align

import (
	"fmt"

	"github.com/SRI-AIC/valet-sub001/seq"
)

// ExtToken is one token of the external tokenization: a span plus whatever
// tag values the external engine produced for it (seq.POS, seq.Lemma, ...).
type ExtToken struct {
	Offset int
	Length int
	Tags   map[string]string
}

// ExtEdge is a dependency edge in external token indices.
type ExtEdge struct {
	Child int
	Head  int
	Rel   string
}

// Annotations is an External Annotation Set: the external engine's complete
// output for one segment. It is consumed entirely by Align and not retained.
type Annotations struct {
	Tokens []ExtToken
	Edges  []ExtEdge
}

// DroppedEdge records an external edge that could not be expressed in
// canonical indices. Dropping is diagnostic data, not an error.
type DroppedEdge struct {
	Edge   ExtEdge
	Reason string
}

// Align merges ann onto s: every tag an external token carries is assigned to
// each canonical token its span overlaps, and every external edge is remapped
// through the overlap index, anchored at the rightmost canonical token of a
// multi-token span. Missing alignment never raises: a canonical token no
// external token covers is simply left untagged, and an edge with an
// uncoverable endpoint is dropped and reported.
//
// External tokens are processed in index order, so the last-writer-wins
// resolution of conflicting tag values is deterministic.
func Align(s *seq.Sequence, ann *Annotations) []DroppedEdge {
	index := overlapIndex(s, ann.Tokens)

	// Tag transfer, one kind at a time so AddAnnotations runs once per kind.
	byKind := make(map[string]map[int]string)
	for ext, tok := range ann.Tokens {
		for kind, val := range tok.Tags {
			m := byKind[kind]
			if m == nil {
				m = make(map[int]string)
				byKind[kind] = m
			}
			for _, ci := range index[ext] {
				m[ci] = val
			}
		}
	}
	for kind, m := range byKind {
		s.AddAnnotations(kind, m)
	}

	var edges []seq.Edge
	var dropped []DroppedEdge
	for _, e := range ann.Edges {
		child, okc := rightmost(index, e.Child)
		head, okh := rightmost(index, e.Head)
		if !okc || !okh {
			dropped = append(dropped, DroppedEdge{Edge: e, Reason: dropReason(okc, okh)})
			continue
		}
		if child == head {
			// Both endpoints collapsed onto one canonical token; the edge has
			// no canonical expression.
			dropped = append(dropped, DroppedEdge{Edge: e, Reason: "both endpoints map to one canonical token"})
			continue
		}
		edges = append(edges, seq.Edge{Child: child, Head: head, Rel: e.Rel})
	}
	if len(edges) > 0 {
		// endpoints come from the index, so this cannot fail
		if err := s.AddDependencies(edges); err != nil {
			panic(fmt.Sprintf("align: remapped edges invalid: %v", err))
		}
	}
	return dropped
}

// overlapIndex maps each external token index to the canonical token indices
// whose spans overlap it. Two spans overlap when either one starts at or
// before the other and extends past the other's start; the symmetric rule
// tolerates either tokenizer being the finer-grained one.
func overlapIndex(s *seq.Sequence, ext []ExtToken) [][]int {
	index := make([][]int, len(ext))
	for e, tok := range ext {
		eStart := tok.Offset
		eEnd := tok.Offset + tok.Length
		// canonical tokens are offset-sorted, so the scan could early-exit;
		// segments are short enough that the plain scan is fine
		for c := 0; c < s.Len(); c++ {
			cStart, cLen := s.Span(c)
			cEnd := cStart + cLen
			if (cStart <= eStart && eStart < cEnd) || (eStart <= cStart && cStart < eEnd) {
				index[e] = append(index[e], c)
			}
		}
	}
	return index
}

// rightmost maps an external index through the overlap index, choosing the
// highest canonical index when the external token spans several canonical
// tokens. The rightmost anchor is the fixed tie-break: a multi-token external
// unit stays attached at its final sub-token.
func rightmost(index [][]int, ext int) (int, bool) {
	if ext < 0 || ext >= len(index) || len(index[ext]) == 0 {
		return 0, false
	}
	cands := index[ext]
	return cands[len(cands)-1], true
}

func dropReason(okChild, okHead bool) string {
	switch {
	case !okChild && !okHead:
		return "neither endpoint aligns to a canonical token"
	case !okChild:
		return "child aligns to no canonical token"
	default:
		return "head aligns to no canonical token"
	}
}
