package tokentest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SRI-AIC/valet-sub001/pattern"
	"github.com/SRI-AIC/valet-sub001/seq"
)

func TestBuildAtom(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    Atom
		wantErr bool
	}{
		{name: "text test", input: "text[dog]", want: Atom{Field: "text", Value: "dog"}},
		{name: "lemma test", input: "lemma[run]", want: Atom{Field: "lemma", Value: "run"}},
		{name: "pos test", input: "pos[NOUN]", want: Atom{Field: "pos", Value: "NOUN"}},
		{name: "tag test", input: "tag[case=dative]", want: Atom{Field: "tag", Key: "case", Value: "dative"}},
		{name: "reference", input: "noun_phrase", want: Atom{Ref: "noun_phrase"}},
		{name: "unknown field", input: "size[3]", wantErr: true},
		{name: "tag without key", input: "tag[dative]", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Strategy{}.BuildAtom(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// annotatedSeq builds "The dog runs ." with POS and lemma tags.
func annotatedSeq(t *testing.T) *seq.Sequence {
	t.Helper()
	s := seq.Tokenize("The dog runs .")
	s.AddAnnotations(seq.POS, map[int]string{0: "DET", 1: "NOUN", 2: "VERB,intrans"})
	s.AddAnnotations(seq.Lemma, map[int]string{0: "the", 1: "dog", 2: "run"})
	s.AddAnnotations("case", map[int]string{1: "nom"})
	return s
}

func TestEvalAtoms(t *testing.T) {
	t.Parallel()
	s := annotatedSeq(t)
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.ParseBlock(`
texttest : text[dog]
lemmatest : lemma[run]
postest : pos[VERB]
tagtest : tag[case=nom]
combined : pos[NOUN] and not lemma[the]
`))

	tests := []struct {
		rule string
		hits []int
	}{
		{rule: "texttest", hits: []int{1}},
		{rule: "lemmatest", hits: []int{2}},
		{rule: "postest", hits: []int{2}}, // prefix of "VERB,intrans"
		{rule: "tagtest", hits: []int{1}},
		{rule: "combined", hits: []int{1}},
	}

	for _, tt := range tests {
		node, ok := reg.Lookup(tt.rule)
		require.True(t, ok, tt.rule)
		var hits []int
		for i := 0; i < s.Len(); i++ {
			if Eval(node, s, i, reg) {
				hits = append(hits, i)
			}
		}
		assert.Equal(t, tt.hits, hits, tt.rule)
	}
}

func TestEvalUnsetTagNeverMatches(t *testing.T) {
	t.Parallel()
	s := seq.Tokenize("bare tokens only")
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.ParseBlock("anypos : pos[NOUN]\nnopos : not pos[NOUN]"))

	anypos, _ := reg.Lookup("anypos")
	nopos, _ := reg.Lookup("nopos")
	for i := 0; i < s.Len(); i++ {
		assert.False(t, Eval(anypos, s, i, reg))
		assert.True(t, Eval(nopos, s, i, reg), "negation of an unset tag matches")
	}
}

func TestEvalReferences(t *testing.T) {
	t.Parallel()
	s := annotatedSeq(t)
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.ParseBlock(`
noun : pos[NOUN]
subject : noun and tag[case=nom]
not_subject : not subject
`))

	subject, _ := reg.Lookup("subject")
	assert.True(t, Eval(subject, s, 1, reg))
	assert.False(t, Eval(subject, s, 0, reg))

	notSubject, _ := reg.Lookup("not_subject")
	assert.False(t, Eval(notSubject, s, 1, reg))
	assert.True(t, Eval(notSubject, s, 2, reg))
}

func TestEvalUnresolvedReference(t *testing.T) {
	t.Parallel()
	s := annotatedSeq(t)
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.ParseStatement("lonely : missing_rule"))

	node, _ := reg.Lookup("lonely")
	assert.False(t, Eval(node, s, 1, reg), "unresolvable reference fails to match")
	assert.False(t, Eval(node, s, 1, nil), "nil resolver fails to match")
}

func TestEvalReferenceCycle(t *testing.T) {
	t.Parallel()
	s := annotatedSeq(t)
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NoError(t, reg.ParseBlock("ping : pong\npong : ping"))

	node, _ := reg.Lookup("ping")
	assert.False(t, Eval(node, s, 0, reg), "cycles bottom out instead of recursing forever")
}

func TestRegistryRejectsUnknownAtomField(t *testing.T) {
	t.Parallel()
	reg, err := NewRegistry()
	require.NoError(t, err)
	err = reg.ParseStatement("bad : pos[NOUN] and size[3]")
	require.Error(t, err)
	var pe *pattern.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, pattern.UnknownAtom, pe.Kind)
	assert.Equal(t, 0, reg.Len())
}
