package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "words and punctuation",
			input: "The dog runs.",
			want:  []string{"The", "dog", "runs", "."},
		},
		{
			name:  "apostrophe splits",
			input: "don't",
			want:  []string{"don", "'", "t"},
		},
		{
			name:  "unicode words",
			input: "犬が走る",
			want:  []string{"犬が走る"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := Tokenize(tt.input)
			var got []string
			for i := 0; i < s.Len(); i++ {
				got = append(got, s.TokenText(i))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeRuneOffsets(t *testing.T) {
	t.Parallel()
	s := Tokenize("héllo wörld")
	require.Equal(t, 2, s.Len())

	off, n := s.Span(0)
	assert.Equal(t, 0, off)
	assert.Equal(t, 5, n)

	off, n = s.Span(1)
	assert.Equal(t, 6, off, "offsets are rune counts, not byte counts")
	assert.Equal(t, 5, n)
	assert.Equal(t, "wörld", s.TokenText(1))
}

func TestNewSequenceRejectsOverlap(t *testing.T) {
	t.Parallel()
	_, err := NewSequence("abcdef", [][2]int{{0, 3}, {2, 3}})
	assert.Error(t, err)
}

func TestSequenceSpanMetadata(t *testing.T) {
	t.Parallel()
	s, err := NewSequence("  abc def", [][2]int{{2, 3}, {6, 3}})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Offset)
	assert.Equal(t, 7, s.Length)
	assert.Equal(t, "abc", s.TokenText(0))
	assert.Equal(t, "def", s.TokenText(1))
}

func TestAddAnnotations(t *testing.T) {
	t.Parallel()
	s, err := NewSequence("abc def", [][2]int{{0, 3}, {4, 3}})
	require.NoError(t, err)

	s.AddAnnotations(POS, map[int]string{0: "NOUN"})

	v, ok := s.At(0).Tag(POS)
	assert.True(t, ok)
	assert.Equal(t, "NOUN", v)

	// absence is a state, not a default
	_, ok = s.At(1).Tag(POS)
	assert.False(t, ok)
	_, ok = s.At(0).Tag(Lemma)
	assert.False(t, ok)

	// out-of-range indices are ignored
	s.AddAnnotations(Lemma, map[int]string{5: "x", -1: "y"})
	_, ok = s.At(0).Tag(Lemma)
	assert.False(t, ok)
}

func TestAddDependencies(t *testing.T) {
	t.Parallel()
	s, err := NewSequence("abc def ghi", [][2]int{{0, 3}, {4, 3}, {8, 3}})
	require.NoError(t, err)

	require.NoError(t, s.AddDependencies([]Edge{{Child: 0, Head: 1, Rel: "nsubj"}}))
	assert.Equal(t, []Edge{{Child: 0, Head: 1, Rel: "nsubj"}}, s.Edges())

	assert.Error(t, s.AddDependencies([]Edge{{Child: 1, Head: 1, Rel: "loop"}}))
	assert.Error(t, s.AddDependencies([]Edge{{Child: 0, Head: 3, Rel: "range"}}))
	assert.Len(t, s.Edges(), 1, "failed batches must not partially commit")
}
