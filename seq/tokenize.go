package seq

import "regexp"

// Word runs (letters, digits, underscore) or single non-space marks. Unicode
// classes so the same tokenizer covers non-ASCII scripts.
var tokenRE = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\s\p{L}\p{N}]`)

// Tokenize splits text into a canonical token sequence with rune offsets.
func Tokenize(text string) *Sequence {
	var spans [][2]int
	runeAt := 0
	byteAt := 0
	for _, loc := range tokenRE.FindAllStringIndex(text, -1) {
		// advance the rune counter to the match start
		runeAt += runeLen(text[byteAt:loc[0]])
		start := runeAt
		n := runeLen(text[loc[0]:loc[1]])
		runeAt += n
		byteAt = loc[1]
		spans = append(spans, [2]int{start, n})
	}
	s, _ := NewSequence(text, spans) // regexp matches are ordered and disjoint
	return s
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
