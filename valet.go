// Package valet compiles named boolean token-test rules and matches them
// against annotated token sequences.
package valet

import (
	"github.com/SRI-AIC/valet-sub001/internal/types"
	"github.com/SRI-AIC/valet-sub001/match"
)

// Match is one rule match; re-exported for callers of the convenience API.
type Match = types.Match

// CompileRules compiles an in-memory rule block into a ready-to-use runner.
func CompileRules(rules string) (*match.Runner, error) {
	return match.NewFromBlock(rules)
}

// MatchText matches every compiled rule against every line of text, using the
// plain canonical tokenizer.
func MatchText(r *match.Runner, filename, text string) ([]Match, error) {
	return r.ProcessText(filename, text)
}
