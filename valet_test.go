package valet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndMatch(t *testing.T) {
	t.Parallel()
	runner, err := CompileRules(`
dog : text[dog] or text[dogs]
two_legged : text[bird] or text[person]
animal : dog or two_legged
`)
	require.NoError(t, err)

	matches, err := MatchText(runner, "in.txt", "the dogs chase a bird")
	require.NoError(t, err)

	var rules []string
	for _, m := range matches {
		rules = append(rules, m.Rule)
	}
	assert.Equal(t, []string{"animal", "dog", "animal", "two_legged"}, rules)
}

func TestCompileRulesError(t *testing.T) {
	t.Parallel()
	_, err := CompileRules("bad : ((x)")
	assert.Error(t, err)
}
