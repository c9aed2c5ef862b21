package pattern

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWordRegistry(t *testing.T) *Registry[string] {
	t.Helper()
	reg, err := NewRegistry[string](wordStrategy{})
	require.NoError(t, err)
	return reg
}

func TestRegistryParseBlock(t *testing.T) {
	t.Parallel()
	reg := newWordRegistry(t)
	err := reg.ParseBlock(`# simple definitions
first : a and b

second : a or
  not b
`)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, reg.Names())
	assert.Equal(t, 2, reg.Len())

	first, ok := reg.Lookup("first")
	require.True(t, ok)
	assert.True(t, reflect.DeepEqual(and(leaf("a"), leaf("b")), first))

	second, ok := reg.Lookup("second")
	require.True(t, ok)
	assert.True(t, reflect.DeepEqual(or(leaf("a"), not(leaf("b"))), second))

	_, ok = reg.Lookup("third")
	assert.False(t, ok)
}

func TestRegistryOverwrite(t *testing.T) {
	t.Parallel()
	reg := newWordRegistry(t)
	require.NoError(t, reg.ParseBlock("x : a\nx : b"))

	node, ok := reg.Lookup("x")
	require.True(t, ok)
	assert.True(t, reflect.DeepEqual(leaf("b"), node), "later definition must win")
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryStrictDuplicate(t *testing.T) {
	t.Parallel()
	reg := newWordRegistry(t)
	reg.SetStrict(true)
	err := reg.ParseBlock("x : a\nx : b")
	require.Error(t, err)
	assert.True(t, IsMalformedInput(err))

	// the first binding survives
	node, ok := reg.Lookup("x")
	require.True(t, ok)
	assert.True(t, reflect.DeepEqual(leaf("a"), node))
}

func TestRegistryMalformedStatement(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		stmt string
	}{
		{name: "no colon", stmt: "just words here"},
		{name: "empty expression", stmt: "name :"},
		{name: "bad name", stmt: "two words : a"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := newWordRegistry(t)
			err := reg.ParseStatement(tt.stmt)
			require.Error(t, err)
			assert.True(t, IsMalformedInput(err))
			assert.Equal(t, 0, reg.Len(), "failed statement must not bind")
		})
	}
}

func TestRegistryKeepsEarlierStatementsOnFailure(t *testing.T) {
	t.Parallel()
	reg := newWordRegistry(t)
	err := reg.ParseBlock("good : a\nbroken : and and\nlater : b")
	require.Error(t, err)

	_, ok := reg.Lookup("good")
	assert.True(t, ok, "statements before the failure stay bound")
	_, ok = reg.Lookup("later")
	assert.False(t, ok, "statements after the failure are not parsed")
}

func TestRegistryParseFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "rules.vrules")
	require.NoError(t, os.WriteFile(path, []byte("x : a and b\n"), 0o644))

	reg := newWordRegistry(t)
	require.NoError(t, reg.ParseFile(path))
	_, ok := reg.Lookup("x")
	assert.True(t, ok)

	err := reg.ParseFile(filepath.Join(t.TempDir(), "missing.vrules"))
	assert.Error(t, err)
}

func TestRegistryClear(t *testing.T) {
	t.Parallel()
	reg := newWordRegistry(t)
	require.NoError(t, reg.ParseStatement("x : a"))
	reg.Clear()
	assert.Equal(t, 0, reg.Len())
}
