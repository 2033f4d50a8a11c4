package modtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_KnownTables(t *testing.T) {
	for _, name := range []string{
		"default", "increment", "custom", "chromatic",
		"rhythmic", "harmonic", "modal", "octave",
	} {
		tbl, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, tbl.Name())
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("nonexistent")
	require.Error(t, err)
	assert.True(t, IsUnknownTable(err))
	assert.False(t, IsUnknownParameter(err))
	assert.Contains(t, err.Error(), "UNKNOWN_STRATEGY")
}

func TestList_StableOrder(t *testing.T) {
	infos := List()
	require.Len(t, infos, 8)

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	assert.Equal(t, []string{
		"default", "increment", "custom", "chromatic",
		"rhythmic", "harmonic", "modal", "octave",
	}, names)

	// Listing twice yields the same order.
	assert.Equal(t, names, Names())
}

func TestList_ReversibilityFlags(t *testing.T) {
	for _, info := range List() {
		if info.Name == "custom" {
			assert.False(t, info.Reversible, "custom is one-way")
		} else {
			assert.True(t, info.Reversible, "%s should be reversible", info.Name)
		}
	}
}

func TestGroup(t *testing.T) {
	all, ok := Group("all")
	require.True(t, ok)
	assert.Equal(t, Names(), all)

	music, ok := Group("music")
	require.True(t, ok)
	assert.Equal(t, []string{"chromatic", "rhythmic", "harmonic", "modal", "octave"}, music)

	_, ok = Group("percussive")
	assert.False(t, ok)
}
