package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesListsCatalog(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTablesCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Status string       `json:"status"`
		Data   TablesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	names := make([]string, len(resp.Data.Tables))
	for i, tbl := range resp.Data.Tables {
		names[i] = tbl.Name
	}
	assert.Equal(t, []string{"default", "increment", "custom", "chromatic", "rhythmic", "harmonic", "modal", "octave"}, names)

	byName := map[string]TableInfo{}
	for _, tbl := range resp.Data.Tables {
		byName[tbl.Name] = tbl
	}
	assert.False(t, byName["custom"].Reversible)
	assert.True(t, byName["chromatic"].Reversible)

	require.Len(t, byName["harmonic"].Params, 1)
	assert.Equal(t, "chord", byName["harmonic"].Params[0].Name)
	assert.Equal(t, "dominant7", byName["harmonic"].Params[0].Default)
}

func TestTablesGroupFilter(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTablesCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--group", "music"})

	require.NoError(t, cmd.Execute())

	var resp struct {
		Data TablesResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	names := make([]string, len(resp.Data.Tables))
	for i, tbl := range resp.Data.Tables {
		names[i] = tbl.Name
	}
	assert.Equal(t, []string{"chromatic", "rhythmic", "harmonic", "modal", "octave"}, names)
}

func TestTablesUnknownGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTablesCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--group", "percussion"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "unknown group")
}

func TestTablesTextOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTablesCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "custom (one-way)")
	assert.Contains(t, out, "modal (reversible)")
	assert.Contains(t, out, "default: ionian")
}
