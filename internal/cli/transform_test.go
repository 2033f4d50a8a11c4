package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phorms/enki/internal/export"
)

func runTransformJSON(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTransformDefaults(t *testing.T) {
	out, err := runTransformJSON(t, "32", "chromatic")
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   TransformResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(32), resp.Data.N)
	assert.Equal(t, "chromatic", resp.Data.Table)
	assert.Equal(t, map[string]string{"interval": "fifth"}, resp.Data.Params)
	assert.NotEmpty(t, resp.Data.RunToken)
	assert.Len(t, resp.Data.Fingerprint, 64)
}

func TestTransformFingerprintIgnoresRunToken(t *testing.T) {
	first, err := runTransformJSON(t, "32", "modal")
	require.NoError(t, err)
	second, err := runTransformJSON(t, "32", "modal")
	require.NoError(t, err)

	var a, b struct {
		Data TransformResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))

	assert.NotEqual(t, a.Data.RunToken, b.Data.RunToken)
	assert.Equal(t, a.Data.Fingerprint, b.Data.Fingerprint)
}

func TestTransformExplicitParam(t *testing.T) {
	out, err := runTransformJSON(t, "16", "harmonic", "--param", "chord=major7")
	require.NoError(t, err)

	var resp struct {
		Data TransformResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, map[string]string{"chord": "major7"}, resp.Data.Params)
}

func TestTransformUnknownTable(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"16", "quantum"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "UNKNOWN_STRATEGY")
}

func TestTransformUnknownParameter(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"16", "chromatic", "--param", "interval=eleventh"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "UNKNOWN_PARAMETER")
}

func TestTransformMalformedParam(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewTransformCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"16", "chromatic", "--param", "interval"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "want key=value")
}

func TestTransformSavesAndExports(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")

	out, err := runTransformJSON(t, "8", "octave", "--db", db, "--out-dir", dir)
	require.NoError(t, err)

	var resp struct {
		Data TransformResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, filepath.Join(dir, "phorms_N8_octave.json"), resp.Data.Export)

	_, err = os.Stat(resp.Data.Export)
	require.NoError(t, err)

	st, err := export.Open(db)
	require.NoError(t, err)
	defer st.Close()

	loaded, err := st.LoadTransformed(context.Background(), resp.Data.RunToken)
	require.NoError(t, err)
	assert.Equal(t, int64(8), loaded.N)
	assert.Equal(t, "octave", loaded.Table)
	assert.Len(t, loaded.Rows, 8)
}
