package runspec

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phorms/enki/internal/modtable"
)

func compileRunString(t *testing.T, src string) (*RunSpec, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileRun(v.LookupPath(cue.ParsePath("run")))
}

func TestCompileRun(t *testing.T) {
	spec, err := compileRunString(t, `run: {
		n: 6
		select: [
			{table: "harmonic", params: {chord: "major7"}},
			{table: "modal"},
			"octave",
		]
	}`)
	require.NoError(t, err)

	assert.Equal(t, int64(6), spec.N)
	require.Len(t, spec.Selections, 3)
	assert.Equal(t, "harmonic", spec.Selections[0].Table)
	assert.Equal(t, modtable.Params{"chord": "major7"}, spec.Selections[0].Params)
	assert.Equal(t, "modal", spec.Selections[1].Table)
	assert.Nil(t, spec.Selections[1].Params)
	assert.Equal(t, "octave", spec.Selections[2].Table)
}

func TestCompileRunExpandsGroups(t *testing.T) {
	spec, err := compileRunString(t, `run: {
		n: 3
		select: ["music"]
	}`)
	require.NoError(t, err)

	music, ok := modtable.Group("music")
	require.True(t, ok)
	require.Len(t, spec.Selections, len(music))
	for i, name := range music {
		assert.Equal(t, name, spec.Selections[i].Table)
		assert.Nil(t, spec.Selections[i].Params)
	}
}

func TestCompileRunMissingN(t *testing.T) {
	_, err := compileRunString(t, `run: { select: ["default"] }`)
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "n", loadErr.Field)
}

func TestCompileRunMissingRun(t *testing.T) {
	_, err := compileRunString(t, `other: 1`)
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "run", loadErr.Field)
}

func TestNormalizeRejectsNegativeN(t *testing.T) {
	_, err := compileRunString(t, `run: { n: -1, select: ["default"] }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestNormalizeRejectsEmptySelect(t *testing.T) {
	_, err := compileRunString(t, `run: { n: 4 }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one selection")
}

func TestNormalizeRejectsUnknownTable(t *testing.T) {
	_, err := compileRunString(t, `run: { n: 4, select: ["quantum"] }`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantum")
}

func TestNormalizeRejectsBadParams(t *testing.T) {
	_, err := compileRunString(t, `run: {
		n: 4
		select: [{table: "chromatic", params: {interval: "eleventh"}}]
	}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interval")
}

func TestNormalizeRejectsGroupParams(t *testing.T) {
	_, err := compileRunString(t, `run: {
		n: 4
		select: [{table: "music", params: {chord: "major7"}}]
	}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot carry params")
}

func TestParseYAML(t *testing.T) {
	spec, err := ParseYAML([]byte(`
n: 12
select:
  - table: chromatic
    params:
      interval: fifth
  - rhythmic
  - music
`))
	require.NoError(t, err)

	music, ok := modtable.Group("music")
	require.True(t, ok)

	assert.Equal(t, int64(12), spec.N)
	require.Len(t, spec.Selections, 2+len(music))
	assert.Equal(t, "chromatic", spec.Selections[0].Table)
	assert.Equal(t, modtable.Params{"interval": "fifth"}, spec.Selections[0].Params)
	assert.Equal(t, "rhythmic", spec.Selections[1].Table)
}

func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	_, err := ParseYAML([]byte("n: 2\nrows: 5\nselect: [default]\n"))
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "yaml", loadErr.Field)
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	cuePath := filepath.Join(dir, "run.cue")
	require.NoError(t, os.WriteFile(cuePath, []byte(`run: { n: 2, select: ["default"] }`), 0o644))

	yamlPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("n: 2\nselect: [default]\n"), 0o644))

	for _, path := range []string{cuePath, yamlPath} {
		spec, err := Load(path)
		require.NoError(t, err, path)
		assert.Equal(t, int64(2), spec.N)
		require.Len(t, spec.Selections, 1)
		assert.Equal(t, "default", spec.Selections[0].Table)
	}

	_, err := Load(filepath.Join(dir, "run.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported run spec extension")
}
