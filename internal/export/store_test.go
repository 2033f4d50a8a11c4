package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phorms/enki/internal/dataset"
)

func testSpace() dataset.Space {
	return dataset.Space{ChiSize: 4, ThetaSize: 35, LambdaSize: 8, EpsilonCatalog: 3}
}

func testTransformed() *dataset.Transformed {
	return &dataset.Transformed{
		N:        2,
		Space:    testSpace(),
		Table:    "chromatic",
		Params:   map[string]string{"interval": "fifth"},
		RunToken: "run-0001",
		Rows: []dataset.TransformedRow{
			{Index: 0, Chi: 1, Theta: 0, Lambda: 0, Epsilon: 1, Table: "chromatic"},
			{Index: 1, Chi: 2, Theta: 34, Lambda: 7, Epsilon: 5, Table: "chromatic"},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "enki.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enki.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	saved := testTransformed()
	require.NoError(t, s.SaveTransformed(ctx, saved))

	loaded, err := s.LoadTransformed(ctx, "run-0001")
	require.NoError(t, err)

	assert.Equal(t, saved.N, loaded.N)
	assert.Equal(t, saved.Space, loaded.Space)
	assert.Equal(t, saved.Table, loaded.Table)
	assert.Equal(t, saved.Params, loaded.Params)
	assert.Equal(t, saved.RunToken, loaded.RunToken)
	assert.Equal(t, saved.Rows, loaded.Rows)

	savedFP, err := dataset.Fingerprint(saved.CanonicalMap())
	require.NoError(t, err)
	loadedFP, err := dataset.Fingerprint(loaded.CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, savedFP, loadedFP)

	storedFP, err := s.Fingerprint(ctx, "run-0001")
	require.NoError(t, err)
	assert.Equal(t, savedFP, storedFP)
}

func TestSaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	tr := testTransformed()
	require.NoError(t, s.SaveTransformed(ctx, tr))
	require.NoError(t, s.SaveTransformed(ctx, tr))

	infos, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)

	loaded, err := s.LoadTransformed(ctx, tr.RunToken)
	require.NoError(t, err)
	assert.Len(t, loaded.Rows, 2)
}

func TestLoadUnknownRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.LoadTransformed(ctx, "run-9999")
	require.ErrorIs(t, err, ErrRunNotFound)

	_, err = s.Fingerprint(ctx, "run-9999")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	infos, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	first := testTransformed()
	require.NoError(t, s.SaveTransformed(ctx, first))

	second := testTransformed()
	second.RunToken = "run-0002"
	second.Table = "modal"
	for i := range second.Rows {
		second.Rows[i].Table = "modal"
	}
	require.NoError(t, s.SaveTransformed(ctx, second))

	infos, err = s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)

	tokens := []string{infos[0].RunToken, infos[1].RunToken}
	assert.ElementsMatch(t, []string{"run-0001", "run-0002"}, tokens)
	for _, info := range infos {
		assert.Equal(t, int64(2), info.N)
		assert.NotEmpty(t, info.Fingerprint)
		assert.NotEmpty(t, info.CreatedAt)
	}
}
