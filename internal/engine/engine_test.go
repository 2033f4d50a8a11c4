package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phorms/enki/internal/dataset"
	"github.com/phorms/enki/internal/modtable"
)

func testSpace() dataset.Space {
	return dataset.Space{ChiSize: 4, ThetaSize: 35, LambdaSize: 8, EpsilonCatalog: 3}
}

func newTestEngine(opts ...Option) *Engine {
	base := []Option{WithTokenGenerator(NewFixedGenerator("run-a", "run-b", "run-c"))}
	return New(testSpace(), append(base, opts...)...)
}

func TestGenerate_Boundaries(t *testing.T) {
	e := newTestEngine()

	empty, err := e.Generate(0)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	_, err = e.Generate(-1)
	require.Error(t, err)
	assert.True(t, dataset.IsInvalidN(err))

	_, err = e.Generate(testSpace().Capacity() + 1)
	require.Error(t, err)
	assert.True(t, dataset.IsDomainOverflow(err))
}

func TestGenerate_Deterministic(t *testing.T) {
	e := newTestEngine()
	a, err := e.Generate(1000)
	require.NoError(t, err)
	b, err := e.Generate(1000)
	require.NoError(t, err)

	fpA, err := dataset.Fingerprint(a.CanonicalMap())
	require.NoError(t, err)
	fpB, err := dataset.Fingerprint(b.CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, fpA, fpB)
}

func TestApply_PreservesOrderAndIndex(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(777)
	require.NoError(t, err)

	tr, err := e.Apply(context.Background(), base, modtable.Selection{Table: "harmonic"})
	require.NoError(t, err)
	require.Equal(t, base.Len(), tr.Len())
	assert.Equal(t, "harmonic", tr.Table)
	assert.Equal(t, "dominant7", tr.Params["chord"], "defaults resolved onto the dataset tag")
	assert.Equal(t, "run-a", tr.RunToken)

	for i, row := range tr.Rows {
		assert.Equal(t, int64(i), row.Index)
		assert.Equal(t, "harmonic", row.Table)
	}
}

func TestApply_WorkerCountDoesNotChangeContent(t *testing.T) {
	base, err := newTestEngine().Generate(1234)
	require.NoError(t, err)

	serial := newTestEngine(WithWorkers(1))
	parallel := newTestEngine(WithWorkers(8))

	sel := modtable.Selection{Table: "modal", Params: modtable.Params{"mode": "lydian"}}
	a, err := serial.Apply(context.Background(), base, sel)
	require.NoError(t, err)
	b, err := parallel.Apply(context.Background(), base, sel)
	require.NoError(t, err)

	assert.Equal(t, a.Rows, b.Rows)
}

func TestApply_UnknownTable(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(10)
	require.NoError(t, err)

	before, err := dataset.Fingerprint(base.CanonicalMap())
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), base, modtable.Selection{Table: "nonexistent"})
	require.Error(t, err)
	assert.True(t, modtable.IsUnknownTable(err))

	// The base dataset is untouched by the failed call.
	after, err := dataset.Fingerprint(base.CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApply_UnknownParameterFailsBeforeRows(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(10)
	require.NoError(t, err)

	_, err = e.Apply(context.Background(), base, modtable.Selection{
		Table:  "chromatic",
		Params: modtable.Params{"interval": "ninth"},
	})
	require.Error(t, err)
	assert.True(t, modtable.IsUnknownParameter(err))

	_, err = e.Apply(context.Background(), base, modtable.Selection{
		Table:  "chromatic",
		Params: modtable.Params{"velocity": "fast"},
	})
	require.Error(t, err)
	assert.True(t, modtable.IsUnknownParameter(err))
}

func TestApplyBatch_OneToOne(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(200)
	require.NoError(t, err)

	sels := []modtable.Selection{
		{Table: "default"},
		{Table: "octave", Params: modtable.Params{"direction": "invert"}},
		{Table: "custom"},
	}
	out, err := e.ApplyBatch(context.Background(), base, sels)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "default", out[0].Table)
	assert.Equal(t, "octave", out[1].Table)
	assert.Equal(t, "custom", out[2].Table)
}

func TestApplyBatch_SelectionsIndependent(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(300)
	require.NoError(t, err)

	sel := modtable.Selection{Table: "chromatic", Params: modtable.Params{"interval": "fifth"}}

	alone, err := e.Apply(context.Background(), base, sel)
	require.NoError(t, err)

	batched, err := e.ApplyBatch(context.Background(), base, []modtable.Selection{
		{Table: "rhythmic"},
		sel,
		{Table: "modal"},
	})
	require.NoError(t, err)

	// Same content whether computed alone or surrounded by others.
	fpAlone, err := dataset.Fingerprint(alone.CanonicalMap())
	require.NoError(t, err)
	fpBatched, err := dataset.Fingerprint(batched[1].CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, fpAlone, fpBatched)
}

func TestApplyBatch_FailFast(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(50)
	require.NoError(t, err)

	out, err := e.ApplyBatch(context.Background(), base, []modtable.Selection{
		{Table: "default"},
		{Table: "nonexistent"},
		{Table: "octave"},
	})
	require.Error(t, err)

	be, ok := AsBatchError(err)
	require.True(t, ok)
	assert.Equal(t, 1, be.Index)
	assert.Equal(t, "nonexistent", be.Table)
	assert.True(t, modtable.IsUnknownTable(be.Err))

	// Completed work before the failure is surfaced, not dropped.
	require.Len(t, out, 1)
	assert.Equal(t, "default", out[0].Table)
}

func TestApplyBatch_Cancellation(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(50)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := e.ApplyBatch(ctx, base, []modtable.Selection{{Table: "default"}})
	require.Error(t, err)
	assert.Empty(t, out)

	be, ok := AsBatchError(err)
	require.True(t, ok)
	assert.ErrorIs(t, be.Err, context.Canceled)
}

func TestInvert_RoundTripAllReversibleTables(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(500)
	require.NoError(t, err)

	for _, info := range modtable.List() {
		if !info.Reversible {
			continue
		}
		tr, err := e.Apply(context.Background(), base, modtable.Selection{Table: info.Name})
		require.NoError(t, err, info.Name)

		back, err := e.Invert(tr)
		require.NoError(t, err, info.Name)
		assert.Equal(t, base.Rows, back.Rows, "table %s", info.Name)
		assert.Equal(t, base.N, back.N)
	}
}

func TestInvert_NotReversible(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(20)
	require.NoError(t, err)

	tr, err := e.Apply(context.Background(), base, modtable.Selection{Table: "custom"})
	require.NoError(t, err)

	_, err = e.Invert(tr)
	require.Error(t, err)
	assert.True(t, modtable.IsNotReversible(err))
}

func TestInvert_CorruptRow(t *testing.T) {
	e := newTestEngine()
	base, err := e.Generate(20)
	require.NoError(t, err)

	tr, err := e.Apply(context.Background(), base, modtable.Selection{Table: "default"})
	require.NoError(t, err)

	// Tamper with one row's positions.
	corrupt := *tr
	corrupt.Rows = append([]dataset.TransformedRow(nil), tr.Rows...)
	corrupt.Rows[7].Theta = 99

	_, err = e.Invert(&corrupt)
	require.Error(t, err)
	assert.True(t, dataset.IsOutOfDomain(err))
}

func TestInvert_ScenarioSingleRow(t *testing.T) {
	// N = 1 over the scenario space: transform with default, invert,
	// and recover the exact original row.
	e := newTestEngine()
	base, err := e.Generate(1)
	require.NoError(t, err)
	require.Equal(t, 1, base.Len())

	tr, err := e.Apply(context.Background(), base, modtable.Selection{Table: "default"})
	require.NoError(t, err)

	back, err := e.Invert(tr)
	require.NoError(t, err)
	assert.Equal(t, base.Rows[0], back.Rows[0])
}

func TestRunTokens_DistinctPerApply(t *testing.T) {
	e := New(testSpace())
	base, err := e.Generate(5)
	require.NoError(t, err)

	a, err := e.Apply(context.Background(), base, modtable.Selection{Table: "default"})
	require.NoError(t, err)
	b, err := e.Apply(context.Background(), base, modtable.Selection{Table: "default"})
	require.NoError(t, err)

	assert.NotEqual(t, a.RunToken, b.RunToken)

	// Content is identical even though the tokens differ.
	fpA, err := dataset.Fingerprint(a.CanonicalMap())
	require.NoError(t, err)
	fpB, err := dataset.Fingerprint(b.CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, fpA, fpB)
}
