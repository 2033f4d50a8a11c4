package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/phorms/enki/internal/dataset"
	"github.com/phorms/enki/internal/modtable"
)

// Engine runs the generation and transformation pipeline over one
// configured space.
type Engine struct {
	space   dataset.Space
	workers int
	tokens  TokenGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the worker pool size for row-level parallelism.
// Values below one fall back to the default.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTokenGenerator overrides the run token generator (for tests).
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) {
		if g != nil {
			e.tokens = g
		}
	}
}

// New creates an Engine over the given space. The default worker pool
// size is the machine's logical CPU count; the default token
// generator yields UUIDv7.
func New(space dataset.Space, opts ...Option) *Engine {
	e := &Engine{
		space:   space,
		workers: runtime.NumCPU(),
		tokens:  UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Space returns the engine's configured space.
func (e *Engine) Space() dataset.Space {
	return e.space
}

// Generate builds the base dataset for n. Fails with INVALID_N for
// negative n and DOMAIN_OVERFLOW when n exceeds the space capacity.
func (e *Engine) Generate(n int64) (*dataset.Base, error) {
	return dataset.Build(e.space, n)
}

// Apply runs one selection over a base dataset and returns a new
// transformed dataset preserving row order and index.
//
// The table is resolved first (UNKNOWN_STRATEGY) and the parameters
// are validated and completed against its schema (UNKNOWN_PARAMETER)
// before any row is touched, so a bad selection fails with no work
// done and the base dataset untouched.
func (e *Engine) Apply(ctx context.Context, base *dataset.Base, sel modtable.Selection) (*dataset.Transformed, error) {
	tbl, err := modtable.Lookup(sel.Table)
	if err != nil {
		return nil, err
	}
	params, err := tbl.Schema().Resolve(sel.Table, sel.Params)
	if err != nil {
		return nil, err
	}

	rows := make([]dataset.TransformedRow, base.Len())
	if err := e.mapRows(ctx, base, func(r dataset.Row) {
		rows[r.Index] = tbl.Apply(base.Space, r, params)
	}); err != nil {
		return nil, err
	}

	return &dataset.Transformed{
		N:        base.N,
		Space:    base.Space,
		Table:    sel.Table,
		Params:   params,
		RunToken: e.tokens.Generate(),
		Rows:     rows,
	}, nil
}

// ApplyBatch runs each selection in order, producing one transformed
// dataset per selection, one-to-one with the input.
//
// The batch fails fast: on the first failing selection it returns the
// datasets completed so far together with a BatchError naming the
// failure. The context is checked before each selection, so a
// cancelled batch stops between selections rather than mid-dataset.
func (e *Engine) ApplyBatch(ctx context.Context, base *dataset.Base, sels []modtable.Selection) ([]*dataset.Transformed, error) {
	out := make([]*dataset.Transformed, 0, len(sels))
	for i, sel := range sels {
		if err := ctx.Err(); err != nil {
			return out, &BatchError{Index: i, Table: sel.Table, Err: err}
		}
		tr, err := e.Apply(ctx, base, sel)
		if err != nil {
			return out, &BatchError{Index: i, Table: sel.Table, Err: err}
		}
		out = append(out, tr)
	}
	return out, nil
}

// Invert reconstructs the base dataset a transformed dataset came
// from. Fails with NOT_REVERSIBLE when the originating table declares
// no inverse, and with OUT_OF_DOMAIN when a transformed row's
// positions or index do not belong to the space.
func (e *Engine) Invert(tr *dataset.Transformed) (*dataset.Base, error) {
	tbl, err := modtable.Lookup(tr.Table)
	if err != nil {
		return nil, err
	}
	if !tbl.Reversible() {
		return nil, &modtable.SelectionError{
			Code:    modtable.ErrCodeNotReversible,
			Table:   tr.Table,
			Message: "table " + tr.Table + " does not declare an inverse",
		}
	}
	params, err := tbl.Schema().Resolve(tr.Table, tr.Params)
	if err != nil {
		return nil, err
	}

	rows := make([]dataset.Row, len(tr.Rows))
	for i, trow := range tr.Rows {
		r, err := tbl.Invert(tr.Space, trow, params)
		if err != nil {
			return nil, err
		}
		// Base rows carry their enumeration index; a recovered row
		// whose positions do not re-compose to it is corrupt.
		composed, err := tr.Space.Compose(r)
		if err != nil {
			return nil, err
		}
		if composed != r.Index || r.Index != int64(i) {
			return nil, &dataset.BuildError{
				Code:    dataset.ErrCodeOutOfDomain,
				Message: fmt.Sprintf("recovered row %d does not re-compose to its index", i),
			}
		}
		rows[i] = r
	}
	return &dataset.Base{N: tr.N, Space: tr.Space, Rows: rows}, nil
}

// mapRows applies fn to every row over the worker pool. Results must
// be written by row index; fn runs concurrently.
func (e *Engine) mapRows(ctx context.Context, base *dataset.Base, fn func(dataset.Row)) error {
	n := base.Len()
	if n == 0 {
		return ctx.Err()
	}
	workers := e.workers
	if workers > n {
		workers = n
	}

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w
		g.Go(func() error {
			for i, count := start, 0; i < n; i, count = i+workers, count+1 {
				// A transform is a handful of integer ops; checking
				// the context every 1024 rows keeps cancellation
				// latency bounded without per-row select overhead.
				if count%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				fn(base.Rows[i])
			}
			return nil
		})
	}
	return g.Wait()
}
