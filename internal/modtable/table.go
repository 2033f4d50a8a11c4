package modtable

import (
	"github.com/phorms/enki/internal/dataset"
)

// Table is one mod table: a named, pure transformation over rows.
//
// Apply must be total over any row a valid space enumerates, and must
// be called with params already resolved against the table's schema.
// Reversible tables honor Invert(Apply(r)) == r over the whole space;
// one-way tables return NOT_REVERSIBLE from Invert.
type Table interface {
	Name() string
	Reversible() bool
	Schema() Schema

	Apply(sp dataset.Space, r dataset.Row, p Params) dataset.TransformedRow
	Invert(sp dataset.Space, tr dataset.TransformedRow, p Params) (dataset.Row, error)
}

// rotate shifts a position by d within a domain of size m, wrapping in
// both directions.
func rotate(x, d, m int) int {
	return ((x+d)%m + m) % m
}

// rotateEpsilon rotates an epsilon subset mask. Mask values occupy the
// contiguous range [1, size], so rotation happens on the 0-based
// ordinal and shifts back.
func rotateEpsilon(mask, d, size int) int {
	return rotate(mask-1, d, size) + 1
}

// checkPositions validates a transformed row's positions against the
// space before inversion arithmetic. Malformed positions surface as
// OUT_OF_DOMAIN build errors.
func checkPositions(sp dataset.Space, tr dataset.TransformedRow) error {
	_, err := sp.Compose(dataset.Row{
		Index:   tr.Index,
		Chi:     tr.Chi,
		Theta:   tr.Theta,
		Lambda:  tr.Lambda,
		Epsilon: tr.Epsilon,
	})
	return err
}

// notReversible builds the NOT_REVERSIBLE error for a table.
func notReversible(table string) error {
	return &SelectionError{
		Code:    ErrCodeNotReversible,
		Table:   table,
		Message: "table " + table + " does not declare an inverse",
	}
}
