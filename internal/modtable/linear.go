package modtable

import (
	"github.com/phorms/enki/internal/dataset"
)

// linearTable applies an additive offset to every dimension position,
// modulo that dimension's size. The offset is selected by the row
// index modulo four, mirroring the four-entry mod tables of the
// original Phorms catalog ("default": -1/+1/+2/+3, "increment":
// 0/+2/+4/+6). Rotations are trivially invertible, so both variants
// are reversible.
type linearTable struct {
	name    string
	offsets [4]int
}

func (t *linearTable) Name() string     { return t.name }
func (t *linearTable) Reversible() bool { return true }
func (t *linearTable) Schema() Schema   { return nil }

func (t *linearTable) Apply(sp dataset.Space, r dataset.Row, _ Params) dataset.TransformedRow {
	d := t.offsets[r.Index%4]
	return dataset.TransformedRow{
		Index:   r.Index,
		Chi:     rotate(r.Chi, d, sp.ChiSize),
		Theta:   rotate(r.Theta, d, sp.ThetaSize),
		Lambda:  rotate(r.Lambda, d, sp.LambdaSize),
		Epsilon: rotateEpsilon(r.Epsilon, d, sp.EpsilonSize()),
		Table:   t.name,
	}
}

func (t *linearTable) Invert(sp dataset.Space, tr dataset.TransformedRow, _ Params) (dataset.Row, error) {
	if err := checkPositions(sp, tr); err != nil {
		return dataset.Row{}, err
	}
	d := t.offsets[tr.Index%4]
	return dataset.Row{
		Index:   tr.Index,
		Chi:     rotate(tr.Chi, -d, sp.ChiSize),
		Theta:   rotate(tr.Theta, -d, sp.ThetaSize),
		Lambda:  rotate(tr.Lambda, -d, sp.LambdaSize),
		Epsilon: rotateEpsilon(tr.Epsilon, -d, sp.EpsilonSize()),
	}, nil
}

// customTable is the one deliberately one-way member of the catalog,
// carrying over the original "custom" formulas (double, square,
// subtract three, add five, keyed by row index modulo four). Doubling
// and squaring collapse distinct positions under a modulus, so no
// inverse exists and Invert refuses.
type customTable struct{}

func (t *customTable) Name() string     { return "custom" }
func (t *customTable) Reversible() bool { return false }
func (t *customTable) Schema() Schema   { return nil }

func (t *customTable) Apply(sp dataset.Space, r dataset.Row, _ Params) dataset.TransformedRow {
	f := customFuncs[r.Index%4]
	return dataset.TransformedRow{
		Index:   r.Index,
		Chi:     f(r.Chi, sp.ChiSize),
		Theta:   f(r.Theta, sp.ThetaSize),
		Lambda:  f(r.Lambda, sp.LambdaSize),
		Epsilon: f(r.Epsilon-1, sp.EpsilonSize()) + 1,
		Table:   "custom",
	}
}

func (t *customTable) Invert(dataset.Space, dataset.TransformedRow, Params) (dataset.Row, error) {
	return dataset.Row{}, notReversible("custom")
}

var customFuncs = [4]func(x, m int) int{
	func(x, m int) int { return (x * 2) % m },
	func(x, m int) int { return (x * x) % m },
	func(x, m int) int { return rotate(x, -3, m) },
	func(x, m int) int { return rotate(x, 5, m) },
}
