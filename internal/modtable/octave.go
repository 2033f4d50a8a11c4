package modtable

import (
	"github.com/phorms/enki/internal/dataset"
)

// octaveTable moves rows between registers. The original table clamped
// at the outer octaves (min/max), losing which register a clamped row
// came from; the redesign transposes modulo the 8 registers and keeps
// the register inversion (high becomes low), which is its own inverse.
type octaveTable struct{}

func (t *octaveTable) Name() string     { return "octave" }
func (t *octaveTable) Reversible() bool { return true }

func (t *octaveTable) Schema() Schema {
	return Schema{{
		Name:        "direction",
		Description: "register move applied to lambda",
		Options:     []string{"none", "up", "down", "invert"},
		Default:     "up",
	}}
}

func (t *octaveTable) Apply(sp dataset.Space, r dataset.Row, p Params) dataset.TransformedRow {
	return dataset.TransformedRow{
		Index:   r.Index,
		Chi:     r.Chi,
		Theta:   r.Theta,
		Lambda:  t.move(sp, r.Lambda, p["direction"], false),
		Epsilon: r.Epsilon,
		Table:   "octave",
	}
}

func (t *octaveTable) Invert(sp dataset.Space, tr dataset.TransformedRow, p Params) (dataset.Row, error) {
	if err := checkPositions(sp, tr); err != nil {
		return dataset.Row{}, err
	}
	return dataset.Row{
		Index:   tr.Index,
		Chi:     tr.Chi,
		Theta:   tr.Theta,
		Lambda:  t.move(sp, tr.Lambda, p["direction"], true),
		Epsilon: tr.Epsilon,
	}, nil
}

func (t *octaveTable) move(sp dataset.Space, lambda int, direction string, inverse bool) int {
	switch direction {
	case "up":
		if inverse {
			return rotate(lambda, -1, sp.LambdaSize)
		}
		return rotate(lambda, 1, sp.LambdaSize)
	case "down":
		if inverse {
			return rotate(lambda, 1, sp.LambdaSize)
		}
		return rotate(lambda, -1, sp.LambdaSize)
	case "invert":
		// An involution: applying it twice restores the register.
		return sp.LambdaSize - 1 - lambda
	default: // "none"
		return lambda
	}
}
