package modtable

import (
	"github.com/phorms/enki/internal/dataset"
)

// modalTable permutes the theta space with a mode-specific affine map
// theta' = (a*theta + b) mod 35. The original modal table projected
// positions through seven-note scale lookups, which is many-to-one;
// the redesign keeps the modal flavor as a full permutation instead.
// Every multiplier is coprime to 35, so each map is a bijection with
// inverse theta = a^-1 * (theta' - b) mod 35.
type modalTable struct{}

type affine struct {
	a, b int
	inv  int // modular inverse of a mod 35
}

var modalModes = map[string]affine{
	"ionian":   {a: 2, b: 0, inv: 18},
	"dorian":   {a: 3, b: 2, inv: 12},
	"phrygian": {a: 4, b: 1, inv: 9},
	"lydian":   {a: 6, b: 3, inv: 6},
	"aeolian":  {a: 8, b: 5, inv: 22},
}

func (t *modalTable) Name() string     { return "modal" }
func (t *modalTable) Reversible() bool { return true }

func (t *modalTable) Schema() Schema {
	return Schema{{
		Name:        "mode",
		Description: "mode selecting the theta permutation",
		Options:     []string{"ionian", "dorian", "phrygian", "lydian", "aeolian"},
		Default:     "ionian",
	}}
}

func (t *modalTable) Apply(sp dataset.Space, r dataset.Row, p Params) dataset.TransformedRow {
	m := modalModes[p["mode"]]
	return dataset.TransformedRow{
		Index:   r.Index,
		Chi:     r.Chi,
		Theta:   (m.a*r.Theta + m.b) % sp.ThetaSize,
		Lambda:  r.Lambda,
		Epsilon: r.Epsilon,
		Table:   "modal",
	}
}

func (t *modalTable) Invert(sp dataset.Space, tr dataset.TransformedRow, p Params) (dataset.Row, error) {
	if err := checkPositions(sp, tr); err != nil {
		return dataset.Row{}, err
	}
	m := modalModes[p["mode"]]
	return dataset.Row{
		Index:   tr.Index,
		Chi:     tr.Chi,
		Theta:   rotate(m.inv*rotate(tr.Theta, -m.b, sp.ThetaSize), 0, sp.ThetaSize),
		Lambda:  tr.Lambda,
		Epsilon: tr.Epsilon,
	}, nil
}
