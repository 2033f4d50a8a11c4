package modtable

import (
	"github.com/phorms/enki/internal/dataset"
)

// chromaticTable rotates the theta position by a fixed interval. The
// original table worked in 12-tone space ((x+7) mod 12 and friends);
// here the interval is mapped onto the 35-position enharmonic space as
// round(35 * semitones / 12), keeping the transform a pure rotation
// and therefore exactly invertible.
type chromaticTable struct{}

// chromaticIntervals maps option names to 35-space offsets:
// unison 0, minor third 3 semitones -> 9, major third 4 -> 12,
// perfect fifth 7 -> 20.
var chromaticIntervals = map[string]int{
	"unison":      0,
	"minor_third": 9,
	"major_third": 12,
	"fifth":       20,
}

func (t *chromaticTable) Name() string     { return "chromatic" }
func (t *chromaticTable) Reversible() bool { return true }

func (t *chromaticTable) Schema() Schema {
	return Schema{{
		Name:        "interval",
		Description: "chromatic interval to transpose theta by",
		Options:     []string{"unison", "minor_third", "major_third", "fifth"},
		Default:     "fifth",
	}}
}

func (t *chromaticTable) Apply(sp dataset.Space, r dataset.Row, p Params) dataset.TransformedRow {
	d := chromaticIntervals[p["interval"]]
	return dataset.TransformedRow{
		Index:   r.Index,
		Chi:     r.Chi,
		Theta:   rotate(r.Theta, d, sp.ThetaSize),
		Lambda:  r.Lambda,
		Epsilon: r.Epsilon,
		Table:   "chromatic",
	}
}

func (t *chromaticTable) Invert(sp dataset.Space, tr dataset.TransformedRow, p Params) (dataset.Row, error) {
	if err := checkPositions(sp, tr); err != nil {
		return dataset.Row{}, err
	}
	d := chromaticIntervals[p["interval"]]
	return dataset.Row{
		Index:   tr.Index,
		Chi:     tr.Chi,
		Theta:   rotate(tr.Theta, -d, sp.ThetaSize),
		Lambda:  tr.Lambda,
		Epsilon: tr.Epsilon,
	}, nil
}
