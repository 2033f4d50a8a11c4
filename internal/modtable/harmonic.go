package modtable

import (
	"github.com/phorms/enki/internal/dataset"
)

// harmonicTable voices rows as chord tones: each row's theta is
// transposed by the chord-tone offset selected by its index modulo
// four (root, third, fifth, seventh). Offsets are 35-space images of
// the chord's semitone stack, so consecutive rows spell out the chord
// the way the original harmonic table stacked root/third/fifth/seventh
// in 12-tone space. The tone choice depends only on the row index,
// which survives transformation, so the table inverts exactly.
type harmonicTable struct{}

var harmonicChords = map[string][4]int{
	// root, major third, perfect fifth, major seventh (11 -> 32)
	"major7": {0, 12, 20, 32},
	// root, major third, perfect fifth, minor seventh (10 -> 29)
	"dominant7": {0, 12, 20, 29},
	// root, minor third, perfect fifth, minor seventh
	"minor7": {0, 9, 20, 29},
}

func (t *harmonicTable) Name() string     { return "harmonic" }
func (t *harmonicTable) Reversible() bool { return true }

func (t *harmonicTable) Schema() Schema {
	return Schema{{
		Name:        "chord",
		Description: "chord quality whose tones voice consecutive rows",
		Options:     []string{"major7", "dominant7", "minor7"},
		Default:     "dominant7",
	}}
}

func (t *harmonicTable) Apply(sp dataset.Space, r dataset.Row, p Params) dataset.TransformedRow {
	tones := harmonicChords[p["chord"]]
	d := tones[r.Index%4]
	return dataset.TransformedRow{
		Index:   r.Index,
		Chi:     r.Chi,
		Theta:   rotate(r.Theta, d, sp.ThetaSize),
		Lambda:  r.Lambda,
		Epsilon: r.Epsilon,
		Table:   "harmonic",
	}
}

func (t *harmonicTable) Invert(sp dataset.Space, tr dataset.TransformedRow, p Params) (dataset.Row, error) {
	if err := checkPositions(sp, tr); err != nil {
		return dataset.Row{}, err
	}
	tones := harmonicChords[p["chord"]]
	d := tones[tr.Index%4]
	return dataset.Row{
		Index:   tr.Index,
		Chi:     tr.Chi,
		Theta:   rotate(tr.Theta, -d, sp.ThetaSize),
		Lambda:  tr.Lambda,
		Epsilon: tr.Epsilon,
	}, nil
}
