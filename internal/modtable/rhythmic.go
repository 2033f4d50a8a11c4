package modtable

import (
	"github.com/phorms/enki/internal/dataset"
)

// rhythmicTable rotates the chi position. The original table halved
// and doubled durations with clamping, which loses information; the
// redesign expresses the same intents as rotations over the duration
// table, where +1 steps to the next shorter class, -1 to the next
// longer, and +10 jumps between a duration and its dotted variant
// (positions 0-9 are plain, 10-19 dotted).
type rhythmicTable struct{}

var rhythmicPulses = map[string]int{
	"none":   0,
	"double": 1,
	"half":   -1,
	"dotted": 10,
}

func (t *rhythmicTable) Name() string     { return "rhythmic" }
func (t *rhythmicTable) Reversible() bool { return true }

func (t *rhythmicTable) Schema() Schema {
	return Schema{{
		Name:        "pulse",
		Description: "duration shift applied to chi",
		Options:     []string{"none", "double", "half", "dotted"},
		Default:     "double",
	}}
}

func (t *rhythmicTable) Apply(sp dataset.Space, r dataset.Row, p Params) dataset.TransformedRow {
	d := rhythmicPulses[p["pulse"]]
	return dataset.TransformedRow{
		Index:   r.Index,
		Chi:     rotate(r.Chi, d, sp.ChiSize),
		Theta:   r.Theta,
		Lambda:  r.Lambda,
		Epsilon: r.Epsilon,
		Table:   "rhythmic",
	}
}

func (t *rhythmicTable) Invert(sp dataset.Space, tr dataset.TransformedRow, p Params) (dataset.Row, error) {
	if err := checkPositions(sp, tr); err != nil {
		return dataset.Row{}, err
	}
	d := rhythmicPulses[p["pulse"]]
	return dataset.Row{
		Index:   tr.Index,
		Chi:     rotate(tr.Chi, -d, sp.ChiSize),
		Theta:   tr.Theta,
		Lambda:  tr.Lambda,
		Epsilon: tr.Epsilon,
	}, nil
}
