package dimension

// Duration is a note-length class in the chi dimension.
//
// The length is the exact rational Num/Den of a whole note. Dotted
// durations are the plain length times 3/2.
type Duration struct {
	Name   string
	Num    int
	Den    int
	Dotted bool
}

// chiNames are the ten plain duration classes in descending length.
var chiNames = [10]string{
	"Whole",
	"Half",
	"Quarter",
	"Eighth",
	"Sixteenth",
	"Thirty-second",
	"Sixty-fourth",
	"Hundred-twenty-eighth",
	"Two-hundred-fifty-sixth",
	"Five-hundred-twelfth",
}

// chiTable holds positions 0-9 (plain) followed by 10-19 (dotted).
// Plain position i has length 1/2^i; the dotted variant adds half the
// plain length again, so its exact value is 3/2^(i+1).
var chiTable = buildChiTable()

func buildChiTable() []Duration {
	table := make([]Duration, 0, 2*len(chiNames))
	den := 1
	for _, name := range chiNames {
		table = append(table, Duration{Name: name, Num: 1, Den: den})
		den *= 2
	}
	den = 2
	for _, name := range chiNames {
		table = append(table, Duration{Name: "Dotted " + name, Num: 3, Den: den, Dotted: true})
		den *= 2
	}
	return table
}

// ChiSize returns the number of chi positions (20).
func ChiSize() int {
	return len(chiTable)
}

// ChiAt returns the duration class at position i.
func ChiAt(i int) (Duration, error) {
	if i < 0 || i >= len(chiTable) {
		return Duration{}, newRangeError("chi", i, len(chiTable))
	}
	return chiTable[i], nil
}

// ChiIndex returns the position of the duration class with the given
// name. The inverse of ChiAt.
func ChiIndex(name string) (int, error) {
	for i, d := range chiTable {
		if d.Name == name {
			return i, nil
		}
	}
	return 0, newValueError("chi", name)
}
