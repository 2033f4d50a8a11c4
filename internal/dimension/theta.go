package dimension

// Note is a position in the 35-slot enharmonic chromatic space.
//
// Unlike a 12-tone pitch class, the theta space keeps enharmonic
// spellings distinct: A♯ and B♭ are different positions. Each letter
// A-G contributes five spellings (double flat through double sharp).
type Note struct {
	// Name is the long form, e.g. "A Double Flat".
	Name string

	// Step is the glyph form, e.g. "A♭♭".
	Step string

	// Letter is the natural letter A-G.
	Letter string

	// Enharmonic is the glyph of the conventional enharmonic
	// equivalent, e.g. "G♮" for "A♭♭".
	Enharmonic string

	// Alter is the chromatic alteration: -2, -1, 0, +1, or +2.
	Alter int
}

var alterNames = [5]string{"Double Flat", "Flat", "Natural", "Sharp", "Double Sharp"}

var alterGlyphs = [5]string{"♭♭", "♭", "♮", "♯", "♯♯"}

// enharmonics maps each step glyph to its conventional equivalent.
var enharmonics = map[string]string{
	"A♭♭": "G♮", "A♭": "G♯", "A♮": "A♮", "A♯": "B♭", "A♯♯": "B♮",
	"B♭♭": "A♮", "B♭": "A♯", "B♮": "B♮", "B♯": "C♮", "B♯♯": "C♯",
	"C♭♭": "B♭", "C♭": "B♮", "C♮": "C♮", "C♯": "D♭", "C♯♯": "D♮",
	"D♭♭": "C♮", "D♭": "C♯", "D♮": "D♮", "D♯": "E♭", "D♯♯": "E♮",
	"E♭♭": "D♮", "E♭": "D♯", "E♮": "E♮", "E♯": "F♮", "E♯♯": "F♯",
	"F♭♭": "E♭", "F♭": "E♮", "F♮": "F♮", "F♯": "G♭", "F♯♯": "G♮",
	"G♭♭": "F♮", "G♭": "F♯", "G♮": "G♮", "G♯": "A♭", "G♯♯": "A♮",
}

// thetaTable lists the 35 positions: letters A-G in order, each with
// alterations from double flat to double sharp.
var thetaTable = buildThetaTable()

func buildThetaTable() []Note {
	table := make([]Note, 0, 35)
	for letter := byte('A'); letter <= 'G'; letter++ {
		for a := 0; a < 5; a++ {
			step := string(letter) + alterGlyphs[a]
			table = append(table, Note{
				Name:       string(letter) + " " + alterNames[a],
				Step:       step,
				Letter:     string(letter),
				Enharmonic: enharmonics[step],
				Alter:      a - 2,
			})
		}
	}
	return table
}

// ThetaSize returns the number of theta positions (35).
func ThetaSize() int {
	return len(thetaTable)
}

// ThetaAt returns the note spelling at position i.
func ThetaAt(i int) (Note, error) {
	if i < 0 || i >= len(thetaTable) {
		return Note{}, newRangeError("theta", i, len(thetaTable))
	}
	return thetaTable[i], nil
}

// ThetaIndex returns the position of the note with the given step
// glyph. The inverse of ThetaAt.
func ThetaIndex(step string) (int, error) {
	for i, n := range thetaTable {
		if n.Step == step {
			return i, nil
		}
	}
	return 0, newValueError("theta", step)
}
