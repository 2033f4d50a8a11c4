package dimension

// Octave is a register in the lambda dimension.
type Octave struct {
	Name   string
	Number int // 1-8
}

var lambdaTable = []Octave{
	{Name: "First Octave", Number: 1},
	{Name: "Second Octave", Number: 2},
	{Name: "Third Octave", Number: 3},
	{Name: "Fourth Octave", Number: 4},
	{Name: "Fifth Octave", Number: 5},
	{Name: "Sixth Octave", Number: 6},
	{Name: "Seventh Octave", Number: 7},
	{Name: "Eighth Octave", Number: 8},
}

// LambdaSize returns the number of octave positions (8).
func LambdaSize() int {
	return len(lambdaTable)
}

// LambdaAt returns the octave at position i.
func LambdaAt(i int) (Octave, error) {
	if i < 0 || i >= len(lambdaTable) {
		return Octave{}, newRangeError("lambda", i, len(lambdaTable))
	}
	return lambdaTable[i], nil
}

// LambdaIndex returns the position of the octave with the given
// number. The inverse of LambdaAt.
func LambdaIndex(number int) (int, error) {
	if number < 1 || number > len(lambdaTable) {
		return 0, newValueError("lambda", number)
	}
	return number - 1, nil
}
