package dataset

// Row is one untransformed tuple of the base dataset: an index and the
// four dimension positions it decomposes into.
//
// Chi, Theta and Lambda are table positions. Epsilon is the subset
// bitmask of the modifier catalog, in [1, 2^k). Rows are immutable by
// contract: nothing in this module mutates a Row after construction.
type Row struct {
	Index   int64
	Chi     int
	Theta   int
	Lambda  int
	Epsilon int
}

// Base is an ordered base dataset: the first N rows of a space's
// mixed-radix enumeration, ascending by index.
type Base struct {
	N     int64
	Space Space
	Rows  []Row
}

// Len returns the number of rows.
func (b *Base) Len() int {
	return len(b.Rows)
}

// TransformedRow is a transformed tuple. It keeps the originating row
// index and carries the table name that produced it, so a consumer can
// reconstruct provenance row by row.
type TransformedRow struct {
	Index   int64
	Chi     int
	Theta   int
	Lambda  int
	Epsilon int
	Table   string
}

// Transformed is an ordered transformed dataset: one TransformedRow
// per base row, in base order, tagged with the selection that produced
// it and the run token of the engine run.
type Transformed struct {
	N        int64
	Space    Space
	Table    string
	Params   map[string]string
	RunToken string
	Rows     []TransformedRow
}

// Len returns the number of rows.
func (tr *Transformed) Len() int {
	return len(tr.Rows)
}
