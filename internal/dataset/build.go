package dataset

// Build constructs the base dataset for n over the given space.
//
// The composition rule: rowCount(n) = n, and row i is the mixed-radix
// decomposition of i over the dimension sizes. The enumeration is
// bijective up to the space capacity, so n beyond capacity fails with
// DOMAIN_OVERFLOW rather than truncating or wrapping. n = 0 yields an
// empty dataset.
func Build(space Space, n int64) (*Base, error) {
	if err := space.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, newBuildError(ErrCodeInvalidN, "n must be non-negative, got %d", n)
	}
	if n > space.Capacity() {
		return nil, newBuildError(ErrCodeDomainOverflow, "n %d exceeds space capacity %d", n, space.Capacity())
	}

	rows := make([]Row, n)
	for i := int64(0); i < n; i++ {
		r, err := space.Decompose(i)
		if err != nil {
			// Unreachable after the capacity check; surfaced rather
			// than swallowed to keep Build all-or-nothing.
			return nil, err
		}
		rows[i] = r
	}
	return &Base{N: n, Space: space, Rows: rows}, nil
}
