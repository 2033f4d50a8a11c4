package dimension

import (
	"fmt"
	"math/bits"
)

// Modifier is one entry of the epsilon modifier catalog.
//
// Epsilon differs from the other dimensions: a single epsilon value is
// a non-empty SET of modifiers, since several may apply to one note at
// once (a staccato accented note, a trilled fermata). The dimension
// domain is therefore the 2^k-1 non-empty subsets of a k-entry catalog
// prefix, identified by bitmask: bit i set means catalog entry i is in
// the set. Masks run over [1, 2^k).
type Modifier struct {
	Name string
}

// epsilonCatalog lists the articulations followed by the ornaments.
// A configured catalog size k selects the first k entries.
var epsilonCatalog = []Modifier{
	{Name: "Staccato"},
	{Name: "Staccatissimo"},
	{Name: "Legato"},
	{Name: "Marcato"},
	{Name: "Tenuto"},
	{Name: "Fermata"},
	{Name: "Accent"},
	{Name: "Tremolo"},
	{Name: "Trill"},
	{Name: "Upper Mordent"},
	{Name: "Lower Mordent"},
	{Name: "Turn"},
	{Name: "Appoggiatura"},
	{Name: "Acciaccatura"},
}

// EpsilonCatalogMax returns the full catalog length (14).
func EpsilonCatalogMax() int {
	return len(epsilonCatalog)
}

// ModifierAt returns the catalog entry at position i.
func ModifierAt(i int) (Modifier, error) {
	if i < 0 || i >= len(epsilonCatalog) {
		return Modifier{}, newRangeError("epsilon", i, len(epsilonCatalog))
	}
	return epsilonCatalog[i], nil
}

// EpsilonSet decodes a subset mask into its modifiers, in catalog
// order. The mask must be non-empty and confined to the first catalog
// bits.
func EpsilonSet(mask, catalog int) ([]Modifier, error) {
	if catalog < 1 || catalog > len(epsilonCatalog) {
		return nil, &DomainError{
			Dimension: "epsilon",
			Message:   fmt.Sprintf("catalog size %d outside [1, %d]", catalog, len(epsilonCatalog)),
		}
	}
	if mask < 1 || mask >= 1<<catalog {
		return nil, &DomainError{
			Dimension: "epsilon",
			Message:   fmt.Sprintf("mask %d outside [1, %d)", mask, 1<<catalog),
		}
	}
	set := make([]Modifier, 0, bits.OnesCount(uint(mask)))
	for i := 0; i < catalog; i++ {
		if mask&(1<<i) != 0 {
			set = append(set, epsilonCatalog[i])
		}
	}
	return set, nil
}

// EpsilonMask encodes a set of modifier names into a subset mask. The
// inverse of EpsilonSet; the set must be non-empty and every name must
// sit inside the configured catalog prefix.
func EpsilonMask(names []string, catalog int) (int, error) {
	if len(names) == 0 {
		return 0, &DomainError{Dimension: "epsilon", Message: "empty modifier set"}
	}
	mask := 0
	for _, name := range names {
		found := -1
		for i := 0; i < catalog && i < len(epsilonCatalog); i++ {
			if epsilonCatalog[i].Name == name {
				found = i
				break
			}
		}
		if found < 0 {
			return 0, newValueError("epsilon", name)
		}
		mask |= 1 << found
	}
	return mask, nil
}
