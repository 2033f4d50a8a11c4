package dataset

import (
	"github.com/phorms/enki/internal/dimension"
)

// Space fixes the domain sizes of the four dimensions.
//
// Theta and Lambda are structural constants (35 enharmonic positions,
// 8 octaves). ChiSize and EpsilonCatalog are configuration: ChiSize
// selects a prefix of the 20-entry duration table, EpsilonCatalog a
// prefix of the modifier catalog. The epsilon dimension size is the
// number of non-empty subsets of that prefix, 2^EpsilonCatalog - 1.
type Space struct {
	ChiSize        int `yaml:"chi_size"`
	ThetaSize      int `yaml:"theta_size"`
	LambdaSize     int `yaml:"lambda_size"`
	EpsilonCatalog int `yaml:"epsilon_catalog"`
}

// DefaultSpace returns the space over the full encoding tables with a
// 7-modifier epsilon catalog (the articulations).
func DefaultSpace() Space {
	return Space{
		ChiSize:        dimension.ChiSize(),
		ThetaSize:      dimension.ThetaSize(),
		LambdaSize:     dimension.LambdaSize(),
		EpsilonCatalog: 7,
	}
}

// EpsilonSize returns the number of epsilon values: the count of
// non-empty subsets of the modifier catalog prefix.
func (s Space) EpsilonSize() int {
	return 1<<s.EpsilonCatalog - 1
}

// Capacity returns the total number of distinct rows the space can
// enumerate: the product of the four dimension sizes.
func (s Space) Capacity() int64 {
	return int64(s.ChiSize) * int64(s.ThetaSize) * int64(s.LambdaSize) * int64(s.EpsilonSize())
}

// Validate checks the space against the encoding tables.
func (s Space) Validate() error {
	if s.ThetaSize != dimension.ThetaSize() {
		return newBuildError(ErrCodeInvalidSpace, "theta size must be %d, got %d", dimension.ThetaSize(), s.ThetaSize)
	}
	if s.LambdaSize != dimension.LambdaSize() {
		return newBuildError(ErrCodeInvalidSpace, "lambda size must be %d, got %d", dimension.LambdaSize(), s.LambdaSize)
	}
	if s.ChiSize < 1 || s.ChiSize > dimension.ChiSize() {
		return newBuildError(ErrCodeInvalidSpace, "chi size %d outside [1, %d]", s.ChiSize, dimension.ChiSize())
	}
	if s.EpsilonCatalog < 1 || s.EpsilonCatalog > dimension.EpsilonCatalogMax() {
		return newBuildError(ErrCodeInvalidSpace, "epsilon catalog %d outside [1, %d]", s.EpsilonCatalog, dimension.EpsilonCatalogMax())
	}
	return nil
}

// Decompose maps an index to its row positions by mixed-radix
// decomposition: chi varies fastest, then theta, lambda, and the
// epsilon subset ordinal. The inverse of Compose.
func (s Space) Decompose(index int64) (Row, error) {
	if index < 0 || index >= s.Capacity() {
		return Row{}, newBuildError(ErrCodeOutOfDomain, "index %d outside [0, %d)", index, s.Capacity())
	}
	rest := index
	chi := int(rest % int64(s.ChiSize))
	rest /= int64(s.ChiSize)
	theta := int(rest % int64(s.ThetaSize))
	rest /= int64(s.ThetaSize)
	lambda := int(rest % int64(s.LambdaSize))
	rest /= int64(s.LambdaSize)
	// Subset ordinals are 0-based; masks are the contiguous range
	// [1, 2^k), so ordinal o maps to mask o+1.
	epsilon := int(rest) + 1
	return Row{Index: index, Chi: chi, Theta: theta, Lambda: lambda, Epsilon: epsilon}, nil
}

// Compose maps row positions back to their index. The inverse of
// Decompose; positions outside their domains fail with OUT_OF_DOMAIN.
func (s Space) Compose(r Row) (int64, error) {
	if r.Chi < 0 || r.Chi >= s.ChiSize {
		return 0, newBuildError(ErrCodeOutOfDomain, "chi position %d outside [0, %d)", r.Chi, s.ChiSize)
	}
	if r.Theta < 0 || r.Theta >= s.ThetaSize {
		return 0, newBuildError(ErrCodeOutOfDomain, "theta position %d outside [0, %d)", r.Theta, s.ThetaSize)
	}
	if r.Lambda < 0 || r.Lambda >= s.LambdaSize {
		return 0, newBuildError(ErrCodeOutOfDomain, "lambda position %d outside [0, %d)", r.Lambda, s.LambdaSize)
	}
	if r.Epsilon < 1 || r.Epsilon > s.EpsilonSize() {
		return 0, newBuildError(ErrCodeOutOfDomain, "epsilon mask %d outside [1, %d]", r.Epsilon, s.EpsilonSize())
	}
	index := int64(r.Epsilon - 1)
	index = index*int64(s.LambdaSize) + int64(r.Lambda)
	index = index*int64(s.ThetaSize) + int64(r.Theta)
	index = index*int64(s.ChiSize) + int64(r.Chi)
	return index, nil
}
