// Package dimension defines the four musical parameter dimensions and
// their fixed, enumerable encoding tables.
//
// Each dimension maps an integer position to a value and back:
//
//   - Chi: note-duration classes (10 plain + 10 dotted lengths)
//   - Theta: the 35-position enharmonic chromatic space (A𝄫 through G𝄪)
//   - Lambda: 8 octave registers
//   - Epsilon: a modifier catalog whose dimension values are the
//     non-empty subsets of the catalog, indexed by bitmask
//
// DETERMINISM:
//
// All tables are compile-time constants. Positions map to values with
// pure integer arithmetic - no floats, no randomness, no wall-clock
// input. Duration lengths are stored as exact rationals (numerator and
// denominator) rather than floating point.
//
// Lookups outside a domain fail with an OUT_OF_DOMAIN DomainError.
// There is no clamping and no wraparound: a caller that wants modular
// behavior must reduce indices itself, so that inversion stays exact.
package dimension
