// Package modtable holds the fixed catalog of mod tables: the named
// transformation strategies applied to generated rows.
//
// The catalog is closed and registered at package init: default,
// increment, custom, chromatic, rhythmic, harmonic, modal, octave.
// New tables are added by extending the catalog at compile time; there
// is no runtime registration surface.
//
// Every table's Apply is a pure, total function over well-formed rows.
// Tables flagged reversible also carry an Invert such that
// Invert(Apply(row)) == row for every row a space can enumerate - the
// transformation formulas are modular rotations and affine
// permutations per dimension, chosen so that this holds exactly rather
// than approximately. The non-reversible tables (currently only
// custom) refuse inversion with NOT_REVERSIBLE.
//
// Tables accept a flat parameter bundle of named, enumerated options.
// Parameters are validated against the table's schema before any row
// is processed; an unknown parameter name or option value fails at
// selection time, never mid-run.
package modtable
