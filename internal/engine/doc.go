// Package engine orchestrates the pipeline: base generation, mod
// table application, and inversion.
//
// The engine owns no mutable state across runs. A BaseDataset is built
// once per run and never modified; each (table, params) selection
// produces its own TransformedDataset. Selections are independent by
// construction - applying one can neither observe nor disturb another,
// which is what makes batch runs safe to reorder or parallelize.
//
// CONCURRENCY:
//
// Applying a table to a dataset is an embarrassingly parallel map:
// every transform is pure and row-local. The engine fans rows out over
// a fixed-size worker pool and writes each result into a preallocated
// slice at the row's own position, so output order never depends on
// completion order. Batch runs check the context between selections;
// there is no mid-row cancellation since a single transform is a few
// integer operations.
//
// Every Apply stamps its output with a UUIDv7 run token for
// provenance. Tokens identify runs; they never influence content -
// two runs over equal inputs produce datasets with equal fingerprints.
package engine
