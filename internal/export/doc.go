// Package export persists transformed datasets and renders them for
// consumption outside the engine.
//
// Two sinks are provided. The SQLite store keeps runs durable and
// queryable: one runs record per engine run keyed by run token, with
// the row tuples in a companion table ordered by index. The JSON
// exporter renders a dataset as canonical JSON with every dimension
// position resolved to its display value (duration name, note glyph,
// octave number, modifier names), under the conventional file name
// phorms_N<rowcount>_<table>.json.
//
// Both sinks are deterministic: loading a stored run and re-exporting
// it yields byte-identical JSON, and the stored fingerprint matches
// the recomputed one.
package export
