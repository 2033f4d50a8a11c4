// Package runspec loads run specifications: small declarative files
// naming an N and the mod table selections to apply to its base
// dataset.
//
// Two formats are accepted. CUE files wrap the run in a struct:
//
//	run: {
//		n: 6
//		select: [
//			{table: "harmonic", params: {chord: "major7"}},
//			{table: "music"},
//		]
//	}
//
// YAML files carry the same fields at the top level. A selection's
// table may name a selection group ("all", "music"), which expands to
// the group's tables during normalization.
//
// Loading is split from execution on purpose: a run spec is fully
// validated - table names resolved, parameters checked against each
// table's schema, groups expanded - before the engine sees it, so a
// bad spec fails at load time with a position-bearing error rather
// than mid-run.
package runspec
