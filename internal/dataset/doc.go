// Package dataset implements the combinatorial base builder and the
// dataset value types shared across the pipeline.
//
// A Space fixes the four dimension domain sizes. Row positions compose
// into a single integer index by mixed-radix arithmetic over those
// sizes, so that every index decomposes into exactly one
// (chi, theta, lambda, epsilon) tuple and every tuple re-composes into
// its index. Build materializes the first N indices of that enumeration.
//
// DETERMINISM:
//
// Building is a pure function of N and the Space. Two builds with equal
// inputs produce byte-identical datasets: same order, same content,
// same canonical serialization. Nothing here reads the clock, the
// environment, or any entropy source.
//
// Datasets are immutable once built. Transformations never modify a
// dataset in place; they produce new ones.
package dataset
