// Package stats holds the incremental accumulators used by the network
// analysis: integer histograms (degree, shortest path length, shared
// neighbors, stress) and per-x mean point sets (per-degree distributions).
//
// Accumulators are not safe for concurrent mutation. Parallel passes keep
// one accumulator per worker and Merge them once the workers are done.
package stats
