// Package index accumulates page metadata records and writes the run
// outputs that are produced exactly once, at the end of the run:
//
//   - the metadata index, a JSON array of page records in processing order
//   - an optional markdown run summary with per-seed counters
//
// Design decision: accumulation and serialization live together, separate
// from the record type in the model package, so new output formats can be
// added without touching the crawl engine or the data structures.
package index
