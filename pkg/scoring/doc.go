// Package scoring evaluates packages end to end and aggregates metric scores.
//
// # Pipeline
//
// [Engine.Evaluate] takes one input URL through the whole pipeline:
//
//  1. resolve the URL to a GitHub repository
//  2. fetch one [repo.Data] snapshot
//  3. run every metric concurrently against that snapshot
//  4. combine the scores with [CalculateNetScore]
//
// It always returns a [Record]. Resolution and fetch failures produce a record
// whose scores are all unavailable; a failing, panicking, or slow metric only
// affects its own score.
//
// # Batches
//
// [Batch] evaluates many URLs through a bounded worker pool and hands records
// to a single writer goroutine, which emits them in input order unless
// configured otherwise. [NDJSONWriter] serializes records as newline-delimited
// JSON with a fixed key order.
//
// [repo.Data]: github.com/matzehuels/netscore/pkg/repo.Data
package scoring
