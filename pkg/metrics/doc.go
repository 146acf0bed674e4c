// Package metrics implements the seven metric units netscore combines into a
// package's net score.
//
// Every unit satisfies [Metric]: it reads a shared [repo.Data] snapshot and
// returns a [Score]. A Score is either a value in [0,1] ([Valid]) or
// [Unavailable] when the snapshot lacks the data the unit needs. The -1 wire
// value is produced only by [Score.Wire], at serialization time.
//
// # Units
//
//   - [BusFactor]: Gaussian decay over the Herfindahl concentration of commits
//   - [Correctness]: closed issues over all issues
//   - [RampUp]: weighted documentation signals
//   - [Responsiveness]: close ratios of issues and pull requests in a trailing window
//   - [License]: license file, manifest field, SPDX identifier, or README section
//   - [DependencyPinning]: share of runtime dependencies with narrow version ranges
//   - [CodeReview]: share of merged changes that landed with a review
//
// Units are stateless and never write to the snapshot, so one snapshot can be
// shared by all seven running concurrently.
//
// [repo.Data]: github.com/matzehuels/netscore/pkg/repo.Data
package metrics
