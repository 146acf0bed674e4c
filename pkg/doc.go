// Package pkg provides the core libraries for netscore package trust scoring.
//
// # Overview
//
// Netscore takes npm or GitHub package URLs, fetches one snapshot of the
// backing GitHub repository per package, runs seven independent metrics on
// that snapshot concurrently and combines them into a weighted net score.
// The pkg directory is organized into four areas:
//
//  1. Domain: [repo], [metrics], [scoring]
//  2. Resolution and data: [resolve], [integrations]
//  3. Infrastructure: [cache], [store], [config], [observability]
//  4. Shared: [errors], [httputil], [buildinfo]
//
// # Architecture
//
// The data flow for one package:
//
//	input URL
//	     ↓
//	[resolve] (npm package → GitHub repository, or GitHub URL → owner/repo)
//	     ↓
//	[integrations/github] (one fresh repo.Data snapshot, responses cached)
//	     ↓
//	[metrics] × 7, concurrently on the shared snapshot
//	     ↓
//	[scoring] (net score, record, NDJSON)
//
// Many packages are scored by [scoring.Batch], which bounds concurrency and
// emits records in input order.
//
// # Quick Start
//
//	c, _ := cache.NewFileCache(dir)
//	gh := github.NewClient(c, token, 24*time.Hour, github.DefaultWindow)
//	engine := scoring.NewEngine(resolve.New(npm.NewClient(c, 24*time.Hour)), gh, scoring.Options{})
//
//	rec := engine.Evaluate(ctx, "https://www.npmjs.com/package/express")
//	_ = scoring.NewNDJSONWriter(os.Stdout).Write(ctx, rec)
//
// # Main Packages
//
// [repo] - The repository snapshot shared by all metrics. Nil fields mean the
// data could not be fetched, empty ones that there is none.
//
// [metrics] - The seven metric units and the optional [metrics.Score] type.
// Unavailable scores become -1 only when serialized.
//
// [scoring] - Engine (fan-out/fan-in per package, per-metric timeout and
// panic isolation), net score aggregation, records, NDJSON output and the
// bounded batch runner.
//
// [resolve] - URL classification and npm-to-GitHub resolution.
//
// [integrations] - Cached, rate-limited HTTP clients for the GitHub REST API
// and the npm registry.
//
// [cache] - Response cache backends: file (CLI default), Redis (shared),
// null (disabled).
//
// [store] - MongoDB persistence of records, usable as an extra batch sink.
//
// [config] - TOML/YAML configuration with environment overlay.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include integration tests (network)
//
// [repo]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/repo
// [metrics]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/metrics
// [scoring]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/scoring
// [resolve]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/resolve
// [integrations]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/integrations
// [integrations/github]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/integrations/github
// [cache]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/buildinfo
// [metrics.Score]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/metrics#Score
// [scoring.Batch]: https://pkg.go.dev/github.com/matzehuels/netscore/pkg/scoring#Batch
package pkg
