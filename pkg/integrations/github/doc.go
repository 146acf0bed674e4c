// Package github provides an HTTP client for the GitHub REST API.
//
// # Overview
//
// This package builds the [repo.Data] snapshot every metric is computed from.
// One call to [Client.FetchRepository] reads:
//
//   - the repository itself (archived flag, detected license, default branch)
//   - open and closed issue totals via the search API
//   - issues and pull requests active in the trailing window
//   - reviews and line counts of the most recent merged pull requests
//   - contributors with commit counts (bots excluded)
//   - the root directory listing, README, and package.json
//
// # Usage
//
//	client := github.NewClient(c, token, 24*time.Hour, 0)
//	data, err := client.FetchRepository(ctx, "expressjs", "express")
//	if err != nil {
//	    // the repository itself could not be read
//	}
//
// # Partial Snapshots
//
// Only the repository endpoint is mandatory. When any other endpoint fails
// the corresponding snapshot field stays nil and the metrics reading it report
// an unavailable score.
//
// # Authentication
//
// A personal access token raises the limit from 60 to 5000 requests per
// hour. Every request, including the optional ones, is retried on 5xx and
// rate-limit responses, waiting for the reset time the API reports, capped by
// [httputil.Retry].
//
// # Caching
//
// Every call builds a new snapshot. Responses that do not depend on the
// activity window (repository, contributors, root listing, README,
// package.json, reviews of merged pull requests) are cached one per endpoint
// under "github:owner/repo:<resource>". Issue counts and issue and pull
// request listings are always read live. Failed requests are never cached.
// Pass refresh=true to [Client.Fetch] to bypass the cache.
//
// [repo.Data]: github.com/matzehuels/netscore/pkg/repo.Data
// [httputil.Retry]: github.com/matzehuels/netscore/pkg/httputil.Retry
package github
