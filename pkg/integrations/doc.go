// Package integrations provides HTTP clients for the upstream APIs netscore
// reads package data from.
//
// # Overview
//
// Each upstream has its own subpackage:
//
//   - [github]: GitHub REST API, produces the repository snapshot
//   - [npm]: npm registry, resolves a package name to its GitHub repository
//
// # Client Pattern
//
// Both clients follow the same shape:
//
//	gh := github.NewClient(c, token, 24*time.Hour, 0)
//	data, err := gh.FetchRepository(ctx, "expressjs", "express")
//
// Clients handle:
//   - HTTP requests with retry, backoff, and request pacing
//   - Response caching through [cache.Cache] (file, Redis, or none)
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides the shared HTTP functionality: default headers,
// a [rate.Limiter] for pacing, classification of status codes into
// [ErrNotFound], [ErrUnauthorized], [ErrNetwork], and rate-limit errors, and
// observability hooks for requests and cache lookups. Every request is
// retried on transient failures; [WithRetry] tunes attempts and backoff.
//
// [github]: github.com/matzehuels/netscore/pkg/integrations/github
// [npm]: github.com/matzehuels/netscore/pkg/integrations/npm
// [cache.Cache]: github.com/matzehuels/netscore/pkg/cache.Cache
// [rate.Limiter]: golang.org/x/time/rate.Limiter
package integrations
