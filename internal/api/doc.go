// Package api exposes the scoring engine over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness probe
//	POST /v1/evaluate   {"url": "..."}           one record as JSON
//	POST /v1/batch      {"urls": ["...", ...]}   records streamed as NDJSON
//
// Records have the same shape as the CLI's NDJSON lines. Batch responses are
// flushed line by line in input order unless the request sets "unordered".
package api
