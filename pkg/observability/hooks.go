// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about package evaluations, cache operations, and API calls.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEvaluationHooks(&myEvaluationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Evaluation().OnEvaluateStart(ctx, url)
//	// ... score the package ...
//	observability.Evaluation().OnEvaluateComplete(ctx, url, netScore, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Evaluation Hooks
// =============================================================================

// EvaluationHooks receives events from the scoring engine.
//
// Scores are wire values: -1 means the score could not be computed.
type EvaluationHooks interface {
	// OnEvaluateStart fires once per input URL before resolution.
	OnEvaluateStart(ctx context.Context, url string)

	// OnMetricComplete fires once per metric unit, from the unit's goroutine.
	// Implementations must be safe for concurrent use.
	OnMetricComplete(ctx context.Context, url, metric string, score float64, duration time.Duration, err error)

	// OnEvaluateComplete fires once per input URL. err is the resolution or
	// fetch failure that short-circuited the evaluation, if any.
	OnEvaluateComplete(ctx context.Context, url string, netScore float64, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEvaluationHooks ignores every evaluation event.
type NoopEvaluationHooks struct{}

func (NoopEvaluationHooks) OnEvaluateStart(context.Context, string) {}
func (NoopEvaluationHooks) OnMetricComplete(context.Context, string, string, float64, time.Duration, error) {
}
func (NoopEvaluationHooks) OnEvaluateComplete(context.Context, string, float64, time.Duration, error) {
}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

// registry holds the active hooks. Hooks are set at startup and read on
// every event, so reads take the shared lock.
type registry struct {
	mu         sync.RWMutex
	evaluation EvaluationHooks
	cache      CacheHooks
	http       HTTPHooks
}

var hooks = newRegistry()

func newRegistry() *registry {
	return &registry{
		evaluation: NoopEvaluationHooks{},
		cache:      NoopCacheHooks{},
		http:       NoopHTTPHooks{},
	}
}

// SetEvaluationHooks installs h for engine events. Nil is ignored.
func SetEvaluationHooks(h EvaluationHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.evaluation = h
	hooks.mu.Unlock()
}

// SetCacheHooks installs h for cache events. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetHTTPHooks installs h for upstream HTTP events. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.http = h
	hooks.mu.Unlock()
}

// Evaluation returns the active evaluation hooks.
func Evaluation() EvaluationHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.evaluation
}

// Cache returns the active cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the active HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	fresh := newRegistry()
	hooks.mu.Lock()
	hooks.evaluation, hooks.cache, hooks.http = fresh.evaluation, fresh.cache, fresh.http
	hooks.mu.Unlock()
}
