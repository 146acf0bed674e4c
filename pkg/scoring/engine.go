package scoring

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/metrics"
	"github.com/matzehuels/netscore/pkg/observability"
	"github.com/matzehuels/netscore/pkg/repo"
)

// DefaultMetricTimeout bounds a single metric computation.
const DefaultMetricTimeout = 30 * time.Second

// Resolver maps an input URL to a repository.
type Resolver interface {
	Resolve(ctx context.Context, raw string) (repo.PackageIdentifier, error)
}

// Options configures an [Engine].
type Options struct {
	// Metrics are the units to run. Nil means [metrics.Default].
	Metrics []metrics.Metric

	// MetricTimeout bounds each metric. Zero means [DefaultMetricTimeout].
	MetricTimeout time.Duration

	// Logger receives warnings about failed packages and metrics.
	// Nil discards them.
	Logger *log.Logger
}

// Engine evaluates single packages.
type Engine struct {
	resolver Resolver
	fetcher  repo.Fetcher
	metrics  []metrics.Metric
	timeout  time.Duration
	logger   *log.Logger
}

// NewEngine creates an Engine resolving URLs with resolver and reading
// repositories with fetcher.
func NewEngine(resolver Resolver, fetcher repo.Fetcher, opts Options) *Engine {
	e := &Engine{
		resolver: resolver,
		fetcher:  fetcher,
		metrics:  opts.Metrics,
		timeout:  opts.MetricTimeout,
		logger:   opts.Logger,
	}
	if e.metrics == nil {
		e.metrics = metrics.Default(metrics.Options{})
	}
	if e.timeout <= 0 {
		e.timeout = DefaultMetricTimeout
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Evaluate scores the package behind url. It never fails: problems degrade
// to unavailable scores in the returned record.
func (e *Engine) Evaluate(ctx context.Context, url string) Record {
	hooks := observability.Evaluation()
	hooks.OnEvaluateStart(ctx, url)
	start := time.Now()

	rec, err := e.evaluate(ctx, url)
	if err != nil {
		e.logger.Warn("package skipped", "url", url, "code", errors.GetCode(err), "cause", errors.RootCode(err), "err", err)
	}
	hooks.OnEvaluateComplete(ctx, url, rec.NetScore.Wire(), time.Since(start), err)
	return rec
}

func (e *Engine) evaluate(ctx context.Context, url string) (Record, error) {
	id, err := e.resolver.Resolve(ctx, url)
	if err != nil {
		return FailedRecord(url), err
	}
	e.logger.Debug("resolved", "url", url, "repo", id.FullName(), "kind", id.Kind)

	data, err := e.fetcher.FetchRepository(ctx, id.Owner, id.Repo)
	if err != nil {
		return FailedRecord(url), errors.Wrap(errors.ErrCodeFetch, err, "fetch %s", id.FullName())
	}
	if data == nil {
		return FailedRecord(url), errors.New(errors.ErrCodeFetch, "fetch %s: no repository data", id.FullName())
	}
	return e.Score(ctx, url, data), nil
}

// Score runs every metric against data concurrently and aggregates the
// results. data is shared by all metrics and must not be modified while
// Score runs.
func (e *Engine) Score(ctx context.Context, url string, data *repo.Data) Record {
	results := make(chan MetricResult, len(e.metrics))
	for _, m := range e.metrics {
		go func() {
			results <- e.run(ctx, url, m, data)
		}()
	}

	rec := Record{URL: url, Metrics: make(map[metrics.Name]MetricResult, len(e.metrics))}
	in := make(Input, len(e.metrics))
	for range e.metrics {
		r := <-results
		rec.Metrics[r.Name] = r
		in[r.Name] = r.Score
	}

	net := CalculateNetScore(in)
	rec.NetScore = net.Score
	rec.NetScoreLatency = net.Latency
	return rec
}

type outcome struct {
	score metrics.Score
	err   error
}

// run computes one metric with a timeout and converts errors, panics, and
// out-of-range values into an unavailable score.
func (e *Engine) run(ctx context.Context, url string, m metrics.Metric, data *repo.Data) MetricResult {
	name := m.Name()
	mctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		defer func() {
			if p := recover(); p != nil {
				e.logger.Debug("metric panic", "metric", name, "stack", string(debug.Stack()))
				done <- outcome{err: errors.New(errors.ErrCodeInternal, "panic: %v", p)}
			}
		}()
		s, err := m.Compute(mctx, data)
		done <- outcome{score: s, err: err}
	}()

	var o outcome
	select {
	case o = <-done:
	case <-mctx.Done():
		o = outcome{err: mctx.Err()}
	}
	latency := time.Since(start)

	score := o.score
	if o.err == nil {
		if v, ok := score.Value(); ok && !score.IsValid() {
			o.err = fmt.Errorf("score %v out of range", v)
		}
	}
	if o.err != nil {
		score = metrics.Unavailable()
		code := errors.ErrCodeMetric
		if ctx.Err() == nil && mctx.Err() == context.DeadlineExceeded {
			code = errors.ErrCodeTimeout
		}
		o.err = errors.Wrap(code, o.err, "metric %s", name)
		e.logger.Warn("metric failed", "url", url, "metric", name, "err", o.err)
	}

	observability.Evaluation().OnMetricComplete(ctx, url, string(name), score.Wire(), latency, o.err)
	return MetricResult{Name: name, Score: score, Latency: latency, Err: o.err}
}
