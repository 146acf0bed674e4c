package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports engine, cache and upstream HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnEvaluateStart(_ context.Context, url string) {
	h.logger.Debug("evaluating", "url", url)
}

func (h logHooks) OnMetricComplete(_ context.Context, url, metric string, score float64, d time.Duration, err error) {
	if err != nil {
		return // the engine already warns
	}
	h.logger.Debug("metric", "url", url, "name", metric, "score", score, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnEvaluateComplete(_ context.Context, url string, netScore float64, d time.Duration, _ error) {
	h.logger.Debug("evaluated", "url", url, "net_score", netScore, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "source", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "source", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "source", keyType, "bytes", size)
}

func (h logHooks) OnRequest(context.Context, string, string, string) {}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("upstream", "method", method, "host", host, "path", path, "status", status, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("upstream failed", "method", method, "host", host, "path", path, "err", err)
}
