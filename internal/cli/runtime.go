package cli

import (
	"context"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netscore/pkg/cache"
	"github.com/matzehuels/netscore/pkg/config"
	"github.com/matzehuels/netscore/pkg/integrations"
	"github.com/matzehuels/netscore/pkg/integrations/github"
	"github.com/matzehuels/netscore/pkg/integrations/npm"
	"github.com/matzehuels/netscore/pkg/metrics"
	"github.com/matzehuels/netscore/pkg/observability"
	"github.com/matzehuels/netscore/pkg/resolve"
	"github.com/matzehuels/netscore/pkg/scoring"
	"github.com/matzehuels/netscore/pkg/store"
)

// runtime is everything a scoring command needs, built from one validated
// configuration.
type runtime struct {
	cfg    *config.Config
	engine *scoring.Engine
	cache  cache.Cache
	mongo  *store.Mongo
}

// newRuntime validates the configuration and wires the engine.
func (c *CLI) newRuntime(ctx context.Context) (*runtime, error) {
	cfg := c.conf()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	respCache, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("cache ready", "backend", cfg.Cache.Backend)

	observability.SetEvaluationHooks(logHooks{c.Logger})
	observability.SetCacheHooks(logHooks{c.Logger})
	observability.SetHTTPHooks(logHooks{c.Logger})

	var opts []integrations.Option
	if cfg.RateLimit > 0 {
		opts = append(opts, integrations.WithRateLimit(cfg.RateLimit, int(math.Max(1, cfg.RateLimit))))
	}
	gh := github.NewClient(respCache, cfg.GitHubToken, cfg.Cache.TTL, cfg.ActivityWindow, opts...)
	registry := npm.NewClient(respCache, cfg.Cache.TTL)

	engine := scoring.NewEngine(resolve.New(registry), gh, scoring.Options{
		Metrics:       metrics.Default(metrics.Options{Window: cfg.ActivityWindow}),
		MetricTimeout: cfg.MetricTimeout,
		Logger:        c.Logger,
	})

	rt := &runtime{cfg: cfg, engine: engine, cache: respCache}
	if cfg.Mongo.URI != "" {
		m, err := store.Open(ctx, store.Options{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			respCache.Close()
			return nil, err
		}
		c.Logger.Debug("mongodb connected", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)
		rt.mongo = m
	}
	return rt, nil
}

// sinks returns the secondary sinks for a run.
func (rt *runtime) sinks(runID string) []scoring.Sink {
	if rt.mongo == nil {
		return nil
	}
	return []scoring.Sink{rt.mongo.ForRun(runID)}
}

func (rt *runtime) close(ctx context.Context, logger *log.Logger) {
	if rt.mongo != nil {
		if err := rt.mongo.Close(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("mongodb disconnect failed", "err", err)
		}
	}
	if err := rt.cache.Close(); err != nil {
		logger.Warn("cache close failed", "err", err)
	}
}
