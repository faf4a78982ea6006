// Package app provides the core application initialization and lifecycle management.
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/law-makers/reviewscrape/internal/cache"
	"github.com/law-makers/reviewscrape/internal/config"
	"github.com/law-makers/reviewscrape/internal/dataset"
	"github.com/law-makers/reviewscrape/internal/engine"
	"github.com/law-makers/reviewscrape/internal/engine/dynamic"
	"github.com/law-makers/reviewscrape/internal/engine/static"
	"github.com/law-makers/reviewscrape/internal/extract"
	"github.com/law-makers/reviewscrape/internal/pipeline"
	"github.com/law-makers/reviewscrape/internal/ratelimit"
	"github.com/law-makers/reviewscrape/internal/utils/headers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation. Use Close() to release the cache.
type Application struct {
	Config  *config.Config
	Logger  *zerolog.Logger
	Cache   *cache.MemoryCache
	Fetcher engine.Fetcher
	Pacer   *ratelimit.DomainPacer
	Store   *dataset.Store
	Sites   *pipeline.Registry

	startTime time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the in-memory page cache
//   - Creates the static or browser fetcher and wraps it with the cache
//   - Creates the per-domain pacer used in list mode
//   - Creates the dataset store and the site registry
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := NewLogger(cfg, os.Stderr)
	log.Logger = logger

	hdrs, err := headers.Parse(cfg.Headers)
	if err != nil {
		return nil, err
	}

	var inner engine.Fetcher
	if cfg.Render {
		inner = dynamic.New(dynamic.Options{
			Timeout:    cfg.RenderTimeout,
			UserAgent:  cfg.UserAgent,
			Proxy:      cfg.Proxy,
			ChromePath: cfg.ChromePath,
		})
	} else {
		inner, err = static.New(static.Options{
			Timeout:   cfg.HTTPTimeout,
			UserAgent: cfg.UserAgent,
			Headers:   hdrs,
			Proxy:     cfg.Proxy,
		})
		if err != nil {
			return nil, err
		}
	}
	logger.Debug().
		Str("fetcher", inner.Name()).
		Dur("timeout", cfg.HTTPTimeout).
		Msg("Fetcher initialized")

	memCache := cache.NewMemoryCache(cfg.CacheMaxSizeBytes)
	logger.Debug().
		Int64("max_size_bytes", cfg.CacheMaxSizeBytes).
		Dur("ttl", cfg.CacheTTL).
		Msg("Memory cache initialized")

	exclusions := append(append([]string{}, extract.DefaultExclusions...), cfg.ExtraExclusions...)
	sites := pipeline.DefaultRegistry(extract.Options{
		MinLength:  cfg.MinParagraphLen,
		Exclusions: exclusions,
	})

	a := &Application{
		Config:    cfg,
		Logger:    &logger,
		Cache:     memCache,
		Fetcher:   engine.NewCachingFetcher(inner, memCache, cfg.CacheTTL),
		Pacer:     ratelimit.NewDomainPacer(cfg.ListDelay),
		Store:     dataset.NewStore(cfg.OutputPath, dataset.DefaultInstruction),
		Sites:     sites,
		startTime: time.Now(),
	}

	logger.Debug().
		Str("output", cfg.OutputPath).
		Strs("sites", sites.Supported()).
		Msg("Application initialized")
	return a, nil
}

// Runner builds a pipeline runner reporting to r. Pacing is only applied
// when paced is true, i.e. in list mode.
func (a *Application) Runner(r pipeline.Reporter, paced bool) *pipeline.Runner {
	opts := pipeline.Options{
		Fetcher:  a.Fetcher,
		Sites:    a.Sites,
		Store:    a.Store,
		Reporter: r,
	}
	if paced {
		opts.Pacer = a.Pacer
	}
	return pipeline.New(opts)
}

// Close releases application resources.
func (a *Application) Close() {
	if a == nil {
		return
	}
	if a.Cache != nil {
		hits, misses := a.Cache.Stats()
		a.Logger.Debug().
			Uint64("cache_hits", hits).
			Uint64("cache_misses", misses).
			Msg("Cache stats")
		a.Cache.Close()
	}
	a.Logger.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
}

// NewLogger builds the zerolog logger described by cfg and sets the global level.
func NewLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	// info logs stay hidden unless -v; the console reporter covers user-facing output
	if level == zerolog.InfoLevel {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.JSONLog {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
