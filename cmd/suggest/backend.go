package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"suggest/internal/config"
	"suggest/internal/domain"
	"suggest/internal/eventbus"
	"suggest/internal/logging"
	"suggest/internal/search"
)

// backend is the configured searcher with its decorators. index is set for
// the sqlite backend only.
type backend struct {
	search.Searcher
	index   *search.Index
	cache   *search.Cached
	closers []func() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{}

	var base search.Searcher
	switch cfg.Search.Backend {
	case config.BackendStatic:
		items, err := loadSeed(cfg.Search.SeedFile)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			logging.Warn("static backend has no suggestions; set search.seed_file")
		}
		base = search.NewStatic(items)

	case config.BackendSQLite:
		idx, err := search.OpenIndex(dbPath(cfg, ""))
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, idx.Close)
		b.index = idx

		items, err := loadSeed(cfg.Search.SeedFile)
		if err != nil {
			b.Close()
			return nil, err
		}
		if len(items) > 0 {
			n, err := idx.Add(ctx, items)
			if err != nil {
				b.Close()
				return nil, err
			}
			logging.Info("seeded index", "count", n)
		}
		base = idx

	case config.BackendHTTP:
		h, err := search.NewHTTPSearcher(cfg.Search.URL,
			search.WithRateLimit(cfg.Search.RatePerSecond),
			search.WithToken(cfg.Search.Token),
			search.WithTimeout(cfg.Search.Timeout.Duration),
		)
		if err != nil {
			return nil, err
		}
		base = h

	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.Search.Backend)
	}

	if cfg.Search.Workers > 0 {
		pooled, err := search.NewPooled(base, cfg.Search.Workers)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.closers = append(b.closers, pooled.Close)
		base = pooled
	}
	if cfg.Search.CacheSize > 0 {
		b.cache = search.NewCached(base, cfg.Search.CacheSize, cfg.Search.CacheTTL.Duration)
		base = b.cache
	}

	b.Searcher = base
	logging.Info("search backend ready", "backend", cfg.Search.Backend,
		"workers", cfg.Search.Workers, "cache", cfg.Search.CacheSize)
	return b, nil
}

// Close releases resources in reverse order of acquisition
func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = append(errs, b.closers[i]())
	}
	b.closers = nil
	return errors.Join(errs...)
}

// subscribe attaches the backend's event consumers to bus
func (b *backend) subscribe(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventResultsDiscarded, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ResultsDiscardedEvent)
		logging.Debug("stale results dropped", "query", ev.Query, "generation", ev.Generation, "current", ev.Current)
	})

	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.SearchFailedEvent)
		if se, ok := search.AsError(ev.Err); ok && se.IsRateLimited() {
			logging.Warn("search backend is rate limiting", "backend", se.Backend, "query", ev.Query)
		}
	})

	if b.index == nil {
		return
	}
	bus.Subscribe(eventbus.EventActionCommitted, func(e eventbus.DomainEvent) {
		ev := e.(eventbus.ActionCommittedEvent)
		if err := b.index.RecordUse(context.Background(), ev.Text); err != nil {
			logging.Error("failed to record use", "text", ev.Text, "err", err)
			return
		}
		// Rankings changed
		if b.cache != nil {
			b.cache.Purge()
		}
	})
}

func loadSeed(path string) ([]domain.Suggestion, error) {
	if path == "" {
		return nil, nil
	}
	return search.LoadSeed(path)
}

// dbPath picks the index location: override, then config, then next to
// the default config file.
func dbPath(cfg *config.Config, override string) string {
	switch {
	case override != "":
		return override
	case cfg.Search.DBPath != "":
		return cfg.Search.DBPath
	}
	return filepath.Join(filepath.Dir(config.DefaultPath()), "suggest.db")
}
