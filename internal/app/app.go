package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/batch"
	"github.com/varoOP/bandpix/internal/cache"
	"github.com/varoOP/bandpix/internal/commons"
	"github.com/varoOP/bandpix/internal/config"
	"github.com/varoOP/bandpix/internal/domain"
	"github.com/varoOP/bandpix/internal/favorites"
	"github.com/varoOP/bandpix/internal/fetch"
	"github.com/varoOP/bandpix/internal/logger"
	"github.com/varoOP/bandpix/internal/notification"
	"github.com/varoOP/bandpix/internal/report"
	"github.com/varoOP/bandpix/internal/repository"
	"github.com/varoOP/bandpix/internal/resolver"
	"github.com/varoOP/bandpix/internal/wikidata"
)

// App represents the main application with all dependencies initialized
type App struct {
	log                 zerolog.Logger
	config              *domain.Config
	bandRepo            domain.BandRepository
	favoritesService    favorites.Service
	reportService       report.Service
	notificationService domain.NotificationService
}

// NewApp creates a new application instance with all dependencies initialized
func NewApp() (*App, error) {
	log := logger.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	fileRepo := repository.NewFileRepository(log)

	return &App{
		log:                 log,
		config:              cfg,
		bandRepo:            fileRepo,
		favoritesService:    favorites.NewService(log, fileRepo),
		reportService:       report.NewService(log),
		notificationService: notification.NewService(log, cfg.DiscordWebhookURL),
	}, nil
}

// newResolver wires the lookup chain over the given cache store.
func (a *App) newResolver(store domain.CacheStore) resolver.Service {
	client := fetch.NewClient(a.config.UserAgent)
	wd := wikidata.NewService(a.log, client, a.config.WikidataAPIURL)
	cm := commons.NewService(a.log, client, a.config.CommonsAPIURL, a.config.ThumbWidth)
	return resolver.NewService(a.log, wd, cm, store)
}

// Run resolves every band in the input list under the configured
// concurrency cap, then writes the YAML report, patches the favorites list
// and emits statistics.
func (a *App) Run(ctx context.Context, rootPath, inputPath string) (err error) {
	defer func() {
		if err != nil {
			if notifyErr := a.notificationService.SendError(ctx, err); notifyErr != nil {
				a.log.Warn().Err(notifyErr).Msg("Failed to send error notification")
			}
		}
	}()

	db, err := cache.NewDB(rootPath, a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize cache database: %w", err)
	}
	defer db.Close()

	store := cache.NewStore(a.log, db)
	svc := a.newResolver(store)

	bands, err := a.bandRepo.Get(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("failed to read band list: %w", err)
	}
	if len(bands) == 0 {
		a.log.Info().Msg("Band list is empty, nothing to resolve")
		return nil
	}

	// Names already terminal in the cache count as served-from-cache.
	preResolved := make(map[string]bool)
	for name, e := range store.Load(ctx) {
		if e.Resolved() {
			preResolved[name] = true
		}
	}

	var failed int64
	worker := func(ctx context.Context, i int) (*domain.CacheEntry, error) {
		entry, resolveErr := svc.Resolve(ctx, bands[i].Name, bands[i].Year)
		if resolveErr != nil {
			if !a.config.ContinueOnError {
				return nil, resolveErr
			}
			atomic.AddInt64(&failed, 1)
			a.log.Error().Err(resolveErr).Str("name", bands[i].Name).Msg("resolution failed, continuing")
			return nil, nil
		}
		return entry, nil
	}

	results, err := batch.MapLimit(ctx, len(bands), a.config.Concurrency, worker, func(done, total int) {
		a.log.Info().Int("done", done).Int("total", total).Msg("progress")
	})
	if err != nil {
		return fmt.Errorf("batch resolution aborted: %w", err)
	}

	stats := calculateStatistics(bands, results, preResolved, int(failed))

	reportPath := filepath.Join(rootPath, "bandpix-report.yaml")
	if err := a.reportService.Write(ctx, reportPath, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	favoritesPath := filepath.Join(rootPath, "favorites.json")
	for _, entry := range results {
		if entry == nil || entry.ImageURL == "" {
			continue
		}
		if err := a.favoritesService.PatchImage(ctx, favoritesPath, entry); err != nil {
			a.log.Warn().Err(err).Str("name", entry.Name).Msg("failed to patch favorites")
		}
	}

	a.log.Info().
		Int("total", stats.Total).
		Int("resolved", stats.Resolved).
		Int("missing", stats.Missing).
		Int("failed", stats.Failed).
		Int("from_cache", stats.FromCache).
		Float64("coverage_pct", stats.CoveragePercent).
		Msg("=== RUN STATISTICS ===")

	if notifyErr := a.notificationService.SendSuccess(ctx, stats); notifyErr != nil {
		a.log.Warn().Err(notifyErr).Msg("Failed to send success notification")
	}

	return nil
}

// ResolveOne resolves a single band and returns its cache entry.
func (a *App) ResolveOne(ctx context.Context, rootPath, name string, year int) (*domain.CacheEntry, error) {
	db, err := cache.NewDB(rootPath, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}
	defer db.Close()

	return a.newResolver(cache.NewStore(a.log, db)).Resolve(ctx, name, year)
}

// ClearCache removes every cached resolution entry.
func (a *App) ClearCache(ctx context.Context, rootPath string) error {
	db, err := cache.NewDB(rootPath, a.log)
	if err != nil {
		return fmt.Errorf("failed to initialize cache database: %w", err)
	}
	defer db.Close()

	if err := cache.NewStore(a.log, db).Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	a.log.Info().Msg("Cache cleared")
	return nil
}

// calculateStatistics summarizes a batch run
func calculateStatistics(bands []domain.Band, results []*domain.CacheEntry, preResolved map[string]bool, failed int) domain.Statistics {
	stats := domain.Statistics{
		Total:  len(bands),
		Failed: failed,
	}

	for i, entry := range results {
		if entry == nil {
			continue
		}
		if preResolved[bands[i].Name] {
			stats.FromCache++
		}
		if entry.Missing {
			stats.Missing++
		} else if entry.ImageURL != "" {
			stats.Resolved++
		}
	}

	if stats.Total > 0 {
		stats.CoveragePercent = (float64(stats.Resolved) / float64(stats.Total)) * 100
	}

	return stats
}
