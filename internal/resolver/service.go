package resolver

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/commons"
	"github.com/varoOP/bandpix/internal/domain"
	"github.com/varoOP/bandpix/internal/wikidata"
)

// Service resolves a representative image plus attribution metadata for a
// band, consulting the persistent cache first and falling back through the
// structured graph and the full-text search.
type Service interface {
	Resolve(ctx context.Context, name string, year int) (*domain.CacheEntry, error)
}

type service struct {
	log      zerolog.Logger
	wikidata wikidata.Service
	commons  commons.Service
	store    domain.CacheStore
}

// NewService creates a resolver over the two lookup sources and the cache.
func NewService(log zerolog.Logger, wd wikidata.Service, cm commons.Service, store domain.CacheStore) Service {
	return &service{
		log:      log.With().Str("module", "resolver").Logger(),
		wikidata: wd,
		commons:  cm,
		store:    store,
	}
}

// Resolve runs the resolution state machine for one band:
// unresolved -> (cache-hit | resolved | confirmed-absent), terminal once
// cached. A cache entry with a populated image URL or the missing flag is
// returned as-is with zero network traffic; only an explicit cache clear
// re-opens resolution. The one error that escapes is a hard transport
// failure from the metadata stage.
func (s *service) Resolve(ctx context.Context, name string, year int) (*domain.CacheEntry, error) {
	if name == "" {
		return nil, nil
	}

	// The cache is reloaded on every call; no in-memory state survives
	// between resolutions.
	entries := s.store.Load(ctx)
	if cached, ok := entries[name]; ok && cached.Resolved() {
		s.log.Debug().Str("name", name).Bool("missing", cached.Missing).Msg("cache hit")
		return &cached, nil
	}

	ref := s.wikidata.FindImage(ctx, name)
	if ref == "" {
		ref = s.commons.SearchFile(ctx, name)
	}

	if ref == "" {
		s.log.Info().Str("name", name).Msg("no image found in either source")
		return s.persist(ctx, domain.CacheEntry{
			Name:      name,
			Year:      year,
			Missing:   true,
			FetchedAt: time.Now(),
		}), nil
	}

	meta, err := s.commons.FetchMetadata(ctx, ref)
	if err != nil {
		return nil, errors.Wrapf(err, "metadata fetch failed for %q", name)
	}

	if meta == nil || meta.ImageURL == "" {
		s.log.Info().Str("name", name).Str("file", string(ref)).Msg("file reference yielded no usable image")
		return s.persist(ctx, domain.CacheEntry{
			Name:      name,
			Year:      year,
			Missing:   true,
			FileName:  string(ref),
			FetchedAt: time.Now(),
		}), nil
	}

	s.log.Info().Str("name", name).Str("file", meta.FileName).Str("license", meta.LicenseName).Msg("resolved image")
	return s.persist(ctx, domain.CacheEntry{
		Name:        name,
		Year:        year,
		ImageURL:    meta.ImageURL,
		FilePageURL: meta.FilePageURL,
		Credit:      meta.Credit,
		LicenseName: meta.LicenseName,
		LicenseURL:  meta.LicenseURL,
		FileName:    meta.FileName,
		FetchedAt:   time.Now(),
	}), nil
}

func (s *service) persist(ctx context.Context, e domain.CacheEntry) *domain.CacheEntry {
	s.store.Save(ctx, map[string]domain.CacheEntry{e.Name: e})
	return &e
}
