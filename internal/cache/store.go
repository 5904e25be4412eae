package cache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/domain"
)

// Store implements domain.CacheStore on top of the SQLite cache database.
//
// Load never fails: any read problem degrades to an empty mapping so the
// resolver simply re-fetches. Save swallows persistence errors after
// logging them; the in-memory result of the current resolution still
// reaches the caller.
type Store struct {
	log zerolog.Logger
	db  *DB
}

var _ domain.CacheStore = (*Store)(nil)

// NewStore creates a cache store backed by db.
func NewStore(log zerolog.Logger, db *DB) *Store {
	return &Store{
		log: log.With().Str("module", "cache").Logger(),
		db:  db,
	}
}

// Load returns all cached resolution entries keyed by band name.
func (s *Store) Load(ctx context.Context) map[string]domain.CacheEntry {
	entries := make(map[string]domain.CacheEntry)

	queryBuilder := s.db.squirrel.
		Select("name", "year", "missing", "image_url", "file_page_url", "credit", "license_name", "license_url", "file_name", "fetched_at").
		From("resolution_cache")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to build cache load query")
		return entries
	}

	rows, err := s.db.handler.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load cache, starting empty")
		return entries
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.CacheEntry
		var fetchedAt string
		if err := rows.Scan(&e.Name, &e.Year, &e.Missing, &e.ImageURL, &e.FilePageURL, &e.Credit, &e.LicenseName, &e.LicenseURL, &e.FileName, &fetchedAt); err != nil {
			s.log.Warn().Err(err).Msg("failed to scan cache entry, skipping")
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, fetchedAt); err == nil {
			e.FetchedAt = t
		}
		if e.Name == "" {
			continue
		}
		entries[e.Name] = e
	}

	if err := rows.Err(); err != nil {
		s.log.Warn().Err(err).Msg("error iterating cache entries")
	}

	return entries
}

// Save upserts the given entries. Failures are logged and swallowed.
func (s *Store) Save(ctx context.Context, entries map[string]domain.CacheEntry) {
	for name, e := range entries {
		if err := s.upsert(ctx, name, e); err != nil {
			s.log.Warn().Err(err).Str("name", name).Msg("failed to persist cache entry")
		}
	}
}

func (s *Store) upsert(ctx context.Context, name string, e domain.CacheEntry) error {
	queryBuilder := s.db.squirrel.
		Replace("resolution_cache").
		Columns("name", "year", "missing", "image_url", "file_page_url", "credit", "license_name", "license_url", "file_name", "fetched_at").
		Values(name, e.Year, e.Missing, e.ImageURL, e.FilePageURL, e.Credit, e.LicenseName, e.LicenseURL, e.FileName, e.FetchedAt.UTC().Format(time.RFC3339Nano))

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building query")
	}

	s.log.Trace().Str("query", query).Interface("args", args).Msg("Upsert")

	_, err = s.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing query")
	}

	return nil
}

// Clear removes every cached entry, re-opening resolution for all names.
func (s *Store) Clear(ctx context.Context) error {
	queryBuilder := s.db.squirrel.Delete("resolution_cache")

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "error building delete query")
	}

	s.log.Trace().Str("query", query).Msg("Clear")

	_, err = s.db.handler.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "error executing delete query")
	}

	return nil
}
