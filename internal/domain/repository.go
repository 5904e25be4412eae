package domain

import "context"

// CacheStore defines the interface for the persistent resolution cache.
// Load must be total: a missing or unreadable store degrades to an empty
// mapping. Save is best-effort: implementations log and swallow persistence
// failures so the in-memory result of the current operation still stands.
type CacheStore interface {
	Load(ctx context.Context) map[string]CacheEntry
	Save(ctx context.Context, entries map[string]CacheEntry)
	Clear(ctx context.Context) error
}

// BandRepository defines the interface for band list storage.
type BandRepository interface {
	Get(ctx context.Context, path string) ([]Band, error)
	Store(ctx context.Context, path string, bands []Band) error
}

// FavoritesRepository defines the interface for the favorites list.
type FavoritesRepository interface {
	GetFavorites(ctx context.Context, path string) ([]Favorite, error)
	StoreFavorites(ctx context.Context, path string, favorites []Favorite) error
}

// NotificationService sends run outcome notifications.
type NotificationService interface {
	SendSuccess(ctx context.Context, stats Statistics) error
	SendError(ctx context.Context, err error) error
}
