package favorites

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/domain"
)

// Service patches the user-maintained favorites list with freshly resolved
// image URLs.
type Service interface {
	PatchImage(ctx context.Context, path string, entry *domain.CacheEntry) error
}

type service struct {
	log  zerolog.Logger
	repo domain.FavoritesRepository
}

// NewService creates a favorites patching service.
func NewService(log zerolog.Logger, repo domain.FavoritesRepository) Service {
	return &service{
		log:  log.With().Str("module", "favorites").Logger(),
		repo: repo,
	}
}

// PatchImage updates the favorite matching entry's name when the resolved
// image URL differs from the stored one. A stored non-empty year is never
// overwritten. Absence entries and unknown names are no-ops.
func (s *service) PatchImage(ctx context.Context, path string, entry *domain.CacheEntry) error {
	if entry == nil || entry.ImageURL == "" {
		return nil
	}

	favs, err := s.repo.GetFavorites(ctx, path)
	if err != nil {
		return errors.Wrap(err, "failed to load favorites")
	}

	changed := false
	for i := range favs {
		if favs[i].Name != entry.Name {
			continue
		}
		if favs[i].Img != entry.ImageURL {
			favs[i].Img = entry.ImageURL
			changed = true
		}
		if favs[i].Year == 0 && entry.Year != 0 {
			favs[i].Year = entry.Year
			changed = true
		}
	}

	if !changed {
		return nil
	}

	if err := s.repo.StoreFavorites(ctx, path, favs); err != nil {
		return errors.Wrap(err, "failed to store favorites")
	}

	s.log.Debug().Str("name", entry.Name).Msg("patched favorite image")
	return nil
}
