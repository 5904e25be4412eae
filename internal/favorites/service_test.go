package favorites_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/domain"
	"github.com/varoOP/bandpix/internal/favorites"
)

type memRepo struct {
	favs   []domain.Favorite
	stores int
}

func (m *memRepo) GetFavorites(ctx context.Context, path string) ([]domain.Favorite, error) {
	out := make([]domain.Favorite, len(m.favs))
	copy(out, m.favs)
	return out, nil
}

func (m *memRepo) StoreFavorites(ctx context.Context, path string, favs []domain.Favorite) error {
	m.stores++
	m.favs = favs
	return nil
}

func TestPatchImageUpdatesChangedURL(t *testing.T) {
	repo := &memRepo{favs: []domain.Favorite{
		{Name: "Rush", Img: "https://upload.test/old.jpg", Year: 1974},
		{Name: "Yes", Img: "https://upload.test/yes.jpg", Year: 1968},
	}}
	svc := favorites.NewService(zerolog.Nop(), repo)

	err := svc.PatchImage(context.Background(), "favorites.json", &domain.CacheEntry{
		Name:     "Rush",
		Year:     1980,
		ImageURL: "https://upload.test/new.jpg",
	})
	if err != nil {
		t.Fatalf("PatchImage returned error: %v", err)
	}

	if repo.favs[0].Img != "https://upload.test/new.jpg" {
		t.Fatalf("image not patched: %+v", repo.favs[0])
	}
	if repo.favs[0].Year != 1974 {
		t.Fatalf("existing year must not be overwritten, got %d", repo.favs[0].Year)
	}
	if repo.favs[1].Img != "https://upload.test/yes.jpg" {
		t.Fatal("unrelated favorite was modified")
	}
}

func TestPatchImageFillsMissingYear(t *testing.T) {
	repo := &memRepo{favs: []domain.Favorite{{Name: "Rush", Img: "https://upload.test/x.jpg"}}}
	svc := favorites.NewService(zerolog.Nop(), repo)

	err := svc.PatchImage(context.Background(), "favorites.json", &domain.CacheEntry{
		Name:     "Rush",
		Year:     1974,
		ImageURL: "https://upload.test/x.jpg",
	})
	if err != nil {
		t.Fatalf("PatchImage returned error: %v", err)
	}
	if repo.favs[0].Year != 1974 {
		t.Fatalf("empty year should be filled, got %d", repo.favs[0].Year)
	}
}

func TestPatchImageNoWriteWhenUnchanged(t *testing.T) {
	repo := &memRepo{favs: []domain.Favorite{{Name: "Rush", Img: "https://upload.test/x.jpg", Year: 1974}}}
	svc := favorites.NewService(zerolog.Nop(), repo)

	err := svc.PatchImage(context.Background(), "favorites.json", &domain.CacheEntry{
		Name:     "Rush",
		Year:     1980,
		ImageURL: "https://upload.test/x.jpg",
	})
	if err != nil {
		t.Fatalf("PatchImage returned error: %v", err)
	}
	if repo.stores != 0 {
		t.Fatalf("expected no store for unchanged favorites, got %d", repo.stores)
	}
}

func TestPatchImageIgnoresAbsenceEntries(t *testing.T) {
	repo := &memRepo{favs: []domain.Favorite{{Name: "Rush", Img: "https://upload.test/x.jpg"}}}
	svc := favorites.NewService(zerolog.Nop(), repo)

	if err := svc.PatchImage(context.Background(), "favorites.json", &domain.CacheEntry{Name: "Rush", Missing: true}); err != nil {
		t.Fatalf("PatchImage returned error: %v", err)
	}
	if err := svc.PatchImage(context.Background(), "favorites.json", nil); err != nil {
		t.Fatalf("PatchImage returned error for nil entry: %v", err)
	}
	if repo.stores != 0 {
		t.Fatal("absence and nil entries must not trigger writes")
	}
}
