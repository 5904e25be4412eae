package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/varoOP/bandpix/internal/domain"
)

// FileRepository implements domain.BandRepository and
// domain.FavoritesRepository using JSON file storage.
type FileRepository struct {
	log zerolog.Logger
}

// NewFileRepository creates a new file-based repository.
func NewFileRepository(log zerolog.Logger) *FileRepository {
	return &FileRepository{
		log: log.With().Str("module", "repository").Logger(),
	}
}

var _ domain.BandRepository = (*FileRepository)(nil)
var _ domain.FavoritesRepository = (*FileRepository)(nil)

// Get retrieves the band list from a file.
func (r *FileRepository) Get(ctx context.Context, path string) ([]domain.Band, error) {
	bands := []domain.Band{}
	if err := r.readJSON(path, &bands); err != nil {
		return nil, err
	}
	return bands, nil
}

// Store saves the band list to a file.
func (r *FileRepository) Store(ctx context.Context, path string, bands []domain.Band) error {
	return r.writeJSON(path, bands)
}

// GetFavorites retrieves the favorites list. A missing file is not an
// error; the list simply starts empty.
func (r *FileRepository) GetFavorites(ctx context.Context, path string) ([]domain.Favorite, error) {
	favorites := []domain.Favorite{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return favorites, nil
	}
	if err := r.readJSON(path, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// StoreFavorites saves the favorites list.
func (r *FileRepository) StoreFavorites(ctx context.Context, path string, favorites []domain.Favorite) error {
	return r.writeJSON(path, favorites)
}

func (r *FileRepository) readJSON(path string, v any) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s: %w", path, err)
		}
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to unmarshal json from %s: %w", path, err)
	}

	return nil
}

func (r *FileRepository) writeJSON(path string, v any) error {
	j, err := json.MarshalIndent(v, "", "   ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(j); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
