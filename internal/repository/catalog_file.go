package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"inventory-rest-api/internal/model"
)

const (
	itemsFileName      = "items.json"
	categoriesFileName = "categories.json"
)

// FileCatalogRepository implements CatalogRepository over two JSON array
// files, one per collection. This is the default backend and the source of
// truth format: pretty-printed arrays a person can inspect and edit.
//
// Writes go through a temp file followed by rename so a crash mid-write never
// leaves a truncated collection behind.
type FileCatalogRepository struct {
	dataDir string
	logger  *logrus.Logger

	itemsMu      sync.RWMutex
	categoriesMu sync.RWMutex
}

// NewFileCatalogRepository creates the data directory if needed and seeds
// both collection files with default content on first run.
func NewFileCatalogRepository(dataDir string, logger *logrus.Logger) (*FileCatalogRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	r := &FileCatalogRepository{dataDir: dataDir, logger: logger}

	if err := r.seed(); err != nil {
		return nil, err
	}

	return r, nil
}

// seed writes the default collections for any file that does not exist yet.
// Existing files are never touched.
func (r *FileCatalogRepository) seed() error {
	itemsPath := filepath.Join(r.dataDir, itemsFileName)
	if _, err := os.Stat(itemsPath); os.IsNotExist(err) {
		if err := writeJSONFile(itemsPath, model.SeedItems(time.Now().UTC())); err != nil {
			return fmt.Errorf("failed to seed items: %w", err)
		}
		r.logger.WithField("path", itemsPath).Info("seeded default items")
	}

	categoriesPath := filepath.Join(r.dataDir, categoriesFileName)
	if _, err := os.Stat(categoriesPath); os.IsNotExist(err) {
		if err := writeJSONFile(categoriesPath, model.SeedCategories()); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		r.logger.WithField("path", categoriesPath).Info("seeded default categories")
	}

	return nil
}

// ListItems returns all items in persisted insertion order.
func (r *FileCatalogRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	r.itemsMu.RLock()
	defer r.itemsMu.RUnlock()

	var items []model.Item
	if err := readJSONFile(filepath.Join(r.dataDir, itemsFileName), &items); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}

// SaveItems replaces the persisted item collection. A nil slice is stored as
// an empty array so the file always holds valid array JSON.
func (r *FileCatalogRepository) SaveItems(ctx context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}

	r.itemsMu.Lock()
	defer r.itemsMu.Unlock()

	if err := writeJSONFile(filepath.Join(r.dataDir, itemsFileName), items); err != nil {
		return fmt.Errorf("failed to write items: %w", err)
	}
	return nil
}

// ListCategories returns all categories in persisted insertion order.
func (r *FileCatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	r.categoriesMu.RLock()
	defer r.categoriesMu.RUnlock()

	var categories []model.Category
	if err := readJSONFile(filepath.Join(r.dataDir, categoriesFileName), &categories); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

// SaveCategories replaces the persisted category collection.
func (r *FileCatalogRepository) SaveCategories(ctx context.Context, categories []model.Category) error {
	if categories == nil {
		categories = []model.Category{}
	}

	r.categoriesMu.Lock()
	defer r.categoriesMu.Unlock()

	if err := writeJSONFile(filepath.Join(r.dataDir, categoriesFileName), categories); err != nil {
		return fmt.Errorf("failed to write categories: %w", err)
	}
	return nil
}

// Close is a no-op; the repository holds no open handles between calls.
func (r *FileCatalogRepository) Close() error {
	return nil
}

func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// writeJSONFile marshals v and writes it via temp-file-then-rename so readers
// never observe a partial write.
func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Ensure FileCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*FileCatalogRepository)(nil)
