package repository

import (
	"context"

	"inventory-rest-api/internal/model"
)

// CatalogRepository defines persistence for the two catalog collections.
//
// Each collection is treated as a single addressable unit: callers read the
// whole collection, mutate the in-memory sequence, and write it back. Save
// operations replace the persisted collection atomically relative to that
// one call; a failed save leaves the previously persisted state intact.
// Implementations preserve insertion order across a load/save round trip.
type CatalogRepository interface {
	// ListItems returns all items in persisted insertion order.
	ListItems(ctx context.Context) ([]model.Item, error)

	// SaveItems replaces the persisted item collection.
	SaveItems(ctx context.Context, items []model.Item) error

	// ListCategories returns all categories in persisted insertion order.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// SaveCategories replaces the persisted category collection.
	SaveCategories(ctx context.Context, categories []model.Category) error

	// Close releases the underlying persistence handle.
	Close() error
}
