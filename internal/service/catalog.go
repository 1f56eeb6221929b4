package service

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"inventory-rest-api/internal/cache"
	"inventory-rest-api/internal/model"
	"inventory-rest-api/internal/repository"
	"inventory-rest-api/pkg/apierror"
	"inventory-rest-api/pkg/uid"
)

// Cache keys for the marshaled collections.
const (
	itemsCacheKey      = "catalog:items"
	categoriesCacheKey = "catalog:categories"
)

// Catalog is the sole owner of the item and category collections. All
// validation happens here, at the mutation boundary, so every caller gets
// identical guarantees. Per-collection mutexes serialize read-modify-write
// cycles: concurrent writes to the same collection are linearized and a lost
// update cannot occur within the process.
type Catalog struct {
	repo     repository.CatalogRepository
	snapshot cache.Cache
	cacheTTL time.Duration
	validate *validator.Validate
	logger   *logrus.Logger

	itemsMu      sync.Mutex
	categoriesMu sync.Mutex
}

// NewCatalog creates a catalog service without a snapshot cache.
// Returns nil if repo is nil (required dependency).
func NewCatalog(repo repository.CatalogRepository, logger *logrus.Logger) *Catalog {
	if repo == nil {
		return nil
	}
	return &Catalog{
		repo:     repo,
		validate: newDraftValidator(),
		logger:   logger,
	}
}

// NewCatalogWithCache creates a catalog service that serves reads through a
// snapshot cache. Only writers publish cache entries: every successful write
// replaces the affected collection's snapshot while still holding that
// collection's mutex, and readers never write the cache. A reader that
// loaded from the repository concurrently with a write therefore cannot
// re-install its pre-write snapshot and mask the committed write.
func NewCatalogWithCache(repo repository.CatalogRepository, snapshot cache.Cache, ttl time.Duration, logger *logrus.Logger) *Catalog {
	c := NewCatalog(repo, logger)
	if c == nil {
		return nil
	}
	c.snapshot = snapshot
	c.cacheTTL = ttl
	return c
}

// newDraftValidator builds the validator used for drafts, reporting json
// field names instead of Go struct field names.
func newDraftValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ListItems returns all items in persisted insertion order.
func (c *Catalog) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := c.loadItems(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load items")
		return nil, apierror.InternalError("Failed to fetch items")
	}
	return items, nil
}

// GetItem returns the item with the given id.
func (c *Catalog) GetItem(ctx context.Context, id string) (model.Item, error) {
	items, err := c.loadItems(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load items")
		return model.Item{}, apierror.InternalError("Failed to fetch item")
	}

	for _, it := range items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.Item{}, apierror.NotFound("Item not found")
}

// CreateItem validates the draft, assigns id and timestamps and appends the
// item to the persisted collection. The draft's SKU is trimmed and uppercased
// before the duplicate check.
func (c *Catalog) CreateItem(ctx context.Context, draft model.ItemDraft) (model.Item, error) {
	normalizeItemDraft(&draft)
	if err := c.validateDraft(draft); err != nil {
		return model.Item{}, err
	}

	c.itemsMu.Lock()
	defer c.itemsMu.Unlock()

	items, err := c.loadItems(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load items")
		return model.Item{}, apierror.InternalError("Failed to create item")
	}

	if skuTaken(items, draft.SKU, "") {
		return model.Item{}, apierror.DuplicateSKU()
	}

	now := time.Now().UTC()
	item := itemFromDraft(draft)
	item.ID = uid.New()
	item.CreatedAt = now
	item.UpdatedAt = now

	items = append(items, item)
	if err := c.saveItems(ctx, items); err != nil {
		c.logger.WithError(err).Error("failed to persist items")
		return model.Item{}, apierror.InternalError("Failed to create item")
	}

	return item, nil
}

// UpdateItem replaces all mutable fields of the identified item with the
// draft's values. The record's id and createdAt are preserved; updatedAt is
// advanced. The record itself is excluded from the SKU collision check.
func (c *Catalog) UpdateItem(ctx context.Context, id string, draft model.ItemDraft) (model.Item, error) {
	normalizeItemDraft(&draft)
	if err := c.validateDraft(draft); err != nil {
		return model.Item{}, err
	}

	c.itemsMu.Lock()
	defer c.itemsMu.Unlock()

	items, err := c.loadItems(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load items")
		return model.Item{}, apierror.InternalError("Failed to update item")
	}

	index := -1
	for i, it := range items {
		if it.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return model.Item{}, apierror.NotFound("Item not found")
	}

	if skuTaken(items, draft.SKU, id) {
		return model.Item{}, apierror.DuplicateSKU()
	}

	item := itemFromDraft(draft)
	item.ID = id
	item.CreatedAt = items[index].CreatedAt
	item.UpdatedAt = time.Now().UTC()

	items[index] = item
	if err := c.saveItems(ctx, items); err != nil {
		c.logger.WithError(err).Error("failed to persist items")
		return model.Item{}, apierror.InternalError("Failed to update item")
	}

	return item, nil
}

// DeleteItem removes the item with the given id.
func (c *Catalog) DeleteItem(ctx context.Context, id string) error {
	c.itemsMu.Lock()
	defer c.itemsMu.Unlock()

	items, err := c.loadItems(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load items")
		return apierror.InternalError("Failed to delete item")
	}

	remaining := items[:0:0]
	for _, it := range items {
		if it.ID != id {
			remaining = append(remaining, it)
		}
	}
	if len(remaining) == len(items) {
		return apierror.NotFound("Item not found")
	}

	if err := c.saveItems(ctx, remaining); err != nil {
		c.logger.WithError(err).Error("failed to persist items")
		return apierror.InternalError("Failed to delete item")
	}
	return nil
}

// ListCategories returns all categories in persisted insertion order.
func (c *Catalog) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := c.loadCategories(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load categories")
		return nil, apierror.InternalError("Failed to fetch categories")
	}
	return categories, nil
}

// CreateCategory appends a new category. Color falls back to the default
// token when the draft omits it.
func (c *Catalog) CreateCategory(ctx context.Context, draft model.CategoryDraft) (model.Category, error) {
	normalizeCategoryDraft(&draft)
	if err := c.validateDraft(draft); err != nil {
		return model.Category{}, err
	}

	c.categoriesMu.Lock()
	defer c.categoriesMu.Unlock()

	categories, err := c.loadCategories(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load categories")
		return model.Category{}, apierror.InternalError("Failed to create category")
	}

	category := model.Category{
		ID:    uid.New(),
		Name:  draft.Name,
		Color: draft.Color,
	}
	if category.Color == "" {
		category.Color = model.DefaultCategoryColor
	}

	categories = append(categories, category)
	if err := c.saveCategories(ctx, categories); err != nil {
		c.logger.WithError(err).Error("failed to persist categories")
		return model.Category{}, apierror.InternalError("Failed to create category")
	}

	return category, nil
}

// UpdateCategory replaces the identified category's name and, when the draft
// carries one, its color. An omitted color keeps the stored value.
func (c *Catalog) UpdateCategory(ctx context.Context, id string, draft model.CategoryDraft) (model.Category, error) {
	normalizeCategoryDraft(&draft)
	if err := c.validateDraft(draft); err != nil {
		return model.Category{}, err
	}

	c.categoriesMu.Lock()
	defer c.categoriesMu.Unlock()

	categories, err := c.loadCategories(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load categories")
		return model.Category{}, apierror.InternalError("Failed to update category")
	}

	index := -1
	for i, cat := range categories {
		if cat.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return model.Category{}, apierror.NotFound("Category not found")
	}

	categories[index].Name = draft.Name
	if draft.Color != "" {
		categories[index].Color = draft.Color
	}

	if err := c.saveCategories(ctx, categories); err != nil {
		c.logger.WithError(err).Error("failed to persist categories")
		return model.Category{}, apierror.InternalError("Failed to update category")
	}

	return categories[index], nil
}

// DeleteCategory removes the category with the given id. Items referencing
// the category's name are left untouched (no cascading delete).
func (c *Catalog) DeleteCategory(ctx context.Context, id string) error {
	c.categoriesMu.Lock()
	defer c.categoriesMu.Unlock()

	categories, err := c.loadCategories(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to load categories")
		return apierror.InternalError("Failed to delete category")
	}

	remaining := categories[:0:0]
	for _, cat := range categories {
		if cat.ID != id {
			remaining = append(remaining, cat)
		}
	}
	if len(remaining) == len(categories) {
		return apierror.NotFound("Category not found")
	}

	if err := c.saveCategories(ctx, remaining); err != nil {
		c.logger.WithError(err).Error("failed to persist categories")
		return apierror.InternalError("Failed to delete category")
	}
	return nil
}

// loadItems reads the item collection, serving from the snapshot cache when
// one is configured. Readers never write the cache: a snapshot published
// here could have been loaded before a concurrent write committed, and
// storing it would hide that write until the entry expired.
func (c *Catalog) loadItems(ctx context.Context) ([]model.Item, error) {
	if c.snapshot != nil {
		if data, err := c.snapshot.Get(ctx, itemsCacheKey); err == nil {
			var items []model.Item
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
			// Corrupt cache entry: drop it and fall through to the repository.
			_ = c.snapshot.Delete(ctx, itemsCacheKey)
		}
	}
	return c.repo.ListItems(ctx)
}

// saveItems persists the collection and publishes the new snapshot. Callers
// hold itemsMu, so the Set cannot interleave with another write.
func (c *Catalog) saveItems(ctx context.Context, items []model.Item) error {
	if err := c.repo.SaveItems(ctx, items); err != nil {
		return err
	}
	if c.snapshot != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = c.snapshot.Set(ctx, itemsCacheKey, data, c.cacheTTL)
		} else {
			_ = c.snapshot.Delete(ctx, itemsCacheKey)
		}
	}
	return nil
}

func (c *Catalog) loadCategories(ctx context.Context) ([]model.Category, error) {
	if c.snapshot != nil {
		if data, err := c.snapshot.Get(ctx, categoriesCacheKey); err == nil {
			var categories []model.Category
			if err := json.Unmarshal(data, &categories); err == nil {
				return categories, nil
			}
			_ = c.snapshot.Delete(ctx, categoriesCacheKey)
		}
	}
	return c.repo.ListCategories(ctx)
}

// saveCategories mirrors saveItems; callers hold categoriesMu.
func (c *Catalog) saveCategories(ctx context.Context, categories []model.Category) error {
	if err := c.repo.SaveCategories(ctx, categories); err != nil {
		return err
	}
	if c.snapshot != nil {
		if data, err := json.Marshal(categories); err == nil {
			_ = c.snapshot.Set(ctx, categoriesCacheKey, data, c.cacheTTL)
		} else {
			_ = c.snapshot.Delete(ctx, categoriesCacheKey)
		}
	}
	return nil
}

// validateDraft runs struct validation and converts failures into a 400 with
// per-field details.
func (c *Catalog) validateDraft(draft interface{}) error {
	err := c.validate.Struct(draft)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierror.BadRequest("invalid request payload")
	}

	details := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, apierror.FieldError{
			Field:   fe.Field(),
			Message: fieldErrorMessage(fe),
		})
	}
	return apierror.ValidationError("Validation failed", details...)
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "gtefield":
		return "maxStock must be greater than or equal to minStock"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// normalizeItemDraft trims free-text fields and uppercases the SKU. SKU
// comparison is case-sensitive after this write-time normalization.
func normalizeItemDraft(draft *model.ItemDraft) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Description = strings.TrimSpace(draft.Description)
	draft.Category = strings.TrimSpace(draft.Category)
	draft.SKU = strings.ToUpper(strings.TrimSpace(draft.SKU))
	draft.Supplier = strings.TrimSpace(draft.Supplier)
	draft.Location = strings.TrimSpace(draft.Location)
}

func normalizeCategoryDraft(draft *model.CategoryDraft) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Color = strings.TrimSpace(draft.Color)
}

// skuTaken reports whether sku belongs to an item other than excludeID.
func skuTaken(items []model.Item, sku, excludeID string) bool {
	for _, it := range items {
		if it.SKU == sku && it.ID != excludeID {
			return true
		}
	}
	return false
}

func itemFromDraft(draft model.ItemDraft) model.Item {
	return model.Item{
		Name:        draft.Name,
		Description: draft.Description,
		Category:    draft.Category,
		Quantity:    draft.Quantity,
		Price:       draft.Price,
		SKU:         draft.SKU,
		Supplier:    draft.Supplier,
		Location:    draft.Location,
		MinStock:    draft.MinStock,
		MaxStock:    draft.MaxStock,
	}
}
