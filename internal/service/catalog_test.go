package service_test

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"inventory-rest-api/internal/cache"
	"inventory-rest-api/internal/model"
	"inventory-rest-api/internal/repository"
	"inventory-rest-api/internal/service"
	"inventory-rest-api/pkg/apierror"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newCatalog returns a catalog backed by a file repository seeded with the
// five default items.
func newCatalog(t *testing.T) *service.Catalog {
	t.Helper()

	repo, err := repository.NewFileCatalogRepository(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return service.NewCatalog(repo, testLogger())
}

// newEmptyCatalog returns a catalog whose collections start empty.
func newEmptyCatalog(t *testing.T) *service.Catalog {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"items.json", "categories.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]\n"), 0o644); err != nil {
			t.Fatalf("failed to write empty collection: %v", err)
		}
	}

	repo, err := repository.NewFileCatalogRepository(dir, testLogger())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return service.NewCatalog(repo, testLogger())
}

func validDraft() model.ItemDraft {
	return model.ItemDraft{
		Name:        "USB Hub",
		Description: "4-port USB 3.0 hub",
		Category:    "Electronics",
		Quantity:    30,
		Price:       24.99,
		SKU:         "HUB-001",
		Supplier:    "TechCorp Inc.",
		Location:    "Warehouse A",
		MinStock:    10,
		MaxStock:    60,
	}
}

func TestCreateItemRoundTrip(t *testing.T) {
	ctx := context.Background()
	catalog := newEmptyCatalog(t)

	draft := validDraft()
	created, err := catalog.CreateItem(ctx, draft)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	if created.ID == "" {
		t.Fatal("expected assigned id")
	}
	if created.CreatedAt.IsZero() || !created.UpdatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected createdAt == updatedAt, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := catalog.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got.Name != draft.Name || got.SKU != draft.SKU || got.Quantity != draft.Quantity ||
		got.Price != draft.Price || got.MinStock != draft.MinStock || got.MaxStock != draft.MaxStock {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCreateItemDuplicateSKU(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	draft := validDraft()
	draft.SKU = "LAP-001" // collides with seed data

	if _, err := catalog.CreateItem(ctx, draft); !apierror.Is(err, apierror.CodeDuplicateSKU) {
		t.Fatalf("expected DuplicateSKU, got %v", err)
	}

	items, err := catalog.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("store changed after rejected create: %d items", len(items))
	}
}

func TestCreateItemNormalizesSKU(t *testing.T) {
	ctx := context.Background()
	catalog := newEmptyCatalog(t)

	draft := validDraft()
	draft.SKU = "  hub-001 "
	created, err := catalog.CreateItem(ctx, draft)
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if created.SKU != "HUB-001" {
		t.Fatalf("expected uppercased SKU, got %q", created.SKU)
	}

	// Same SKU in different case collides after normalization.
	second := validDraft()
	second.SKU = "Hub-001"
	if _, err := catalog.CreateItem(ctx, second); !apierror.Is(err, apierror.CodeDuplicateSKU) {
		t.Fatalf("expected DuplicateSKU, got %v", err)
	}
}

func TestCreateItemValidation(t *testing.T) {
	ctx := context.Background()
	catalog := newEmptyCatalog(t)

	cases := []struct {
		name   string
		mutate func(*model.ItemDraft)
		field  string
	}{
		{"missing name", func(d *model.ItemDraft) { d.Name = "   " }, "name"},
		{"missing sku", func(d *model.ItemDraft) { d.SKU = "" }, "sku"},
		{"negative quantity", func(d *model.ItemDraft) { d.Quantity = -1 }, "quantity"},
		{"negative price", func(d *model.ItemDraft) { d.Price = -0.01 }, "price"},
		{"negative minStock", func(d *model.ItemDraft) { d.MinStock = -5 }, "minStock"},
		{"max below min", func(d *model.ItemDraft) { d.MinStock = 10; d.MaxStock = 9 }, "maxStock"},
	}

	for _, tc := range cases {
		draft := validDraft()
		tc.mutate(&draft)

		_, err := catalog.CreateItem(ctx, draft)
		if !apierror.Is(err, apierror.CodeValidation) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
			continue
		}

		apiErr := err.(*apierror.Error)
		found := false
		for _, d := range apiErr.Details {
			if d.Field == tc.field {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected detail for field %q, got %+v", tc.name, tc.field, apiErr.Details)
		}
	}

	if items, _ := catalog.ListItems(ctx); len(items) != 0 {
		t.Fatalf("store changed after rejected drafts: %d items", len(items))
	}
}

func TestUpdateItemPreservesIdentityAndAdvancesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	before, err := catalog.GetItem(ctx, "1")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	draft := validDraft()
	draft.SKU = before.SKU // unchanged SKU must not collide with itself
	draft.Quantity = 3
	draft.MinStock = 5
	draft.MaxStock = 50

	updated, err := catalog.UpdateItem(ctx, "1", draft)
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}

	if updated.ID != "1" {
		t.Errorf("id changed to %q", updated.ID)
	}
	if !updated.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("createdAt changed: %v -> %v", before.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("updatedAt did not advance: %v -> %v", before.UpdatedAt, updated.UpdatedAt)
	}
	if updated.Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", updated.Quantity)
	}
}

func TestUpdateItemDuplicateSKUExcludesSelf(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	// Taking another item's SKU is rejected.
	draft := validDraft()
	draft.SKU = "MOU-001"
	if _, err := catalog.UpdateItem(ctx, "1", draft); !apierror.Is(err, apierror.CodeDuplicateSKU) {
		t.Fatalf("expected DuplicateSKU, got %v", err)
	}

	// Keeping its own SKU is fine.
	draft.SKU = "LAP-001"
	if _, err := catalog.UpdateItem(ctx, "1", draft); err != nil {
		t.Fatalf("self-SKU update failed: %v", err)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	catalog := newCatalog(t)
	if _, err := catalog.UpdateItem(context.Background(), "nope", validDraft()); !apierror.Is(err, apierror.CodeNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestDeleteItemThenGet(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	if err := catalog.DeleteItem(ctx, "3"); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}
	if _, err := catalog.GetItem(ctx, "3"); !apierror.Is(err, apierror.CodeNotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
	if err := catalog.DeleteItem(ctx, "3"); !apierror.Is(err, apierror.CodeNotFound) {
		t.Fatalf("expected NotFound on second delete, got %v", err)
	}
}

func TestCreateCategoryDefaultsColor(t *testing.T) {
	ctx := context.Background()
	catalog := newEmptyCatalog(t)

	created, err := catalog.CreateCategory(ctx, model.CategoryDraft{Name: "Garden"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if created.Color != model.DefaultCategoryColor {
		t.Fatalf("expected default color, got %q", created.Color)
	}
}

func TestUpdateCategoryPreservesColorWhenOmitted(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	updated, err := catalog.UpdateCategory(ctx, "1", model.CategoryDraft{Name: "Gadgets"})
	if err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if updated.Name != "Gadgets" {
		t.Errorf("expected renamed category, got %q", updated.Name)
	}
	if updated.Color != "#3b82f6" {
		t.Errorf("expected color preserved, got %q", updated.Color)
	}

	updated, err = catalog.UpdateCategory(ctx, "1", model.CategoryDraft{Name: "Gadgets", Color: "#000000"})
	if err != nil {
		t.Fatalf("UpdateCategory failed: %v", err)
	}
	if updated.Color != "#000000" {
		t.Errorf("expected color replaced, got %q", updated.Color)
	}
}

func TestDeleteCategoryDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	// Category 1 is Electronics; seed items 1 and 2 reference it by name.
	if err := catalog.DeleteCategory(ctx, "1"); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}

	items, err := catalog.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("items touched by category delete: %d left", len(items))
	}
	if items[0].Category != "Electronics" {
		t.Fatalf("dangling category name rewritten: %q", items[0].Category)
	}
}

func TestSKUUniquenessHoldsAcrossStore(t *testing.T) {
	ctx := context.Background()
	catalog := newCatalog(t)

	if _, err := catalog.CreateItem(ctx, validDraft()); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	items, err := catalog.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	seen := map[string]bool{}
	for _, it := range items {
		if seen[it.SKU] {
			t.Fatalf("duplicate SKU in store: %s", it.SKU)
		}
		seen[it.SKU] = true
	}
}

// Sanity check that the persisted file stays a valid JSON array after writes.
func TestPersistedFileStaysWellFormed(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := repository.NewFileCatalogRepository(dir, testLogger())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	defer repo.Close()

	catalog := service.NewCatalog(repo, testLogger())
	if _, err := catalog.CreateItem(ctx, validDraft()); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "items.json"))
	if err != nil {
		t.Fatalf("failed to read items file: %v", err)
	}
	var out []model.Item
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("items file is not a valid JSON array: %v", err)
	}
	if len(out) != 6 {
		t.Fatalf("expected 6 persisted items, got %d", len(out))
	}
}

// interleavingRepository wraps another repository and runs afterList exactly
// once, after a ListItems call has read from the underlying store but before
// the result reaches the caller.
type interleavingRepository struct {
	repository.CatalogRepository
	afterList func()
}

func (r *interleavingRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := r.CatalogRepository.ListItems(ctx)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return items, err
}

// A write that commits while a cached read is loading from the repository
// must be visible to the next read. The reader's pre-write view must not end
// up in the snapshot cache, where it would hide the new item until expiry.
func TestListItemsSeesWriteCommittedDuringRead(t *testing.T) {
	ctx := context.Background()

	fileRepo, err := repository.NewFileCatalogRepository(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { fileRepo.Close() })

	repo := &interleavingRepository{CatalogRepository: fileRepo}
	catalog := service.NewCatalogWithCache(repo, cache.NewMemoryCache(), time.Minute, testLogger())

	repo.afterList = func() {
		if _, err := catalog.CreateItem(ctx, validDraft()); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
	}

	// Loads the five seeded items from the repository while the hook commits
	// a sixth.
	stale, err := catalog.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(stale) != 5 {
		t.Fatalf("expected 5 items from the interleaved read, got %d", len(stale))
	}

	items, err := catalog.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 6 {
		t.Fatalf("expected the committed item to be visible, got %d items", len(items))
	}
}
