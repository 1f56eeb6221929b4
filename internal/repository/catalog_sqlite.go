package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required

	"inventory-rest-api/internal/model"
)

// SQLiteCatalogRepository implements CatalogRepository using SQLite.
// Collections live in two tables; an auto-increment seq column preserves
// insertion order, and saves replace the whole table inside a transaction so
// a failed write never leaves a half-replaced collection.
type SQLiteCatalogRepository struct {
	db     *sql.DB
	logger *logrus.Logger
	mu     sync.RWMutex
}

// NewSQLiteCatalogRepository opens (or creates) the SQLite database at dbPath
// and seeds the default catalog when the tables are empty.
func NewSQLiteCatalogRepository(dbPath string, logger *logrus.Logger) (*SQLiteCatalogRepository, error) {
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createSQLiteTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	r := &SQLiteCatalogRepository{db: db, logger: logger}

	if err := r.seed(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.WithField("path", dbPath).Info("sqlite catalog repository initialized")
	return r, nil
}

// sqliteDSN builds the connection string for modernc.org/sqlite, which takes
// pragmas as repeated _pragma=name(value) query parameters.
func sqliteDSN(dbPath string) string {
	return fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", dbPath)
}

func createSQLiteTables(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS catalog_items (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		price REAL NOT NULL,
		sku TEXT NOT NULL,
		supplier TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		min_stock INTEGER NOT NULL,
		max_stock INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS catalog_categories (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		color TEXT NOT NULL
	);
	`
	_, err := db.Exec(query)
	return err
}

// seed inserts the default collections when the tables are empty.
func (r *SQLiteCatalogRepository) seed(ctx context.Context) error {
	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_items").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if err := r.SaveItems(ctx, model.SeedItems(time.Now().UTC())); err != nil {
			return err
		}
	}

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_categories").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if err := r.SaveCategories(ctx, model.SeedCategories()); err != nil {
			return err
		}
	}

	return nil
}

// ListItems returns all items ordered by insertion sequence.
func (r *SQLiteCatalogRepository) ListItems(ctx context.Context) ([]model.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := `SELECT id, name, description, category, quantity, price, sku,
		supplier, location, min_stock, max_stock, created_at, updated_at
		FROM catalog_items ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var it model.Item
		var createdAt, updatedAt string
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Category,
			&it.Quantity, &it.Price, &it.SKU, &it.Supplier, &it.Location,
			&it.MinStock, &it.MaxStock, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if it.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if it.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveItems replaces the item collection in a single transaction.
func (r *SQLiteCatalogRepository) SaveItems(ctx context.Context, items []model.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_items"); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_items (id, name, description, category, quantity,
			price, sku, supplier, location, min_stock, max_stock, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		_, err := stmt.ExecContext(ctx, it.ID, it.Name, it.Description, it.Category,
			it.Quantity, it.Price, it.SKU, it.Supplier, it.Location,
			it.MinStock, it.MaxStock,
			it.CreatedAt.Format(time.RFC3339Nano), it.UpdatedAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to insert item %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListCategories returns all categories ordered by insertion sequence.
func (r *SQLiteCatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, color FROM catalog_categories ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// SaveCategories replaces the category collection in a single transaction.
func (r *SQLiteCatalogRepository) SaveCategories(ctx context.Context, categories []model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM catalog_categories"); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO catalog_categories (id, name, color) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range categories {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, c.Color); err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteCatalogRepository) Close() error {
	return r.db.Close()
}

// Ensure SQLiteCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*SQLiteCatalogRepository)(nil)
