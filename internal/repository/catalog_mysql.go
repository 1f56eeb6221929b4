package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"inventory-rest-api/internal/model"
)

// MySQLCatalogRepository implements CatalogRepository using MySQL. Same table
// shape as the SQLite backend: seq preserves insertion order and saves
// replace the whole collection transactionally. The DSN must carry
// parseTime=true so DATETIME columns scan into time.Time.
type MySQLCatalogRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLCatalogRepository connects to MySQL, creates the catalog tables if
// needed and seeds the default data when they are empty.
func NewMySQLCatalogRepository(dsn string, logger *logrus.Logger) (*MySQLCatalogRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	r := &MySQLCatalogRepository{db: db, logger: logger}

	if err := r.seed(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Info("mysql catalog repository initialized")
	return r, nil
}

func createMySQLTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS catalog_items (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			id VARCHAR(64) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			price DOUBLE NOT NULL,
			sku VARCHAR(64) NOT NULL,
			supplier VARCHAR(255) NOT NULL,
			location VARCHAR(255) NOT NULL,
			min_stock INT NOT NULL,
			max_stock INT NOT NULL,
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS catalog_categories (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			id VARCHAR(64) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			color VARCHAR(32) NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *MySQLCatalogRepository) seed(ctx context.Context) error {
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
func (r *MySQLCatalogRepository) ListItems(ctx context.Context) ([]model.Item, error) {
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
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Category,
			&it.Quantity, &it.Price, &it.SKU, &it.Supplier, &it.Location,
			&it.MinStock, &it.MaxStock, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SaveItems replaces the item collection in a single transaction.
func (r *MySQLCatalogRepository) SaveItems(ctx context.Context, items []model.Item) error {
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
			it.MinStock, it.MaxStock, it.CreatedAt, it.UpdatedAt)
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
func (r *MySQLCatalogRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
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
func (r *MySQLCatalogRepository) SaveCategories(ctx context.Context, categories []model.Category) error {
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
func (r *MySQLCatalogRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLCatalogRepository implements CatalogRepository
var _ CatalogRepository = (*MySQLCatalogRepository)(nil)
