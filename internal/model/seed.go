package model

import "time"

// SeedItems returns the default item collection written on first run when no
// persisted data exists yet. IDs are fixed so fresh installs are predictable.
func SeedItems(now time.Time) []Item {
	return []Item{
		{
			ID:          "1",
			Name:        "Laptop Computer",
			Description: "High-performance laptop for office work",
			Category:    "Electronics",
			Quantity:    15,
			Price:       899.99,
			SKU:         "LAP-001",
			Supplier:    "TechCorp Inc.",
			Location:    "Warehouse A",
			MinStock:    5,
			MaxStock:    50,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Wireless Mouse",
			Description: "Ergonomic wireless mouse",
			Category:    "Electronics",
			Quantity:    45,
			Price:       29.99,
			SKU:         "MOU-001",
			Supplier:    "TechCorp Inc.",
			Location:    "Warehouse A",
			MinStock:    20,
			MaxStock:    100,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "3",
			Name:        "Office Chair",
			Description: "Comfortable ergonomic office chair",
			Category:    "Tools",
			Quantity:    8,
			Price:       199.99,
			SKU:         "CHR-001",
			Supplier:    "Furniture Co.",
			Location:    "Warehouse B",
			MinStock:    5,
			MaxStock:    30,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "4",
			Name:        "Notebook Set",
			Description: "Set of 5 professional notebooks",
			Category:    "Books",
			Quantity:    120,
			Price:       12.99,
			SKU:         "NBK-001",
			Supplier:    "Stationery Plus",
			Location:    "Warehouse A",
			MinStock:    50,
			MaxStock:    200,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "5",
			Name:        "Coffee Maker",
			Description: "Automatic drip coffee maker",
			Category:    "Food & Beverages",
			Quantity:    12,
			Price:       79.99,
			SKU:         "CFM-001",
			Supplier:    "Kitchen Essentials",
			Location:    "Warehouse B",
			MinStock:    5,
			MaxStock:    25,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// SeedCategories returns the default category collection written on first run.
func SeedCategories() []Category {
	return []Category{
		{ID: "1", Name: "Electronics", Color: "#3b82f6"},
		{ID: "2", Name: "Clothing", Color: "#10b981"},
		{ID: "3", Name: "Food & Beverages", Color: "#f59e0b"},
		{ID: "4", Name: "Books", Color: "#8b5cf6"},
		{ID: "5", Name: "Tools", Color: "#ef4444"},
	}
}
