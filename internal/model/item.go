package model

import "time"

// Item represents a stock-keeping record.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	SKU         string    `json:"sku"`
	Supplier    string    `json:"supplier"`
	Location    string    `json:"location"`
	MinStock    int       `json:"minStock"`
	MaxStock    int       `json:"maxStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemDraft is the client-supplied payload for creating or updating an item.
// The store assigns id/createdAt/updatedAt; drafts never carry them.
type ItemDraft struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	SKU         string  `json:"sku" validate:"required"`
	Supplier    string  `json:"supplier"`
	Location    string  `json:"location"`
	MinStock    int     `json:"minStock" validate:"gte=0"`
	MaxStock    int     `json:"maxStock" validate:"gte=0,gtefield=MinStock"`
}

// Value returns the total stock value of the item (quantity * unit price).
func (i Item) Value() float64 {
	return float64(i.Quantity) * i.Price
}
