package model

// DefaultCategoryColor is assigned when a category draft omits a color.
const DefaultCategoryColor = "#3b82f6"

// Category is a named grouping label for items. Items reference categories
// by name only; there is no enforced foreign key between the two.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryDraft is the client-supplied payload for creating or updating a
// category. Color is optional: create falls back to DefaultCategoryColor,
// update keeps the stored color.
type CategoryDraft struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}
