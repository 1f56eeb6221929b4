// Package report derives filtered, sorted and aggregated views from a
// snapshot of the item collection. Every function is pure: the input slice is
// never mutated and the same snapshot always produces the same output.
package report

import (
	"sort"
	"strings"

	"inventory-rest-api/internal/model"
)

// StockStatus classifies an item's quantity against its reorder thresholds.
type StockStatus string

const (
	OutOfStock  StockStatus = "out_of_stock"
	LowStock    StockStatus = "low_stock"
	Overstocked StockStatus = "overstocked"
	InStock     StockStatus = "in_stock"
)

// SortKey selects the ordering applied by SortBy.
type SortKey string

const (
	SortByName     SortKey = "name"     // ascending, case-insensitive
	SortByQuantity SortKey = "quantity" // descending
	SortByPrice    SortKey = "price"    // descending
	SortByCategory SortKey = "category" // ascending
)

// CategoryFilterAll is the sentinel category meaning "no filter".
const CategoryFilterAll = "all"

// Summary aggregates the whole item collection.
//
// LowStockCount and StrictLowStockCount deliberately coexist: the dashboard
// counts every item at or below its minimum (zero quantity included), while
// the reports view counts only items that still have stock and reports
// zero-quantity items separately as out of stock.
type Summary struct {
	TotalItems          int     `json:"totalItems"`
	TotalValue          float64 `json:"totalValue"`
	DistinctCategories  int     `json:"distinctCategoryCount"`
	LowStockCount       int     `json:"lowStockCount"`
	StrictLowStockCount int     `json:"strictLowStockCount"`
	OutOfStockCount     int     `json:"outOfStockCount"`
}

// CategoryStat is one row of the per-category rollup.
type CategoryStat struct {
	Name          string  `json:"name"`
	Count         int     `json:"count"`
	Value         float64 `json:"value"`
	LowStockCount int     `json:"lowStockCount"`
}

// Search returns the items whose name, SKU or description contains term,
// case-insensitively. An empty term returns the input unchanged.
func Search(items []model.Item, term string) []model.Item {
	if term == "" {
		return items
	}

	needle := strings.ToLower(term)
	matched := []model.Item{}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.SKU), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle) {
			matched = append(matched, it)
		}
	}
	return matched
}

// FilterByCategory returns the items whose category field exactly matches
// category. The sentinel "all" (or an empty string) returns the input
// unchanged.
func FilterByCategory(items []model.Item, category string) []model.Item {
	if category == "" || category == CategoryFilterAll {
		return items
	}

	matched := []model.Item{}
	for _, it := range items {
		if it.Category == category {
			matched = append(matched, it)
		}
	}
	return matched
}

// FilterLowStock returns the items at or below their minimum stock level.
func FilterLowStock(items []model.Item) []model.Item {
	matched := []model.Item{}
	for _, it := range items {
		if it.Quantity <= it.MinStock {
			matched = append(matched, it)
		}
	}
	return matched
}

// SortBy returns a sorted copy of items. All orderings are stable, so items
// that compare equal keep their snapshot order. Unknown keys return the
// input order unchanged.
func SortBy(items []model.Item, key SortKey) []model.Item {
	sorted := make([]model.Item, len(items))
	copy(sorted, items)

	switch key {
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	case SortByQuantity:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Quantity > sorted[j].Quantity
		})
	case SortByPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price > sorted[j].Price
		})
	case SortByCategory:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Category < sorted[j].Category
		})
	}
	return sorted
}

// StatusOf classifies a single item. Out-of-stock and low-stock take
// precedence over overstocked when the thresholds overlap (for example when
// minStock == maxStock == 0).
func StatusOf(item model.Item) StockStatus {
	switch {
	case item.Quantity == 0:
		return OutOfStock
	case item.Quantity <= item.MinStock:
		return LowStock
	case item.Quantity >= item.MaxStock:
		return Overstocked
	default:
		return InStock
	}
}

// Summarize computes the collection-wide aggregates.
func Summarize(items []model.Item) Summary {
	s := Summary{TotalItems: len(items)}

	categories := map[string]struct{}{}
	for _, it := range items {
		s.TotalValue += it.Value()
		categories[it.Category] = struct{}{}

		if it.Quantity <= it.MinStock {
			s.LowStockCount++
			if it.Quantity > 0 {
				s.StrictLowStockCount++
			}
		}
		if it.Quantity == 0 {
			s.OutOfStockCount++
		}
	}
	s.DistinctCategories = len(categories)
	return s
}

// CategoryBreakdown groups items by category name and rolls up count, stock
// value and low-stock count per group, sorted by value descending. Groups
// with equal value keep first-appearance order.
func CategoryBreakdown(items []model.Item) []CategoryStat {
	index := map[string]int{}
	stats := []CategoryStat{}

	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(stats)
			index[it.Category] = i
			stats = append(stats, CategoryStat{Name: it.Category})
		}
		stats[i].Count++
		stats[i].Value += it.Value()
		if it.Quantity <= it.MinStock {
			stats[i].LowStockCount++
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Value > stats[j].Value
	})
	return stats
}

// TopByValue returns the n items with the highest stock value, descending.
// Ties keep snapshot order. n larger than the collection returns everything.
func TopByValue(items []model.Item, n int) []model.Item {
	if n < 0 {
		n = 0
	}

	sorted := make([]model.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value() > sorted[j].Value()
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
