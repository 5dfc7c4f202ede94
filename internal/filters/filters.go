// Package filters derives the list views shown to clients. Every function is
// pure and returns a new, never nil, slice in the input order.
package filters

import (
	"strings"

	"github.com/devansh1234523/whole-sale/internal/models"
)

// LowStockLevel is the highest quantity still counted as low stock.
const LowStockLevel = 5

type StockStatus string

const (
	InStock    StockStatus = "inStock"
	LowStock   StockStatus = "lowStock"
	OutOfStock StockStatus = "outOfStock"
)

func StatusOf(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return OutOfStock
	case quantity <= LowStockLevel:
		return LowStock
	default:
		return InStock
	}
}

type ProductFilter struct {
	Category string
	Search   string
}

type CustomerFilter struct {
	Segment string
	Search  string
}

type StaffFilter struct {
	Department string
	Status     string
	Search     string
}

type InventoryFilter struct {
	Category string
	Status   string
	Search   string
	// CombineSearch ANDs the search term with the other criteria. Without it a
	// search term replaces them.
	CombineSearch bool
}

func Products(items []models.Product, f ProductFilter) []models.Product {
	return keep(items, func(p models.Product) bool {
		return equalOrEmpty(f.Category, p.Category) &&
			matches(f.Search, p.Name, p.SKU)
	})
}

func Customers(items []models.Customer, f CustomerFilter) []models.Customer {
	return keep(items, func(c models.Customer) bool {
		return equalOrEmpty(f.Segment, c.Segment) &&
			matches(f.Search, c.Name, c.Email, c.Company)
	})
}

func Staff(items []models.StaffMember, f StaffFilter) []models.StaffMember {
	return keep(items, func(s models.StaffMember) bool {
		return equalOrEmpty(f.Department, s.Department) &&
			equalOrEmpty(f.Status, string(s.Status)) &&
			matches(f.Search, s.FirstName, s.LastName, s.Email, s.Position)
	})
}

func Inventory(items []models.InventoryItem, f InventoryFilter) []models.InventoryItem {
	search := strings.TrimSpace(f.Search)
	return keep(items, func(i models.InventoryItem) bool {
		found := matches(search, i.Product.Name, i.Product.SKU)
		if search != "" && !f.CombineSearch {
			return found
		}
		return found &&
			equalOrEmpty(f.Category, i.Product.Category) &&
			equalOrEmpty(f.Status, string(StatusOf(i.Quantity)))
	})
}

func keep[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

func equalOrEmpty(want, got string) bool {
	return want == "" || want == got
}

// matches reports whether term is a case-insensitive substring of any field.
// An empty term matches everything.
func matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
