package services

import (
	"github.com/devansh1234523/whole-sale/internal/filters"
	"github.com/devansh1234523/whole-sale/internal/models"
)

type DashboardStats struct {
	TotalProducts     int                 `json:"totalProducts"`
	LowStockProducts  int                 `json:"lowStockProducts"`
	TotalCustomers    int                 `json:"totalCustomers"`
	TotalStaff        int                 `json:"totalStaff"`
	ActiveStaff       int                 `json:"activeStaff"`
	InventoryItems    int                 `json:"inventoryItems"`
	OutOfStockItems   int                 `json:"outOfStockItems"`
	TotalStockOnHand  int                 `json:"totalStockOnHand"`
	RecentTransaction *models.Transaction `json:"recentTransaction"`
}

// Stats summarises the current state of every collection.
func (s *Services) Stats() DashboardStats {
	stats := DashboardStats{
		TotalCustomers: s.Customers.Len(),
	}

	products := s.Products.All()
	stats.TotalProducts = len(products)
	for _, p := range products {
		// a product at its threshold already counts as low
		if p.StockQuantity <= p.LowStockThreshold {
			stats.LowStockProducts++
		}
	}

	staff := s.Staff.All()
	stats.TotalStaff = len(staff)
	for _, m := range staff {
		if m.Status == models.StaffActive {
			stats.ActiveStaff++
		}
	}

	items := s.Inventory.List()
	stats.InventoryItems = len(items)
	for _, item := range items {
		stats.TotalStockOnHand += item.Quantity
		if filters.StatusOf(item.Quantity) == filters.OutOfStock {
			stats.OutOfStockItems++
		}
		for i := range item.Transactions {
			tx := item.Transactions[i]
			if stats.RecentTransaction == nil || tx.Date.After(stats.RecentTransaction.Date) {
				stats.RecentTransaction = &tx
			}
		}
	}
	return stats
}
