package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/devansh1234523/whole-sale/internal/models"
)

// Seed holds the starting records of each collection.
type Seed struct {
	Products  []models.Product
	Customers []models.Customer
	Staff     []models.StaffMember
	Inventory []models.InventoryItem
}

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// SampleData returns the demo records a fresh installation starts with.
func SampleData() Seed {
	now := time.Now().UTC().Truncate(time.Second)

	products := []models.Product{
		{
			ID:                1,
			Name:              "Sample Product 1",
			Description:       "Handheld percussion massager with five speed settings.",
			Category:          "Massager",
			SKU:               "SKU-001",
			Price:             money("99.99"),
			CostPrice:         money("55.00"),
			StockQuantity:     25,
			LowStockThreshold: 10,
			Supplier:          models.Supplier{Name: "Relax Supply Co.", ContactInfo: "orders@relaxsupply.example.com"},
			CreatedAt:         at("2023-01-15T10:30:00Z"),
			UpdatedAt:         at("2023-02-20T14:45:00Z"),
		},
		{
			ID:                2,
			Name:              "Sample Product 2",
			Description:       "Plush toy assortment, mixed colours.",
			Category:          "Toys",
			SKU:               "SKU-002",
			Price:             money("49.99"),
			CostPrice:         money("22.50"),
			StockQuantity:     3,
			LowStockThreshold: 5,
			Supplier:          models.Supplier{Name: "Playtime Imports", ContactInfo: "+1 (555) 222-0199"},
			CreatedAt:         at("2023-02-10T11:30:00Z"),
			UpdatedAt:         at("2023-05-18T10:10:00Z"),
		},
	}

	customers := []models.Customer{
		{
			ID:       1,
			Name:     "John Smith",
			Email:    "john.smith@example.com",
			Phone:    "+1 (555) 123-4567",
			Company:  "ABC Retail",
			Segment:  "Retail",
			Industry: "Consumer Goods",
			Address: models.Address{
				Street: "123 Main St", City: "New York", State: "NY", ZipCode: "10001", Country: "USA",
			},
			TotalSpent:   money("5250.00"),
			LastPurchase: &now,
			Notes:        "Prefers email communication. Interested in bulk discounts.",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:       2,
			Name:     "Jane Doe",
			Email:    "jane.doe@example.com",
			Phone:    "+1 (555) 987-6543",
			Company:  "XYZ Distributors",
			Segment:  "Distributor",
			Industry: "Wholesale",
			Address: models.Address{
				Street: "456 Market Ave", City: "Chicago", State: "IL", ZipCode: "60601", Country: "USA",
			},
			TotalSpent:   money("12750.00"),
			LastPurchase: &now,
			Notes:        "Key account. Monthly ordering schedule.",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	staff := []models.StaffMember{
		{
			ID:          1,
			FirstName:   "Michael",
			LastName:    "Johnson",
			Email:       "michael.j@example.com",
			Phone:       "555-123-4567",
			Position:    "Sales Manager",
			Department:  "Sales",
			HireDate:    "2020-03-15",
			Salary:      money("75000"),
			Status:      models.StaffActive,
			Performance: 85,
			Notes:       "Excellent team leader with strong communication skills.",
			CreatedAt:   at("2020-03-10T10:30:00Z"),
			UpdatedAt:   at("2023-01-15T14:45:00Z"),
		},
		{
			ID:          2,
			FirstName:   "Sarah",
			LastName:    "Williams",
			Email:       "sarah.w@example.com",
			Phone:       "555-987-6543",
			Position:    "Inventory Specialist",
			Department:  "Inventory",
			HireDate:    "2021-05-20",
			Salary:      money("65000"),
			Status:      models.StaffActive,
			Performance: 92,
			Notes:       "Detail-oriented and highly organized.",
			CreatedAt:   at("2021-05-15T09:20:00Z"),
			UpdatedAt:   at("2023-02-10T11:30:00Z"),
		},
		{
			ID:          3,
			FirstName:   "Robert",
			LastName:    "Davis",
			Email:       "robert.d@example.com",
			Phone:       "555-456-7890",
			Position:    "Customer Service Rep",
			Department:  "Customer Service",
			HireDate:    "2019-11-10",
			Salary:      money("55000"),
			Status:      models.StaffInactive,
			Performance: 65,
			Notes:       "Needs improvement in response time and customer satisfaction.",
			CreatedAt:   at("2019-11-05T08:15:00Z"),
			UpdatedAt:   at("2022-12-01T16:20:00Z"),
		},
	}

	inventory := []models.InventoryItem{
		{
			ID:       1,
			Product:  models.SnapshotOf(products[0]),
			Quantity: 25,
			Location: models.Location{Warehouse: "Main Warehouse", Section: "A", Shelf: "3"},
			Transactions: []models.Transaction{
				{ID: 1, Type: models.TransactionIn, Quantity: 30, Date: at("2023-01-15T10:30:00Z"), Reason: "Initial stock", PerformedBy: "Admin User"},
				{ID: 2, Type: models.TransactionOut, Quantity: 5, Date: at("2023-02-20T14:45:00Z"), Reason: "Order #12345", PerformedBy: "Sales Rep"},
			},
			LastUpdated: now,
			CreatedAt:   at("2023-01-15T10:30:00Z"),
		},
		{
			ID:       2,
			Product:  models.SnapshotOf(products[1]),
			Quantity: 3,
			Location: models.Location{Warehouse: "Main Warehouse", Section: "B", Shelf: "1"},
			Transactions: []models.Transaction{
				{ID: 1, Type: models.TransactionIn, Quantity: 15, Date: at("2023-02-10T11:30:00Z"), Reason: "Initial stock", PerformedBy: "Admin User"},
				{ID: 2, Type: models.TransactionOut, Quantity: 10, Date: at("2023-04-05T13:20:00Z"), Reason: "Order #12346", PerformedBy: "Sales Rep"},
				{ID: 3, Type: models.TransactionOut, Quantity: 2, Date: at("2023-05-18T10:10:00Z"), Reason: "Order #12350", PerformedBy: "Sales Rep"},
			},
			LastUpdated: now,
			CreatedAt:   at("2023-02-10T11:30:00Z"),
		},
	}

	return Seed{
		Products:  products,
		Customers: customers,
		Staff:     staff,
		Inventory: inventory,
	}
}
