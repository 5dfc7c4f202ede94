package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ==========================================
// CATALOG
// ==========================================

type Supplier struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contactInfo"`
}

type Product struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	SKU               string          `json:"sku"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	StockQuantity     int             `json:"stockQuantity"`
	LowStockThreshold int             `json:"lowStockThreshold"`
	Supplier          Supplier        `json:"supplier"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (p *Product) RecordID() int { return p.ID }

func (p *Product) Assign(id int, now time.Time) {
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
}

func (p *Product) Touch(now time.Time) { p.UpdatedAt = now }

// ==========================================
// CUSTOMERS
// ==========================================

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type Customer struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Company      string          `json:"company"`
	Segment      string          `json:"segment"`
	Industry     string          `json:"industry"`
	Address      Address         `json:"address"`
	TotalSpent   decimal.Decimal `json:"totalSpent"`
	LastPurchase *time.Time      `json:"lastPurchase"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (c *Customer) RecordID() int { return c.ID }

// Assign also resets the purchase history; a new customer has bought nothing yet.
func (c *Customer) Assign(id int, now time.Time) {
	c.ID = id
	c.TotalSpent = decimal.Zero
	c.LastPurchase = nil
	c.CreatedAt = now
	c.UpdatedAt = now
}

func (c *Customer) Touch(now time.Time) { c.UpdatedAt = now }

// ==========================================
// STAFF
// ==========================================

type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

type StaffMember struct {
	ID          int             `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Position    string          `json:"position"`
	Department  string          `json:"department"`
	HireDate    string          `json:"hireDate"`
	Salary      decimal.Decimal `json:"salary"`
	Status      StaffStatus     `json:"status"`
	Performance int             `json:"performance"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (s *StaffMember) RecordID() int { return s.ID }

func (s *StaffMember) Assign(id int, now time.Time) {
	s.ID = id
	s.CreatedAt = now
	s.UpdatedAt = now
}

func (s *StaffMember) Touch(now time.Time) { s.UpdatedAt = now }

// ==========================================
// INVENTORY & LEDGER
// ==========================================

type TransactionType string

const (
	TransactionIn         TransactionType = "in"
	TransactionOut        TransactionType = "out"
	TransactionAdjustment TransactionType = "adjustment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionIn, TransactionOut, TransactionAdjustment:
		return true
	}
	return false
}

// Transaction is one immutable ledger entry. Quantity is a magnitude for in/out
// and the absolute new stock level for an adjustment.
type Transaction struct {
	ID          int             `json:"id"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Date        time.Time       `json:"date"`
	Reason      string          `json:"reason"`
	PerformedBy string          `json:"performedBy"`
}

// ProductSnapshot is the denormalized copy of a product kept on its inventory item.
type ProductSnapshot struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

func SnapshotOf(p Product) ProductSnapshot {
	return ProductSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Category: p.Category,
		Price:    p.Price,
	}
}

type Location struct {
	Warehouse string `json:"warehouse"`
	Section   string `json:"section"`
	Shelf     string `json:"shelf"`
}

type InventoryItem struct {
	ID           int             `json:"id"`
	Product      ProductSnapshot `json:"product"`
	Quantity     int             `json:"quantity"`
	Location     Location        `json:"location"`
	Transactions []Transaction   `json:"transactions"`
	LastUpdated  time.Time       `json:"lastUpdated"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (i *InventoryItem) RecordID() int { return i.ID }

func (i *InventoryItem) Assign(id int, now time.Time) {
	i.ID = id
	i.CreatedAt = now
	i.LastUpdated = now
}

func (i *InventoryItem) Touch(now time.Time) { i.LastUpdated = now }

// NextTransactionID follows the same max+1 scheme as collection ids.
func (i *InventoryItem) NextTransactionID() int {
	next := 1
	for _, t := range i.Transactions {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// ==========================================
// AUTH & USERS
// ==========================================

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null;unique;size:64" json:"username"`

	// Stored in password_hash and never serialized to clients.
	Password string `gorm:"column:password_hash;not null" json:"-"`

	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// ==========================================
// PERSISTENCE
// ==========================================

// Snapshot holds the serialized form of one whole collection.
type Snapshot struct {
	Key       string         `gorm:"column:snapshot_key;primaryKey;size:64"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}
