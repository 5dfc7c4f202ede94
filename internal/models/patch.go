package models

import "github.com/shopspring/decimal"

// Patch types carry only the fields a caller wants to change; nil means "leave as is".

type ProductPatch struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Category          *string          `json:"category"`
	SKU               *string          `json:"sku"`
	Price             *decimal.Decimal `json:"price"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	StockQuantity     *int             `json:"stockQuantity" validate:"omitempty,gte=0"`
	LowStockThreshold *int             `json:"lowStockThreshold" validate:"omitempty,gte=0"`
	Supplier          *Supplier        `json:"supplier"`
}

func (p ProductPatch) Apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.SKU != nil {
		dst.SKU = *p.SKU
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.CostPrice != nil {
		dst.CostPrice = *p.CostPrice
	}
	if p.StockQuantity != nil {
		dst.StockQuantity = *p.StockQuantity
	}
	if p.LowStockThreshold != nil {
		dst.LowStockThreshold = *p.LowStockThreshold
	}
	if p.Supplier != nil {
		dst.Supplier = *p.Supplier
	}
}

type CustomerPatch struct {
	Name     *string  `json:"name"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Phone    *string  `json:"phone"`
	Company  *string  `json:"company"`
	Segment  *string  `json:"segment"`
	Industry *string  `json:"industry"`
	Address  *Address `json:"address"`
	Notes    *string  `json:"notes"`
}

func (p CustomerPatch) Apply(dst *Customer) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
	if p.Company != nil {
		dst.Company = *p.Company
	}
	if p.Segment != nil {
		dst.Segment = *p.Segment
	}
	if p.Industry != nil {
		dst.Industry = *p.Industry
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.Notes != nil {
		dst.Notes = *p.Notes
	}
}

type StaffPatch struct {
	FirstName   *string          `json:"firstName"`
	LastName    *string          `json:"lastName"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Phone       *string          `json:"phone"`
	Position    *string          `json:"position"`
	Department  *string          `json:"department"`
	HireDate    *string          `json:"hireDate"`
	Salary      *decimal.Decimal `json:"salary"`
	Status      *StaffStatus     `json:"status" validate:"omitempty,oneof=active inactive"`
	Performance *int             `json:"performance" validate:"omitempty,gte=0,lte=100"`
	Notes       *string          `json:"notes"`
}

func (p StaffPatch) Apply(dst *StaffMember) {
	if p.FirstName != nil {
		dst.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		dst.LastName = *p.LastName
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
	if p.Position != nil {
		dst.Position = *p.Position
	}
	if p.Department != nil {
		dst.Department = *p.Department
	}
	if p.HireDate != nil {
		dst.HireDate = *p.HireDate
	}
	if p.Salary != nil {
		dst.Salary = *p.Salary
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Performance != nil {
		dst.Performance = *p.Performance
	}
	if p.Notes != nil {
		dst.Notes = *p.Notes
	}
}
