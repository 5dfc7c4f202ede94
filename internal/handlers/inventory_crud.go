package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/devansh1234523/whole-sale/internal/inventory"
	"github.com/devansh1234523/whole-sale/internal/models"
)

// LocationRequest is a complete storage location.
type LocationRequest struct {
	Warehouse string `json:"warehouse" validate:"required"`
	Section   string `json:"section" validate:"required"`
	Shelf     string `json:"shelf" validate:"required"`
}

func (r *LocationRequest) location() *models.Location {
	if r == nil {
		return nil
	}
	return &models.Location{Warehouse: r.Warehouse, Section: r.Section, Shelf: r.Shelf}
}

// InventoryUpdateRequest sets quantity and/or location directly, without a
// ledger entry.
type InventoryUpdateRequest struct {
	Quantity *int             `json:"quantity" validate:"omitempty,gte=0"`
	Location *LocationRequest `json:"location"`
}

type BulkUpdateRequest struct {
	IDs      []int            `json:"ids" validate:"required,min=1"`
	Quantity *int             `json:"quantity" validate:"omitempty,gte=0"`
	Location *LocationRequest `json:"location"`
}

// UpdateInventoryItem handles updating an existing inventory item
func UpdateInventoryItem(ledger *inventory.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		var req InventoryUpdateRequest
		if err := bind(c, &req); err != nil {
			return badRequest(c, err)
		}

		item, ok := ledger.Get(id)
		if !ok {
			return notFound(c, "Inventory item")
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if loc := req.Location.location(); loc != nil {
			item.Location = *loc
		}

		updated, ok, err := ledger.UpdateInventory(c.UserContext(), item)
		switch {
		case !ok:
			return notFound(c, "Inventory item")
		case errors.Is(err, inventory.ErrInvalidQuantity):
			return badRequest(c, err)
		case err != nil:
			return serverError(c, "Failed to update inventory item", err)
		}
		return c.JSON(updated)
	}
}

// BulkUpdateInventory applies one quantity and/or location to many items.
func BulkUpdateInventory(ledger *inventory.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req BulkUpdateRequest
		if err := bind(c, &req); err != nil {
			return badRequest(c, err)
		}
		if req.Quantity == nil && req.Location == nil {
			return badRequest(c, errors.New("quantity or location is required"))
		}

		n, err := ledger.BulkUpdate(c.UserContext(), req.IDs, inventory.BulkChange{
			Quantity: req.Quantity,
			Location: req.Location.location(),
		})
		if errors.Is(err, inventory.ErrInvalidQuantity) {
			return badRequest(c, err)
		}
		if err != nil {
			return serverError(c, "Failed to update inventory items", err)
		}
		return c.JSON(fiber.Map{"updated": n})
	}
}
