package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/devansh1234523/whole-sale/internal/filters"
	"github.com/devansh1234523/whole-sale/internal/inventory"
	"github.com/devansh1234523/whole-sale/internal/middleware"
	"github.com/devansh1234523/whole-sale/internal/models"
)

// TransactionRequest is the body of POST /inventory/:id/transactions.
// Quantity is a pointer so that an adjustment to zero is accepted.
type TransactionRequest struct {
	Type     models.TransactionType `json:"type" validate:"required,oneof=in out adjustment"`
	Quantity *int                   `json:"quantity" validate:"required,gte=0"`
	Reason   string                 `json:"reason"`
}

// GetInventory lists inventory items filtered by ?category=, ?status= and
// ?search=. A search term replaces the other criteria unless ?combine=true.
func GetInventory(ledger *inventory.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(filters.Inventory(ledger.List(), filters.InventoryFilter{
			Category:      c.Query("category"),
			Status:        c.Query("status"),
			Search:        c.Query("search"),
			CombineSearch: c.QueryBool("combine", false),
		}))
	}
}

func GetInventoryItem(ledger *inventory.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		item, ok := ledger.Get(id)
		if !ok {
			return notFound(c, "Inventory item")
		}
		return c.JSON(item)
	}
}

func GetTransactions(ledger *inventory.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		history, ok := ledger.Transactions(id)
		if !ok {
			return notFound(c, "Inventory item")
		}
		return c.JSON(history)
	}
}

// AddTransaction records a stock movement performed by the current user.
func AddTransaction(ledger *inventory.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		var req TransactionRequest
		if err := bind(c, &req); err != nil {
			return badRequest(c, err)
		}

		performedBy := inventory.SystemUser
		if user := middleware.CurrentUser(c); user != nil {
			performedBy = user.Username
		}

		item, ok, err := ledger.AddTransaction(c.UserContext(), id, inventory.TransactionRequest{
			Type:        req.Type,
			Quantity:    *req.Quantity,
			Reason:      req.Reason,
			PerformedBy: performedBy,
		})
		switch {
		case !ok:
			return notFound(c, "Inventory item")
		case errors.Is(err, inventory.ErrInsufficientStock),
			errors.Is(err, inventory.ErrInvalidQuantity),
			errors.Is(err, inventory.ErrQuantityOverflow),
			errors.Is(err, inventory.ErrInvalidTransactionType):
			return badRequest(c, err)
		case err != nil:
			return serverError(c, "Failed to record transaction", err)
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}
