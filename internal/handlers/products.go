package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/devansh1234523/whole-sale/internal/filters"
	"github.com/devansh1234523/whole-sale/internal/models"
	"github.com/devansh1234523/whole-sale/internal/services"
)

// ProductRequest defines the structure for creating a product
type ProductRequest struct {
	Name              string          `json:"name" validate:"required"`
	Description       string          `json:"description"`
	Category          string          `json:"category" validate:"required"`
	SKU               string          `json:"sku" validate:"required"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	StockQuantity     int             `json:"stockQuantity" validate:"gte=0"`
	LowStockThreshold int             `json:"lowStockThreshold" validate:"gte=0"`
	Supplier          models.Supplier `json:"supplier"`
}

func (r ProductRequest) product() models.Product {
	return models.Product{
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		SKU:               r.SKU,
		Price:             r.Price,
		CostPrice:         r.CostPrice,
		StockQuantity:     r.StockQuantity,
		LowStockThreshold: r.LowStockThreshold,
		Supplier:          r.Supplier,
	}
}

// GetProducts lists products, optionally narrowed by ?category= and ?search=
func GetProducts(catalog *services.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(filters.Products(catalog.List(), filters.ProductFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
		}))
	}
}

func GetProduct(catalog *services.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		product, ok := catalog.Get(id)
		if !ok {
			return notFound(c, "Product")
		}
		return c.JSON(product)
	}
}

// CreateProduct stores a product together with its inventory item.
func CreateProduct(catalog *services.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ProductRequest
		if err := bind(c, &req); err != nil {
			return badRequest(c, err)
		}
		if err := nonNegative(map[string]*decimal.Decimal{"price": &req.Price, "costPrice": &req.CostPrice}); err != nil {
			return badRequest(c, err)
		}

		product, item, err := catalog.AddProduct(c.UserContext(), req.product())
		if err != nil {
			return serverError(c, "Failed to create product", err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"product":   product,
			"inventory": item,
		})
	}
}

// UpdateProduct merges the provided fields and syncs the inventory copy.
func UpdateProduct(catalog *services.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		var patch models.ProductPatch
		if err := bind(c, &patch); err != nil {
			return badRequest(c, err)
		}
		if err := nonNegative(map[string]*decimal.Decimal{"price": patch.Price, "costPrice": patch.CostPrice}); err != nil {
			return badRequest(c, err)
		}

		product, ok, err := catalog.UpdateProduct(c.UserContext(), id, patch)
		if !ok {
			return notFound(c, "Product")
		}
		if err != nil {
			return serverError(c, "Failed to update product", err)
		}
		return c.JSON(product)
	}
}

// DeleteProduct removes the product; its inventory item is kept.
func DeleteProduct(catalog *services.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return badRequest(c, err)
		}

		if _, ok := catalog.Get(id); !ok {
			return notFound(c, "Product")
		}
		if err := catalog.DeleteProduct(c.UserContext(), id); err != nil {
			return serverError(c, "Failed to delete product", err)
		}
		return c.JSON(fiber.Map{"message": "Product deleted successfully"})
	}
}
