package services

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/devansh1234523/whole-sale/internal/inventory"
	"github.com/devansh1234523/whole-sale/internal/models"
)

const tracerName = "wholesaleflow/services"

// Catalog keeps products and the product copy held by their inventory items
// consistent.
type Catalog struct {
	products *Products
	ledger   *inventory.Ledger
}

func NewCatalog(products *Products, ledger *inventory.Ledger) *Catalog {
	return &Catalog{products: products, ledger: ledger}
}

func (c *Catalog) List() []models.Product {
	return c.products.All()
}

func (c *Catalog) Get(id int) (models.Product, bool) {
	return c.products.GetByID(id)
}

// AddProduct stores p and opens its inventory item with p.StockQuantity units.
// When the inventory item cannot be created the product is removed again.
func (c *Catalog) AddProduct(ctx context.Context, p models.Product) (models.Product, models.InventoryItem, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.add_product")
	defer span.End()

	created, err := c.products.Add(ctx, p)
	if err != nil {
		return failAdd(span, err)
	}
	span.SetAttributes(attribute.Int("product.id", created.ID))

	item, err := c.ledger.AddInventoryItem(ctx, created, created.StockQuantity)
	if err != nil {
		if rmErr := c.products.Remove(ctx, created.ID); rmErr != nil {
			log.Printf("catalog: could not remove product %d after failed inventory write: %v", created.ID, rmErr)
		}
		return failAdd(span, err)
	}
	return created, item, nil
}

// UpdateProduct merges patch into the product and refreshes the copy kept by
// its inventory item. The item quantity only follows when the patch sets a
// stock quantity. If the inventory write fails the product is put back.
func (c *Catalog) UpdateProduct(ctx context.Context, id int, patch models.ProductPatch) (models.Product, bool, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.update_product")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", id))

	previous, ok := c.products.GetByID(id)
	if !ok {
		return models.Product{}, false, nil
	}

	updated, ok, err := c.products.Update(ctx, id, func(p *models.Product) error {
		patch.Apply(p)
		return nil
	})
	if err != nil || !ok {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return models.Product{}, ok, err
	}

	item, found := c.ledger.FindByProductID(id)
	if !found {
		return updated, true, nil
	}

	item.Product = models.SnapshotOf(updated)
	if patch.StockQuantity != nil {
		item.Quantity = *patch.StockQuantity
	}
	if _, _, err := c.ledger.UpdateInventory(ctx, item); err != nil {
		if _, rbErr := c.products.Restore(ctx, previous); rbErr != nil {
			log.Printf("catalog: could not restore product %d: %v", id, rbErr)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return models.Product{}, true, fmt.Errorf("sync inventory for product %d: %w", id, err)
	}
	return updated, true, nil
}

// DeleteProduct removes the product only; its inventory item stays.
func (c *Catalog) DeleteProduct(ctx context.Context, id int) error {
	return c.products.Remove(ctx, id)
}

func failAdd(span trace.Span, err error) (models.Product, models.InventoryItem, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return models.Product{}, models.InventoryItem{}, err
}
