// Package inventory keeps per-item stock levels and their transaction history.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/devansh1234523/whole-sale/internal/models"
	"github.com/devansh1234523/whole-sale/internal/store"
)

var (
	ErrInsufficientStock      = errors.New("Not enough stock available")
	ErrInvalidQuantity        = errors.New("quantity cannot be negative")
	ErrInvalidTransactionType = errors.New("transaction type must be in, out or adjustment")
	ErrQuantityOverflow       = errors.New("quantity exceeds the largest stock level that can be held")
)

const (
	SystemUser         = "System"
	InitialStockReason = "Initial stock from product creation"
	DefaultWarehouse   = "Main Warehouse"
	defaultSection     = "A"
	defaultShelf       = "1"
	tracerName         = "wholesaleflow/inventory"
)

type Items = store.Collection[models.InventoryItem, *models.InventoryItem]

// TransactionRequest describes one stock movement.
type TransactionRequest struct {
	Type        models.TransactionType
	Quantity    int
	Reason      string
	PerformedBy string
}

// BulkChange is applied to every item of a bulk update; nil fields are left alone.
type BulkChange struct {
	Quantity *int
	Location *models.Location
}

type Ledger struct {
	items *Items
}

func NewLedger(items *Items) *Ledger {
	return &Ledger{items: items}
}

func (l *Ledger) List() []models.InventoryItem {
	return l.items.All()
}

func (l *Ledger) Get(id int) (models.InventoryItem, bool) {
	return l.items.GetByID(id)
}

func (l *Ledger) FindByProductID(productID int) (models.InventoryItem, bool) {
	return l.items.Find(func(item *models.InventoryItem) bool {
		return item.Product.ID == productID
	})
}

// Transactions returns the history of one item, oldest first.
func (l *Ledger) Transactions(id int) ([]models.Transaction, bool) {
	item, ok := l.items.GetByID(id)
	if !ok {
		return nil, false
	}
	return append([]models.Transaction{}, item.Transactions...), true
}

// AddTransaction records a stock movement and derives the new quantity from it.
// An unknown item is reported through the boolean. An out movement larger than
// the stock on hand fails with ErrInsufficientStock and changes nothing.
func (l *Ledger) AddTransaction(ctx context.Context, itemID int, req TransactionRequest) (models.InventoryItem, bool, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "inventory.add_transaction")
	defer span.End()
	span.SetAttributes(
		attribute.Int("inventory.item_id", itemID),
		attribute.String("inventory.transaction_type", string(req.Type)),
		attribute.Int("inventory.quantity", req.Quantity),
	)

	if !req.Type.Valid() {
		return models.InventoryItem{}, l.exists(itemID), ErrInvalidTransactionType
	}
	if req.Quantity < 0 {
		return models.InventoryItem{}, l.exists(itemID), ErrInvalidQuantity
	}

	now := l.items.Now()
	item, ok, err := l.items.UpdateAt(ctx, itemID, now, func(item *models.InventoryItem) error {
		next, err := nextQuantity(item.Quantity, req.Type, req.Quantity)
		if err != nil {
			return err
		}

		tx := models.Transaction{
			ID:          item.NextTransactionID(),
			Type:        req.Type,
			Quantity:    req.Quantity,
			Date:        now,
			Reason:      req.Reason,
			PerformedBy: req.PerformedBy,
		}
		history := make([]models.Transaction, 0, len(item.Transactions)+1)
		item.Transactions = append(append(history, item.Transactions...), tx)
		item.Quantity = next
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return item, ok, err
}

func nextQuantity(current int, kind models.TransactionType, quantity int) (int, error) {
	switch kind {
	case models.TransactionIn:
		if quantity > math.MaxInt-current {
			return current, ErrQuantityOverflow
		}
		return current + quantity, nil
	case models.TransactionOut:
		next := current - quantity
		if next < 0 {
			return current, ErrInsufficientStock
		}
		return next, nil
	case models.TransactionAdjustment:
		return quantity, nil
	}
	return current, ErrInvalidTransactionType
}

// AddInventoryItem opens an inventory record for a product with one synthetic
// "in" transaction for the starting stock.
func (l *Ledger) AddInventoryItem(ctx context.Context, product models.Product, initialStock int) (models.InventoryItem, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "inventory.add_item")
	defer span.End()
	span.SetAttributes(attribute.Int("product.id", product.ID))

	if initialStock < 0 {
		return models.InventoryItem{}, ErrInvalidQuantity
	}

	now := l.items.Now()
	item := models.InventoryItem{
		Product:  models.SnapshotOf(product),
		Quantity: initialStock,
		Location: models.Location{
			Warehouse: DefaultWarehouse,
			Section:   defaultSection,
			Shelf:     defaultShelf,
		},
		Transactions: []models.Transaction{{
			ID:          1,
			Type:        models.TransactionIn,
			Quantity:    initialStock,
			Date:        now,
			Reason:      InitialStockReason,
			PerformedBy: SystemUser,
		}},
	}

	created, err := l.items.Add(ctx, item)
	if err != nil {
		span.RecordError(err)
		return models.InventoryItem{}, fmt.Errorf("add inventory for product %d: %w", product.ID, err)
	}
	return created, nil
}

// UpdateInventory replaces the product snapshot, quantity and location of an
// item without going through the ledger. The stored transaction history is kept
// as is whatever the caller passes.
func (l *Ledger) UpdateInventory(ctx context.Context, item models.InventoryItem) (models.InventoryItem, bool, error) {
	if item.Quantity < 0 {
		return models.InventoryItem{}, l.exists(item.ID), ErrInvalidQuantity
	}

	return l.items.Update(ctx, item.ID, func(stored *models.InventoryItem) error {
		stored.Product = item.Product
		stored.Quantity = item.Quantity
		stored.Location = item.Location
		return nil
	})
}

// BulkUpdate applies change to each listed item and returns how many were updated.
// Unknown ids are skipped. The first storage error stops the run.
func (l *Ledger) BulkUpdate(ctx context.Context, ids []int, change BulkChange) (int, error) {
	if change.Quantity != nil && *change.Quantity < 0 {
		return 0, ErrInvalidQuantity
	}

	updated := 0
	for _, id := range ids {
		item, ok := l.items.GetByID(id)
		if !ok {
			continue
		}
		if change.Quantity != nil {
			item.Quantity = *change.Quantity
		}
		if change.Location != nil {
			item.Location = *change.Location
		}
		if _, ok, err := l.UpdateInventory(ctx, item); err != nil {
			return updated, fmt.Errorf("bulk update item %d: %w", id, err)
		} else if ok {
			updated++
		}
	}
	return updated, nil
}

func (l *Ledger) exists(id int) bool {
	_, ok := l.items.GetByID(id)
	return ok
}
