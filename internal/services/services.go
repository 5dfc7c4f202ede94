// Package services opens the entity collections and coordinates operations
// that span more than one of them.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/devansh1234523/whole-sale/internal/inventory"
	"github.com/devansh1234523/whole-sale/internal/models"
	"github.com/devansh1234523/whole-sale/internal/storage"
	"github.com/devansh1234523/whole-sale/internal/store"
)

// Snapshot keys, one per collection.
const (
	ProductsKey  = "products"
	CustomersKey = "customers"
	StaffKey     = "staff"
	InventoryKey = "inventory"
)

type (
	Products     = store.Collection[models.Product, *models.Product]
	Customers    = store.Collection[models.Customer, *models.Customer]
	StaffMembers = store.Collection[models.StaffMember, *models.StaffMember]
)

// Services bundles every collection of the application.
type Services struct {
	Products  *Products
	Customers *Customers
	Staff     *StaffMembers
	Inventory *inventory.Ledger
	Catalog   *Catalog
}

// Open loads all collections from snapshots. Collections without a snapshot
// start empty. With withSamples the sample data is loaded, but only into a
// store holding no snapshot at all, so seeded inventory always points at
// seeded products.
func Open(ctx context.Context, snapshots storage.SnapshotStore, withSamples bool) (*Services, error) {
	var seed Seed
	if withSamples {
		fresh, err := isEmpty(ctx, snapshots)
		if err != nil {
			return nil, err
		}
		if fresh {
			seed = SampleData()
		}
	}

	products, err := store.Open[models.Product](ctx, snapshots, ProductsKey, seed.Products)
	if err != nil {
		return nil, fmt.Errorf("open products: %w", err)
	}
	customers, err := store.Open[models.Customer](ctx, snapshots, CustomersKey, seed.Customers)
	if err != nil {
		return nil, fmt.Errorf("open customers: %w", err)
	}
	staff, err := store.Open[models.StaffMember](ctx, snapshots, StaffKey, seed.Staff)
	if err != nil {
		return nil, fmt.Errorf("open staff: %w", err)
	}
	items, err := store.Open[models.InventoryItem](ctx, snapshots, InventoryKey, seed.Inventory)
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}

	ledger := inventory.NewLedger(items)
	return &Services{
		Products:  products,
		Customers: customers,
		Staff:     staff,
		Inventory: ledger,
		Catalog:   NewCatalog(products, ledger),
	}, nil
}

func isEmpty(ctx context.Context, snapshots storage.SnapshotStore) (bool, error) {
	for _, key := range []string{ProductsKey, CustomersKey, StaffKey, InventoryKey} {
		_, err := snapshots.Load(ctx, key)
		switch {
		case err == nil:
			return false, nil
		case !errors.Is(err, storage.ErrSnapshotNotFound):
			return false, fmt.Errorf("check %s snapshot: %w", key, err)
		}
	}
	return true, nil
}
