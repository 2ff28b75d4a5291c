package inventory

import (
	"context"
	"time"

	"github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/Guimenn/mobiliai-inventory/internal/model"
)

// Repository is the persistence arena for the allocation ledger: it owns
// both store inventory rows and the product pool column, and every write
// that moves stock between them happens in one transaction.
type Repository interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	GetByStoreProduct(ctx context.Context, storeID, productID string) (*model.StoreInventory, error)
	ListByStore(ctx context.Context, storeID string) ([]dto.StoreInventoryRow, error)
	ListLowStock(ctx context.Context, storeID string) ([]dto.StoreInventoryRow, error)
	DistributedByProduct(ctx context.Context, productID string) (int, error)
	FindProductsWithoutStoreRow(ctx context.Context, storeID, search string) ([]dto.AvailableProductRow, error)

	// Allocate upserts the row and moves poolDelta units out of the product
	// pool atomically. The upsert is a single INSERT ... ON CONFLICT DO
	// UPDATE, so concurrent first edits cannot produce duplicate rows.
	Allocate(ctx context.Context, inv *model.StoreInventory, poolDelta int) error

	// Insert is Allocate with an expected-absent row: a plain INSERT whose
	// unique-constraint violation surfaces as a conflict error.
	Insert(ctx context.Context, inv *model.StoreInventory, poolDelta int) error

	// Remove deletes the row if present and returns its quantity to the
	// pool. Reports whether a row existed.
	Remove(ctx context.Context, storeID, productID string) (released int, existed bool, err error)

	// DeductQuantity removes sold units from a row, flooring at zero. The
	// pool is not credited: sold stock leaves the system.
	DeductQuantity(ctx context.Context, storeID, productID string, qty int) (bool, error)
}

// Locker serializes read-compute-write cycles per (store, product) key.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
