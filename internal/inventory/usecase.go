package inventory

import (
	"context"

	"github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
)

type UseCase interface {
	GetStoreInventory(ctx context.Context, storeID string) ([]dto.InventoryEntry, error)
	GetLowStock(ctx context.Context, storeID string) ([]dto.InventoryEntry, error)
	GetAvailableProducts(ctx context.Context, storeID, search string) ([]dto.AvailableProduct, error)
	UpdateStoreInventory(ctx context.Context, input *dto.UpdateStoreInventoryInput) (*dto.InventoryEntry, error)
	AddProductToStore(ctx context.Context, input *dto.AddProductToStoreInput) (*dto.InventoryEntry, error)
	RemoveProductFromStore(ctx context.Context, storeID, productID string) error
	RecordSale(ctx context.Context, storeID string, items []dto.SaleItem) error
}
