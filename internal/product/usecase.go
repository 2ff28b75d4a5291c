package product

import (
	"context"

	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/product/dto"
)

type UseCase interface {
	GetCatalogProducts(ctx context.Context, filters *dto.CatalogFilters) ([]model.Product, int, error)
	LinkProductToStore(ctx context.Context, storeID, productID string) error
	UpdateManagedProduct(ctx context.Context, input *dto.UpdateManagedProductInput) (*dto.ManagedProductView, error)
}
