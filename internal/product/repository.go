package product

import (
	"context"

	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/product/dto"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
	Update(ctx context.Context, p *model.Product) error

	// FindGlobalForCatalog lists active catalog products not yet linked to
	// the store, for the association picker.
	FindGlobalForCatalog(ctx context.Context, filters *dto.CatalogFilters) ([]model.Product, int, error)

	IsLinkedToStore(ctx context.Context, storeID, productID string) (bool, error)
	LinkedProductIDs(ctx context.Context, storeID string) (map[string]struct{}, error)
	LinkToStore(ctx context.Context, storeID, productID string) error
}
