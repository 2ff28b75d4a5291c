package store

import (
	"context"

	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/store/dto"
)

type UseCase interface {
	GetStore(ctx context.Context, id string) (*model.Store, error)
	ListStores(ctx context.Context, filters *dto.StoreFilters) ([]model.Store, int, error)
}
