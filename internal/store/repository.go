package store

import (
	"context"

	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/store/dto"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.Store, error)
	FindAll(ctx context.Context, filters *dto.StoreFilters) ([]model.Store, int, error)
}
