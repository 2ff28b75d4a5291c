package usecase

import (
	"context"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/store"
	"github.com/Guimenn/mobiliai-inventory/internal/store/dto"
	"go.uber.org/zap"
)

type storeUseCase struct {
	repo   store.Repository
	logger *zap.Logger
}

func NewStoreUseCase(repo store.Repository, log *zap.Logger) store.UseCase {
	return &storeUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *storeUseCase) GetStore(ctx context.Context, id string) (*model.Store, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperrors.NotFound("store %s", id)
	}
	return s, nil
}

func (uc *storeUseCase) ListStores(ctx context.Context, filters *dto.StoreFilters) ([]model.Store, int, error) {
	return uc.repo.FindAll(ctx, filters)
}
