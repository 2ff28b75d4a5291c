package listener

import (
	"context"
	"testing"

	"github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingUseCase struct {
	recordSaleFn func(ctx context.Context, storeID string, items []dto.SaleItem) error
}

func (r *recordingUseCase) GetStoreInventory(context.Context, string) ([]dto.InventoryEntry, error) {
	return nil, nil
}
func (r *recordingUseCase) GetLowStock(context.Context, string) ([]dto.InventoryEntry, error) {
	return nil, nil
}
func (r *recordingUseCase) GetAvailableProducts(context.Context, string, string) ([]dto.AvailableProduct, error) {
	return nil, nil
}
func (r *recordingUseCase) UpdateStoreInventory(context.Context, *dto.UpdateStoreInventoryInput) (*dto.InventoryEntry, error) {
	return nil, nil
}
func (r *recordingUseCase) AddProductToStore(context.Context, *dto.AddProductToStoreInput) (*dto.InventoryEntry, error) {
	return nil, nil
}
func (r *recordingUseCase) RemoveProductFromStore(context.Context, string, string) error {
	return nil
}
func (r *recordingUseCase) RecordSale(ctx context.Context, storeID string, items []dto.SaleItem) error {
	return r.recordSaleFn(ctx, storeID, items)
}

func TestProcessMessageRecordsSale(t *testing.T) {
	var gotStore string
	var gotItems []dto.SaleItem
	uc := &recordingUseCase{recordSaleFn: func(_ context.Context, storeID string, items []dto.SaleItem) error {
		gotStore = storeID
		gotItems = items
		return nil
	}}
	l := &SaleListener{uc: uc, logger: zap.NewNop()}

	msg := []byte(`{
		"event_id": "evt-1",
		"event_type": "SaleCompleted",
		"payload": {
			"id": "sale-1",
			"store_id": "store-a",
			"items": [{"product_id": "prod-1", "quantity": 2}]
		}
	}`)
	l.processMessage(context.Background(), msg)

	assert.Equal(t, "store-a", gotStore)
	assert.Equal(t, []dto.SaleItem{{ProductID: "prod-1", Quantity: 2}}, gotItems)
}

func TestProcessMessageSkipsOtherEventTypes(t *testing.T) {
	called := false
	uc := &recordingUseCase{recordSaleFn: func(context.Context, string, []dto.SaleItem) error {
		called = true
		return nil
	}}
	l := &SaleListener{uc: uc, logger: zap.NewNop()}

	l.processMessage(context.Background(), []byte(`{"event_type": "SaleRefunded"}`))
	l.processMessage(context.Background(), []byte(`not json`))

	assert.False(t, called)
}
