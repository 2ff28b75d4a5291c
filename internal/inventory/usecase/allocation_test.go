package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampQuantity(t *testing.T) {
	maxStock := 50

	tests := []struct {
		name      string
		requested int
		ceiling   int
		maxStock  *int
		want      int
		clamped   bool
	}{
		{"within pool", 30, 100, nil, 30, false},
		{"exactly pool", 100, 100, nil, 100, false},
		{"over pool", 150, 100, nil, 100, true},
		{"over max stock", 80, 100, &maxStock, 50, true},
		{"max stock above pool", 150, 40, &maxStock, 40, true},
		{"zero request", 0, 100, nil, 0, false},
		{"empty pool", 10, 0, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clamped := clampQuantity(tt.requested, tt.ceiling, tt.maxStock)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.clamped, clamped)
		})
	}
}

func TestClampQuantityIdempotent(t *testing.T) {
	maxStock := 70
	once, _ := clampQuantity(150, 100, &maxStock)
	twice, clamped := clampQuantity(once, 100, &maxStock)

	assert.Equal(t, once, twice)
	assert.False(t, clamped)
}

func TestStockInfoFor(t *testing.T) {
	info := stockInfoFor(20, 80, 30)

	assert.Equal(t, 20, info.TotalStock)
	assert.Equal(t, 80, info.TotalDistributed)
	assert.Equal(t, 50, info.DistributedInOtherStores)
	assert.Equal(t, 50, info.AvailableForThisStore)
}
