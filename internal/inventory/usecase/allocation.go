package usecase

import "github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"

// clampQuantity bounds a requested quantity to what the pool can cover and,
// if set, the row's max stock. Over-pool requests are capped silently; the
// caller reports the clamp, it is not an error.
func clampQuantity(requested, ceiling int, maxStock *int) (int, bool) {
	applied := requested
	if applied > ceiling {
		applied = ceiling
	}
	if maxStock != nil && applied > *maxStock {
		applied = *maxStock
	}
	if applied < 0 {
		applied = 0
	}
	return applied, applied != requested
}

// stockInfoFor derives the stock view for a row, given the current pool and
// the total allocated across all stores.
func stockInfoFor(pool, totalDistributed, quantity int) dto.StockInfo {
	return dto.StockInfo{
		TotalStock:               pool,
		TotalDistributed:         totalDistributed,
		DistributedInOtherStores: totalDistributed - quantity,
		AvailableForThisStore:    pool + quantity,
	}
}
