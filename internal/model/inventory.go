package model

// StoreInventory is the per-store allocation of a product. Exactly one row
// exists per (StoreID, ProductID) pair, enforced by a composite unique
// constraint.
type StoreInventory struct {
	BaseModel
	StoreID   string  `db:"store_id" json:"store_id"`
	ProductID string  `db:"product_id" json:"product_id"`
	Quantity  int     `db:"quantity" json:"quantity"`
	MinStock  int     `db:"min_stock" json:"min_stock"`
	MaxStock  *int    `db:"max_stock" json:"max_stock"`
	Location  *string `db:"location" json:"location"`
	Notes     *string `db:"notes" json:"notes"`
}
