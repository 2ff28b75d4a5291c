package dto

// ManagedProductPatch is the structured form of a manager's product edit.
// Stock and MinStock are routed by the reconciliation logic; the remaining
// fields are catalog pass-throughs applied to the product row unchanged.
type ManagedProductPatch struct {
	Stock    *int `json:"stock"`
	MinStock *int `json:"min_stock"`

	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

// HasCatalogFields reports whether the patch touches anything besides the
// routed stock fields.
func (p *ManagedProductPatch) HasCatalogFields() bool {
	return p.Name != nil || p.Description != nil || p.Price != nil || p.ImageURL != nil || p.IsActive != nil
}

type UpdateManagedProductInput struct {
	ManagerStoreID string
	ProductID      string
	Patch          ManagedProductPatch
}
