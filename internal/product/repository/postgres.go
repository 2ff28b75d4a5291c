package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET store_id = :store_id,
            sku = :sku,
            barcode = :barcode,
            name = :name,
            description = :description,
            price = :price,
            image_url = :image_url,
            stock = :stock,
            min_stock = :min_stock,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindGlobalForCatalog(ctx context.Context, f *dto.CatalogFilters) ([]model.Product, int, error) {
	products := []model.Product{}
	var count int

	conditions := []string{
		"p.is_active = :is_active",
		`NOT EXISTS (
            SELECT 1 FROM store_catalog sc
             WHERE sc.store_id = :store_id AND sc.product_id = p.id
        )`,
	}
	args := map[string]interface{}{
		"is_active": true,
		"store_id":  f.StoreID,
	}

	if f.SearchQuery != "" {
		conditions = append(conditions, "(p.name ILIKE :search OR p.sku ILIKE :search OR p.barcode ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM products p" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return nil, 0, err
		}
	}

	query := "SELECT p.* FROM products p" + whereClause + " ORDER BY p.name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	return products, count, err
}

func (r *PGRepository) IsLinkedToStore(ctx context.Context, storeID, productID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM store_catalog WHERE store_id = $1 AND product_id = $2`
	err := r.DB.GetContext(ctx, &count, query, storeID, productID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepository) LinkedProductIDs(ctx context.Context, storeID string) (map[string]struct{}, error) {
	var ids []string
	err := r.DB.SelectContext(ctx, &ids, `SELECT product_id FROM store_catalog WHERE store_id = $1`, storeID)
	if err != nil {
		return nil, err
	}
	linked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		linked[id] = struct{}{}
	}
	return linked, nil
}

func (r *PGRepository) LinkToStore(ctx context.Context, storeID, productID string) error {
	// Linking is idempotent; re-linking an associated product is a no-op.
	_, err := r.DB.ExecContext(ctx, `
        INSERT INTO store_catalog (store_id, product_id, created_at)
        VALUES ($1, $2, now())
        ON CONFLICT (store_id, product_id) DO NOTHING`, storeID, productID)
	return err
}
