package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/prometheus"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1 LIMIT 1`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGRepository) GetByStoreProduct(ctx context.Context, storeID, productID string) (*model.StoreInventory, error) {
	var inv model.StoreInventory
	query := `SELECT * FROM store_inventories WHERE store_id = $1 AND product_id = $2`
	err := r.DB.GetContext(ctx, &inv, query, storeID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Caller decides whether absence means create or fail
		}
		return nil, err
	}
	return &inv, nil
}

const joinedRowColumns = `
        si.id, si.store_id, si.product_id, si.quantity, si.min_stock, si.max_stock,
        si.location, si.notes, si.created_at, si.updated_at,
        p.name AS product_name,
        p.sku AS product_sku,
        p.barcode AS product_barcode,
        p.price AS product_price,
        p.image_url AS product_image_url,
        p.stock AS product_stock,
        (SELECT COALESCE(SUM(x.quantity), 0) FROM store_inventories x
          WHERE x.product_id = si.product_id) AS total_distributed`

func (r *PGRepository) ListByStore(ctx context.Context, storeID string) ([]dto.StoreInventoryRow, error) {
	items := []dto.StoreInventoryRow{}
	query := fmt.Sprintf(`
        SELECT %s
        FROM store_inventories si
        JOIN products p ON p.id = si.product_id
        WHERE si.store_id = $1
        ORDER BY p.name ASC`, joinedRowColumns)

	err := r.DB.SelectContext(ctx, &items, query, storeID)
	return items, err
}

func (r *PGRepository) ListLowStock(ctx context.Context, storeID string) ([]dto.StoreInventoryRow, error) {
	items := []dto.StoreInventoryRow{}
	query := fmt.Sprintf(`
        SELECT %s
        FROM store_inventories si
        JOIN products p ON p.id = si.product_id
        WHERE si.store_id = $1 AND si.quantity <= si.min_stock
        ORDER BY si.quantity ASC`, joinedRowColumns)

	err := r.DB.SelectContext(ctx, &items, query, storeID)
	return items, err
}

func (r *PGRepository) DistributedByProduct(ctx context.Context, productID string) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(quantity), 0) FROM store_inventories WHERE product_id = $1`
	err := r.DB.GetContext(ctx, &total, query, productID)
	return total, err
}

func (r *PGRepository) FindProductsWithoutStoreRow(ctx context.Context, storeID, search string) ([]dto.AvailableProductRow, error) {
	items := []dto.AvailableProductRow{}
	query := `
        SELECT p.*,
               (SELECT COALESCE(SUM(x.quantity), 0) FROM store_inventories x
                 WHERE x.product_id = p.id) AS distributed_stock
        FROM products p
        WHERE p.is_active = TRUE
          AND NOT EXISTS (
              SELECT 1 FROM store_inventories si
               WHERE si.store_id = $1 AND si.product_id = p.id
          )`
	args := []interface{}{storeID}

	if search != "" {
		query += ` AND (p.name ILIKE $2 OR p.sku ILIKE $2 OR p.barcode ILIKE $2)`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY p.name ASC`

	err := r.DB.SelectContext(ctx, &items, query, args...)
	return items, err
}

const upsertQuery = `
        INSERT INTO store_inventories (
            id, store_id, product_id, quantity, min_stock, max_stock,
            location, notes, created_at, updated_at
        )
        VALUES (
            :id, :store_id, :product_id, :quantity, :min_stock, :max_stock,
            :location, :notes, :created_at, :updated_at
        )
        ON CONFLICT (store_id, product_id)
        DO UPDATE SET
            quantity = EXCLUDED.quantity,
            min_stock = EXCLUDED.min_stock,
            max_stock = EXCLUDED.max_stock,
            location = EXCLUDED.location,
            notes = EXCLUDED.notes,
            updated_at = EXCLUDED.updated_at
`

const insertQuery = `
        INSERT INTO store_inventories (
            id, store_id, product_id, quantity, min_stock, max_stock,
            location, notes, created_at, updated_at
        )
        VALUES (
            :id, :store_id, :product_id, :quantity, :min_stock, :max_stock,
            :location, :notes, :created_at, :updated_at
        )
`

func (r *PGRepository) Allocate(ctx context.Context, inv *model.StoreInventory, poolDelta int) error {
	defer prometheus.TrackDBOperation("allocate")(time.Now())
	return r.writeWithPoolMove(ctx, upsertQuery, inv, poolDelta)
}

func (r *PGRepository) Insert(ctx context.Context, inv *model.StoreInventory, poolDelta int) error {
	defer prometheus.TrackDBOperation("insert")(time.Now())
	err := r.writeWithPoolMove(ctx, insertQuery, inv, poolDelta)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return apperrors.Conflict("inventory for store %s product %s already exists", inv.StoreID, inv.ProductID)
	}
	return err
}

func (r *PGRepository) writeWithPoolMove(ctx context.Context, query string, inv *model.StoreInventory, poolDelta int) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, query, inv); err != nil {
		return fmt.Errorf("failed to write store inventory: %w", err)
	}

	if poolDelta != 0 {
		res, err := tx.ExecContext(ctx, `
            UPDATE products
               SET stock = stock - $1, updated_at = now()
             WHERE id = $2 AND stock - $1 >= 0`, poolDelta, inv.ProductID)
		if err != nil {
			return fmt.Errorf("failed to move product pool: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("pool underflow moving %d units of product %s", poolDelta, inv.ProductID)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) Remove(ctx context.Context, storeID, productID string) (int, bool, error) {
	defer prometheus.TrackDBOperation("remove")(time.Now())

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, false, err
	}
	defer tx.Rollback()

	var quantity int
	err = tx.GetContext(ctx, &quantity, `
        SELECT quantity FROM store_inventories
         WHERE store_id = $1 AND product_id = $2
         FOR UPDATE`, storeID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil // Removing a missing allocation is a no-op
		}
		return 0, false, err
	}

	if _, err := tx.ExecContext(ctx, `
        DELETE FROM store_inventories
         WHERE store_id = $1 AND product_id = $2`, storeID, productID); err != nil {
		return 0, false, err
	}

	if quantity > 0 {
		if _, err := tx.ExecContext(ctx, `
            UPDATE products SET stock = stock + $1, updated_at = now()
             WHERE id = $2`, quantity, productID); err != nil {
			return 0, false, fmt.Errorf("failed to return quantity to pool: %w", err)
		}
	}

	return quantity, true, tx.Commit()
}

func (r *PGRepository) DeductQuantity(ctx context.Context, storeID, productID string, qty int) (bool, error) {
	defer prometheus.TrackDBOperation("deduct")(time.Now())

	res, err := r.DB.ExecContext(ctx, `
        UPDATE store_inventories
           SET quantity = GREATEST(quantity - $3, 0), updated_at = now()
         WHERE store_id = $1 AND product_id = $2`, storeID, productID, qty)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
