package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"soletracker_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// SaleRepository defines the interface for sale-related database operations.
type SaleRepository interface {
	CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error)
	GetSales() ([]models.Sale, error)
	CountSalesByItemID(itemID int64) (int, error)
	DeleteSaleByItemID(executor SQLExecutor, itemID int64) (int64, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

// CreateSale inserts a new sale row referencing an item and fills in its ID.
// The unique index on item_id is a storage-level backstop for the
// one-sale-per-item invariant; the conditional status update in the sale
// service is the primary guard.
func (r *saleRepository) CreateSale(executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (item_id, sale_price, sale_date, method, sold_to, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`

	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}

	err := executor.QueryRow(query,
		sale.ItemID, sale.SalePrice, sale.SaleDate, sale.Method, sale.SoldTo, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating sale for item ID %d: %v", ErrDatabaseError, sale.ItemID, err)
	}
	return sale.ID, nil
}

// GetSales retrieves all sales. Ordering does not matter to callers, which
// index the result by item_id before use.
func (r *saleRepository) GetSales() ([]models.Sale, error) {
	sales := []models.Sale{}
	query := `SELECT id, item_id, sale_price, sale_date, method, sold_to, created_at FROM sales`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var sale models.Sale
		if err := rows.Scan(
			&sale.ID, &sale.ItemID, &sale.SalePrice, &sale.SaleDate,
			&sale.Method, &sale.SoldTo, &sale.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sales = append(sales, sale)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale rows: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

// CountSalesByItemID returns the number of sale rows referencing an item.
// Per the coherence invariant this is 0 or 1.
func (r *saleRepository) CountSalesByItemID(itemID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM sales WHERE item_id = $1`

	if err := r.db.QueryRow(query, itemID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting sales for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return count, nil
}

// DeleteSaleByItemID removes the sale referencing an item, returning the
// number of rows removed. Zero rows is not an error: available items have
// no sale to remove.
func (r *saleRepository) DeleteSaleByItemID(executor SQLExecutor, itemID int64) (int64, error) {
	query := `DELETE FROM sales WHERE item_id = $1`

	result, err := executor.Exec(query, itemID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting sale for item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for deleting sale of item ID %d: %v", ErrDatabaseError, itemID, err)
	}
	return rowsAffected, nil
}
