package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"soletracker_backend/internal/models"
)

// ItemRepository defines the interface for item-related database operations.
type ItemRepository interface {
	CreateItem(executor SQLExecutor, item *models.Item) (int64, error)
	GetItemByID(id int64) (*models.Item, error)
	GetItems() ([]models.Item, error)
	MarkItemSold(executor SQLExecutor, id int64, at time.Time) (int64, error)
	DeleteItem(executor SQLExecutor, id int64) error
}

type itemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new instance of ItemRepository.
func NewItemRepository(db *sql.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, code, purchase_price, size, purchase_date, brought_from, status, created_at, updated_at`

// CreateItem inserts a new item into the database and fills in its ID.
func (r *itemRepository) CreateItem(executor SQLExecutor, item *models.Item) (int64, error) {
	query := `INSERT INTO items (name, code, purchase_price, size, purchase_date, brought_from, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`

	currentTime := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = currentTime
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		item.Name, item.Code, item.PurchasePrice, item.Size, item.PurchaseDate,
		item.BroughtFrom, item.Status, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating item: %v", ErrDatabaseError, err)
	}
	return item.ID, nil
}

// GetItemByID retrieves an item by its ID.
func (r *itemRepository) GetItemByID(id int64) (*models.Item, error) {
	item := &models.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&item.ID, &item.Name, &item.Code, &item.PurchasePrice, &item.Size,
		&item.PurchaseDate, &item.BroughtFrom, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting item by ID %d: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

// GetItems retrieves all items ordered by ID ascending.
func (r *itemRepository) GetItems() ([]models.Item, error) {
	items := []models.Item{}
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY id ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Code, &item.PurchasePrice, &item.Size,
			&item.PurchaseDate, &item.BroughtFrom, &item.Status, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning item: %v", ErrDatabaseError, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}

// MarkItemSold transitions an item to SOLD with a conditional write. It only
// matches rows still AVAILABLE, so the returned affected-row count is 0 when
// a concurrent sale already claimed the item; the caller treats that as a
// conflict and rolls back its transaction.
func (r *itemRepository) MarkItemSold(executor SQLExecutor, id int64, at time.Time) (int64, error) {
	query := `UPDATE items SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	result, err := executor.Exec(query, models.StatusSold, at, id, models.StatusAvailable)
	if err != nil {
		return 0, fmt.Errorf("%w: marking item ID %d sold: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for item ID %d: %v", ErrDatabaseError, id, err)
	}
	return rowsAffected, nil
}

// DeleteItem removes an item from the database.
func (r *itemRepository) DeleteItem(executor SQLExecutor, id int64) error {
	query := `DELETE FROM items WHERE id = $1`

	result, err := executor.Exec(query, id)
	if err != nil {
		return fmt.Errorf("%w: deleting item ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting item ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
