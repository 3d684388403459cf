package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"soletracker_backend/internal/models"
	"soletracker_backend/internal/repositories"
	"soletracker_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// --- Custom Service Errors ---
var (
	ErrValidation      = errors.New("validation error")
	ErrItemNotFound    = errors.New("item not found")
	ErrItemAlreadySold = errors.New("item already sold")
	ErrDateFormat      = errors.New("invalid date format, expected YYYY-MM-DD")
)

// DateLayout is the wire format for purchase and sale dates.
const DateLayout = "2006-01-02"

// --- DTOs ---

// CreateItemRequest is used for adding a new item to the inventory.
type CreateItemRequest struct {
	Name          string           `json:"name" binding:"required"`
	Code          string           `json:"code"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" binding:"required"`
	Size          string           `json:"size" binding:"required"`
	PurchaseDate  string           `json:"purchase_date" binding:"required"`
	BroughtFrom   string           `json:"brought_from"`
}

// DeleteItemResult confirms the removal of an item.
type DeleteItemResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// --- ItemService Interface ---
type ItemService interface {
	CreateItem(req CreateItemRequest) (*models.Item, error)
	DeleteItem(itemID int64) (*DeleteItemResult, error)
	ListItems() ([]models.MergedItem, error)
}

// --- itemService Implementation ---
type itemService struct {
	itemRepo repositories.ItemRepository
	saleRepo repositories.SaleRepository
	db       *sql.DB // For managing transactions
}

// NewItemService creates a new instance of ItemService.
func NewItemService(ir repositories.ItemRepository, sr repositories.SaleRepository, db *sql.DB) ItemService {
	return &itemService{
		itemRepo: ir,
		saleRepo: sr,
		db:       db,
	}
}

// CreateItem validates the request and inserts a new AVAILABLE item.
func (s *itemService) CreateItem(req CreateItemRequest) (*models.Item, error) {
	if utils.IsEmpty(req.Name) {
		return nil, fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	}
	if utils.IsEmpty(req.Size) {
		return nil, fmt.Errorf("%w: item size cannot be empty", ErrValidation)
	}
	if req.PurchasePrice == nil {
		return nil, fmt.Errorf("%w: purchase price is required", ErrValidation)
	}
	if req.PurchasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: purchase price cannot be negative", ErrValidation)
	}
	if utils.IsEmpty(req.PurchaseDate) {
		return nil, fmt.Errorf("%w: purchase date is required", ErrValidation)
	}
	purchaseDate, err := time.Parse(DateLayout, req.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("%w: purchase_date %q", ErrDateFormat, req.PurchaseDate)
	}

	item := &models.Item{
		Name:          req.Name,
		Code:          utils.NewNullString(req.Code),
		PurchasePrice: *req.PurchasePrice,
		Size:          req.Size,
		PurchaseDate:  purchaseDate,
		BroughtFrom:   utils.NewNullString(req.BroughtFrom),
		Status:        models.StatusAvailable,
	}

	if _, err := s.itemRepo.CreateItem(s.db, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// DeleteItem removes an item and, when the item was sold, its sale record.
// Both deletes run in one transaction: if the sale delete fails the item row
// survives as well, so the no-orphan-sales invariant holds either way.
func (s *itemService) DeleteItem(itemID int64) (*DeleteItemResult, error) {
	item, err := s.itemRepo.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to fetch item for deletion: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if item.Status == models.StatusSold {
		if _, err := s.saleRepo.DeleteSaleByItemID(tx, itemID); err != nil {
			return nil, fmt.Errorf("failed to delete sale record: %w", err)
		}
	}

	if err := s.itemRepo.DeleteItem(tx, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit item deletion: %w", err)
	}

	return &DeleteItemResult{ID: itemID, Message: "Item deleted successfully"}, nil
}

// ListItems returns all items ordered by ID with their sale fields projected
// on, for items that have one.
func (s *itemService) ListItems() ([]models.MergedItem, error) {
	items, err := s.itemRepo.GetItems()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}
	sales, err := s.saleRepo.GetSales()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}
	return mergeItemsAndSales(items, sales), nil
}

// mergeItemsAndSales performs the item/sale left join in application logic.
// Sales are indexed by item_id first so the join is one pass over each slice
// instead of a nested scan.
func mergeItemsAndSales(items []models.Item, sales []models.Sale) []models.MergedItem {
	saleByItemID := make(map[int64]models.Sale, len(sales))
	for _, sale := range sales {
		saleByItemID[sale.ItemID] = sale
	}

	merged := make([]models.MergedItem, 0, len(items))
	for _, item := range items {
		record := models.MergedItem{Item: item}
		if sale, ok := saleByItemID[item.ID]; ok {
			soldPrice := sale.SalePrice
			soldDate := sale.SaleDate
			method := sale.Method
			record.SoldPrice = &soldPrice
			record.SoldDate = &soldDate
			record.Method = &method
			record.SoldTo = sale.SoldTo
		}
		merged = append(merged, record)
	}
	return merged
}
