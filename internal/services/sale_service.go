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

// --- DTOs ---

// SellItemRequest carries the sale details for marking an item as sold.
type SellItemRequest struct {
	SalePrice *decimal.Decimal     `json:"sale_price" binding:"required"`
	SaleDate  string               `json:"sale_date" binding:"required"`
	Method    models.PaymentMethod `json:"method" binding:"required"`
	SoldTo    string               `json:"sold_to"`
}

// SellItemResult returns both sides of a completed sale: the new sale row
// and the item with its updated status.
type SellItemResult struct {
	Sale *models.Sale `json:"sale"`
	Item *models.Item `json:"item"`
}

// --- SaleService Interface ---
type SaleService interface {
	SellItem(itemID int64, req SellItemRequest) (*SellItemResult, error)
}

// --- saleService Implementation ---
type saleService struct {
	itemRepo repositories.ItemRepository
	saleRepo repositories.SaleRepository
	db       *sql.DB // For managing transactions
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(ir repositories.ItemRepository, sr repositories.SaleRepository, db *sql.DB) SaleService {
	return &saleService{
		itemRepo: ir,
		saleRepo: sr,
		db:       db,
	}
}

// SellItem creates a sale record for an item and transitions the item to SOLD.
//
// The sale insert and the status update run in one transaction, and the status
// update is conditional on the item still being AVAILABLE. When two sells race
// on the same item, the loser's update matches zero rows and its transaction
// rolls back, sale insert included, so at most one sale per item can ever
// commit.
func (s *saleService) SellItem(itemID int64, req SellItemRequest) (*SellItemResult, error) {
	item, err := s.itemRepo.GetItemByID(itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrItemNotFound, itemID)
		}
		return nil, fmt.Errorf("failed to fetch item for sale: %w", err)
	}
	if item.Status == models.StatusSold {
		return nil, fmt.Errorf("%w: ID %d", ErrItemAlreadySold, itemID)
	}

	if req.SalePrice == nil {
		return nil, fmt.Errorf("%w: sale price is required", ErrValidation)
	}
	if req.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: sale price cannot be negative", ErrValidation)
	}
	if utils.IsEmpty(req.SaleDate) {
		return nil, fmt.Errorf("%w: sale date is required", ErrValidation)
	}
	if !req.Method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.Method)
	}
	saleDate, err := time.Parse(DateLayout, req.SaleDate)
	if err != nil {
		return nil, fmt.Errorf("%w: sale_date %q", ErrDateFormat, req.SaleDate)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	sale := &models.Sale{
		ItemID:    itemID,
		SalePrice: *req.SalePrice,
		SaleDate:  saleDate,
		Method:    req.Method,
		SoldTo:    utils.NewNullString(req.SoldTo),
	}
	if _, err := s.saleRepo.CreateSale(tx, sale); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: ID %d", ErrItemAlreadySold, itemID)
		}
		return nil, fmt.Errorf("failed to create sale record: %w", err)
	}

	rowsAffected, err := s.itemRepo.MarkItemSold(tx, itemID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to update item status: %w", err)
	}
	if rowsAffected == 0 {
		// A concurrent sale won between our read and the update.
		return nil, fmt.Errorf("%w: ID %d", ErrItemAlreadySold, itemID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale transaction: %w", err)
	}

	updatedItem, err := s.itemRepo.GetItemByID(itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item after sale: %w", err)
	}
	return &SellItemResult{Sale: sale, Item: updatedItem}, nil
}
