package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus is the lifecycle status of an inventory item.
// An item starts AVAILABLE and transitions to SOLD exactly once,
// only through the sale service. It never transitions back.
type ItemStatus string

const (
	StatusAvailable ItemStatus = "AVAILABLE"
	StatusSold      ItemStatus = "SOLD"
)

// Valid reports whether the status is one of the known values.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold:
		return true
	default:
		return false
	}
}

// PaymentMethod is how a sale was paid for.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodBank   PaymentMethod = "BANK"
	MethodCrypto PaymentMethod = "CRYPTO"
)

// Valid reports whether the payment method is one of the known values.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBank, MethodCrypto:
		return true
	default:
		return false
	}
}

// Item represents one physical unit of inventory, tracked from purchase
// until it is sold or removed.
type Item struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name" binding:"required"`
	Code          *string         `json:"code,omitempty" db:"code"`
	PurchasePrice decimal.Decimal `json:"purchase_price" db:"purchase_price"`
	Size          string          `json:"size" db:"size"`
	PurchaseDate  time.Time       `json:"purchase_date" db:"purchase_date"`
	BroughtFrom   *string         `json:"brought_from,omitempty" db:"brought_from"`
	Status        ItemStatus      `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// Sale records the disposition of exactly one item. A sale only exists as
// a side effect of selling an item and is removed when the item is deleted.
type Sale struct {
	ID        int64           `json:"id" db:"id"`
	ItemID    int64           `json:"item_id" db:"item_id"`
	SalePrice decimal.Decimal `json:"sale_price" db:"sale_price"`
	SaleDate  time.Time       `json:"sale_date" db:"sale_date"`
	Method    PaymentMethod   `json:"method" db:"method"`
	SoldTo    *string         `json:"sold_to,omitempty" db:"sold_to"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// MergedItem is the read-time projection of an item together with its sale,
// if one exists. The sale fields are nil for items still in stock.
// This is the only shape the list endpoint and the analytics consume.
type MergedItem struct {
	Item
	SoldPrice *decimal.Decimal `json:"sold_price,omitempty"`
	SoldDate  *time.Time       `json:"sold_date,omitempty"`
	Method    *PaymentMethod   `json:"method,omitempty"`
	SoldTo    *string          `json:"sold_to,omitempty"`
}
