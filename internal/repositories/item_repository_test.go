package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"soletracker_backend/internal/database"
	"soletracker_backend/internal/models"

	"github.com/shopspring/decimal"
)

func testItem(name string) *models.Item {
	return &models.Item{
		Name:          name,
		PurchasePrice: decimal.NewFromInt(120),
		Size:          "UK9",
		PurchaseDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        models.StatusAvailable,
	}
}

func newItemRepo(t *testing.T) (ItemRepository, *sql.DB) {
	t.Helper()
	db := database.NewTestDB(t)
	return NewItemRepository(db), db
}

func TestCreateAndGetItem(t *testing.T) {
	repo, db := newItemRepo(t)

	item := testItem("Jordan 4")
	id, err := repo.CreateItem(db, item)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a store-assigned ID")
	}

	got, err := repo.GetItemByID(id)
	if err != nil {
		t.Fatalf("GetItemByID: %v", err)
	}
	if got.Name != "Jordan 4" {
		t.Errorf("expected name 'Jordan 4', got %q", got.Name)
	}
	if got.Status != models.StatusAvailable {
		t.Errorf("expected status AVAILABLE, got %s", got.Status)
	}
	if !got.PurchasePrice.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected purchase price 120, got %s", got.PurchasePrice)
	}
}

func TestGetItemByIDNotFound(t *testing.T) {
	repo, _ := newItemRepo(t)

	if _, err := repo.GetItemByID(404); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetItemsOrderedByID(t *testing.T) {
	repo, db := newItemRepo(t)

	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := repo.CreateItem(db, testItem(name)); err != nil {
			t.Fatalf("CreateItem %s: %v", name, err)
		}
	}

	items, err := repo.GetItems()
	if err != nil {
		t.Fatalf("GetItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].ID <= items[i-1].ID {
			t.Errorf("expected ascending IDs, got %d after %d", items[i].ID, items[i-1].ID)
		}
	}
}

func TestMarkItemSoldIsConditional(t *testing.T) {
	repo, db := newItemRepo(t)

	id, err := repo.CreateItem(db, testItem("Race Me"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	rows, err := repo.MarkItemSold(db, id, time.Now())
	if err != nil {
		t.Fatalf("MarkItemSold: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected on first transition, got %d", rows)
	}

	// Second transition matches no AVAILABLE row: this is the guard that
	// makes concurrent sells lose cleanly.
	rows, err = repo.MarkItemSold(db, id, time.Now())
	if err != nil {
		t.Fatalf("MarkItemSold (second): %v", err)
	}
	if rows != 0 {
		t.Errorf("expected 0 rows affected on repeat transition, got %d", rows)
	}
}

func TestDeleteItem(t *testing.T) {
	repo, db := newItemRepo(t)

	id, err := repo.CreateItem(db, testItem("Delete Me"))
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if err := repo.DeleteItem(db, id); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if _, err := repo.GetItemByID(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.DeleteItem(db, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting a missing item, got %v", err)
	}
}
