package database

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema in the sqlite dialect. The postgres
// equivalent ships as db_schema.sql at the repository root and is applied
// via DB_SCHEMA_PATH.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id             INTEGER PRIMARY KEY,
    name           TEXT NOT NULL,
    code           TEXT,
    purchase_price NUMERIC NOT NULL CHECK (purchase_price >= 0),
    size           TEXT NOT NULL,
    purchase_date  DATE NOT NULL,
    brought_from   TEXT,
    status         TEXT NOT NULL DEFAULT 'AVAILABLE' CHECK (status IN ('AVAILABLE', 'SOLD')),
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sales (
    id         INTEGER PRIMARY KEY,
    item_id    INTEGER NOT NULL REFERENCES items(id),
    sale_price NUMERIC NOT NULL CHECK (sale_price >= 0),
    sale_date  DATE NOT NULL,
    method     TEXT NOT NULL CHECK (method IN ('CASH', 'BANK', 'CRYPTO')),
    sold_to    TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_sales_item_id ON sales(item_id);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
