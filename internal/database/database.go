package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"  // PostgreSQL driver
	_ "modernc.org/sqlite" // Embedded SQLite driver
)

var DB *sql.DB

// Open opens a database connection for the given driver.
// Supported drivers are "postgres" (lib/pq connection string or URL) and
// "sqlite" (file path, or ":memory:" for an in-memory database).
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "postgres":
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("opening postgres database: %w", err)
		}
		return db, nil
	case "sqlite":
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA busy_timeout=5000",
			"PRAGMA foreign_keys=ON",
		}
		// A single connection serialises writes and keeps :memory:
		// databases from being split across pool connections.
		db.SetMaxOpenConns(1)
		for _, p := range pragmas {
			if _, err := db.Exec(p); err != nil {
				db.Close()
				return nil, fmt.Errorf("setting pragma %q: %w", p, err)
			}
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// InitDB initializes the shared database connection and applies the schema.
// For sqlite the built-in schema is applied directly; for postgres the schema
// is read from dbSchemaPath when one is provided.
func InitDB(driver, dsn, dbSchemaPath string) {
	var err error
	DB, err = Open(driver, dsn)
	if err != nil {
		log.Fatalf("Error opening database: %q", err)
	}

	if err = DB.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %q", err)
	}

	if driver == "sqlite" {
		if err = EnsureSchema(DB); err != nil {
			log.Fatalf("Error applying database schema: %q", err)
		}
	} else if err = applySchema(DB, dbSchemaPath); err != nil {
		log.Fatalf("Error applying database schema: %q", err)
	}
}

// applySchema reads and executes a schema SQL file.
func applySchema(db *sql.DB, schemaPath string) error {
	if schemaPath == "" {
		log.Println("No schema path provided, skipping schema application.")
		return nil
	}
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}

	if _, err = db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}

// GetDB returns the database connection pool
func GetDB() *sql.DB {
	return DB
}

// PostgresDSN builds a lib/pq connection string from its parts.
func PostgresDSN(host, port, user, password, dbname, sslmode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}
