package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/unlockforge/internal/models"
)

// Store holds raw catalog records in SQLite
type Store struct {
	db *sql.DB
}

// New opens (or creates) the catalog database at dbPath
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS catalog_items (
			position INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			points TEXT,
			expansion TEXT,
			image TEXT,
			xws TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_items_name ON catalog_items(name)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// GetRawItems returns all catalog records in insertion order
func (s *Store) GetRawItems(ctx context.Context) ([]models.RawItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, points, expansion, image, xws
		FROM catalog_items ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.RawItem
	for rows.Next() {
		var item models.RawItem
		var points, expansion, image, xws sql.NullString
		if err := rows.Scan(&item.Name, &points, &expansion, &image, &xws); err != nil {
			return nil, err
		}
		if points.Valid {
			item.Points = models.Points(points.String)
		}
		item.Expansion = expansion.String
		item.Image = image.String
		item.XWS = xws.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// CountRawItems returns the number of stored catalog records
func (s *Store) CountRawItems(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_items`).Scan(&n)
	return n, err
}

// DeleteRawItems removes every catalog record
func (s *Store) DeleteRawItems(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM catalog_items`)
	return err
}

// BulkCreateRawItems appends records in a transaction, keeping their order
func (s *Store) BulkCreateRawItems(ctx context.Context, items []models.RawItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO catalog_items (name, points, expansion, image, xws)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		// Points are kept as their JSON text so numbers and strings survive.
		var points any
		if len(item.Points) > 0 {
			points = string(item.Points)
		}
		_, err := stmt.ExecContext(ctx, item.Name, points, item.Expansion, item.Image, item.XWS)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
