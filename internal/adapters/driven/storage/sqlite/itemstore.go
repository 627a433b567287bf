package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/basket-cli/internal/core/domain"
	"github.com/custodia-labs/basket-cli/internal/core/ports/driven"
)

// itemStore implements driven.ItemStore.
type itemStore struct {
	store *Store
}

var _ driven.ItemStore = (*itemStore)(nil)

// List returns all items ordered by the purchased flag.
func (s *itemStore) List(ctx context.Context) ([]domain.Item, error) {
	db, err := s.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, isPurchased, imageUrl
		FROM shopping_list
		ORDER BY isPurchased ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	items := []domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// Get retrieves an item by ID.
func (s *itemStore) Get(ctx context.Context, id int64) (*domain.Item, error) {
	db, err := s.store.DB(ctx)
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, `
		SELECT id, name, isPurchased, imageUrl
		FROM shopping_list WHERE id = ?
	`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Insert stores an item, replacing any row with the same non-zero ID.
func (s *itemStore) Insert(ctx context.Context, item domain.Item) (int64, error) {
	db, err := s.store.DB(ctx)
	if err != nil {
		return 0, err
	}

	// A NULL id lets SQLite assign the next rowid.
	var id any
	if item.ID != 0 {
		id = item.ID
	}

	res, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO shopping_list (id, name, isPurchased, imageUrl)
		VALUES (?, ?, ?, ?)
	`, id, item.Name, item.Purchased, nullString(item.ImageURL))
	if err != nil {
		return 0, fmt.Errorf("inserting item: %w", err)
	}

	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return newID, nil
}

// Update replaces all fields of the item with the same ID.
func (s *itemStore) Update(ctx context.Context, item domain.Item) error {
	db, err := s.store.DB(ctx)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `
		UPDATE shopping_list
		SET name = ?, isPurchased = ?, imageUrl = ?
		WHERE id = ?
	`, item.Name, item.Purchased, nullString(item.ImageURL), item.ID)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes the item with the given ID.
func (s *itemStore) Delete(ctx context.Context, id int64) error {
	db, err := s.store.DB(ctx)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, "DELETE FROM shopping_list WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*domain.Item, error) {
	var item domain.Item
	var imageURL sql.NullString

	if err := row.Scan(&item.ID, &item.Name, &item.Purchased, &imageURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning item: %w", err)
	}

	if imageURL.Valid {
		uri := imageURL.String
		item.ImageURL = &uri
	}
	return &item, nil
}

// nullString converts an optional string to a nullable column value.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
