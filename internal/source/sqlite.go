package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"collectionview/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	subtitle    TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	tags        TEXT NOT NULL DEFAULT '[]',
	meta        TEXT NOT NULL DEFAULT '[]',
	fields      TEXT NOT NULL DEFAULT '{}',
	disabled    INTEGER NOT NULL DEFAULT 0,
	position    INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);
`

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

func loadSQLite(ctx context.Context, path string) ([]domain.Item, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, title, subtitle, description, tags, meta, fields, disabled
		FROM items
		ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var (
			item               domain.Item
			tags, meta, fields string
			disabled           int
		)
		if err := rows.Scan(&item.Key, &item.Title, &item.Subtitle, &item.Description, &tags, &meta, &fields, &disabled); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if err := decodeColumns(&item, tags, meta, fields); err != nil {
			return nil, fmt.Errorf("item %q: %w", item.Key, err)
		}
		item.Disabled = disabled != 0
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	return items, nil
}

// WriteSQLite replaces the contents of the database at path with items,
// positions following slice order
func WriteSQLite(ctx context.Context, path string, items []domain.Item) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, title, subtitle, description, tags, meta, fields, disabled, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range items {
		tags, meta, fields, err := encodeColumns(item)
		if err != nil {
			return fmt.Errorf("item %q: %w", item.Key, err)
		}
		disabled := 0
		if item.Disabled {
			disabled = 1
		}
		if _, err := stmt.ExecContext(ctx, item.Key, item.Title, item.Subtitle, item.Description,
			tags, meta, fields, disabled, i); err != nil {
			return fmt.Errorf("failed to insert %q: %w", item.Key, err)
		}
	}

	return tx.Commit()
}

// savePositions stores order as the position column. Ids not in the table are ignored.
func savePositions(ctx context.Context, path string, order []string) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE items SET position = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare update: %w", err)
	}
	defer stmt.Close()

	for i, id := range order {
		if _, err := stmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("failed to update position of %q: %w", id, err)
		}
	}

	return tx.Commit()
}

func encodeColumns(item domain.Item) (tags, meta, fields string, err error) {
	var b []byte
	if b, err = json.Marshal(nonNil(item.Tags)); err != nil {
		return
	}
	tags = string(b)

	if b, err = json.Marshal(nonNil(item.Meta)); err != nil {
		return
	}
	meta = string(b)

	f := item.Fields
	if f == nil {
		f = map[string]any{}
	}
	if b, err = json.Marshal(f); err != nil {
		return
	}
	fields = string(b)
	return
}

func decodeColumns(item *domain.Item, tags, meta, fields string) error {
	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return fmt.Errorf("bad tags column: %w", err)
	}
	if err := json.Unmarshal([]byte(meta), &item.Meta); err != nil {
		return fmt.Errorf("bad meta column: %w", err)
	}
	if err := json.Unmarshal([]byte(fields), &item.Fields); err != nil {
		return fmt.Errorf("bad fields column: %w", err)
	}
	if len(item.Tags) == 0 {
		item.Tags = nil
	}
	if len(item.Meta) == 0 {
		item.Meta = nil
	}
	if len(item.Fields) == 0 {
		item.Fields = nil
	}
	return nil
}

func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
