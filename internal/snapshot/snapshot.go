// Package snapshot exports the card database into SQLite so that two runs
// can be diffed with SQL.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"sohio.net/cardmarket/internal/carddb"
)

const schema = `CREATE TABLE cards(
	unique_id TEXT PRIMARY KEY,
	card_code TEXT NOT NULL,
	set_id TEXT NOT NULL,
	base_name TEXT NOT NULL,
	variant_name TEXT NOT NULL,
	rarity TEXT NOT NULL,
	price INTEGER NOT NULL,
	image_url TEXT NOT NULL,
	official_image_url TEXT NOT NULL,
	finish TEXT NOT NULL,
	is_high_demand INTEGER NOT NULL
) WITHOUT ROWID, STRICT`

// Write replaces the snapshot at path with records.
func Write(ctx context.Context, path string, records []carddb.Record) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing old snapshot: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+(&url.URL{
		Path:     path,
		RawQuery: "mode=rwc",
	}).String())
	if err != nil {
		return fmt.Errorf("error opening snapshot: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.UniqueID,
			r.CardCode,
			r.SetID,
			r.BaseName,
			r.VariantName,
			r.Rarity,
			r.Price,
			r.ImageURL,
			r.OfficialImageURL,
			r.Finish,
			r.HighDemand,
		)
		if err != nil {
			return fmt.Errorf("error inserting %s: %w", r.UniqueID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing tx: %w", err)
	}
	return db.Close()
}
