// Package compare reports the differences between two card snapshots.
package compare

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Change describes one variant that was added, removed, renamed or
// repriced between two snapshots. Added variants have empty Old fields,
// removed ones empty New fields.
type Change struct {
	UniqueID   string
	CardCode   string
	OldName    string
	NewName    string
	OldVariant string
	NewVariant string
	OldPrice   int
	NewPrice   int
}

func (c Change) Added() bool {
	return c.OldVariant == "" && c.NewVariant != ""
}

func (c Change) Removed() bool {
	return c.NewVariant == "" && c.OldVariant != ""
}

func Compare(oldDb string, newDb string) ([]Change, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", newDb))
	if err != nil {
		return nil, fmt.Errorf("error opening new database: %w", err)
	}
	defer db.Close()

	// ATTACH only applies to the connection it runs on
	db.SetMaxOpenConns(1)

	_, err = db.Exec("ATTACH DATABASE ? AS old", fmt.Sprintf("file:%s?mode=ro", oldDb))
	if err != nil {
		return nil, fmt.Errorf("error opening old database: %w", err)
	}

	rs, err := db.Query(`SELECT COALESCE(n.unique_id, o.unique_id),
		COALESCE(n.card_code, o.card_code),
		COALESCE(o.base_name, ''),
		COALESCE(n.base_name, ''),
		COALESCE(o.variant_name, ''),
		COALESCE(n.variant_name, ''),
		COALESCE(o.price, 0),
		COALESCE(n.price, 0)
		FROM main.cards AS n FULL OUTER JOIN old.cards AS o USING (unique_id)
		WHERE o.unique_id IS NULL OR n.unique_id IS NULL
		OR o.base_name <> n.base_name
		OR o.variant_name <> n.variant_name
		OR o.price <> n.price
		ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("error submitting query: %w", err)
	}
	defer rs.Close()

	var changes []Change
	for rs.Next() {
		var change Change
		err := rs.Scan(
			&change.UniqueID,
			&change.CardCode,
			&change.OldName,
			&change.NewName,
			&change.OldVariant,
			&change.NewVariant,
			&change.OldPrice,
			&change.NewPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		changes = append(changes, change)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	return changes, nil
}
