package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"plank-cli/internal/model"
)

// HistoryEntryRow is the persisted form of one undo/redo entry.
type HistoryEntryRow struct {
	Snapshot model.Snapshot `json:"snapshot"`
	At       time.Time      `json:"at"`
	Label    string         `json:"label"`
}

// HistoryStacks carries both stacks, oldest-first.
type HistoryStacks struct {
	Undo []HistoryEntryRow
	Redo []HistoryEntryRow
}

// SaveHistory stores both stacks for one board key.
// Replace-all strategy: history stacks are small (bounded) and atomically
// replacing them is simpler than diffing.
func (s SQLiteGateway) SaveHistory(ctx context.Context, key string, stacks HistoryStacks) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := s.migrateHistory(ctx, db); err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history WHERE key = ?`, key); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	insert := func(stack string, rows []HistoryEntryRow) error {
		for i, r := range rows {
			raw, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrWriteFailed, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO history(key, stack, pos, label, at_unixms, json) VALUES(?, ?, ?, ?, ?, ?)`,
				key, stack, i, r.Label, r.At.UTC().UnixMilli(), string(raw)); err != nil {
				return fmt.Errorf("%w: %v", ErrWriteFailed, err)
			}
		}
		return nil
	}
	if err := insert("undo", stacks.Undo); err != nil {
		return err
	}
	if err := insert("redo", stacks.Redo); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// LoadHistory returns both stacks for one board key, oldest-first.
func (s SQLiteGateway) LoadHistory(ctx context.Context, key string) (HistoryStacks, error) {
	db, err := s.open(ctx)
	if err != nil {
		return HistoryStacks{}, err
	}
	defer db.Close()

	if err := s.migrateHistory(ctx, db); err != nil {
		return HistoryStacks{}, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT stack, json FROM history WHERE key = ? ORDER BY stack, pos`, key)
	if err != nil {
		return HistoryStacks{}, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	defer rows.Close()

	var out HistoryStacks
	for rows.Next() {
		var stack, raw string
		if err := rows.Scan(&stack, &raw); err != nil {
			return HistoryStacks{}, fmt.Errorf("%w: %v", ErrReadFailed, err)
		}
		var row HistoryEntryRow
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return HistoryStacks{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		switch stack {
		case "undo":
			out.Undo = append(out.Undo, row)
		case "redo":
			out.Redo = append(out.Redo, row)
		}
	}
	if err := rows.Err(); err != nil {
		return HistoryStacks{}, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	return out, nil
}

func (s SQLiteGateway) migrateHistory(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS history (
		key TEXT NOT NULL,
		stack TEXT NOT NULL,
		pos INTEGER NOT NULL,
		label TEXT NOT NULL,
		at_unixms INTEGER NOT NULL,
		json TEXT NOT NULL,
		PRIMARY KEY (key, stack, pos)
	);`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
