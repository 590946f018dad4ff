package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"plank-cli/internal/model"

	_ "modernc.org/sqlite"
)

const dbFileName = "plank.sqlite"

// SQLiteGateway persists snapshots as JSON rows in a local SQLite file,
// one row per board key.
type SQLiteGateway struct {
	Dir string
}

func (s SQLiteGateway) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s SQLiteGateway) dbPath() string {
	return filepath.Join(filepath.Clean(s.Dir), dbFileName)
}

func (s SQLiteGateway) open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// Pragmas for multi-process local usage.
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	if err := s.migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s SQLiteGateway) migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS boards (
			key TEXT PRIMARY KEY,
			format_version INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func (s SQLiteGateway) Save(ctx context.Context, key string, snapshot model.Snapshot) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrWriteFailed)
	}
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT OR REPLACE INTO boards(key, format_version, json, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		key, snapshot.FormatVersion, string(raw), time.Now().UTC().UnixMilli())
	if err != nil {
		if isFullErr(err) {
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (s SQLiteGateway) Load(ctx context.Context, key string) (model.Snapshot, bool, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT json FROM boards WHERE key = ?`, strings.TrimSpace(key)).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.Snapshot{}, false, nil
	}
	if err != nil {
		return model.Snapshot{}, false, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return model.Snapshot{}, false, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return snap, true, nil
}

func (s SQLiteGateway) Remove(ctx context.Context, key string) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `DELETE FROM boards WHERE key = ?`, strings.TrimSpace(key)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Size reports the database file size plus free space on its volume.
// Filesystems that cannot answer yield ErrSizeUnavailable.
func (s SQLiteGateway) Size(ctx context.Context) (Usage, error) {
	st, err := os.Stat(s.dbPath())
	if err != nil {
		if os.IsNotExist(err) {
			return Usage{}, nil
		}
		return Usage{}, fmt.Errorf("%w: %v", ErrSizeUnavailable, err)
	}
	u := Usage{Used: st.Size()}
	if avail, ok := volumeAvailable(s.Dir); ok {
		u.Available = avail
	} else {
		return u, ErrSizeUnavailable
	}
	return u, nil
}

func isFullErr(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database or disk is full") || strings.Contains(msg, "no space left")
}
