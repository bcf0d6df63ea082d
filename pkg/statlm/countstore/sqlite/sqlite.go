// Package sqlite persists count snapshots in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/statlm/pkg/statlm/countstore"
	"github.com/cognicore/statlm/pkg/statlm/internalerr"
	"github.com/cognicore/statlm/pkg/statlm/ngram"
)

// sqliteStore implements countstore.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and creates the schema
// if needed.
func Open(ctx context.Context, path string) (countstore.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	model_order INTEGER NOT NULL,
	cutoff INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_vocab (
	snapshot_id TEXT NOT NULL,
	token TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(snapshot_id, token),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS snapshot_counts (
	snapshot_id TEXT NOT NULL,
	gram_order INTEGER NOT NULL,
	context TEXT NOT NULL,
	word TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(snapshot_id, gram_order, context, word),
	FOREIGN KEY(snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot writes the snapshot and its payload in one transaction.
func (s *sqliteStore) SaveSnapshot(ctx context.Context, snap countstore.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (id, model_order, cutoff, created_at) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Order, snap.Cutoff, snap.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	vocabStmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO snapshot_vocab (snapshot_id, token, count) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer vocabStmt.Close()
	for _, tc := range snap.Vocab {
		if _, err := vocabStmt.ExecContext(ctx, snap.ID, tc.Token, tc.Count); err != nil {
			return fmt.Errorf("insert vocab token: %w", err)
		}
	}

	countStmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO snapshot_counts (snapshot_id, gram_order, context, word, count) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer countStmt.Close()
	for _, e := range snap.Counts {
		if _, err := countStmt.ExecContext(ctx, snap.ID, e.Order, ngram.Key(e.Context), e.Word, e.Count); err != nil {
			return fmt.Errorf("insert count: %w", err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads a snapshot back, including its payload.
func (s *sqliteStore) LoadSnapshot(ctx context.Context, id string) (countstore.Snapshot, error) {
	snap := countstore.Snapshot{ID: id}

	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT model_order, cutoff, created_at FROM snapshots WHERE id = ?`, id).
		Scan(&snap.Order, &snap.Cutoff, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return countstore.Snapshot{}, fmt.Errorf("%w: snapshot %s", internalerr.ErrNotFound, id)
	}
	if err != nil {
		return countstore.Snapshot{}, err
	}
	if snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return countstore.Snapshot{}, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT token, count FROM snapshot_vocab WHERE snapshot_id = ? ORDER BY token`, id)
	if err != nil {
		return countstore.Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var tc countstore.TokenCount
		if err := rows.Scan(&tc.Token, &tc.Count); err != nil {
			return countstore.Snapshot{}, err
		}
		snap.Vocab = append(snap.Vocab, tc)
	}
	if err := rows.Err(); err != nil {
		return countstore.Snapshot{}, err
	}

	countRows, err := s.db.QueryContext(ctx,
		`SELECT gram_order, context, word, count FROM snapshot_counts WHERE snapshot_id = ? ORDER BY gram_order, context, word`, id)
	if err != nil {
		return countstore.Snapshot{}, err
	}
	defer countRows.Close()
	for countRows.Next() {
		var (
			e      countstore.Entry
			packed string
		)
		if err := countRows.Scan(&e.Order, &packed, &e.Word, &e.Count); err != nil {
			return countstore.Snapshot{}, err
		}
		if packed != "" {
			e.Context = ngram.SplitKey(packed)
		}
		snap.Counts = append(snap.Counts, e)
	}
	if err := countRows.Err(); err != nil {
		return countstore.Snapshot{}, err
	}

	return snap, nil
}

// ListSnapshots returns metadata for every stored snapshot, oldest first.
func (s *sqliteStore) ListSnapshots(ctx context.Context) ([]countstore.Info, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, model_order, created_at FROM snapshots ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []countstore.Info
	for rows.Next() {
		var (
			info      countstore.Info
			createdAt string
		)
		if err := rows.Scan(&info.ID, &info.Order, &createdAt); err != nil {
			return nil, err
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
