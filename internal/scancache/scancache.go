package scancache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"mircorpus/internal/checksum"
)

var (
	// ErrMiss signals the file has no cache entry for its current size
	// and mtime.
	ErrMiss = errors.New("not in scan cache")
)

// FileName is the cache database's name under a dataset root.
const FileName = ".mircorpus-scan.db"

// Store persists file digests keyed by path, size and mtime, so
// repeated validation runs skip re-digesting unchanged audio. Any
// change to a file invalidates its entry by changing the key.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens the cache database at path, creating file and schema as
// needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open scan cache: %w", err)
	}
	s := New(db)
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS digests (
			path   TEXT    NOT NULL,
			size   INTEGER NOT NULL,
			mtime  INTEGER NOT NULL,
			digest TEXT    NOT NULL,
			PRIMARY KEY (path, size, mtime)
		)
	`); err != nil {
		return fmt.Errorf("create scan cache schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Lookup returns the digest cached for the given file state, or
// ErrMiss.
func (s *Store) Lookup(ctx context.Context, path string, size, mtime int64) (string, error) {
	var digest string
	err := s.db.QueryRowContext(ctx, `
		SELECT digest
		FROM digests
		WHERE path = ? AND size = ? AND mtime = ?
	`, path, size, mtime).Scan(&digest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrMiss
		}
		return "", fmt.Errorf("lookup digest: %w", err)
	}
	return digest, nil
}

// Record stores the digest for the given file state, evicting entries
// for older states of the same path.
func (s *Store) Record(ctx context.Context, path string, size, mtime int64, digest string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM digests
		WHERE path = ?
	`, path); err != nil {
		return fmt.Errorf("evict stale digest: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO digests (path, size, mtime, digest)
		VALUES (?, ?, ?, ?)
	`, path, size, mtime, digest); err != nil {
		return fmt.Errorf("record digest: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// Sum returns the md5 digest of path, consulting the cache first and
// recording fresh digests. Close over a ctx to use it as a validation
// SumFunc.
func (s *Store) Sum(ctx context.Context, path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	size, mtime := fi.Size(), fi.ModTime().UnixNano()

	digest, err := s.Lookup(ctx, path, size, mtime)
	if err == nil {
		return digest, nil
	}
	if !errors.Is(err, ErrMiss) {
		return "", err
	}

	digest, err = checksum.File(path)
	if err != nil {
		return "", err
	}
	if err := s.Record(ctx, path, size, mtime, digest); err != nil {
		return "", err
	}
	return digest, nil
}
