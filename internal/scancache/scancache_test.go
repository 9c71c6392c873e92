package scancache

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func TestLookupHit(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"digest"}).AddRow("abc123")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT digest FROM digests WHERE path = ? AND size = ? AND mtime = ?")).
		WithArgs("/data/a.wav", int64(44100), int64(1700000000)).
		WillReturnRows(rows)

	digest, err := s.Lookup(context.Background(), "/data/a.wav", 44100, 1700000000)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if digest != "abc123" {
		t.Errorf("digest = %q, want abc123", digest)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestLookupMiss(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT digest FROM digests")).
		WillReturnError(sql.ErrNoRows)

	_, err := s.Lookup(context.Background(), "/data/a.wav", 1, 2)
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestLookupError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT digest FROM digests")).
		WillReturnError(errors.New("disk I/O error"))

	_, err := s.Lookup(context.Background(), "/data/a.wav", 1, 2)
	if err == nil || errors.Is(err, ErrMiss) {
		t.Fatalf("expected a hard error, got %v", err)
	}
}

func TestRecord(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM digests WHERE path = ?")).
		WithArgs("/data/a.wav").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO digests (path, size, mtime, digest) VALUES (?, ?, ?, ?)")).
		WithArgs("/data/a.wav", int64(44100), int64(1700000000), "abc123").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := s.Record(context.Background(), "/data/a.wav", 44100, 1700000000, "abc123"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecordRollsBackOnInsertError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM digests")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO digests")).
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	if err := s.Record(context.Background(), "/data/a.wav", 1, 2, "abc123"); err == nil {
		t.Fatal("expected insert error to propagate")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSumCacheHit(t *testing.T) {
	s, mock := newMockStore(t)

	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	// The canned digest differs from the real one, proving the cache
	// short-circuits the file read.
	rows := sqlmock.NewRows([]string{"digest"}).AddRow("cached-digest")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT digest FROM digests")).
		WithArgs(path, int64(3), sqlmock.AnyArg()).
		WillReturnRows(rows)

	digest, err := s.Sum(context.Background(), path)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if digest != "cached-digest" {
		t.Errorf("digest = %q, want cached-digest", digest)
	}
}

func TestSumMissComputesAndRecords(t *testing.T) {
	s, mock := newMockStore(t)

	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	const wantDigest = "900150983cd24fb0d6963f7d28e17f72" // md5("abc")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT digest FROM digests")).
		WithArgs(path, int64(3), sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM digests")).
		WithArgs(path).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO digests")).
		WithArgs(path, int64(3), sqlmock.AnyArg(), wantDigest).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	digest, err := s.Sum(context.Background(), path)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	if digest != wantDigest {
		t.Errorf("digest = %q, want %q", digest, wantDigest)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSumMissingFile(t *testing.T) {
	s, _ := newMockStore(t)

	_, err := s.Sum(context.Background(), filepath.Join(t.TempDir(), "absent.wav"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if _, err := s.Lookup(ctx, "/data/a.wav", 10, 20); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss on fresh cache, got %v", err)
	}
	if err := s.Record(ctx, "/data/a.wav", 10, 20, "abc123"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	digest, err := s.Lookup(ctx, "/data/a.wav", 10, 20)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if digest != "abc123" {
		t.Errorf("digest = %q, want abc123", digest)
	}

	// A changed mtime is a different key: the stale entry is gone once a
	// new state is recorded.
	if err := s.Record(ctx, "/data/a.wav", 10, 30, "def456"); err != nil {
		t.Fatalf("Record new state: %v", err)
	}
	if _, err := s.Lookup(ctx, "/data/a.wav", 10, 20); !errors.Is(err, ErrMiss) {
		t.Fatalf("stale entry survived eviction, err %v", err)
	}
}
