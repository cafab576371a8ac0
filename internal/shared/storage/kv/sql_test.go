package kv

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"prep-backend/internal/shared/storage/db"
)

func TestPGStoreGet(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	store := &PGStore{DB: conn}
	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("default", "history").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

	value, ok, err := store.Get(context.Background(), "history")
	if err != nil || !ok || value != `[]` {
		t.Fatalf("Get = %q ok=%v err=%v", value, ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreGetMissing(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	store := &PGStore{DB: conn, Namespace: "team-a"}
	mock.ExpectQuery("SELECT value FROM kv_entries").
		WithArgs("team-a", "history").
		WillReturnError(sql.ErrNoRows)

	_, ok, err := store.Get(context.Background(), "history")
	if err != nil || ok {
		t.Fatalf("expected not found without error, got ok=%v err=%v", ok, err)
	}
}

func TestPGStoreSetUpserts(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	store := &PGStore{DB: conn}
	mock.ExpectExec("INSERT INTO kv_entries").
		WithArgs("default", "active", "abc", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Set(context.Background(), "active", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGStoreWrapsErrors(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	boom := errors.New("boom")
	store := &PGStore{DB: conn}
	mock.ExpectExec("DELETE FROM kv_entries").
		WithArgs("default", "active").
		WillReturnError(boom)

	if err := store.Delete(context.Background(), "active"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := db.RunMigrations(ctx, conn, db.DialectSQLite); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	a := &SQLiteStore{DB: conn, Namespace: "a"}
	b := &SQLiteStore{DB: conn, Namespace: "b"}

	if err := a.Set(ctx, "history", "one"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := a.Set(ctx, "history", "two"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	value, ok, err := a.Get(ctx, "history")
	if err != nil || !ok || value != "two" {
		t.Fatalf("Get = %q ok=%v err=%v, want two", value, ok, err)
	}
	if _, ok, _ := b.Get(ctx, "history"); ok {
		t.Fatalf("namespaces must not share keys")
	}
	if err := a.Delete(ctx, "history"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := a.Get(ctx, "history"); ok {
		t.Fatalf("expected key to be deleted")
	}
}
