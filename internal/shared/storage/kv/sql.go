package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const defaultNamespace = "default"

// PGStore implements Store on the kv_entries table in Postgres.
type PGStore struct {
	DB        *sql.DB
	Namespace string
}

// Get returns the value stored under key.
func (s *PGStore) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2 LIMIT 1`
	return getValue(ctx, s.DB, query, namespaceOrDefault(s.Namespace), key)
}

// Set upserts value under key.
func (s *PGStore) Set(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	_, err := s.DB.ExecContext(ctx, query, namespaceOrDefault(s.Namespace), key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("kv set key=%s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *PGStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`
	if _, err := s.DB.ExecContext(ctx, query, namespaceOrDefault(s.Namespace), key); err != nil {
		return fmt.Errorf("kv delete key=%s: %w", key, err)
	}
	return nil
}

// SQLiteStore implements Store on the kv_entries table in SQLite.
type SQLiteStore struct {
	DB        *sql.DB
	Namespace string
}

// Get returns the value stored under key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM kv_entries WHERE namespace = ? AND key = ? LIMIT 1`
	return getValue(ctx, s.DB, query, namespaceOrDefault(s.Namespace), key)
}

// Set upserts value under key.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	updatedAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.DB.ExecContext(ctx, query, namespaceOrDefault(s.Namespace), key, value, updatedAt); err != nil {
		return fmt.Errorf("kv set key=%s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE namespace = ? AND key = ?`
	if _, err := s.DB.ExecContext(ctx, query, namespaceOrDefault(s.Namespace), key); err != nil {
		return fmt.Errorf("kv delete key=%s: %w", key, err)
	}
	return nil
}

func getValue(ctx context.Context, db *sql.DB, query, namespace, key string) (string, bool, error) {
	var value sql.NullString
	err := db.QueryRowContext(ctx, query, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get key=%s: %w", key, err)
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

func namespaceOrDefault(ns string) string {
	if trimmed := strings.TrimSpace(ns); trimmed != "" {
		return trimmed
	}
	return defaultNamespace
}

var (
	_ Store = (*PGStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
