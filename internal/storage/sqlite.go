package storage

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const currentSchemaVersion = 1

// DB is a SQLite file holding any number of storage scopes.
type DB struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and applies the schema.
// Write transactions take the SQLite write lock up front, so Update on a
// scope is safe across processes sharing the file.
func OpenSQLite(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("set user_version: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Scope returns the Storage for one script-and-site namespace.
func (d *DB) Scope(name string) *SQLite {
	return &SQLite{db: d.db, scope: name}
}

// Scopes lists every scope that currently holds at least one key.
func (d *DB) Scopes() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT scope FROM kv ORDER BY scope`)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan scope: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// SQLite is a Storage over one scope of a DB.
type SQLite struct {
	db    *sql.DB
	scope string
}

func (s *SQLite) Scope() string { return s.scope }

func (s *SQLite) Get(key string) (json.RawMessage, bool) {
	return getRaw(s.db, s.scope, key)
}

func (s *SQLite) Set(key string, value any) error {
	b, err := encode(key, value)
	if err != nil {
		return err
	}

	return putRaw(s.db, s.scope, key, b)
}

func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE scope = ? AND key = ?`, s.scope, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv WHERE scope = ? ORDER BY key`, s.scope)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}

	return keys, rows.Err()
}

func (s *SQLite) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE scope = ?`, s.scope); err != nil {
		return fmt.Errorf("clear scope %q: %w", s.scope, err)
	}
	return nil
}

// Update runs the read-modify-write inside one write transaction.
func (s *SQLite) Update(key string, fn UpdateFunc) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin update %q: %w", key, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cur, ok := getRaw(tx, s.scope, key)
	next, err := fn(cur, ok)
	if err != nil {
		return err
	}

	b, err := encode(key, next)
	if err != nil {
		return err
	}
	if err = putRaw(tx, s.scope, key, b); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update %q: %w", key, err)
	}
	return nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func getRaw(q querier, scope, key string) (json.RawMessage, bool) {
	var v string
	err := q.QueryRow(`SELECT value FROM kv WHERE scope = ? AND key = ?`, scope, key).Scan(&v)
	if err != nil {
		return nil, false
	}

	if !json.Valid([]byte(v)) {
		return nil, false
	}

	return json.RawMessage(v), true
}

func putRaw(q querier, scope, key string, b []byte) error {
	_, err := q.Exec(`
		INSERT INTO kv (scope, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		scope, key, string(b), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}
