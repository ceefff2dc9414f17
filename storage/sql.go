package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const createKVTable = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// SQL stores values in a single kv table. Supported drivers are "sqlite3"
// and "postgres".
type SQL struct {
	DB     *sql.DB
	driver string

	getQuery    string
	setQuery    string
	removeQuery string
}

// OpenSQL opens the database and creates the kv table if needed.
func OpenSQL(driver, dataSourceName string) (*SQL, error) {
	if driver == "" {
		driver = "sqlite3"
	}
	if driver != "sqlite3" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite3" {
		// One writer keeps sqlite away from SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(createKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	s := &SQL{DB: db, driver: driver}
	s.prepareQueries()
	return s, nil
}

func (s *SQL) prepareQueries() {
	p1, p2 := "?", "?"
	if s.driver == "postgres" {
		p1, p2 = "$1", "$2"
	}
	s.getQuery = "SELECT value FROM kv WHERE key = " + p1
	s.setQuery = "INSERT INTO kv (key, value, updated_at) VALUES (" + p1 + ", " + p2 + ", CURRENT_TIMESTAMP) " +
		"ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP"
	s.removeQuery = "DELETE FROM kv WHERE key = " + p1
}

func (s *SQL) Get(key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRow(s.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQL) Set(key, value string) error {
	if _, err := s.DB.Exec(s.setQuery, key, value); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Remove(key string) error {
	if _, err := s.DB.Exec(s.removeQuery, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.DB.Close()
}
