package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/benjamonnguyen/astrosched"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const busyTimeoutPragma = "_pragma=busy_timeout(5000)"

type DB struct {
	conn *sql.DB
}

var _ astrosched.Database = (*DB)(nil)

func Open(url string) (*DB, error) {
	if url == "" {
		return nil, fmt.Errorf("provide database url")
	}
	if !strings.Contains(url, "busy_timeout") {
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		url += sep + busyTimeoutPragma
	}

	conn, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open %s: %w", url, err)
	}
	return &DB{
		conn: conn,
	}, nil
}

// Migrate applies the embedded migrations. It is a no-op when the schema is
// already current.
func (db *DB) Migrate() error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", d)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) Close() error {
	return db.conn.Close()
}
