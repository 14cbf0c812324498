// Package sqlstore implements the post and comment repositories on
// database/sql, for SQLite and Postgres.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"inkpost/app/repositories"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Dialect selects the SQL driver and placeholder style.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

func (d Dialect) driver() string {
	return string(d)
}

func (d Dialect) gooseDialect() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "postgres"
}

// rebind rewrites '?' placeholders into the dialect's style.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseDialect maps a store name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(name)) {
	case SQLite:
		return SQLite, nil
	case Postgres, "postgresql":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported sql dialect %q", name)
}

// Open connects to dsn, applies pending migrations and returns a Store.
func Open(ctx context.Context, dialect Dialect, dsn string) (*repositories.Store, error) {
	db, err := sql.Open(dialect.driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}
	if err := Migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repositories.NewStore(NewPostRepository(db, dialect), NewCommentRepository(db, dialect), db.Close), nil
}

// goose keeps its dialect and filesystem in package state.
var migrateMu sync.Mutex

// Migrate runs the embedded goose migrations against db.
func Migrate(db *sql.DB, dialect Dialect) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}
