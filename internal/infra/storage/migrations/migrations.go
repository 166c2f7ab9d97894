package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/m04kA/SMC-VenueBooking/pkg/psqlbuilder"
)

//go:embed sql/*.sql
var files embed.FS

const upSuffix = ".up.sql"

var (
	ErrReadMigrations = errors.New("migrations: failed to read migration files")
	ErrApplyMigration = errors.New("migrations: failed to apply migration")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// TxBeginner *sql.DB
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Up применяет все еще не примененные *.up.sql по порядку имен.
// Каждая миграция выполняется в своей транзакции вместе с записью в schema_migrations.
func Up(ctx context.Context, db TxBeginner, logger Logger) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrApplyMigration, err)
	}

	versions, err := pending(ctx, db)
	if err != nil {
		return err
	}

	for _, version := range versions {
		body, err := fs.ReadFile(files, "sql/"+version+upSuffix)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrReadMigrations, version, err)
		}

		if err := apply(ctx, db, version, string(body)); err != nil {
			return err
		}
		logger.Info("Migration applied: %s", version)
	}

	return nil
}

// Versions список всех миграций в порядке применения
func Versions() ([]string, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMigrations, err)
	}

	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), upSuffix) {
			continue
		}
		versions = append(versions, strings.TrimSuffix(e.Name(), upSuffix))
	}
	sort.Strings(versions)

	return versions, nil
}

func pending(ctx context.Context, db TxBeginner) ([]string, error) {
	all, err := Versions()
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select("version").From("schema_migrations").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: build select: %v", ErrApplyMigration, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: select applied: %v", ErrApplyMigration, err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: scan applied: %v", ErrApplyMigration, err)
		}
		applied[v] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrApplyMigration, err)
	}

	result := make([]string, 0, len(all))
	for _, v := range all {
		if _, ok := applied[v]; !ok {
			result = append(result, v)
		}
	}
	return result, nil
}

func apply(ctx context.Context, db TxBeginner, version, body string) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: begin: %v", ErrApplyMigration, version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrApplyMigration, version, err)
	}

	query, args, err := psqlbuilder.Insert("schema_migrations").
		Columns("version").
		Values(version).
		Suffix("ON CONFLICT (version) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s: build insert: %v", ErrApplyMigration, version, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s: record version: %v", ErrApplyMigration, version, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s: commit: %v", ErrApplyMigration, version, err)
	}
	return nil
}
