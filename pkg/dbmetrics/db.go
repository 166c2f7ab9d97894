package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Collector принимает метрики запросов и пула соединений
type Collector interface {
	ObserveDBQuery(service, operation string, duration time.Duration, err error)
	SetDBPoolStats(service string, stats sql.DBStats)
}

// DefaultPoolInterval период сбора статистики пула
const DefaultPoolInterval = 15 * time.Second

// DB обертка над *sql.DB, которая пишет длительность запросов в Collector
type DB struct {
	db        *sql.DB
	collector Collector
	service   string
}

// New оборачивает *sql.DB без сбора метрик
func New(db *sql.DB) *DB {
	return &DB{db: db}
}

// Wrap оборачивает *sql.DB и раз в interval отправляет статистику пула в collector
// до закрытия stopCh
func Wrap(db *sql.DB, collector Collector, service string, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := &DB{
		db:        db,
		collector: collector,
		service:   service,
	}

	if collector != nil && stopCh != nil {
		go wrapped.collectPoolStats(interval, stopCh)
	}

	return wrapped
}

// WrapWithDefault Wrap с интервалом по умолчанию
func WrapWithDefault(db *sql.DB, collector Collector, service string, stopCh <-chan struct{}) *DB {
	return Wrap(db, collector, service, DefaultPoolInterval, stopCh)
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx открывает транзакцию. Запросы внутри транзакции тоже измеряются.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	if d.collector == nil {
		return tx, nil
	}
	return &measuredTx{Tx: tx, parent: d}, nil
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.collector == nil {
		return
	}
	if err == sql.ErrNoRows {
		err = nil
	}
	d.collector.ObserveDBQuery(d.service, operationOf(query), time.Since(start), err)
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.collector.SetDBPoolStats(d.service, d.db.Stats())
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			d.collector.SetDBPoolStats(d.service, d.db.Stats())
		}
	}
}

type measuredTx struct {
	*sql.Tx
	parent *DB
}

func (t *measuredTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.Tx.ExecContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return res, err
}

func (t *measuredTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.Tx.QueryContext(ctx, query, args...)
	t.parent.observe(query, start, err)
	return rows, err
}

func (t *measuredTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.Tx.QueryRowContext(ctx, query, args...)
	t.parent.observe(query, start, row.Err())
	return row
}

// operationOf первое слово запроса: select, insert, update, delete
func operationOf(query string) string {
	query = strings.TrimSpace(query)
	if i := strings.IndexAny(query, " \n\t"); i > 0 {
		query = query[:i]
	}
	return strings.ToLower(query)
}
