package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/store"

	_ "modernc.org/sqlite"
)

// MemoryDSN returns the DSN of a named, shared-cache, in-memory SQLite
// database. The database lives as long as one connection to it is open.
func MemoryDSN(name string) string {
	return "file:" + name + "?mode=memory&cache=shared"
}

// SQLiteRepository stores expenses in an in-memory SQLite database.
type SQLiteRepository struct {
	db     *sql.DB
	newID  store.IDGenerator
	logger *applog.Logger
}

// NewSQLiteRepository opens the in-memory database called name and applies
// the schema migrations. A nil logger uses the process default.
func NewSQLiteRepository(name string, logger *applog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = applog.Default()
	}
	dsn := MemoryDSN(name)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single long-lived connection keeps the in-memory database alive
	// and serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:     db,
		newID:  uuid.NewString,
		logger: logger.WithComponent(applog.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Add implements store.ExpenseWriter
func (r *SQLiteRepository) Add(ctx context.Context, n core.NewExpense) (core.Expense, error) {
	e := n.Build(r.newID())
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, category, amount, occurred_at, description) VALUES (?, ?, ?, ?, ?)`,
		e.ID, string(e.Category), e.Amount, e.Date.String(), e.Description)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	r.logger.DebugContext(ctx, "Expense saved to SQLite", applog.NewFields().
		WithExpense(e.ID, string(e.Category), e.Amount, e.Date.String()).
		ToSlice()...)

	return e, nil
}

// List implements store.ExpenseLister. Dates are stored in a fixed-width
// UTC layout so the range filter compares them as text.
func (r *SQLiteRepository) List(ctx context.Context, filter core.Filter) ([]core.Expense, error) {
	if filter.HasRange && !filter.RangeValid {
		return []core.Expense{}, nil
	}

	query := `SELECT id, category, amount, occurred_at, description FROM expenses WHERE 1 = 1`
	var args []any
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.HasRange {
		query += ` AND occurred_at >= ? AND occurred_at <= ?`
		args = append(args, filter.Start.String(), filter.End.String())
	}
	query += ` ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var (
			e        core.Expense
			category string
			date     string
		)
		if err := rows.Scan(&e.ID, &category, &e.Amount, &date, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		t, err := time.Parse(core.InstantLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		e.Category = core.Category(category)
		e.Date = core.NewInstant(t)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// Count returns the number of stored expenses.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

var _ store.Store = (*SQLiteRepository)(nil)
