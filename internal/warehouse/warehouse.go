package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/config"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

// Executor runs validated query plans against the analytical data store.
// The core treats the store purely as a query executor over a pre-existing
// schema; it never manages that schema's lifecycle.
type Executor interface {
	Execute(ctx context.Context, plan *domain.QueryPlan) (*domain.ResultSet, error)
	Schema(ctx context.Context) (*domain.SchemaSummary, error)
}

// Postgres implements Executor over a PostgreSQL warehouse.
type Postgres struct {
	db      *sql.DB
	timeout time.Duration
}

// Open connects to the warehouse and verifies the connection.
func Open(ctx context.Context, cfg config.WarehouseConfig) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("warehouse dsn is required")
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening warehouse: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging warehouse: %w", err)
	}

	return NewPostgres(db, cfg.ExecTimeout), nil
}

// NewPostgres wraps an existing connection pool. Used directly by tests.
func NewPostgres(db *sql.DB, timeout time.Duration) *Postgres {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Postgres{db: db, timeout: timeout}
}

// Close releases the connection pool.
func (p *Postgres) Close() error { return p.db.Close() }

// Execute runs a validated plan and materializes the result set. Failures
// are not retried: they usually indicate a bad plan, which a retry cannot
// fix. All errors wrap domain.ErrQueryError.
func (p *Postgres) Execute(ctx context.Context, plan *domain.QueryPlan) (*domain.ResultSet, error) {
	execCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rows, err := p.db.QueryContext(execCtx, plan.SQL)
	if err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: execution timed out after %s", domain.ErrQueryError, p.timeout)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryError, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("%w: reading column types: %v", domain.ErrQueryError, err)
	}

	columns := make([]domain.Column, len(colTypes))
	for i, ct := range colTypes {
		columns[i] = domain.Column{
			Name: ct.Name(),
			Type: inferSemanticType(ct.Name(), ct.DatabaseTypeName()),
		}
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", domain.ErrQueryError, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryError, err)
	}

	return &domain.ResultSet{Columns: columns, Rows: data}, nil
}

// Schema reads the warehouse's tables and analytics views from
// information_schema.
func (p *Postgres) Schema(ctx context.Context) (*domain.SchemaSummary, error) {
	execCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	summary := &domain.SchemaSummary{Tables: map[string][]domain.ColumnDef{}}

	rows, err := p.db.QueryContext(execCtx, `
SELECT table_name, column_name, data_type, is_nullable
FROM information_schema.columns
WHERE table_schema = 'public'
ORDER BY table_name, ordinal_position`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading table columns: %v", domain.ErrQueryError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var table, column, dataType, nullable string
		if err := rows.Scan(&table, &column, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("%w: scanning schema row: %v", domain.ErrQueryError, err)
		}
		summary.Tables[table] = append(summary.Tables[table], domain.ColumnDef{
			Name:     column,
			DataType: dataType,
			Nullable: nullable == "YES",
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryError, err)
	}

	viewRows, err := p.db.QueryContext(execCtx, `
SELECT table_name
FROM information_schema.views
WHERE table_schema = 'analytics'
ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading views: %v", domain.ErrQueryError, err)
	}
	defer viewRows.Close()

	for viewRows.Next() {
		var view string
		if err := viewRows.Scan(&view); err != nil {
			return nil, fmt.Errorf("%w: scanning view row: %v", domain.ErrQueryError, err)
		}
		summary.Views = append(summary.Views, "analytics."+view)
	}
	if err := viewRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryError, err)
	}

	return summary, nil
}
