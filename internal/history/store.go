package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/config"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

// Store is an append-only record of interpreted requests. Every request
// that reaches a terminal state is appended, successful or not, so the
// history doubles as an audit trail of rejected and failed queries.
//
// Writes are serialized through a mutex: the store is the single writer
// for its database file.
type Store struct {
	mu         sync.Mutex
	db         *sql.DB
	maxEntries int
	maxAge     time.Duration
}

// NewStore creates a Store over an already-migrated history database.
func NewStore(db *sql.DB, cfg config.HistoryConfig) *Store {
	return &Store{db: db, maxEntries: cfg.MaxEntries, maxAge: cfg.MaxAge}
}

// Append records a terminal pipeline result and applies retention.
func (s *Store) Append(ctx context.Context, res *domain.PipelineResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	intentJSON, err := marshalNullable(res.Intent)
	if err != nil {
		return fmt.Errorf("encoding intent: %w", err)
	}
	planJSON, err := marshalNullable(res.Plan)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	summaryJSON, err := marshalNullable(res.Summary)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	chartJSON, err := marshalNullable(res.Chart)
	if err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}
	timingsJSON, err := json.Marshal(res.Timings)
	if err != nil {
		return fmt.Errorf("encoding timings: %w", err)
	}

	query := `INSERT INTO query_history
		(id, raw_text, created_at, success, failed_stage, error_detail,
		 intent_json, plan_json, summary_json, chart_json, no_viz, timings_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		res.RequestID,
		res.RawText,
		res.CreatedAt.UTC().Format(time.RFC3339),
		boolToInt(res.Success),
		string(res.FailedStage),
		res.ErrorDetail,
		intentJSON,
		planJSON,
		summaryJSON,
		chartJSON,
		boolToInt(res.NoVisualization),
		string(timingsJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	return s.pruneLocked(ctx)
}

// ListRecent returns up to limit entries, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]*domain.PipelineResult, error) {
	if limit <= 0 {
		limit = 10
	}
	query := selectColumns + ` FROM query_history ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent history: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// ListBySuccess returns up to limit entries filtered by outcome, newest first.
func (s *Store) ListBySuccess(ctx context.Context, success bool, limit int) ([]*domain.PipelineResult, error) {
	if limit <= 0 {
		limit = 10
	}
	query := selectColumns + ` FROM query_history WHERE success = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, boolToInt(success), limit)
	if err != nil {
		return nil, fmt.Errorf("listing history by outcome: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM query_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history entries: %w", err)
	}
	return n, nil
}

// CountBySuccess returns the number of stored entries with the given outcome.
func (s *Store) CountBySuccess(ctx context.Context, success bool) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM query_history WHERE success = ?`, boolToInt(success)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history entries by outcome: %w", err)
	}
	return n, nil
}

// Prune applies the retention policy outside of an append.
func (s *Store) Prune(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(ctx)
}

// pruneLocked drops entries past the age limit, then keeps only the
// newest maxEntries. Caller must hold s.mu.
func (s *Store) pruneLocked(ctx context.Context) error {
	if s.maxAge > 0 {
		cutoff := time.Now().UTC().Add(-s.maxAge).Format(time.RFC3339)
		if _, err := s.db.ExecContext(ctx,
			`DELETE FROM query_history WHERE created_at < ?`, cutoff); err != nil {
			return fmt.Errorf("pruning aged history entries: %w", err)
		}
	}
	if s.maxEntries > 0 {
		query := `DELETE FROM query_history WHERE rowid NOT IN (
			SELECT rowid FROM query_history ORDER BY created_at DESC, rowid DESC LIMIT ?)`
		if _, err := s.db.ExecContext(ctx, query, s.maxEntries); err != nil {
			return fmt.Errorf("pruning excess history entries: %w", err)
		}
	}
	return nil
}

const selectColumns = `SELECT id, raw_text, created_at, success, failed_stage, error_detail,
	intent_json, plan_json, summary_json, chart_json, no_viz, timings_json`

func scanResults(rows *sql.Rows) ([]*domain.PipelineResult, error) {
	var results []*domain.PipelineResult
	for rows.Next() {
		var (
			res         domain.PipelineResult
			createdAt   string
			success     int
			failedStage string
			intentJSON  sql.NullString
			planJSON    sql.NullString
			summaryJSON sql.NullString
			chartJSON   sql.NullString
			noViz       int
			timingsJSON sql.NullString
		)
		err := rows.Scan(
			&res.RequestID, &res.RawText, &createdAt, &success, &failedStage, &res.ErrorDetail,
			&intentJSON, &planJSON, &summaryJSON, &chartJSON, &noViz, &timingsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}

		res.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		res.Success = success != 0
		res.NoVisualization = noViz != 0
		res.FailedStage = domain.Stage(failedStage)

		if err := unmarshalNullable(intentJSON, &res.Intent); err != nil {
			return nil, fmt.Errorf("decoding intent: %w", err)
		}
		if err := unmarshalNullable(planJSON, &res.Plan); err != nil {
			return nil, fmt.Errorf("decoding plan: %w", err)
		}
		if err := unmarshalNullable(summaryJSON, &res.Summary); err != nil {
			return nil, fmt.Errorf("decoding summary: %w", err)
		}
		if err := unmarshalNullable(chartJSON, &res.Chart); err != nil {
			return nil, fmt.Errorf("decoding chart: %w", err)
		}
		if timingsJSON.Valid && timingsJSON.String != "" {
			if err := json.Unmarshal([]byte(timingsJSON.String), &res.Timings); err != nil {
				return nil, fmt.Errorf("decoding timings: %w", err)
			}
		}

		results = append(results, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}
	return results, nil
}

// marshalNullable encodes v as JSON, returning SQL NULL for nil pointers.
func marshalNullable[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func unmarshalNullable[T any](s sql.NullString, out **T) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	var v T
	if err := json.Unmarshal([]byte(s.String), &v); err != nil {
		return err
	}
	*out = &v
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
