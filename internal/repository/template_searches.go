package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/template-finder/internal/entity"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// SearchHistoryRepository describes persistence for answered template searches.
type SearchHistoryRepository interface {
	Record(ctx context.Context, search *entity.TemplateSearch) error
	EnsureSchema(ctx context.Context) error
}

// PGXSearchHistoryRepository implements SearchHistoryRepository using pgx.
type PGXSearchHistoryRepository struct {
	pool pgxPool
}

// NewPGXSearchHistoryRepository wires a pgx backed repository.
func NewPGXSearchHistoryRepository(pool *pgxpool.Pool) *PGXSearchHistoryRepository {
	return &PGXSearchHistoryRepository{pool: pool}
}

const createTemplateSearchesSQL = `
CREATE TABLE IF NOT EXISTS template_searches (
	id UUID PRIMARY KEY,
	company_name TEXT NOT NULL,
	industry TEXT NOT NULL,
	source TEXT NOT NULL,
	fallback_reason TEXT,
	template_count INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the history table when it does not exist yet.
func (r *PGXSearchHistoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createTemplateSearchesSQL); err != nil {
		return fmt.Errorf("create template_searches: %w", err)
	}
	return nil
}

// Record stores a single answered search.
func (r *PGXSearchHistoryRepository) Record(ctx context.Context, search *entity.TemplateSearch) error {
	if search == nil {
		return fmt.Errorf("template search payload is nil")
	}

	const query = `
		INSERT INTO template_searches (
			id, company_name, industry, source, fallback_reason, template_count, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		search.ID,
		search.CompanyName,
		search.Industry,
		search.Source,
		search.FallbackReason,
		search.TemplateCount,
		search.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert template search: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template search %s already recorded", search.ID)
	}
	return nil
}
