package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS seo_score_history (
	id                   BIGSERIAL PRIMARY KEY,
	slug                 TEXT NOT NULL,
	title                TEXT NOT NULL,
	content_hash         TEXT NOT NULL,
	has_score            BOOLEAN NOT NULL,
	overall              DOUBLE PRECISION NOT NULL,
	keyword_optimization DOUBLE PRECISION NOT NULL,
	content_quality      DOUBLE PRECISION NOT NULL,
	technical_seo        DOUBLE PRECISION NOT NULL,
	user_experience      DOUBLE PRECISION NOT NULL,
	pass_rate            INTEGER NOT NULL,
	recorded_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS seo_score_history_slug_idx
	ON seo_score_history (slug, recorded_at DESC);
`

// dbtx is the part of *pgxpool.Pool the recorder uses.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres stores entries in the seo_score_history table.
type Postgres struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewPostgres connects a pool to dsn and verifies the connection.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect history database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	return &Postgres{db: pool, pool: pool}, nil
}

// EnsureSchema creates the history table and index if they are missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create history schema: %w", err)
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, e Entry) error {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO seo_score_history (slug, title, content_hash, has_score, overall,
			keyword_optimization, content_quality, technical_seo, user_experience,
			pass_rate, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := p.db.Exec(ctx, query,
		e.Slug,
		e.Title,
		e.ContentHash,
		e.HasScore,
		e.Overall,
		e.KeywordOptimization,
		e.ContentQuality,
		e.TechnicalSEO,
		e.UserExperience,
		e.PassRate,
		e.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("record history for %s: %w", e.Slug, err)
	}
	return nil
}

func (p *Postgres) Recent(ctx context.Context, slug string, n int) ([]Entry, error) {
	query := `
		SELECT slug, title, content_hash, has_score, overall, keyword_optimization,
			content_quality, technical_seo, user_experience, pass_rate, recorded_at
		FROM seo_score_history
		WHERE slug = $1
		ORDER BY recorded_at DESC
		LIMIT $2;
	`
	rows, err := p.db.Query(ctx, query, slug, n)
	if err != nil {
		return nil, fmt.Errorf("query history for %s: %w", slug, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(
			&e.Slug,
			&e.Title,
			&e.ContentHash,
			&e.HasScore,
			&e.Overall,
			&e.KeywordOptimization,
			&e.ContentQuality,
			&e.TechnicalSEO,
			&e.UserExperience,
			&e.PassRate,
			&e.RecordedAt,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan history for %s: %w", slug, err)
	}
	return entries, nil
}

func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}
