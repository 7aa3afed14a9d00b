package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
)

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS applications (
	id                    UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id              TEXT        NOT NULL,
	company               TEXT        NOT NULL,
	title                 TEXT        NOT NULL,
	location              TEXT,
	url                   TEXT,
	job_type              TEXT,
	work_mode             TEXT,
	seniority             TEXT,
	salary_min            DOUBLE PRECISION,
	salary_max            DOUBLE PRECISION,
	salary_currency       TEXT,
	salary_period         TEXT,
	description_summary   TEXT,
	key_requirements      JSONB       NOT NULL DEFAULT '[]',
	key_responsibilities  JSONB       NOT NULL DEFAULT '[]',
	stage                 TEXT        NOT NULL DEFAULT 'APPLIED',
	sort_order            INTEGER     NOT NULL DEFAULT 0,
	notes                 TEXT,
	applied_date          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_applications_owner       ON applications (owner_id);
CREATE INDEX IF NOT EXISTS idx_applications_owner_url   ON applications (owner_id, url);
CREATE INDEX IF NOT EXISTS idx_applications_owner_stage ON applications (owner_id, stage, sort_order);
`

// Migrate creates the applications table and its indexes if missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
