package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ConfigRepository persists the triage config singleton.
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.TriageConfig, error)
	Upsert(ctx context.Context, cfg *domain.TriageConfig) error
}

type configRepository struct {
	pool *pgxpool.Pool
}

// NewConfigRepository builds repository.
func NewConfigRepository(pool *pgxpool.Pool) ConfigRepository {
	return &configRepository{pool: pool}
}

// Get returns the stored singleton, or pgx.ErrNoRows when nothing has been
// persisted yet.
func (r *configRepository) Get(ctx context.Context) (*domain.TriageConfig, error) {
	const query = `
        SELECT auto_close_enabled, confidence_threshold, sla_hours
        FROM triage_config WHERE id=1`
	var cfg domain.TriageConfig
	if err := r.pool.QueryRow(ctx, query).Scan(
		&cfg.AutoCloseEnabled,
		&cfg.ConfidenceThreshold,
		&cfg.SLAHours,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) Upsert(ctx context.Context, cfg *domain.TriageConfig) error {
	const query = `
        INSERT INTO triage_config (id, auto_close_enabled, confidence_threshold, sla_hours)
        VALUES (1,$1,$2,$3)
        ON CONFLICT (id) DO UPDATE SET
            auto_close_enabled=EXCLUDED.auto_close_enabled,
            confidence_threshold=EXCLUDED.confidence_threshold,
            sla_hours=EXCLUDED.sla_hours`
	_, err := r.pool.Exec(ctx, query,
		cfg.AutoCloseEnabled,
		cfg.ConfidenceThreshold,
		cfg.SLAHours,
	)
	return err
}
