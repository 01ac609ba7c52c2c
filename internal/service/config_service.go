package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// ConfigService reads and updates the triage config singleton.
type ConfigService struct {
	repo repository.ConfigRepository
}

// NewConfigService creates the service.
func NewConfigService(repo repository.ConfigRepository) *ConfigService {
	return &ConfigService{repo: repo}
}

// Get returns the persisted config, or defaults when none exists yet.
// Absence is never surfaced to callers.
func (s *ConfigService) Get(ctx context.Context) (domain.TriageConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DefaultTriageConfig(), nil
		}
		return domain.TriageConfig{}, err
	}
	return *cfg, nil
}

// ConfigUpdateInput carries partial updates; nil fields keep current values.
type ConfigUpdateInput struct {
	AutoCloseEnabled    *bool
	ConfidenceThreshold *float64
	SLAHours            *int
}

// Update applies a partial update on top of the current (or default) values.
func (s *ConfigService) Update(ctx context.Context, input ConfigUpdateInput) (domain.TriageConfig, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return domain.TriageConfig{}, err
	}

	if input.AutoCloseEnabled != nil {
		cfg.AutoCloseEnabled = *input.AutoCloseEnabled
	}
	if input.ConfidenceThreshold != nil {
		if *input.ConfidenceThreshold < 0 || *input.ConfidenceThreshold > 1 {
			return domain.TriageConfig{}, apperrors.NewValidationError("confidence_threshold must be within [0,1]", nil)
		}
		cfg.ConfidenceThreshold = *input.ConfidenceThreshold
	}
	if input.SLAHours != nil {
		if *input.SLAHours <= 0 {
			return domain.TriageConfig{}, apperrors.NewValidationError("sla_hours must be positive", nil)
		}
		cfg.SLAHours = *input.SLAHours
	}

	if err := s.repo.Upsert(ctx, &cfg); err != nil {
		return domain.TriageConfig{}, err
	}
	return cfg, nil
}
