package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// SuggestionRepository stores triage outcomes.
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *domain.AgentSuggestion) error
	MarkAutoClosed(ctx context.Context, id string) error
	GetLatestByTicket(ctx context.Context, ticketID string) (*domain.AgentSuggestion, error)
}

type suggestionRepository struct {
	pool *pgxpool.Pool
}

// NewSuggestionRepository builds repository.
func NewSuggestionRepository(pool *pgxpool.Pool) SuggestionRepository {
	return &suggestionRepository{pool: pool}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *domain.AgentSuggestion) error {
	const query = `
        INSERT INTO agent_suggestions (ticket_id, predicted_category, article_ids, draft_reply,
            confidence, auto_closed, model_provider, model_name, prompt_version, latency_ms)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		suggestion.TicketID,
		suggestion.PredictedCategory,
		suggestion.ArticleIDs,
		suggestion.DraftReply,
		suggestion.Confidence,
		suggestion.AutoClosed,
		suggestion.ModelInfo.Provider,
		suggestion.ModelInfo.Model,
		suggestion.ModelInfo.PromptVersion,
		suggestion.ModelInfo.LatencyMs,
	).Scan(&suggestion.ID, &suggestion.CreatedAt)
}

// MarkAutoClosed is the only permitted mutation; the decision step writes it
// once and the row is immutable afterwards.
func (r *suggestionRepository) MarkAutoClosed(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE agent_suggestions SET auto_closed=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *suggestionRepository) GetLatestByTicket(ctx context.Context, ticketID string) (*domain.AgentSuggestion, error) {
	const query = `
        SELECT id, ticket_id, predicted_category, article_ids, draft_reply, confidence,
               auto_closed, model_provider, model_name, prompt_version, latency_ms, created_at
        FROM agent_suggestions WHERE ticket_id=$1
        ORDER BY created_at DESC LIMIT 1`
	var s domain.AgentSuggestion
	if err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&s.ID,
		&s.TicketID,
		&s.PredictedCategory,
		&s.ArticleIDs,
		&s.DraftReply,
		&s.Confidence,
		&s.AutoClosed,
		&s.ModelInfo.Provider,
		&s.ModelInfo.Model,
		&s.ModelInfo.PromptVersion,
		&s.ModelInfo.LatencyMs,
		&s.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
