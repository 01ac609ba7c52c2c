package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ArticleRequest payload for create/update.
type ArticleRequest struct {
	Title  string               `json:"title"`
	Body   string               `json:"body"`
	Tags   []string             `json:"tags"`
	Status domain.ArticleStatus `json:"status"`
}

// ArticleResponse is the external article representation.
type ArticleResponse struct {
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	Tags      []string             `json:"tags"`
	Status    domain.ArticleStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// SuggestionResponse is the external agent suggestion representation.
type SuggestionResponse struct {
	ID                string                `json:"id"`
	TicketID          string                `json:"ticket_id"`
	PredictedCategory domain.TicketCategory `json:"predicted_category"`
	ArticleIDs        []string              `json:"article_ids"`
	DraftReply        string                `json:"draft_reply"`
	Confidence        float64               `json:"confidence"`
	AutoClosed        bool                  `json:"auto_closed"`
	ModelInfo         domain.ModelInfo      `json:"model_info"`
	CreatedAt         time.Time             `json:"created_at"`
}

// ConfigResponse mirrors the triage config singleton.
type ConfigResponse struct {
	AutoCloseEnabled    bool    `json:"auto_close_enabled"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	SLAHours            int     `json:"sla_hours"`
}

// UpdateConfigRequest carries partial config updates.
type UpdateConfigRequest struct {
	AutoCloseEnabled    *bool    `json:"auto_close_enabled"`
	ConfidenceThreshold *float64 `json:"confidence_threshold"`
	SLAHours            *int     `json:"sla_hours"`
}
