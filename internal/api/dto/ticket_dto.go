package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category"`
}

// ReplyRequest payload for staff replies.
type ReplyRequest struct {
	Reply string `json:"reply"`
}

// TicketResponse is the external ticket representation.
type TicketResponse struct {
	ID           string                `json:"id"`
	ExternalKey  string                `json:"external_key"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     domain.TicketCategory `json:"category"`
	Status       domain.TicketStatus   `json:"status"`
	CreatedByID  string                `json:"created_by_id"`
	AssigneeID   *string               `json:"assignee_id,omitempty"`
	SuggestionID *string               `json:"suggestion_id,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// AuditLogResponse is one timeline entry.
type AuditLogResponse struct {
	ID        string             `json:"id"`
	TicketID  string             `json:"ticket_id"`
	TraceID   string             `json:"trace_id"`
	Actor     domain.AuditActor  `json:"actor"`
	Action    domain.AuditAction `json:"action"`
	Meta      any                `json:"meta,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}
