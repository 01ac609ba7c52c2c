package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventSuggestionCreated   EventType = "suggestion_created"
	EventTriageCompleted     EventType = "triage_completed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role   domain.AuditActor `json:"role"`
	UserID *string           `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string                `json:"title"`
	Category domain.TicketCategory `json:"category"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// SuggestionCreatedPayload payload.
type SuggestionCreatedPayload struct {
	SuggestionID      string                `json:"suggestion_id"`
	PredictedCategory domain.TicketCategory `json:"predicted_category"`
	Confidence        float64               `json:"confidence"`
}

// TriageCompletedPayload payload.
type TriageCompletedPayload struct {
	TraceID    string `json:"trace_id"`
	AutoClosed bool   `json:"auto_closed"`
	LatencyMs  int64  `json:"latency_ms"`
}
