package domain

import "time"

// AuditActor identifies who performed a logged action.
type AuditActor string

const (
	ActorSystem AuditActor = "system"
	ActorAgent  AuditActor = "agent"
	ActorAdmin  AuditActor = "admin"
	ActorUser   AuditActor = "user"
)

// AuditAction tags an audit entry. The vocabulary is open but conventional:
// downstream consumers match by prefix/suffix (*_RESOLVED, *REPLY_SENT), so
// tags must stay stable once emitted.
type AuditAction string

const (
	ActionTicketCreated   AuditAction = "TICKET_CREATED"
	ActionTriageStarted   AuditAction = "TRIAGE_STARTED"
	ActionAgentClassified AuditAction = "AGENT_CLASSIFIED"
	ActionKBRetrieved     AuditAction = "KB_RETRIEVED"
	ActionDraftGenerated  AuditAction = "DRAFT_GENERATED"
	ActionAutoReplySent   AuditAction = "AUTO_REPLY_SENT"
	ActionAutoClosed      AuditAction = "AUTO_CLOSED"
	ActionAssignedToHuman AuditAction = "ASSIGNED_TO_HUMAN"
	ActionTriageCompleted AuditAction = "TRIAGE_COMPLETED"
	ActionTriageFailed    AuditAction = "TRIAGE_FAILED"
	ActionReplySent       AuditAction = "REPLY_SENT"
	ActionTicketResolved  AuditAction = "TICKET_RESOLVED"
	ActionTicketReopened  AuditAction = "TICKET_REOPENED"
)

// AuditLog is an append-only record. Entries are never mutated or deleted;
// entries sharing a trace id reconstruct one triage run or user action when
// sorted by CreatedAt.
type AuditLog struct {
	ID        string
	TicketID  string
	TraceID   string
	Actor     AuditActor
	Action    AuditAction
	Meta      any
	CreatedAt time.Time
}

// Each audit action carries exactly one meta shape. The structs below are the
// tagged variants serialized into the meta column.

// ClassifiedMeta accompanies AGENT_CLASSIFIED.
type ClassifiedMeta struct {
	PredictedCategory TicketCategory `json:"predicted_category"`
	Confidence        float64        `json:"confidence"`
}

// RetrievedMeta accompanies KB_RETRIEVED.
type RetrievedMeta struct {
	Count      int      `json:"count"`
	ArticleIDs []string `json:"article_ids"`
}

// Citation is an id/title pair referenced by an auto reply.
type Citation struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AutoReplyMeta accompanies AUTO_REPLY_SENT.
type AutoReplyMeta struct {
	Reply     string     `json:"reply"`
	Citations []Citation `json:"citations"`
}

// DecisionMeta accompanies AUTO_CLOSED and ASSIGNED_TO_HUMAN.
type DecisionMeta struct {
	Confidence float64 `json:"confidence"`
	Threshold  float64 `json:"threshold"`
}

// FailureMeta accompanies TRIAGE_FAILED.
type FailureMeta struct {
	Error string `json:"error"`
}

// ReplyMeta accompanies REPLY_SENT.
type ReplyMeta struct {
	Reply  string `json:"reply"`
	Author string `json:"author"`
}

// ActorMeta accompanies TICKET_RESOLVED and TICKET_REOPENED.
type ActorMeta struct {
	Name string `json:"name"`
}
