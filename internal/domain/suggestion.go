package domain

import "time"

// ModelInfo captures provenance metadata for one triage run.
type ModelInfo struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	PromptVersion string `json:"prompt_version"`
	LatencyMs     int64  `json:"latency_ms"`
}

// AgentSuggestion is the persisted outcome of one triage run. A re-triage
// creates a new suggestion; rows are immutable once AutoClosed is written.
type AgentSuggestion struct {
	ID                string
	TicketID          string
	PredictedCategory TicketCategory
	ArticleIDs        []string
	DraftReply        string
	Confidence        float64
	AutoClosed        bool
	ModelInfo         ModelInfo
	CreatedAt         time.Time
}
