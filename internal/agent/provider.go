// Package agent defines the pluggable boundary between the triage pipeline
// and whatever model backs it. The reference implementation is a
// deterministic keyword scorer; a real model provider can be swapped in
// without touching the orchestrator.
package agent

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ClassificationResult is the outcome of categorizing ticket text.
type ClassificationResult struct {
	PredictedCategory domain.TicketCategory
	Confidence        float64
}

// DraftResult is a suggested reply plus the article ids it cites, in order.
type DraftResult struct {
	DraftReply string
	Citations  []string
}

// Provider is the interface for any classification/drafting backend.
type Provider interface {
	Name() string
	Classify(ctx context.Context, text string) (ClassificationResult, error)
	Draft(ctx context.Context, ticketContent string, articles []domain.Article) (DraftResult, error)
}
