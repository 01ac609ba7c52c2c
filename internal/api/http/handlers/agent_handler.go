package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// AgentHandler exposes triage outputs to agent-facing views.
type AgentHandler struct {
	triage *service.TriageService
}

// NewAgentHandler constructs handler.
func NewAgentHandler(triageService *service.TriageService) *AgentHandler {
	return &AgentHandler{triage: triageService}
}

// GetSuggestion GET /agent/suggestion/:ticketId. A 404 means the pipeline
// has not produced a suggestion for the ticket (yet), which is a normal
// outcome distinct from an error.
func (h *AgentHandler) GetSuggestion(c *fiber.Ctx) error {
	suggestion, err := h.triage.GetSuggestion(c.Context(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SuggestionResponse{
		ID:                suggestion.ID,
		TicketID:          suggestion.TicketID,
		PredictedCategory: suggestion.PredictedCategory,
		ArticleIDs:        suggestion.ArticleIDs,
		DraftReply:        suggestion.DraftReply,
		Confidence:        suggestion.Confidence,
		AutoClosed:        suggestion.AutoClosed,
		ModelInfo:         suggestion.ModelInfo,
		CreatedAt:         suggestion.CreatedAt,
	}})
}
