package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/agent"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// Retriever selects candidate knowledge-base articles for a ticket.
type Retriever interface {
	Retrieve(ctx context.Context, ticketTitle string, category domain.TicketCategory, limit int) ([]domain.Article, error)
}

// ConfigReader supplies the triage config at decision time.
type ConfigReader interface {
	Get(ctx context.Context) (domain.TriageConfig, error)
}

// TriageService runs the classify -> retrieve -> draft -> decide pipeline for
// a ticket and records every step in the audit trail.
type TriageService struct {
	tickets     repository.TicketRepository
	suggestions repository.SuggestionRepository
	retriever   Retriever
	provider    agent.Provider
	configs     ConfigReader
	audit       *AuditService
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	agentCfg    config.AgentConfig
}

// TriageDependencies bundles collaborators for the orchestrator.
type TriageDependencies struct {
	TicketRepo     repository.TicketRepository
	SuggestionRepo repository.SuggestionRepository
	Retriever      Retriever
	Provider       agent.Provider
	Configs        ConfigReader
	Audit          *AuditService
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
	AgentCfg       config.AgentConfig
}

// NewTriageService constructs the orchestrator.
func NewTriageService(deps TriageDependencies) *TriageService {
	return &TriageService{
		tickets:     deps.TicketRepo,
		suggestions: deps.SuggestionRepo,
		retriever:   deps.Retriever,
		provider:    deps.Provider,
		configs:     deps.Configs,
		audit:       deps.Audit,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		agentCfg:    deps.AgentCfg,
	}
}

// StartTriage launches a triage run for the ticket without blocking the
// caller. The run gets a fresh background context: the server recycles the
// request context once the handler returns, so nothing of it may outlive
// the response.
func (s *TriageService) StartTriage(_ context.Context, ticketID string) {
	s.metrics.RecordTriageStarted()
	go s.Run(context.Background(), ticketID)
}

// Run executes one triage run synchronously under a fresh trace id. Failures
// after the ticket load are recorded as TRIAGE_FAILED and never propagate;
// the triggering request has already returned.
func (s *TriageService) Run(ctx context.Context, ticketID string) {
	traceID := uuid.NewString()
	start := time.Now()

	L := s.logger.With(zap.String("ticket_id", ticketID), zap.String("trace_id", traceID))

	s.audit.Record(ctx, ticketID, traceID, domain.ActorSystem, domain.ActionTriageStarted, nil)

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		// no ticket to bind further audit entries to
		L.Error("triage aborted: ticket not found", zap.Error(err))
		s.metrics.RecordTriageOutcome(observability.TriageOutcomeFailed)
		return
	}

	if err := s.run(ctx, ticket, traceID, start); err != nil {
		L.Error("triage failed", zap.Error(err))
		s.audit.Record(ctx, ticketID, traceID, domain.ActorSystem, domain.ActionTriageFailed,
			domain.FailureMeta{Error: err.Error()})
		s.metrics.RecordTriageOutcome(observability.TriageOutcomeFailed)
	}
}

func (s *TriageService) run(ctx context.Context, ticket *domain.Ticket, traceID string, start time.Time) error {
	classification, err := s.provider.Classify(ctx, ticket.Title+" "+ticket.Description)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	s.audit.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionAgentClassified,
		domain.ClassifiedMeta{
			PredictedCategory: classification.PredictedCategory,
			Confidence:        classification.Confidence,
		})

	articles, err := s.retriever.Retrieve(ctx, ticket.Title, classification.PredictedCategory, DefaultRetrievalLimit)
	if err != nil {
		return fmt.Errorf("retrieve articles: %w", err)
	}
	articleIDs := make([]string, 0, len(articles))
	for _, article := range articles {
		articleIDs = append(articleIDs, article.ID)
	}
	s.audit.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionKBRetrieved,
		domain.RetrievedMeta{Count: len(articles), ArticleIDs: articleIDs})

	draft, err := s.provider.Draft(ctx, ticket.Title+": "+ticket.Description, articles)
	if err != nil {
		return fmt.Errorf("draft reply: %w", err)
	}
	s.audit.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionDraftGenerated, nil)

	suggestion := &domain.AgentSuggestion{
		TicketID:          ticket.ID,
		PredictedCategory: classification.PredictedCategory,
		ArticleIDs:        articleIDs,
		DraftReply:        draft.DraftReply,
		Confidence:        classification.Confidence,
		AutoClosed:        false,
		ModelInfo: domain.ModelInfo{
			Provider:      s.agentCfg.Provider,
			Model:         s.agentCfg.Model,
			PromptVersion: s.agentCfg.PromptVersion,
			LatencyMs:     time.Since(start).Milliseconds(),
		},
	}
	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return fmt.Errorf("persist suggestion: %w", err)
	}
	ticket.SuggestionID = &suggestion.ID

	s.publish(ctx, events.Event{
		Type:     events.EventSuggestionCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{Role: domain.ActorSystem},
		Payload: events.SuggestionCreatedPayload{
			SuggestionID:      suggestion.ID,
			PredictedCategory: suggestion.PredictedCategory,
			Confidence:        suggestion.Confidence,
		},
	})

	// config is read fresh here so admin updates apply to the next run
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	autoClose := Decide(suggestion.Confidence, cfg)
	if autoClose {
		if err := s.suggestions.MarkAutoClosed(ctx, suggestion.ID); err != nil {
			return fmt.Errorf("mark suggestion auto-closed: %w", err)
		}
		suggestion.AutoClosed = true
		ticket.Status = domain.TicketStatusResolved

		citations := make([]domain.Citation, 0, len(articles))
		for _, article := range articles {
			citations = append(citations, domain.Citation{ID: article.ID, Title: article.Title})
		}
		s.audit.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionAutoReplySent,
			domain.AutoReplyMeta{Reply: draft.DraftReply, Citations: citations})
		s.audit.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionAutoClosed,
			domain.DecisionMeta{Confidence: suggestion.Confidence, Threshold: cfg.ConfidenceThreshold})
	} else {
		ticket.Status = domain.TicketStatusWaitingHuman
		s.audit.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionAssignedToHuman,
			domain.DecisionMeta{Confidence: suggestion.Confidence, Threshold: cfg.ConfidenceThreshold})
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return fmt.Errorf("persist ticket: %w", err)
	}

	s.audit.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionTriageCompleted, nil)

	if autoClose {
		s.metrics.RecordTriageOutcome(observability.TriageOutcomeAutoClosed)
	} else {
		s.metrics.RecordTriageOutcome(observability.TriageOutcomeHandedOff)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTriageCompleted,
		TicketID: ticket.ID,
		Actor:    events.Actor{Role: domain.ActorSystem},
		Payload: events.TriageCompletedPayload{
			TraceID:    traceID,
			AutoClosed: autoClose,
			LatencyMs:  time.Since(start).Milliseconds(),
		},
	})
	return nil
}

// GetSuggestion returns the latest suggestion for a ticket. Absence surfaces
// as a repository not-found error, distinct from other failures.
func (s *TriageService) GetSuggestion(ctx context.Context, ticketID string) (*domain.AgentSuggestion, error) {
	return s.suggestions.GetLatestByTicket(ctx, ticketID)
}

func (s *TriageService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
