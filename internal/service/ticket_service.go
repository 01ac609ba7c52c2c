package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TriageStarter launches an asynchronous triage run.
type TriageStarter interface {
	StartTriage(ctx context.Context, ticketID string)
}

// TicketService coordinates ticket workflows around the triage pipeline.
type TicketService struct {
	tickets    repository.TicketRepository
	audit      *AuditService
	triage     TriageStarter
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Audit      *AuditService
	Triage     TriageStarter
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		audit:      deps.Audit,
		triage:     deps.Triage,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
}

// CreateTicket persists a new ticket and fires the triage pipeline. The
// pipeline runs detached; the creating request never waits on it.
func (s *TicketService) CreateTicket(ctx context.Context, user *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	category := input.Category
	if category == "" {
		category = domain.CategoryOther
	}
	if !domain.ValidCategory(category) {
		return nil, apperrors.NewValidationError("invalid category", nil)
	}

	ticket := &domain.Ticket{
		ExternalKey: generateTicketKey(),
		Title:       title,
		Description: description,
		Category:    category,
		Status:      domain.TicketStatusOpen,
		CreatedByID: user.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, ticket.ID, uuid.NewString(), domain.ActorUser, domain.ActionTicketCreated, nil)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    userActor(user),
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
		},
	})

	if s.triage != nil {
		s.triage.StartTriage(ctx, ticket.ID)
	}
	return ticket, nil
}

// ListTickets returns tickets visible to the user: requesters see their own,
// staff see everything. An optional status filter applies.
func (s *TicketService) ListTickets(ctx context.Context, user *domain.User, statuses []domain.TicketStatus, limit, offset int) ([]domain.Ticket, error) {
	filter := repository.TicketFilter{
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	}
	if !user.IsStaff() {
		filter.CreatedByID = &user.ID
	}
	return s.tickets.ListWithFilter(ctx, filter)
}

// GetTicket fetches a ticket enforcing ownership for requesters.
func (s *TicketService) GetTicket(ctx context.Context, user *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff() && ticket.CreatedByID != user.ID {
		return nil, apperrors.NewForbidden("not authorized to view this ticket")
	}
	return ticket, nil
}

// GetAuditTrail returns the ticket's audit entries ascending by creation
// time, enforcing the same visibility as GetTicket.
func (s *TicketService) GetAuditTrail(ctx context.Context, user *domain.User, ticketID string) ([]domain.AuditLog, error) {
	if _, err := s.GetTicket(ctx, user, ticketID); err != nil {
		return nil, err
	}
	return s.audit.ListByTicket(ctx, ticketID)
}

// Reply records a staff reply in the audit trail and moves the ticket to
// waiting_customer. Replies live in the audit log rather than a dedicated
// thread table.
func (s *TicketService) Reply(ctx context.Context, staff *domain.User, ticketID, reply string) (*domain.Ticket, error) {
	if strings.TrimSpace(reply) == "" {
		return nil, apperrors.NewValidationError("reply required", nil)
	}
	ticket, err := s.transition(ctx, staff, ticketID, domain.TicketStatusWaitingCustomer, domain.ActionReplySent,
		domain.ReplyMeta{Reply: reply, Author: staff.Name})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Resolve marks the ticket resolved on behalf of a staff member.
func (s *TicketService) Resolve(ctx context.Context, staff *domain.User, ticketID string) (*domain.Ticket, error) {
	return s.transition(ctx, staff, ticketID, domain.TicketStatusResolved, domain.ActionTicketResolved,
		domain.ActorMeta{Name: staff.Name})
}

// Reopen sends the ticket back to the agent queue.
func (s *TicketService) Reopen(ctx context.Context, staff *domain.User, ticketID string) (*domain.Ticket, error) {
	return s.transition(ctx, staff, ticketID, domain.TicketStatusWaitingHuman, domain.ActionTicketReopened,
		domain.ActorMeta{Name: staff.Name})
}

func (s *TicketService) transition(ctx context.Context, staff *domain.User, ticketID string, next domain.TicketStatus, action domain.AuditAction, meta any) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(ticket.Status, next) {
		return nil, apperrors.NewConflict("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   next,
		})
	}
	oldStatus := ticket.Status
	ticket.Status = next
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, ticket.ID, uuid.NewString(), actorForRole(staff.Role), action, meta)
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    userActor(staff),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
		},
	})
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
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

func userActor(user *domain.User) events.Actor {
	id := user.ID
	return events.Actor{Role: actorForRole(user.Role), UserID: &id}
}

func actorForRole(role domain.UserRole) domain.AuditActor {
	switch role {
	case domain.RoleAdmin:
		return domain.ActorAdmin
	case domain.RoleAgent:
		return domain.ActorAgent
	default:
		return domain.ActorUser
	}
}

func generateTicketKey() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
