package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

// AuditService appends immutable audit records. Writes are best-effort:
// a failed append is reported to the logger and never propagated, so the
// audit trail can not abort the business logic it observes.
type AuditService struct {
	repo   repository.AuditLogRepository
	logger *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(repo repository.AuditLogRepository, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record appends one entry for the ticket under the given trace id.
func (s *AuditService) Record(ctx context.Context, ticketID, traceID string, actor domain.AuditActor, action domain.AuditAction, meta any) {
	entry := &domain.AuditLog{
		TicketID: ticketID,
		TraceID:  traceID,
		Actor:    actor,
		Action:   action,
		Meta:     meta,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append audit log",
			zap.String("ticket_id", ticketID),
			zap.String("trace_id", traceID),
			zap.String("action", string(action)),
			zap.Error(err))
		return
	}
	s.logger.Debug("audit",
		zap.String("trace_id", traceID),
		zap.String("action", string(action)))
}

// ListByTicket returns all entries for a ticket ascending by creation time.
func (s *AuditService) ListByTicket(ctx context.Context, ticketID string) ([]domain.AuditLog, error) {
	return s.repo.ListByTicket(ctx, ticketID)
}
