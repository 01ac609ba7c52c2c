package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// AuditLogRepository stores immutable audit entries. There is no update or
// delete on purpose.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.AuditLog, error)
}

type auditLogRepository struct {
	pool *pgxpool.Pool
}

// NewAuditLogRepository builds repository.
func NewAuditLogRepository(pool *pgxpool.Pool) AuditLogRepository {
	return &auditLogRepository{pool: pool}
}

func (r *auditLogRepository) Append(ctx context.Context, entry *domain.AuditLog) error {
	meta, err := json.Marshal(entry.Meta)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO audit_logs (ticket_id, trace_id, actor, action, meta)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.TraceID,
		entry.Actor,
		entry.Action,
		meta,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *auditLogRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.AuditLog, error) {
	const query = `
        SELECT id, ticket_id, trace_id, actor, action, meta, created_at
        FROM audit_logs WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		var meta []byte
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.TraceID,
			&entry.Actor,
			&entry.Action,
			&meta,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			var decoded map[string]any
			if err := json.Unmarshal(meta, &decoded); err == nil {
				entry.Meta = decoded
			}
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
