package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen            TicketStatus = "open"
	TicketStatusWaitingHuman    TicketStatus = "waiting_human"
	TicketStatusWaitingCustomer TicketStatus = "waiting_customer"
	TicketStatusResolved        TicketStatus = "resolved"
	TicketStatusClosed          TicketStatus = "closed"
)

// TicketCategory enumerates supported classification buckets.
type TicketCategory string

const (
	CategoryBilling  TicketCategory = "billing"
	CategoryTech     TicketCategory = "tech"
	CategoryShipping TicketCategory = "shipping"
	CategoryOther    TicketCategory = "other"
)

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID           string
	ExternalKey  string
	Title        string
	Description  string
	Category     TicketCategory
	Status       TicketStatus
	CreatedByID  string
	AssigneeID   *string
	SuggestionID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// allowedTransitions is the single authoritative status machine. Both the
// triage orchestrator and agent actions (reply/resolve/reopen) go through it.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:            {TicketStatusResolved, TicketStatusWaitingHuman},
	TicketStatusWaitingHuman:    {TicketStatusWaitingCustomer, TicketStatusResolved},
	TicketStatusWaitingCustomer: {TicketStatusWaitingHuman, TicketStatusResolved, TicketStatusClosed},
	TicketStatusResolved:        {TicketStatusWaitingHuman, TicketStatusClosed},
	TicketStatusClosed:          {},
}

// CanTransition reports whether the status machine permits current -> next.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ValidCategory reports whether the value is a known category.
func ValidCategory(c TicketCategory) bool {
	switch c {
	case CategoryBilling, CategoryTech, CategoryShipping, CategoryOther:
		return true
	}
	return false
}
