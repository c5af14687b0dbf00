package domain

import "time"

// TicketEventKind captures what a ticket event records.
type TicketEventKind string

const (
	EventKindCreated      TicketEventKind = "CREATED"
	EventKindStatusChange TicketEventKind = "STATUS_CHANGE"
	EventKindReopened     TicketEventKind = "REOPENED"
	EventKindCompleted    TicketEventKind = "COMPLETED"
	EventKindArchived     TicketEventKind = "ARCHIVED"
)

// TicketEvent is an immutable, typed audit trail entry persisted per
// solicitation, parallel to the log embedded in the notes field.
type TicketEvent struct {
	ID         string
	TicketID   string
	Kind       TicketEventKind
	FromStatus Status
	ToStatus   Status
	Message    string
	CreatedAt  time.Time
}
