package events

import (
	"time"

	"github.com/sevenboard/board-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSolicitationCreated  EventType = "solicitation_created"
	EventStatusChanged        EventType = "status_changed"
	EventSolicitationReopened EventType = "solicitation_reopened"
	EventSolicitationDone     EventType = "solicitation_done"
)

// Event represents a domain event emitted by services. The ticket
// snapshot rides along so mail handlers never re-read storage.
type Event struct {
	ID        string               `json:"id"`
	Type      EventType            `json:"type"`
	TicketID  string               `json:"ticket_id"`
	Timestamp time.Time            `json:"timestamp"`
	Ticket    *domain.Solicitation `json:"-"`
	Payload   interface{}          `json:"payload"`
}

// SolicitationCreatedPayload payload.
type SolicitationCreatedPayload struct {
	Department  string   `json:"department"`
	Protocol    string   `json:"protocol"`
	RequestType string   `json:"request_type"`
	Channels    []string `json:"channels"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
}
