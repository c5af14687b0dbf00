package dto

import (
	"time"

	"github.com/sevenboard/board-api/internal/domain"
	"github.com/sevenboard/board-api/internal/service"
)

// CardResponse mirrors the wire shape the dashboard and intake form
// already speak (field names kept from the product's API).
type CardResponse struct {
	ID              string        `json:"id"`
	Departamento    string        `json:"departamento"`
	Email           string        `json:"email,omitempty"`
	Protocolo       string        `json:"protocolo"`
	TipoSolicitacao string        `json:"tipoSolicitacao"`
	Descricao       string        `json:"descricao"`
	Veiculacao      []string      `json:"veiculacao"`
	DataEntrega     string        `json:"dataEntrega"`
	HorarioEntrega  string        `json:"horarioEntrega,omitempty"`
	Observacoes     string        `json:"observacoes"`
	ArquivoURL      string        `json:"arquivoUrl,omitempty"`
	Status          domain.Status `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
	StartedAt       *time.Time    `json:"startedAt,omitempty"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty"`
	ArchivedAt      *time.Time    `json:"archivedAt,omitempty"`
}

// FromSolicitation maps the aggregate onto the wire shape.
func FromSolicitation(sol *domain.Solicitation) CardResponse {
	channels := sol.Channels
	if channels == nil {
		channels = []string{}
	}
	return CardResponse{
		ID:              sol.ID,
		Departamento:    sol.Department,
		Email:           sol.RequesterEmail,
		Protocolo:       sol.ProtocolCode,
		TipoSolicitacao: sol.RequestType,
		Descricao:       sol.Description,
		Veiculacao:      channels,
		DataEntrega:     sol.DueDate,
		HorarioEntrega:  sol.DueTime,
		Observacoes:     sol.Notes,
		ArquivoURL:      sol.AttachmentURL,
		Status:          sol.Status,
		CreatedAt:       sol.CreatedAt,
		StartedAt:       sol.StartedAt,
		CompletedAt:     sol.CompletedAt,
		ArchivedAt:      sol.ArchivedAt,
	}
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.Status `json:"status"`
}

// TimelineEntryResponse is one classified audit-log event.
type TimelineEntryResponse struct {
	Kind         string `json:"kind"`
	Message      string `json:"message"`
	FromStatus   string `json:"fromStatus,omitempty"`
	ToStatus     string `json:"toStatus,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
	RawTimestamp string `json:"rawTimestamp"`
}

// FromTimelineEntry maps a decoded log entry.
func FromTimelineEntry(entry service.TimelineEntry) TimelineEntryResponse {
	resp := TimelineEntryResponse{
		Kind:         string(entry.Kind),
		Message:      entry.Message,
		FromStatus:   entry.FromStatus,
		ToStatus:     entry.ToStatus,
		RawTimestamp: entry.RawTimestamp,
	}
	if entry.TimeValid {
		resp.Timestamp = entry.Timestamp.Format(time.RFC3339)
	}
	return resp
}

// TicketEventResponse is one typed trail entry.
type TicketEventResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromTicketEvent maps a typed trail entry.
func FromTicketEvent(event domain.TicketEvent) TicketEventResponse {
	return TicketEventResponse{
		ID:         event.ID,
		Kind:       string(event.Kind),
		FromStatus: string(event.FromStatus),
		ToStatus:   string(event.ToStatus),
		Message:    event.Message,
		CreatedAt:  event.CreatedAt,
	}
}
