package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sevenboard/board-api/internal/auditlog"
	"github.com/sevenboard/board-api/internal/domain"
	"github.com/sevenboard/board-api/internal/events"
	"github.com/sevenboard/board-api/internal/protocol"
	"github.com/sevenboard/board-api/internal/repository"
	apperrors "github.com/sevenboard/board-api/pkg/util"
)

// SolicitationService coordinates intake and the status board
// lifecycle. All status transitions flow through ChangeStatus.
type SolicitationService struct {
	sols       repository.SolicitationRepository
	ticketEvs  repository.TicketEventRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// SolicitationDependencies bundles collaborators for the service.
type SolicitationDependencies struct {
	SolicitationRepo repository.SolicitationRepository
	TicketEventRepo  repository.TicketEventRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// CreateInput describes intake payload after form parsing.
type CreateInput struct {
	Department    string
	Email         string
	RequestType   string
	Description   string
	Channels      []string
	DueDate       string
	DueTime       string
	Notes         string
	AttachmentURL string
}

// NewSolicitationService constructs the service.
func NewSolicitationService(deps SolicitationDependencies) *SolicitationService {
	return &SolicitationService{
		sols:       deps.SolicitationRepo,
		ticketEvs:  deps.TicketEventRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Create registers a new solicitation, stamping its protocol code and
// placing it in the intake column. The confirmation e-mail rides on
// the published event and never blocks the response.
func (s *SolicitationService) Create(ctx context.Context, input CreateInput) (*domain.Solicitation, error) {
	input.Department = strings.TrimSpace(input.Department)
	input.RequestType = strings.TrimSpace(input.RequestType)
	input.Description = strings.TrimSpace(input.Description)

	if input.Department == "" || input.RequestType == "" || input.Description == "" || input.DueDate == "" {
		return nil, apperrors.NewValidationError(
			"departamento, tipoSolicitacao, descricao and dataEntrega are required", nil)
	}

	sol := &domain.Solicitation{
		Department:     input.Department,
		RequesterEmail: strings.TrimSpace(input.Email),
		ProtocolCode:   protocol.Generate(input.Channels, input.Department, input.DueDate, s.now()),
		RequestType:    input.RequestType,
		Description:    input.Description,
		Channels:       input.Channels,
		DueDate:        input.DueDate,
		DueTime:        input.DueTime,
		Notes:          input.Notes,
		AttachmentURL:  input.AttachmentURL,
		Status:         domain.StatusTodo,
	}

	if err := s.sols.Create(ctx, sol); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	s.recordEvent(ctx, &domain.TicketEvent{
		TicketID: sol.ID,
		Kind:     domain.EventKindCreated,
		ToStatus: sol.Status,
		Message:  "Solicitação criada",
	})
	s.publish(ctx, events.Event{
		Type:     events.EventSolicitationCreated,
		TicketID: sol.ID,
		Ticket:   sol,
		Payload: events.SolicitationCreatedPayload{
			Department:  sol.Department,
			Protocol:    sol.ProtocolCode,
			RequestType: sol.RequestType,
			Channels:    sol.Channels,
		},
	})
	return sol, nil
}

// ListAll returns every solicitation, newest first.
func (s *SolicitationService) ListAll(ctx context.Context) ([]domain.Solicitation, error) {
	sols, err := s.sols.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return sols, nil
}

// GetByID fetches one solicitation.
func (s *SolicitationService) GetByID(ctx context.Context, id string) (*domain.Solicitation, error) {
	sol, err := s.sols.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("solicitation", map[string]any{"id": id})
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return sol, nil
}

// ChangeStatus applies a board transition. Unknown status values are
// rejected; between known statuses any edge is allowed, including the
// reopen edge done -> todo. Concurrent changes to the same ticket race
// with last-write-wins semantics; there is no version check.
func (s *SolicitationService) ChangeStatus(ctx context.Context, id string, requested domain.Status) (*domain.Solicitation, error) {
	if !domain.IsKnownStatus(requested) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": requested})
	}
	newStatus := domain.NormalizeStatus(requested)

	sol, err := s.sols.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("solicitation", map[string]any{"id": id})
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	oldStatus := sol.Status
	now := s.now()

	reopened := oldStatus == domain.StatusDone && newStatus == domain.StatusTodo
	if reopened {
		sol.Notes = auditlog.Append(sol.Notes, auditlog.ReopenedMessage, now)
		s.publish(ctx, events.Event{
			Type:     events.EventSolicitationReopened,
			TicketID: sol.ID,
			Ticket:   sol,
		})
		s.logger.Info("solicitation reopened", zap.String("id", sol.ID), zap.String("protocol", sol.ProtocolCode))
	}

	// Lifecycle timestamps: startedAt is stamped on every entry into a
	// working column; completedAt and archivedAt are stamped on entry
	// and never cleared by later re-entry into earlier columns.
	switch {
	case domain.IsInProduction(newStatus):
		sol.StartedAt = &now
	case newStatus == domain.StatusDone:
		sol.CompletedAt = &now
	case newStatus == domain.StatusArchived:
		sol.ArchivedAt = &now
	}

	sol.Status = newStatus
	if err := s.sols.Update(ctx, sol); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("solicitation", map[string]any{"id": id})
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	kind := domain.EventKindStatusChange
	switch {
	case reopened:
		kind = domain.EventKindReopened
	case newStatus == domain.StatusDone:
		kind = domain.EventKindCompleted
	case newStatus == domain.StatusArchived:
		kind = domain.EventKindArchived
	}
	s.recordEvent(ctx, &domain.TicketEvent{
		TicketID:   sol.ID,
		Kind:       kind,
		FromStatus: oldStatus,
		ToStatus:   newStatus,
		Message:    auditlog.StatusChangedMessage(string(oldStatus), string(newStatus)),
	})

	s.publish(ctx, events.Event{
		Type:     events.EventStatusChanged,
		TicketID: sol.ID,
		Ticket:   sol,
		Payload: events.StatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	if newStatus == domain.StatusDone {
		s.publish(ctx, events.Event{
			Type:     events.EventSolicitationDone,
			TicketID: sol.ID,
			Ticket:   sol,
		})
	}

	return sol, nil
}

// Timeline decodes the audit log embedded in the notes field into
// displayable entries, dropping messages with no recognized category.
type TimelineEntry struct {
	Kind       auditlog.Kind
	Message    string
	FromStatus string
	ToStatus   string
	Timestamp  time.Time
	TimeValid  bool
	// RawTimestamp is the display fallback when the timestamp is not
	// parseable.
	RawTimestamp string
}

// Timeline returns the decoded, classified audit trail for a ticket.
func (s *SolicitationService) Timeline(ctx context.Context, id string) ([]TimelineEntry, error) {
	sol, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var timeline []TimelineEntry
	for entry := range auditlog.Entries(sol.Notes) {
		kind, from, to := auditlog.Classify(entry.Message)
		if kind == auditlog.KindUnknown {
			continue
		}
		timeline = append(timeline, TimelineEntry{
			Kind:         kind,
			Message:      entry.Message,
			FromStatus:   from,
			ToStatus:     to,
			Timestamp:    entry.Time,
			TimeValid:    entry.TimeValid,
			RawTimestamp: entry.RawTimestamp,
		})
	}
	return timeline, nil
}

// Events returns the typed audit trail for a ticket.
func (s *SolicitationService) Events(ctx context.Context, id string) ([]domain.TicketEvent, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	evs, err := s.ticketEvs.ListByTicket(ctx, id)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return evs, nil
}

func (s *SolicitationService) recordEvent(ctx context.Context, event *domain.TicketEvent) {
	if s.ticketEvs == nil {
		return
	}
	if err := s.ticketEvs.Create(ctx, event); err != nil {
		// the typed trail is best-effort bookkeeping; the embedded
		// notes log remains the authoritative record
		s.logger.Warn("failed to record ticket event",
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
	}
}

func (s *SolicitationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
