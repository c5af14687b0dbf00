package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sevenboard/board-api/internal/domain"
	"github.com/sevenboard/board-api/internal/repository"
	apperrors "github.com/sevenboard/board-api/pkg/util"
)

// Deadline alerts fire inside this window around the due moment: due
// within a day, or overdue by less than two days.
const (
	deadlineUpper = 24 * time.Hour
	deadlineLower = -48 * time.Hour
)

// NotificationService recomputes dashboard alerts on every poll from
// the current ticket snapshot plus a per-session read set. Nothing
// here is persisted beyond the read set.
type NotificationService struct {
	sols      repository.SolicitationRepository
	readState repository.ReadStateRepository
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
}

// NewNotificationService constructs the deriver.
func NewNotificationService(sols repository.SolicitationRepository, readState repository.ReadStateRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		sols:      sols,
		readState: readState,
		logger:    logger,
		loc:       time.Local,
		now:       time.Now,
	}
}

// Derive builds the session's notification list: new-ticket alerts
// first (intake tickets, newest first), then deadline alerts. Order is
// exactly that concatenation; no dedup or re-sorting happens after.
func (n *NotificationService) Derive(ctx context.Context, sessionID string) ([]domain.Notification, error) {
	sols, err := n.sols.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	readIDs, err := n.readState.ReadIDs(ctx, sessionID)
	if err != nil {
		// a missing read set only means everything shows unread
		n.logger.Warn("failed to load read state", zap.String("session", sessionID), zap.Error(err))
		readIDs = map[string]struct{}{}
	}

	now := n.now()
	result := n.newTicketAlerts(sols, readIDs, now)
	result = append(result, n.deadlineAlerts(sols, readIDs, now)...)
	return result, nil
}

func (n *NotificationService) newTicketAlerts(sols []domain.Solicitation, readIDs map[string]struct{}, now time.Time) []domain.Notification {
	var intake []domain.Solicitation
	for _, sol := range sols {
		if sol.Status == domain.StatusTodo {
			intake = append(intake, sol)
		}
	}
	sort.SliceStable(intake, func(i, j int) bool {
		return intake[i].CreatedAt.After(intake[j].CreatedAt)
	})

	alerts := make([]domain.Notification, 0, len(intake))
	for _, sol := range intake {
		_, read := readIDs[sol.ID]
		alerts = append(alerts, domain.Notification{
			ID:        sol.ID,
			TicketID:  sol.ID,
			Category:  domain.NotificationNewTicket,
			Title:     sol.Department,
			Detail:    "criou uma nova solicitação: " + sol.RequestType,
			TimeLabel: relativeLabel(now.Sub(sol.CreatedAt)),
			Read:      read,
			CreatedAt: sol.CreatedAt,
		})
	}
	return alerts
}

func (n *NotificationService) deadlineAlerts(sols []domain.Solicitation, readIDs map[string]struct{}, now time.Time) []domain.Notification {
	var alerts []domain.Notification
	for _, sol := range sols {
		if domain.IsTerminal(sol.Status) {
			continue
		}
		due, ok := sol.DueAt(n.loc)
		if !ok {
			continue
		}
		left := due.Sub(now)
		if left <= deadlineLower || left >= deadlineUpper {
			continue
		}
		// deterministic id so read state survives across polls
		id := "deadline-" + sol.ID
		_, read := readIDs[id]
		alerts = append(alerts, domain.Notification{
			ID:        id,
			TicketID:  sol.ID,
			Category:  domain.NotificationDeadline,
			Title:     sol.ProtocolCode,
			Detail:    deadlineLabel(left),
			TimeLabel: due.Format("02/01/2006 15:04"),
			Read:      read,
			CreatedAt: sol.CreatedAt,
		})
	}
	return alerts
}

// MarkRead records one notification id as seen for the session. The
// union is idempotent; repeated calls are no-ops after the first.
func (n *NotificationService) MarkRead(ctx context.Context, sessionID, notificationID string) error {
	if err := n.readState.MarkRead(ctx, sessionID, notificationID); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// MarkAllRead records every currently derivable notification id as
// seen for the session.
func (n *NotificationService) MarkAllRead(ctx context.Context, sessionID string) error {
	alerts, err := n.Derive(ctx, sessionID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		ids = append(ids, alert.ID)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := n.readState.MarkRead(ctx, sessionID, ids...); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func relativeLabel(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return "agora mesmo"
	case elapsed < time.Hour:
		return fmt.Sprintf("há %d min", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("há %dh", int(elapsed.Hours()))
	default:
		days := int(elapsed.Hours() / 24)
		if days == 1 {
			return "há 1 dia"
		}
		return fmt.Sprintf("há %d dias", days)
	}
}

func deadlineLabel(left time.Duration) string {
	if left < 0 {
		return "Atrasada"
	}
	return fmt.Sprintf("Vence em %dh", int(left.Hours()))
}
