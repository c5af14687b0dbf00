package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/sevenboard/board-api/internal/domain"
	"github.com/sevenboard/board-api/internal/events"
	"github.com/sevenboard/board-api/internal/mailer"
	"github.com/sevenboard/board-api/internal/observability"
)

// MailWorker subscribes the outbound e-mail handlers to domain events.
// Every send runs in its own goroutine: a transition or intake request
// never waits on SMTP, and a failed send is logged and counted but
// lost (no retry queue).
type MailWorker struct {
	mail    mailer.Mailer
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewMailWorker builds the worker.
func NewMailWorker(mail mailer.Mailer, logger *zap.Logger, metrics *observability.Metrics) *MailWorker {
	return &MailWorker{mail: mail, logger: logger, metrics: metrics}
}

// Register subscribes handlers on the dispatcher.
func (w *MailWorker) Register(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventSolicitationCreated, w.handle(mailer.TemplateConfirmation))
	dispatcher.Subscribe(events.EventSolicitationDone, w.handle(mailer.TemplateCompletion))
	dispatcher.Subscribe(events.EventSolicitationReopened, w.handle(mailer.TemplateReopened))
}

func (w *MailWorker) handle(kind mailer.TemplateKind) events.EventHandler {
	return func(_ context.Context, event events.Event) error {
		ticket := event.Ticket
		if ticket == nil || ticket.RequesterEmail == "" {
			return nil
		}
		// detach from the request: snapshot what the send needs
		snapshot := *ticket
		go w.send(kind, &snapshot)
		return nil
	}
}

func (w *MailWorker) send(kind mailer.TemplateKind, ticket *domain.Solicitation) {
	err := w.mail.Send(ticket.RequesterEmail, kind, ticket)
	w.metrics.RecordDispatch(string(kind), err != nil)
	if err != nil {
		w.logger.Error("email dispatch failed",
			zap.String("template", string(kind)),
			zap.String("ticket_id", ticket.ID),
			zap.Error(err))
	}
}
