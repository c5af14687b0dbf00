package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sevenboard/board-api/internal/domain"
	"github.com/sevenboard/board-api/internal/events"
	apperrors "github.com/sevenboard/board-api/pkg/util"
)

type fakeSolRepo struct {
	mu         sync.Mutex
	items      map[string]*domain.Solicitation
	seq        int
	failUpdate bool
	failList   bool
}

func newFakeSolRepo() *fakeSolRepo {
	return &fakeSolRepo{items: make(map[string]*domain.Solicitation)}
}

func (r *fakeSolRepo) Create(_ context.Context, sol *domain.Solicitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	sol.ID = fmt.Sprintf("sol-%d", r.seq)
	if sol.CreatedAt.IsZero() {
		sol.CreatedAt = time.Now()
	}
	clone := *sol
	r.items[sol.ID] = &clone
	return nil
}

func (r *fakeSolRepo) Update(_ context.Context, sol *domain.Solicitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return errors.New("connection refused")
	}
	if _, ok := r.items[sol.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *sol
	r.items[sol.ID] = &clone
	return nil
}

func (r *fakeSolRepo) GetByID(_ context.Context, id string) (*domain.Solicitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sol, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *sol
	return &clone, nil
}

func (r *fakeSolRepo) ListAll(_ context.Context) ([]domain.Solicitation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errors.New("connection refused")
	}
	var result []domain.Solicitation
	for _, sol := range r.items {
		result = append(result, *sol)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeSolRepo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Solicitation, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var result []domain.Solicitation
	for _, sol := range all {
		if sol.Status == status {
			result = append(result, sol)
		}
	}
	return result, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []domain.TicketEvent
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.TicketEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = fmt.Sprintf("ev-%d", len(r.events)+1)
	event.CreatedAt = time.Now()
	r.events = append(r.events, *event)
	return nil
}

func (r *fakeEventRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.TicketEvent
	for _, event := range r.events {
		if event.TicketID == ticketID {
			result = append(result, event)
		}
	}
	return result, nil
}

func newTestService(repo *fakeSolRepo, evRepo *fakeEventRepo, dispatcher events.Dispatcher) *SolicitationService {
	return NewSolicitationService(SolicitationDependencies{
		SolicitationRepo: repo,
		TicketEventRepo:  evRepo,
		Dispatcher:       dispatcher,
		Logger:           zap.NewNop(),
	})
}

func validInput() CreateInput {
	return CreateInput{
		Department:  "Marketing",
		Email:       "requester@example.com",
		RequestType: "Arte para Instagram/Whatsapp (5 dias)",
		Description: "Arte para o evento de sábado",
		Channels:    []string{"Digital"},
		DueDate:     "2023-12-25",
	}
}

func TestCreateStampsProtocolAndIntakeStatus(t *testing.T) {
	svc := newTestService(newFakeSolRepo(), &fakeEventRepo{}, nil)

	sol, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sol.ProtocolCode != "7BD-D-MAR-25122023" {
		t.Errorf("protocol = %q, want 7BD-D-MAR-25122023", sol.ProtocolCode)
	}
	if sol.Status != domain.StatusTodo {
		t.Errorf("status = %q, want todo", sol.Status)
	}
	if sol.ID == "" || sol.CreatedAt.IsZero() {
		t.Errorf("id/createdAt not assigned: %q %v", sol.ID, sol.CreatedAt)
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := newTestService(newFakeSolRepo(), &fakeEventRepo{}, nil)

	input := validInput()
	input.Description = "  "
	_, err := svc.Create(context.Background(), input)
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestChangeStatusStampsLifecycleTimestamps(t *testing.T) {
	repo := newFakeSolRepo()
	svc := newTestService(repo, &fakeEventRepo{}, nil)
	sol, _ := svc.Create(context.Background(), validInput())

	updated, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusArt)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if updated.StartedAt == nil {
		t.Fatal("startedAt not set when entering a working column")
	}
	if updated.CompletedAt != nil || updated.ArchivedAt != nil {
		t.Fatal("completedAt/archivedAt stamped too early")
	}

	updated, err = svc.ChangeStatus(context.Background(), sol.ID, domain.StatusDone)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("completedAt not set on done")
	}

	updated, err = svc.ChangeStatus(context.Background(), sol.ID, domain.StatusArchived)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if updated.ArchivedAt == nil {
		t.Fatal("archivedAt not set on archived")
	}
	if updated.CompletedAt == nil {
		t.Fatal("completedAt cleared by archival")
	}
}

func TestStartedAtRestampedOnEveryProductionEntry(t *testing.T) {
	repo := newFakeSolRepo()
	svc := newTestService(repo, &fakeEventRepo{}, nil)
	sol, _ := svc.Create(context.Background(), validInput())

	clock := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	first, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusArt)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	clock = clock.Add(2 * time.Hour)
	second, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusStalled)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	if !second.StartedAt.After(*first.StartedAt) {
		t.Errorf("startedAt not restamped: first %v, second %v", first.StartedAt, second.StartedAt)
	}
}

func TestReopenAppendsOneLogLineAndRetainsCompletedAt(t *testing.T) {
	repo := newFakeSolRepo()
	svc := newTestService(repo, &fakeEventRepo{}, nil)

	input := validInput()
	input.Notes = "Observação original do solicitante."
	sol, _ := svc.Create(context.Background(), input)

	done, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusDone)
	if err != nil {
		t.Fatalf("ChangeStatus done: %v", err)
	}
	notesBefore := done.Notes

	reopened, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusTodo)
	if err != nil {
		t.Fatalf("ChangeStatus reopen: %v", err)
	}

	if reopened.Status != domain.StatusTodo {
		t.Errorf("status = %q, want todo", reopened.Status)
	}
	if reopened.CompletedAt == nil {
		t.Error("completedAt cleared by reopening")
	}
	if !strings.HasPrefix(reopened.Notes, notesBefore) {
		t.Errorf("prior notes content not preserved:\nbefore %q\nafter  %q", notesBefore, reopened.Notes)
	}
	appended := strings.TrimPrefix(reopened.Notes, notesBefore)
	if strings.Count(appended, "\n") != 1 || !strings.Contains(appended, "Solicitação reaberta.") {
		t.Errorf("expected exactly one reopened log line, got %q", appended)
	}
}

func TestReopenOnlyFromDone(t *testing.T) {
	repo := newFakeSolRepo()
	svc := newTestService(repo, &fakeEventRepo{}, nil)
	sol, _ := svc.Create(context.Background(), validInput())

	// todo -> fazendo -> todo is a plain move, not a reopening
	if _, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusDoing); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	back, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusTodo)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if strings.Contains(back.Notes, "reaberta") {
		t.Errorf("reopened log appended on non-reopen move: %q", back.Notes)
	}
}

func TestChangeStatusNormalizesLegacyAlias(t *testing.T) {
	repo := newFakeSolRepo()
	svc := newTestService(repo, &fakeEventRepo{}, nil)
	sol, _ := svc.Create(context.Background(), validInput())

	updated, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusInProgressAlias)
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if updated.Status != domain.StatusDoing {
		t.Errorf("status = %q, want fazendo", updated.Status)
	}
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	repo := newFakeSolRepo()
	svc := newTestService(repo, &fakeEventRepo{}, nil)
	sol, _ := svc.Create(context.Background(), validInput())

	_, err := svc.ChangeStatus(context.Background(), sol.ID, "banana")
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestChangeStatusUnknownTicket(t *testing.T) {
	svc := newTestService(newFakeSolRepo(), &fakeEventRepo{}, nil)

	_, err := svc.ChangeStatus(context.Background(), "missing", domain.StatusDone)
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestChangeStatusSurfacesPersistenceFailure(t *testing.T) {
	repo := newFakeSolRepo()
	svc := newTestService(repo, &fakeEventRepo{}, nil)
	sol, _ := svc.Create(context.Background(), validInput())

	repo.failUpdate = true
	_, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusDone)
	assertErrorCode(t, err, "PERSISTENCE_FAILED")
}

func TestCompletionPublishesDoneEvent(t *testing.T) {
	repo := newFakeSolRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := newTestService(repo, &fakeEventRepo{}, dispatcher)

	var mu sync.Mutex
	var seen []events.EventType
	record := func(_ context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, event.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventStatusChanged, record)
	dispatcher.Subscribe(events.EventSolicitationDone, record)
	dispatcher.Subscribe(events.EventSolicitationReopened, record)

	sol, _ := svc.Create(context.Background(), validInput())
	if _, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusDone); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusTodo); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []events.EventType{
		events.EventStatusChanged,
		events.EventSolicitationDone,
		events.EventSolicitationReopened,
		events.EventStatusChanged,
	}
	if len(seen) != len(want) {
		t.Fatalf("events = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("events = %v, want %v", seen, want)
		}
	}
}

func TestFailingSubscriberDoesNotAbortTransition(t *testing.T) {
	repo := newFakeSolRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := newTestService(repo, &fakeEventRepo{}, dispatcher)

	dispatcher.Subscribe(events.EventSolicitationDone, func(context.Context, events.Event) error {
		return errors.New("smtp: connection refused")
	})

	sol, _ := svc.Create(context.Background(), validInput())
	updated, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusDone)
	if err != nil {
		t.Fatalf("transition failed because of notification error: %v", err)
	}
	if updated.Status != domain.StatusDone {
		t.Errorf("status = %q, want done", updated.Status)
	}
}

func TestTimelineClassifiesReopenedEntry(t *testing.T) {
	repo := newFakeSolRepo()
	svc := newTestService(repo, &fakeEventRepo{}, nil)
	sol, _ := svc.Create(context.Background(), validInput())

	if _, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusDone); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusTodo); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	timeline, err := svc.Timeline(context.Background(), sol.ID)
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(timeline) != 1 {
		t.Fatalf("timeline has %d entries, want 1", len(timeline))
	}
	if timeline[0].Kind != "reopened" {
		t.Errorf("timeline kind = %q, want reopened", timeline[0].Kind)
	}
}

func TestEventsRecordTypedTrail(t *testing.T) {
	repo := newFakeSolRepo()
	evRepo := &fakeEventRepo{}
	svc := newTestService(repo, evRepo, nil)
	sol, _ := svc.Create(context.Background(), validInput())

	if _, err := svc.ChangeStatus(context.Background(), sol.ID, domain.StatusDone); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	trail, err := svc.Events(context.Background(), sol.ID)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(trail) != 2 {
		t.Fatalf("trail has %d entries, want 2", len(trail))
	}
	if trail[0].Kind != domain.EventKindCreated {
		t.Errorf("first event kind = %q, want CREATED", trail[0].Kind)
	}
	if trail[1].Kind != domain.EventKindCompleted || trail[1].ToStatus != domain.StatusDone {
		t.Errorf("second event = %+v, want COMPLETED -> done", trail[1])
	}
}

func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %T: %v", err, err)
	}
	if domainErr.Code != code {
		t.Fatalf("error code = %q, want %q", domainErr.Code, code)
	}
}
