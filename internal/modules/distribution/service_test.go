package distribution

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/database"
	"carencia/internal/domain"
	"carencia/internal/repository"
)

type testEnv struct {
	db           *gorm.DB
	service      *Service
	leads        *repository.LeadRepository
	dealerships  *repository.DealershipRepository
	events       *repository.EventRepository
	interactions *repository.InteractionRepository
}

func setupTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	db, err := database.Connect(":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	// A pooled second connection would see its own empty in-memory db.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	leads := repository.NewLeadRepository(db)
	dealerships := repository.NewDealershipRepository(db)
	events := repository.NewEventRepository(db)
	interactions := repository.NewInteractionRepository(db)

	svc := NewService(leads, dealerships, events, interactions, NewWebhookClient(2*time.Second), opts...)

	return &testEnv{
		db:           db,
		service:      svc,
		leads:        leads,
		dealerships:  dealerships,
		events:       events,
		interactions: interactions,
	}
}

func (e *testEnv) createDealership(t *testing.T, name, slug string, webhookURL *string) *domain.Dealership {
	t.Helper()
	d := &domain.Dealership{
		Name:         name,
		Slug:         slug,
		WebhookURL:   webhookURL,
		AcceptsLeads: true,
		Active:       true,
	}
	if err := e.dealerships.Create(context.Background(), d); err != nil {
		t.Fatalf("create dealership: %v", err)
	}
	return d
}

func (e *testEnv) createVehicle(t *testing.T, dealershipID *uuid.UUID, scrapingSource *string) *domain.Vehicle {
	t.Helper()
	v := &domain.Vehicle{
		Make:           "Fiat",
		Model:          "Argo Drive",
		Year:           2022,
		Price:          72900,
		DealershipID:   dealershipID,
		ScrapingSource: scrapingSource,
		Available:      true,
	}
	if err := e.db.Create(v).Error; err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	return v
}

func (e *testEnv) createLead(t *testing.T, vehicleID *uuid.UUID) *domain.Lead {
	t.Helper()
	l := &domain.Lead{
		Name:              "Maria Souza",
		Email:             "maria@example.com",
		Phone:             "+55 11 98888-7777",
		Origin:            "site",
		Status:            domain.LeadStatusNew,
		Temperature:       domain.TemperatureCold,
		VehicleInterestID: vehicleID,
	}
	if err := e.leads.Create(context.Background(), l); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	return l
}

func (e *testEnv) countEvents(t *testing.T, leadID uuid.UUID, eventType string) int64 {
	t.Helper()
	n, err := e.events.CountByLead(context.Background(), leadID, eventType)
	if err != nil {
		t.Fatalf("count events: %v", err)
	}
	return n
}

func strptr(s string) *string { return &s }

func TestResolveDirectOwnershipWins(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// Older default dealership and a source-mapped one both exist; the
	// vehicle owner must still win.
	env.createDealership(t, "Default Motors", "default-motors", nil)
	env.createDealership(t, "Robust Car", "robust_car_concessionaria", nil)
	owner := env.createDealership(t, "Owner Cars", "owner-cars", nil)

	vehicle := env.createVehicle(t, &owner.ID, strptr("robust_car"))
	l := env.createLead(t, &vehicle.ID)

	res, err := env.service.Resolve(ctx, l.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Dealership.ID != owner.ID {
		t.Fatalf("expected owner dealership %s, got %s", owner.ID, res.Dealership.ID)
	}
	if res.Method != MethodVehicle {
		t.Fatalf("expected method %q, got %q", MethodVehicle, res.Method)
	}
	if res.AlreadyAssigned {
		t.Fatal("expected fresh assignment")
	}
}

func TestResolveSourceMapping(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.createDealership(t, "Default Motors", "default-motors", nil)
	robust := env.createDealership(t, "Robust Car", "robust_car_concessionaria", nil)

	vehicle := env.createVehicle(t, nil, strptr("robust_car"))
	l := env.createLead(t, &vehicle.ID)

	res, err := env.service.Resolve(ctx, l.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Dealership.ID != robust.ID {
		t.Fatalf("expected robust_car dealership, got %s", res.Dealership.Slug)
	}
	if res.Method != MethodSource {
		t.Fatalf("expected method %q, got %q", MethodSource, res.Method)
	}
}

func TestResolveUnknownTagFallsThroughToDefault(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	oldest := env.createDealership(t, "Oldest Motors", "oldest-motors", nil)
	env.createDealership(t, "Newer Motors", "newer-motors", nil)

	vehicle := env.createVehicle(t, nil, strptr("unknown_scraper"))
	l := env.createLead(t, &vehicle.ID)

	res, err := env.service.Resolve(ctx, l.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Dealership.ID != oldest.ID {
		t.Fatalf("expected oldest dealership, got %s", res.Dealership.Slug)
	}
	if res.Method != MethodDefault {
		t.Fatalf("expected method %q, got %q", MethodDefault, res.Method)
	}
}

func TestResolveMappedSlugMissingFallsBackToDefault(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// The routing table maps robust_car, but no dealership carries that
	// slug; the resolver must fall through to the default pick.
	oldest := env.createDealership(t, "Oldest Motors", "oldest-motors", nil)
	env.createDealership(t, "Newer Motors", "newer-motors", nil)

	vehicle := env.createVehicle(t, nil, strptr("robust_car"))
	l := env.createLead(t, &vehicle.ID)

	res, err := env.service.Resolve(ctx, l.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Dealership.ID != oldest.ID {
		t.Fatalf("expected oldest dealership, got %s", res.Dealership.Slug)
	}
	if res.Method != MethodDefault {
		t.Fatalf("expected method %q, got %q", MethodDefault, res.Method)
	}
}

func TestResolveDefaultSkipsInactiveAndNonAccepting(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	inactive := env.createDealership(t, "Inactive", "inactive", nil)
	env.db.Model(inactive).Update("active", false)
	paused := env.createDealership(t, "Paused", "paused", nil)
	env.db.Model(paused).Update("accepts_leads", false)
	open := env.createDealership(t, "Open Motors", "open-motors", nil)

	l := env.createLead(t, nil)

	res, err := env.service.Resolve(ctx, l.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Dealership.ID != open.ID {
		t.Fatalf("expected open dealership, got %s", res.Dealership.Slug)
	}
}

func TestResolveNoDealershipAvailable(t *testing.T) {
	env := setupTestEnv(t)

	l := env.createLead(t, nil)

	_, err := env.service.Resolve(context.Background(), l.ID)
	if !errors.Is(err, ErrNoDealershipAvailable) {
		t.Fatalf("expected ErrNoDealershipAvailable, got %v", err)
	}
}

func TestResolveLeadNotFound(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.service.Resolve(context.Background(), uuid.New())
	if !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := env.createDealership(t, "Owner Cars", "owner-cars", nil)
	vehicle := env.createVehicle(t, &owner.ID, nil)
	l := env.createLead(t, &vehicle.ID)

	first, err := env.service.Resolve(ctx, l.ID)
	if err != nil {
		t.Fatalf("first Resolve returned error: %v", err)
	}
	second, err := env.service.Resolve(ctx, l.ID)
	if err != nil {
		t.Fatalf("second Resolve returned error: %v", err)
	}

	if first.Dealership.ID != second.Dealership.ID {
		t.Fatalf("expected same dealership, got %s and %s", first.Dealership.ID, second.Dealership.ID)
	}
	if !second.AlreadyAssigned {
		t.Fatal("expected second resolve to hit the idempotency guard")
	}
	if n := env.countEvents(t, l.ID, domain.EventLeadDistributed); n != 1 {
		t.Fatalf("expected exactly 1 lead_distributed event, got %d", n)
	}
}

// racingLeadStore simulates a concurrent distribution winning the
// conditional update just before this one commits.
type racingLeadStore struct {
	*repository.LeadRepository
	winnerID uuid.UUID
	raced    bool
}

func (s *racingLeadStore) AssignDealership(ctx context.Context, leadID, dealershipID uuid.UUID) (bool, error) {
	if s.raced {
		return s.LeadRepository.AssignDealership(ctx, leadID, dealershipID)
	}
	s.raced = true
	if _, err := s.LeadRepository.AssignDealership(ctx, leadID, s.winnerID); err != nil {
		return false, err
	}
	return false, nil
}

// stuckLeadStore reports a lost race without anyone having assigned the
// lead, a state the resolver must refuse to paper over.
type stuckLeadStore struct {
	*repository.LeadRepository
}

func (s *stuckLeadStore) AssignDealership(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func TestResolveLostRaceReturnsWinner(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	loser := env.createDealership(t, "Loser Motors", "loser-motors", nil)
	winner := env.createDealership(t, "Winner Motors", "winner-motors", nil)
	vehicle := env.createVehicle(t, &loser.ID, nil)
	l := env.createLead(t, &vehicle.ID)

	store := &racingLeadStore{LeadRepository: env.leads, winnerID: winner.ID}
	svc := NewService(store, env.dealerships, env.events, env.interactions, NewWebhookClient(2*time.Second))

	res, err := svc.Resolve(ctx, l.ID)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Dealership.ID != winner.ID {
		t.Fatalf("expected winner dealership %s, got %s", winner.Slug, res.Dealership.Slug)
	}
	if !res.AlreadyAssigned {
		t.Fatal("expected AlreadyAssigned after a lost race")
	}
	if res.Method != "" {
		t.Fatalf("expected empty method after a lost race, got %q", res.Method)
	}
	// The loser must not emit an event on top of the winner's assignment.
	if n := env.countEvents(t, l.ID, domain.EventLeadDistributed); n != 0 {
		t.Fatalf("expected 0 lead_distributed events from the loser, got %d", n)
	}
}

func TestResolveLostRaceWithoutWinnerFails(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.createDealership(t, "Open Motors", "open-motors", nil)
	l := env.createLead(t, nil)

	svc := NewService(&stuckLeadStore{env.leads}, env.dealerships, env.events, env.interactions, NewWebhookClient(2*time.Second))

	_, err := svc.Resolve(ctx, l.ID)
	if err == nil {
		t.Fatal("expected an error when the lost race has no winner on reload")
	}
	if n := env.countEvents(t, l.ID, domain.EventLeadDistributed); n != 0 {
		t.Fatalf("expected 0 lead_distributed events, got %d", n)
	}
}

func TestResolveRecordsDistributionEvent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := env.createDealership(t, "Owner Cars", "owner-cars", nil)
	vehicle := env.createVehicle(t, &owner.ID, nil)
	l := env.createLead(t, &vehicle.ID)

	if _, err := env.service.Resolve(ctx, l.ID); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	events, err := env.events.ListByLead(ctx, l.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Type != domain.EventLeadDistributed {
		t.Fatalf("expected lead_distributed event, got %s", e.Type)
	}
	if e.Params["dealership_id"] != owner.ID.String() {
		t.Fatalf("expected dealership_id %s in params, got %v", owner.ID, e.Params["dealership_id"])
	}
	if e.Params["method"] != MethodVehicle {
		t.Fatalf("expected method vehicle in params, got %v", e.Params["method"])
	}

	updated, err := env.leads.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("reload lead: %v", err)
	}
	if updated.DealershipID == nil || *updated.DealershipID != owner.ID {
		t.Fatal("expected responsible dealership persisted on the lead")
	}
	if updated.Status != domain.LeadStatusNew {
		t.Fatalf("expected status new, got %s", updated.Status)
	}
}

func TestNotifyWebhookSuccess(t *testing.T) {
	var gotUserAgent, gotContentType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	env := setupTestEnv(t)
	ctx := context.Background()

	d := env.createDealership(t, "Webhook Motors", "webhook-motors", strptr(server.URL))
	vehicle := env.createVehicle(t, &d.ID, nil)
	l := env.createLead(t, &vehicle.ID)

	res, err := env.service.Notify(ctx, l.ID, d)
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if res.Method != NotifyMethodWebhook {
		t.Fatalf("expected webhook method, got %s", res.Method)
	}
	if gotUserAgent != "CarencIA-LeadDistributor/1.0" {
		t.Fatalf("unexpected User-Agent %q", gotUserAgent)
	}
	if gotContentType != "application/json" {
		t.Fatalf("unexpected Content-Type %q", gotContentType)
	}
	body := string(gotBody)
	for _, want := range []string{`"event":"new_lead"`, `"name":"Maria Souza"`, `"make":"Fiat"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("payload missing %s: %s", want, body)
		}
	}

	// Successful webhook delivery must not leave a fallback interaction.
	interactions, err := env.interactions.ListByLead(ctx, l.ID)
	if err != nil {
		t.Fatalf("list interactions: %v", err)
	}
	if len(interactions) != 0 {
		t.Fatalf("expected no interactions, got %d", len(interactions))
	}
}

func TestNotifyWebhookFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	env := setupTestEnv(t)
	ctx := context.Background()

	d := env.createDealership(t, "Broken Webhook", "broken-webhook", strptr(server.URL))
	l := env.createLead(t, nil)

	res, err := env.service.Notify(ctx, l.ID, d)
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if res.Method != NotifyMethodNone {
		t.Fatalf("expected fallback method none, got %s", res.Method)
	}

	interactions, err := env.interactions.ListByLead(ctx, l.ID)
	if err != nil {
		t.Fatalf("list interactions: %v", err)
	}
	if len(interactions) != 1 {
		t.Fatalf("expected 1 fallback interaction, got %d", len(interactions))
	}
	i := interactions[0]
	if i.Type != domain.InteractionTypeSystem || i.Channel != domain.InteractionChannelAutomatic {
		t.Fatalf("unexpected interaction type/channel: %s/%s", i.Type, i.Channel)
	}
	if i.Subject != fallbackSubject {
		t.Fatalf("unexpected subject %q", i.Subject)
	}
	if i.Sender != domain.InteractionSenderSystem {
		t.Fatalf("unexpected sender %q", i.Sender)
	}
}

func TestNotifyNoChannelsCreatesInteraction(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	d := env.createDealership(t, "No Channels", "no-channels", nil)
	l := env.createLead(t, nil)

	res, err := env.service.Notify(ctx, l.ID, d)
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if res.Method != NotifyMethodNone {
		t.Fatalf("expected method none, got %s", res.Method)
	}

	interactions, err := env.interactions.ListByLead(ctx, l.ID)
	if err != nil {
		t.Fatalf("list interactions: %v", err)
	}
	if len(interactions) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(interactions))
	}
}

func TestNotifyLeadNotFound(t *testing.T) {
	env := setupTestEnv(t)
	d := env.createDealership(t, "Somewhere", "somewhere", nil)

	_, err := env.service.Notify(context.Background(), uuid.New(), d)
	if !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

type failingSender struct{}

func (failingSender) Send(_ context.Context, _, _, _ string) error {
	return errors.New("smtp down")
}

type recordingSender struct {
	to      string
	subject string
}

func (r *recordingSender) Send(_ context.Context, to, subject, _ string) error {
	r.to = to
	r.subject = subject
	return nil
}

func TestNotifyEmailChannelAfterWebhook(t *testing.T) {
	sender := &recordingSender{}
	env := setupTestEnv(t, WithEmailSender(sender))
	ctx := context.Background()

	d := env.createDealership(t, "Email Motors", "email-motors", nil)
	email := "leads@emailmotors.com.br"
	d.Email = &email
	if err := env.dealerships.Update(ctx, d); err != nil {
		t.Fatalf("update dealership: %v", err)
	}

	l := env.createLead(t, nil)

	res, err := env.service.Notify(ctx, l.ID, d)
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if res.Method != NotifyMethodEmail {
		t.Fatalf("expected email method, got %s", res.Method)
	}
	if sender.to != email {
		t.Fatalf("expected email sent to %s, got %s", email, sender.to)
	}
}

func TestNotifyEmailFailureFallsBack(t *testing.T) {
	env := setupTestEnv(t, WithEmailSender(failingSender{}))
	ctx := context.Background()

	d := env.createDealership(t, "Email Motors", "email-motors", nil)
	email := "leads@emailmotors.com.br"
	d.Email = &email
	if err := env.dealerships.Update(ctx, d); err != nil {
		t.Fatalf("update dealership: %v", err)
	}

	l := env.createLead(t, nil)

	res, err := env.service.Notify(ctx, l.ID, d)
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if res.Method != NotifyMethodNone {
		t.Fatalf("expected fallback method none, got %s", res.Method)
	}
}

func TestProcessLeadEndToEnd(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// Dealership with no webhook and no email: distribution succeeds,
	// notification terminates in the interaction fallback.
	d := env.createDealership(t, "Quiet Motors", "quiet-motors", nil)
	vehicle := env.createVehicle(t, &d.ID, nil)
	l := env.createLead(t, &vehicle.ID)

	result, err := env.service.ProcessLead(ctx, l.ID)
	if err != nil {
		t.Fatalf("ProcessLead returned error: %v", err)
	}
	if result.Dealership.ID != d.ID {
		t.Fatalf("expected dealership %s, got %s", d.ID, result.Dealership.ID)
	}
	if result.Notification != NotifyMethodNone {
		t.Fatalf("expected notification none, got %s", result.Notification)
	}

	updated, err := env.leads.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("reload lead: %v", err)
	}
	if updated.DealershipID == nil || *updated.DealershipID != d.ID {
		t.Fatal("expected responsible dealership set")
	}
	if n := env.countEvents(t, l.ID, domain.EventLeadDistributed); n != 1 {
		t.Fatalf("expected 1 lead_distributed event, got %d", n)
	}
	interactions, err := env.interactions.ListByLead(ctx, l.ID)
	if err != nil {
		t.Fatalf("list interactions: %v", err)
	}
	if len(interactions) != 1 {
		t.Fatalf("expected 1 system interaction, got %d", len(interactions))
	}
}

func TestProcessLeadResolverFailurePropagates(t *testing.T) {
	env := setupTestEnv(t)

	l := env.createLead(t, nil)

	_, err := env.service.ProcessLead(context.Background(), l.ID)
	if !errors.Is(err, ErrNoDealershipAvailable) {
		t.Fatalf("expected ErrNoDealershipAvailable, got %v", err)
	}
}

func TestProcessLeadWebhookFailureStillSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	env := setupTestEnv(t)
	ctx := context.Background()

	d := env.createDealership(t, "Flaky Motors", "flaky-motors", strptr(server.URL))
	vehicle := env.createVehicle(t, &d.ID, nil)
	l := env.createLead(t, &vehicle.ID)

	result, err := env.service.ProcessLead(ctx, l.ID)
	if err != nil {
		t.Fatalf("ProcessLead returned error: %v", err)
	}
	if result.Notification != NotifyMethodNone {
		t.Fatalf("expected downgraded notification none, got %s", result.Notification)
	}
}
