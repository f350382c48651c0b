package trip

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"innroutes/models"
	"innroutes/services/intelligence"
)

type stubTripRepo struct {
	trips    map[string]*models.UserTrip
	failWith error
}

func newStubTripRepo() *stubTripRepo {
	return &stubTripRepo{trips: make(map[string]*models.UserTrip)}
}

func (r *stubTripRepo) Create(t *models.UserTrip) error {
	if r.failWith != nil {
		return r.failWith
	}
	cp := *t
	r.trips[t.ID] = &cp
	return nil
}

func (r *stubTripRepo) GetByID(id string) (*models.UserTrip, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	t, ok := r.trips[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *stubTripRepo) ListByUser(userID string) ([]models.UserTrip, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []models.UserTrip
	for _, t := range r.trips {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTripRepo) Update(t *models.UserTrip) error {
	if r.failWith != nil {
		return r.failWith
	}
	cp := *t
	r.trips[t.ID] = &cp
	return nil
}

func (r *stubTripRepo) Delete(id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	delete(r.trips, id)
	return nil
}

type reminderCapture struct {
	payloads []models.ReminderPayload
	times    []time.Time
	err      error
}

func (c *reminderCapture) schedule(_ context.Context, p models.ReminderPayload, at time.Time) error {
	if c.err != nil {
		return c.err
	}
	c.payloads = append(c.payloads, p)
	c.times = append(c.times, at)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleBundle(days int) models.DestinationBundle {
	return *intelligence.Generate(models.ResolveRequest{
		Destination:  "Lisbon",
		HomeCountry:  "India",
		HomeCurrency: "INR",
		Days:         days,
	}, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
}

func TestCreateTripSchedulesReminder(t *testing.T) {
	repo := newStubTripRepo()
	capture := &reminderCapture{}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := NewDefaultTripService(repo, capture.schedule).WithClock(fixedClock(now))

	created, err := svc.CreateTrip(context.Background(), "u1", CreateTripInput{
		Destination: "Lisbon",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		Budget:      1200,
		Data:        sampleBundle(5),
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated trip id")
	}
	if len(capture.payloads) != 1 {
		t.Fatalf("expected 1 scheduled reminder, got %d", len(capture.payloads))
	}
	if capture.payloads[0].TripID != created.ID {
		t.Errorf("reminder tripId = %q, want %q", capture.payloads[0].TripID, created.ID)
	}
	want := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	if !capture.times[0].Equal(want) {
		t.Errorf("reminder fires at %v, want %v", capture.times[0], want)
	}
}

func TestCreateTripPastStartSkipsReminder(t *testing.T) {
	repo := newStubTripRepo()
	capture := &reminderCapture{}
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := NewDefaultTripService(repo, capture.schedule).WithClock(fixedClock(now))

	if _, err := svc.CreateTrip(context.Background(), "u1", CreateTripInput{
		Destination: "Lisbon",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		Data:        sampleBundle(5),
	}); err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if len(capture.payloads) != 0 {
		t.Fatalf("expected no reminder for a past start date, got %d", len(capture.payloads))
	}
}

func TestCreateTripSchedulerFailureIsNonFatal(t *testing.T) {
	repo := newStubTripRepo()
	capture := &reminderCapture{err: errors.New("queue down")}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := NewDefaultTripService(repo, capture.schedule).WithClock(fixedClock(now))

	created, err := svc.CreateTrip(context.Background(), "u1", CreateTripInput{
		Destination: "Lisbon",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		Data:        sampleBundle(5),
	})
	if err != nil {
		t.Fatalf("CreateTrip should survive scheduler failure: %v", err)
	}
	if got, _ := repo.GetByID(created.ID); got == nil {
		t.Fatal("trip not persisted")
	}
}

func TestCreateTripRejectsBadDates(t *testing.T) {
	svc := NewDefaultTripService(newStubTripRepo(), nil)
	cases := []struct {
		name       string
		start, end string
	}{
		{"malformed start", "10-04-2026", "2026-04-14"},
		{"malformed end", "2026-04-10", "next friday"},
		{"end before start", "2026-04-14", "2026-04-10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTrip(context.Background(), "u1", CreateTripInput{
				Destination: "Lisbon",
				StartDate:   tc.start,
				EndDate:     tc.end,
			})
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGetTripEnforcesOwnership(t *testing.T) {
	repo := newStubTripRepo()
	svc := NewDefaultTripService(repo, nil)

	created, err := svc.CreateTrip(context.Background(), "u1", CreateTripInput{
		Destination: "Lisbon",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		Data:        sampleBundle(5),
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	if _, err := svc.GetTrip(context.Background(), "u2", created.ID); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("foreign user GetTrip error = %v, want ErrTripNotFound", err)
	}
	if _, err := svc.GetTrip(context.Background(), "u1", "no-such-trip"); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("missing trip GetTrip error = %v, want ErrTripNotFound", err)
	}
	if err := svc.DeleteTrip(context.Background(), "u2", created.ID); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("foreign user DeleteTrip error = %v, want ErrTripNotFound", err)
	}
	if got, _ := repo.GetByID(created.ID); got == nil {
		t.Fatal("foreign delete must not remove the trip")
	}
	if err := svc.DeleteTrip(context.Background(), "u1", created.ID); err != nil {
		t.Fatalf("owner DeleteTrip: %v", err)
	}
}

func TestAddExpenseAndBudgetSummary(t *testing.T) {
	repo := newStubTripRepo()
	now := time.Date(2026, 4, 11, 12, 0, 0, 0, time.UTC)
	svc := NewDefaultTripService(repo, nil).WithClock(fixedClock(now))

	created, err := svc.CreateTrip(context.Background(), "u1", CreateTripInput{
		Destination: "Lisbon",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		Budget:      500,
		Data:        sampleBundle(5),
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	if _, err := svc.AddExpense(context.Background(), "u1", created.ID, ExpenseInput{
		Category: "Snacks", Amount: 10,
	}); err == nil {
		t.Error("expected error for unknown category")
	}
	if _, err := svc.AddExpense(context.Background(), "u1", created.ID, ExpenseInput{
		Category: models.ExpenseFood, Amount: -5,
	}); err == nil {
		t.Error("expected error for non-positive amount")
	}

	updated, err := svc.AddExpense(context.Background(), "u1", created.ID, ExpenseInput{
		Category: models.ExpenseFood, Amount: 120, Note: "dinner",
	})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if len(updated.Expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(updated.Expenses))
	}
	e := updated.Expenses[0]
	if e.ID == "" {
		t.Error("expected generated expense id")
	}
	if e.Currency != "INR" {
		t.Errorf("currency defaulted to %q, want trip home currency INR", e.Currency)
	}
	if !e.SpentAt.Equal(now) {
		t.Errorf("spentAt = %v, want clock time %v", e.SpentAt, now)
	}

	if _, err := svc.AddExpense(context.Background(), "u1", created.ID, ExpenseInput{
		Category: models.ExpenseTransport, Amount: 430, Currency: "EUR",
	}); err != nil {
		t.Fatalf("AddExpense: %v", err)
	}

	summary, err := svc.BudgetSummary(context.Background(), "u1", created.ID)
	if err != nil {
		t.Fatalf("BudgetSummary: %v", err)
	}
	if summary.TotalSpent != 550 {
		t.Errorf("totalSpent = %v, want 550", summary.TotalSpent)
	}
	if summary.Remaining != -50 {
		t.Errorf("remaining = %v, want -50", summary.Remaining)
	}
	if !summary.OverBudget {
		t.Error("expected overBudget to be set")
	}
	if summary.ByCategory[models.ExpenseFood] != 120 {
		t.Errorf("food bucket = %v, want 120", summary.ByCategory[models.ExpenseFood])
	}
}

func TestExportItineraryPDF(t *testing.T) {
	repo := newStubTripRepo()
	svc := NewDefaultTripService(repo, nil)

	created, err := svc.CreateTrip(context.Background(), "u1", CreateTripInput{
		Destination: "Lisbon",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		Budget:      500,
		Data:        sampleBundle(5),
	})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}

	doc, err := svc.ExportItineraryPDF(context.Background(), "u1", created.ID)
	if err != nil {
		t.Fatalf("ExportItineraryPDF: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, starts with %q", doc[:min(8, len(doc))])
	}
	if _, err := svc.ExportItineraryPDF(context.Background(), "u2", created.ID); !errors.Is(err, ErrTripNotFound) {
		t.Errorf("foreign export error = %v, want ErrTripNotFound", err)
	}
}
