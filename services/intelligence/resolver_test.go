package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"innroutes/models"
)

type stubClient struct {
	response string
	err      error
	calls    int
}

func (s *stubClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testRequest(days int) models.ResolveRequest {
	return models.ResolveRequest{
		Destination:     "Japan",
		HomeCountry:     "India",
		HomeCurrency:    "INR",
		PassportCountry: "India",
		Days:            days,
	}
}

func validBackendJSON(t *testing.T, days int) string {
	t.Helper()
	bundle := Generate(testRequest(days), time.Unix(0, 0))
	data, err := json.Marshal(bundle)
	if err != nil {
		t.Fatalf("marshal bundle: %v", err)
	}
	return string(data)
}

func TestResolveOfflineItineraryLength(t *testing.T) {
	r := (&DefaultResolver{}).WithClock(func() time.Time { return time.Unix(100, 0) })

	for _, days := range []int{1, 3, 5, 14} {
		bundle := r.Resolve(context.Background(), testRequest(days))
		if got := len(bundle.Itinerary); got != days {
			t.Errorf("days=%d: itinerary length = %d", days, got)
		}
	}
}

func TestResolveOfflineScenario(t *testing.T) {
	// No backend configured: Japan/India/INR profile, 5 days.
	r := (&DefaultResolver{}).WithClock(time.Now)
	bundle := r.Resolve(context.Background(), testRequest(5))

	if len(bundle.Itinerary) != 5 {
		t.Fatalf("itinerary length = %d, want 5", len(bundle.Itinerary))
	}
	if bundle.Economics.HomeCurrency != "INR" {
		t.Errorf("home currency = %q, want INR", bundle.Economics.HomeCurrency)
	}
	found := false
	for _, vt := range models.VisaTypes {
		if bundle.Visa.Type == vt {
			found = true
		}
	}
	if !found {
		t.Errorf("visa type %q not in enum", bundle.Visa.Type)
	}
	if err := validateBundle(bundle, 5); err != nil {
		t.Errorf("offline bundle fails validation: %v", err)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	now := time.Unix(42, 0)
	a := Generate(testRequest(3), now)
	b := Generate(testRequest(3), now)

	if a.Coordinates != b.Coordinates {
		t.Errorf("coordinates differ across calls: %v vs %v", a.Coordinates, b.Coordinates)
	}
	if a.Economics.DailyCostLocal != b.Economics.DailyCostLocal {
		t.Errorf("daily cost differs: %v vs %v", a.Economics.DailyCostLocal, b.Economics.DailyCostLocal)
	}
	if a.Economics.BudgetComparison != b.Economics.BudgetComparison {
		t.Errorf("budget comparison differs")
	}
}

func TestGenerateSeedVariesByName(t *testing.T) {
	// Different lengths and different first letters must yield different seeds.
	if seedFor("Japan") == seedFor("Brazil") {
		t.Errorf("seeds collide for Japan/Brazil")
	}
	if seedFor("Oslo") == seedFor("Osaka") {
		t.Errorf("seeds collide for names of different length")
	}

	now := time.Unix(0, 0)
	japan := Generate(models.ResolveRequest{Destination: "Japan", HomeCurrency: "INR", Days: 2}, now)
	brazil := Generate(models.ResolveRequest{Destination: "Brazil", HomeCurrency: "INR", Days: 2}, now)
	if japan.Coordinates == brazil.Coordinates && japan.Economics.DailyCostLocal == brazil.Economics.DailyCostLocal {
		t.Errorf("distinct destinations produced identical seeded fields")
	}
}

func TestGenerateActivityIDs(t *testing.T) {
	bundle := Generate(testRequest(4), time.Unix(0, 0))

	seen := make(map[string]bool)
	for i, day := range bundle.Itinerary {
		if day.Day != i+1 {
			t.Errorf("day %d numbered %d", i, day.Day)
		}
		if len(day.Activities) != 3 {
			t.Fatalf("day %d has %d activities, want 3", day.Day, len(day.Activities))
		}
		for _, act := range day.Activities {
			if act.ID == "" {
				t.Errorf("empty activity id on day %d", day.Day)
			}
			if seen[act.ID] {
				t.Errorf("duplicate activity id %q", act.ID)
			}
			seen[act.ID] = true
		}
	}
	if got := bundle.Itinerary[0].Activities[0].ID; got != "mock-d0-a1" {
		t.Errorf("first activity id = %q, want mock-d0-a1", got)
	}
	if got := bundle.Itinerary[3].Activities[2].ID; got != "mock-d3-a3" {
		t.Errorf("last activity id = %q, want mock-d3-a3", got)
	}
}

func TestResolveBackendSuccess(t *testing.T) {
	client := &stubClient{response: validBackendJSON(t, 3)}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	r := NewResolverWithClient(client).WithClock(func() time.Time { return now })

	bundle := r.Resolve(context.Background(), testRequest(3))

	if client.calls != 1 {
		t.Errorf("backend called %d times, want 1", client.calls)
	}
	if !bundle.LastUpdated.Equal(now) {
		t.Errorf("lastUpdated = %v, want %v", bundle.LastUpdated, now)
	}
	if len(bundle.Itinerary) != 3 {
		t.Errorf("itinerary length = %d", len(bundle.Itinerary))
	}
}

func TestResolveFallsBackOnBackendError(t *testing.T) {
	client := &stubClient{err: errors.New("transport: connection refused")}
	r := NewResolverWithClient(client).WithClock(time.Now)

	bundle := r.Resolve(context.Background(), testRequest(5))

	// The caller must never observe the failure.
	if bundle == nil {
		t.Fatal("resolve returned nil on backend failure")
	}
	if len(bundle.Itinerary) != 5 {
		t.Errorf("fallback itinerary length = %d, want 5", len(bundle.Itinerary))
	}
	if bundle.Itinerary[0].Activities[0].ID != "mock-d0-a1" {
		t.Errorf("expected offline-generated bundle, got id %q", bundle.Itinerary[0].Activities[0].ID)
	}
}

func TestResolveFallsBackOnMalformedJSON(t *testing.T) {
	client := &stubClient{response: "sorry, I cannot help with that"}
	r := NewResolverWithClient(client).WithClock(time.Now)

	bundle := r.Resolve(context.Background(), testRequest(2))
	if len(bundle.Itinerary) != 2 {
		t.Errorf("fallback itinerary length = %d, want 2", len(bundle.Itinerary))
	}
}

func TestResolveFallsBackOnSchemaViolation(t *testing.T) {
	// Backend answers with one itinerary day when three were requested.
	client := &stubClient{response: validBackendJSON(t, 1)}
	r := NewResolverWithClient(client).WithClock(time.Now)

	bundle := r.Resolve(context.Background(), testRequest(3))
	if len(bundle.Itinerary) != 3 {
		t.Errorf("itinerary length = %d, want 3 from fallback", len(bundle.Itinerary))
	}
	if bundle.Itinerary[0].Activities[0].ID != "mock-d0-a1" {
		t.Errorf("expected offline bundle after schema violation")
	}
}

func TestValidateBundle(t *testing.T) {
	base := func() *models.DestinationBundle {
		return Generate(testRequest(2), time.Unix(0, 0))
	}

	tests := []struct {
		name   string
		mutate func(*models.DestinationBundle)
		ok     bool
	}{
		{"valid", func(b *models.DestinationBundle) {}, true},
		{"empty name", func(b *models.DestinationBundle) { b.Name = "" }, false},
		{"bad visa type", func(b *models.DestinationBundle) { b.Visa.Type = "Maybe" }, false},
		{"bad difficulty", func(b *models.DestinationBundle) { b.Visa.DifficultyLevel = "Impossible" }, false},
		{"bad comparison", func(b *models.DestinationBundle) { b.Economics.BudgetComparison = "Pricey" }, false},
		{"missing currency", func(b *models.DestinationBundle) { b.Economics.LocalCurrency = "" }, false},
		{"empty activity id", func(b *models.DestinationBundle) { b.Itinerary[0].Activities[0].ID = "" }, false},
		{"duplicate activity id", func(b *models.DestinationBundle) {
			b.Itinerary[1].Activities[0].ID = b.Itinerary[0].Activities[0].ID
		}, false},
		{"bad activity type", func(b *models.DestinationBundle) { b.Itinerary[0].Activities[0].Type = "shopping" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base()
			tt.mutate(b)
			err := validateBundle(b, 2)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok {
				if err == nil {
					t.Fatal("expected schema violation")
				}
				if !errors.Is(err, ErrSchemaViolation) {
					t.Errorf("error %v is not ErrSchemaViolation", err)
				}
			}
		})
	}
}
