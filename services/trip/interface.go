package trip

import (
	"context"
	"errors"
	"time"

	tripRepo "innroutes/database/repository/trip"
	"innroutes/models"
)

// ErrTripNotFound means the trip does not exist or belongs to another user.
var ErrTripNotFound = errors.New("trip not found")

// CreateTripInput is the payload for saving a planned trip.
type CreateTripInput struct {
	Destination string                   `json:"destination" binding:"required"`
	StartDate   string                   `json:"startDate" binding:"required"` // YYYY-MM-DD
	EndDate     string                   `json:"endDate" binding:"required"`
	Budget      float64                  `json:"budget"`
	Data        models.DestinationBundle `json:"data"`
}

// ExpenseInput records one spend against a trip.
type ExpenseInput struct {
	Category models.ExpenseCategory `json:"category" binding:"required"`
	Amount   float64                `json:"amount" binding:"required"`
	Currency string                 `json:"currency"`
	Note     string                 `json:"note"`
}

// ReminderScheduler enqueues a departure reminder to fire at the given
// time. Scheduling is best-effort; trip creation never fails on it.
type ReminderScheduler func(ctx context.Context, payload models.ReminderPayload, at time.Time) error

// TripService manages saved trips and their budget tracking.
type TripService interface {
	CreateTrip(ctx context.Context, userID string, input CreateTripInput) (*models.UserTrip, error)
	ListTrips(ctx context.Context, userID string) ([]models.UserTrip, error)
	GetTrip(ctx context.Context, userID, tripID string) (*models.UserTrip, error)
	DeleteTrip(ctx context.Context, userID, tripID string) error
	AddExpense(ctx context.Context, userID, tripID string, input ExpenseInput) (*models.UserTrip, error)
	BudgetSummary(ctx context.Context, userID, tripID string) (*models.BudgetSummary, error)
	ExportItineraryPDF(ctx context.Context, userID, tripID string) ([]byte, error)
}

// DefaultTripService is the production implementation.
type DefaultTripService struct {
	Repo     tripRepo.TripRepository
	Schedule ReminderScheduler

	now func() time.Time
}

// NewDefaultTripService wires the trip service together. schedule may be
// nil when no reminder queue is configured.
func NewDefaultTripService(repo tripRepo.TripRepository, schedule ReminderScheduler) *DefaultTripService {
	return &DefaultTripService{Repo: repo, Schedule: schedule, now: time.Now}
}

// WithClock overrides the service clock.
func (s *DefaultTripService) WithClock(now func() time.Time) *DefaultTripService {
	s.now = now
	return s
}
