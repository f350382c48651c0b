package trip

import (
	"context"
	"fmt"
	"time"

	"innroutes/models"
	"innroutes/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// CreateTrip validates and persists a new trip, then schedules a
// departure reminder when the start date lies in the future.
func (s *DefaultTripService) CreateTrip(ctx context.Context, userID string, input CreateTripInput) (*models.UserTrip, error) {
	start, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", input.StartDate, err)
	}
	end, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", input.EndDate, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", input.EndDate, input.StartDate)
	}
	if input.Budget < 0 {
		return nil, fmt.Errorf("budget must not be negative")
	}

	t := &models.UserTrip{
		ID:          uuid.NewString(),
		UserID:      userID,
		Destination: input.Destination,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Budget:      input.Budget,
		Expenses:    []models.Expense{},
		Data:        input.Data,
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}

	if s.Schedule != nil && start.After(s.now()) {
		payload := models.ReminderPayload{
			TripID:   t.ID,
			UserID:   userID,
			Title:    "Trip coming up",
			Body:     fmt.Sprintf("Your trip to %s starts on %s. Time to pack!", t.Destination, t.StartDate),
			FireDate: t.StartDate,
		}
		if err := s.Schedule(ctx, payload, start); err != nil {
			utils.GetLogger().Warn("trip: failed to schedule reminder",
				zap.String("tripId", t.ID), zap.Error(err))
		}
	}
	return t, nil
}

// ListTrips returns the user's saved trips, newest first.
func (s *DefaultTripService) ListTrips(ctx context.Context, userID string) ([]models.UserTrip, error) {
	return s.Repo.ListByUser(userID)
}

// GetTrip fetches one trip, enforcing ownership.
func (s *DefaultTripService) GetTrip(ctx context.Context, userID, tripID string) (*models.UserTrip, error) {
	t, err := s.Repo.GetByID(tripID)
	if err != nil {
		return nil, err
	}
	if t == nil || t.UserID != userID {
		return nil, ErrTripNotFound
	}
	return t, nil
}

// DeleteTrip removes one trip, enforcing ownership.
func (s *DefaultTripService) DeleteTrip(ctx context.Context, userID, tripID string) error {
	if _, err := s.GetTrip(ctx, userID, tripID); err != nil {
		return err
	}
	return s.Repo.Delete(tripID)
}

// AddExpense appends a spend record to the trip. Writes are last-wins.
func (s *DefaultTripService) AddExpense(ctx context.Context, userID, tripID string, input ExpenseInput) (*models.UserTrip, error) {
	if !models.ValidExpenseCategory(input.Category) {
		return nil, fmt.Errorf("unknown expense category %q", input.Category)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("expense amount must be positive")
	}

	t, err := s.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = t.Data.Economics.HomeCurrency
	}
	t.Expenses = append(t.Expenses, models.Expense{
		ID:       uuid.NewString(),
		Category: input.Category,
		Amount:   input.Amount,
		Currency: currency,
		Note:     input.Note,
		SpentAt:  s.now(),
	})
	if err := s.Repo.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// BudgetSummary aggregates the trip's spending against its budget.
func (s *DefaultTripService) BudgetSummary(ctx context.Context, userID, tripID string) (*models.BudgetSummary, error) {
	t, err := s.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	summary := &models.BudgetSummary{
		TripID:     t.ID,
		Budget:     t.Budget,
		ByCategory: make(map[models.ExpenseCategory]float64),
	}
	for _, e := range t.Expenses {
		summary.TotalSpent += e.Amount
		summary.ByCategory[e.Category] += e.Amount
	}
	summary.Remaining = t.Budget - summary.TotalSpent
	summary.OverBudget = summary.Remaining < 0
	return summary, nil
}
