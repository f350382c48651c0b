package models

import "time"

// ExpenseCategory buckets trip spending.
type ExpenseCategory string

const (
	ExpenseFood      ExpenseCategory = "Food"
	ExpenseTransport ExpenseCategory = "Transport"
	ExpenseStay      ExpenseCategory = "Stay"
	ExpenseActivity  ExpenseCategory = "Activity"
	ExpenseOther     ExpenseCategory = "Other"
)

// ValidExpenseCategory reports whether c is one of the known categories.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case ExpenseFood, ExpenseTransport, ExpenseStay, ExpenseActivity, ExpenseOther:
		return true
	}
	return false
}

// Expense is a single recorded spend against a trip.
type Expense struct {
	ID       string          `json:"id" bson:"id"`
	Category ExpenseCategory `json:"category" bson:"category"`
	Amount   float64         `json:"amount" bson:"amount"`
	Currency string          `json:"currency" bson:"currency"`
	Note     string          `json:"note,omitempty" bson:"note,omitempty"`
	SpentAt  time.Time       `json:"spentAt" bson:"spentAt"`
}

// UserTrip is a saved trip with its cached intelligence bundle.
// Writes are last-wins; there is no transactional guarantee.
type UserTrip struct {
	ID          string            `json:"id" bson:"id"`
	UserID      string            `json:"userId" bson:"userId"`
	Destination string            `json:"destination" bson:"destination"`
	StartDate   string            `json:"startDate" bson:"startDate"` // YYYY-MM-DD
	EndDate     string            `json:"endDate" bson:"endDate"`
	Budget      float64           `json:"budget" bson:"budget"`
	Expenses    []Expense         `json:"expenses" bson:"expenses"`
	Data        DestinationBundle `json:"data" bson:"data"`
	CreatedAt   time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// BudgetSummary aggregates a trip's spending against its budget.
type BudgetSummary struct {
	TripID     string                      `json:"tripId"`
	Budget     float64                     `json:"budget"`
	TotalSpent float64                     `json:"totalSpent"`
	Remaining  float64                     `json:"remaining"`
	ByCategory map[ExpenseCategory]float64 `json:"byCategory"`
	OverBudget bool                        `json:"overBudget"`
}
