// File: services/intelligence/validate.go
package intelligence

import (
	"errors"
	"fmt"

	"innroutes/models"
)

// ErrSchemaViolation marks a backend response that parsed but does not
// satisfy the bundle's structural invariants. It never escapes the
// resolver; it only routes the call onto the offline generator.
var ErrSchemaViolation = errors.New("destination response violates schema")

// validateBundle re-checks the invariants the backend schema is supposed
// to guarantee. The backend is not trusted to honour the constraint.
func validateBundle(b *models.DestinationBundle, days int) error {
	if b.Name == "" {
		return fmt.Errorf("%w: missing name", ErrSchemaViolation)
	}
	if b.Economics.LocalCurrency == "" || b.Economics.HomeCurrency == "" {
		return fmt.Errorf("%w: missing currency codes", ErrSchemaViolation)
	}
	switch b.Economics.BudgetComparison {
	case models.BudgetCheaper, models.BudgetSimilar, models.BudgetExpensive:
	default:
		return fmt.Errorf("%w: invalid budget comparison %q", ErrSchemaViolation, b.Economics.BudgetComparison)
	}

	validVisa := false
	for _, vt := range models.VisaTypes {
		if b.Visa.Type == vt {
			validVisa = true
			break
		}
	}
	if !validVisa {
		return fmt.Errorf("%w: invalid visa type %q", ErrSchemaViolation, b.Visa.Type)
	}
	switch b.Visa.DifficultyLevel {
	case "Easy", "Moderate", "Hard":
	default:
		return fmt.Errorf("%w: invalid visa difficulty %q", ErrSchemaViolation, b.Visa.DifficultyLevel)
	}

	if len(b.Itinerary) != days {
		return fmt.Errorf("%w: itinerary has %d days, want %d", ErrSchemaViolation, len(b.Itinerary), days)
	}

	seen := make(map[string]bool)
	for _, day := range b.Itinerary {
		for _, act := range day.Activities {
			if act.ID == "" {
				return fmt.Errorf("%w: activity on day %d has empty id", ErrSchemaViolation, day.Day)
			}
			if seen[act.ID] {
				return fmt.Errorf("%w: duplicate activity id %q", ErrSchemaViolation, act.ID)
			}
			seen[act.ID] = true
			switch act.Type {
			case models.ActivitySightseeing, models.ActivityFood, models.ActivityTransport, models.ActivityRelax:
			default:
				return fmt.Errorf("%w: invalid activity type %q", ErrSchemaViolation, act.Type)
			}
		}
	}
	return nil
}
