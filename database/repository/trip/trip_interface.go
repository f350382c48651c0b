package tripRepo

import (
	"innroutes/models"
)

// TripRepository defines methods for saved-trip data access.
type TripRepository interface {
	// Create inserts a new trip record.
	Create(trip *models.UserTrip) error
	// GetByID retrieves a trip by its ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.UserTrip, error)
	// ListByUser retrieves all trips owned by a user, newest first.
	ListByUser(userID string) ([]models.UserTrip, error)
	// Update replaces a trip record. Last write wins.
	Update(trip *models.UserTrip) error
	// Delete removes a trip by its ID.
	Delete(id string) error
}
