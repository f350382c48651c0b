package tripRepo

import (
	"context"
	"fmt"
	"time"

	"innroutes/database"
	"innroutes/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTripRepo implements TripRepository using MongoDB.
type MongoTripRepo struct {
	coll *mongo.Collection
}

// NewMongoTripRepo creates a new instance of TripRepository using MongoDB.
func NewMongoTripRepo() TripRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("trips")
	repo := &MongoTripRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTripRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new trip document.
func (r *MongoTripRepo) Create(trip *models.UserTrip) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, trip); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetByID retrieves a trip by its ID.
func (r *MongoTripRepo) GetByID(id string) (*models.UserTrip, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var trip models.UserTrip
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&trip); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch trip %s: %w", id, err)
	}
	return &trip, nil
}

// ListByUser retrieves all trips owned by a user, newest first.
func (r *MongoTripRepo) ListByUser(userID string) ([]models.UserTrip, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var trips []models.UserTrip
	for cursor.Next(ctx) {
		var t models.UserTrip
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode trip: %w", err)
		}
		trips = append(trips, t)
	}
	return trips, nil
}

// Update replaces a trip document. Last write wins.
func (r *MongoTripRepo) Update(trip *models.UserTrip) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	trip.UpdatedAt = time.Now()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": trip.ID}, trip)
	if err != nil {
		return fmt.Errorf("failed to update trip %s: %w", trip.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("trip %s not found", trip.ID)
	}
	return nil
}

// Delete removes a trip document by its ID.
func (r *MongoTripRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("trip %s not found", id)
	}
	return nil
}
