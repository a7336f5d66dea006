package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"pawhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListByClient retrieves a client's bookings, newest schedule first.
func (r *MongoBookingRepo) ListByClient(userID, status string, limit int64) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, filter, opts)
}

// ListByProvider retrieves a provider's bookings, newest schedule first.
func (r *MongoBookingRepo) ListByProvider(providerID, status string, limit int64) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, filter, opts)
}

// ListByProviderBetween retrieves a provider's bookings scheduled in the naive
// wall-clock range [from, to). The bounds are NaiveLayout strings, so the
// comparison is lexicographic and needs no timezone handling.
func (r *MongoBookingRepo) ListByProviderBetween(providerID, from, to string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id":  providerID,
		"scheduled_at": bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

// ListByClientBetween retrieves a client's bookings scheduled in [from, to).
func (r *MongoBookingRepo) ListByClientBetween(userID, from, to string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"user_id":      userID,
		"scheduled_at": bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})
	return r.find(ctx, filter, opts)
}

// FindActiveForPet retrieves the next confirmable booking at the provider that
// includes the pet.
func (r *MongoBookingRepo) FindActiveForPet(providerID, petID string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"pet_ids":     petID,
		"status":      bson.M{"$in": models.ConfirmableStatuses},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "scheduled_at", Value: 1}})

	var b models.Booking
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find booking for pet %s at provider %s: %w", petID, providerID, err)
	}
	return &b, nil
}

// ListByStatusScheduledBefore retrieves bookings in status scheduled strictly
// before the naive cutoff. Used by the lifecycle sweep; callers re-check the
// schedule end against the booking duration.
func (r *MongoBookingRepo) ListByStatusScheduledBefore(status, cutoff string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":       status,
		"scheduled_at": bson.M{"$lt": cutoff},
	}
	return r.find(ctx, filter)
}

// ListGraceExpired retrieves AWAITING_CONFIRMATION bookings whose grace period
// ended before now.
func (r *MongoBookingRepo) ListGraceExpired(now time.Time) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":               models.BookingAwaitingConfirm,
		"grace_period_ends_at": bson.M{"$lt": now},
	}
	return r.find(ctx, filter)
}
