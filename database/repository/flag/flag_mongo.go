package flagRepo

import (
	"context"
	"fmt"
	"time"

	"pawhub/database"
	"pawhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlagRepo implements FlagRepository using MongoDB.
type MongoFlagRepo struct {
	coll *mongo.Collection
}

// NewMongoFlagRepo creates a new instance of FlagRepository using MongoDB.
func NewMongoFlagRepo() FlagRepository {
	repo := &MongoFlagRepo{coll: database.Collection("admin_flags")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoFlagRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "type", Value: 1}, {Key: "resolved", Value: 1}}},
		{Keys: bson.D{{Key: "resolved", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a flag by its unique ID.
func (r *MongoFlagRepo) GetByID(id string) (*models.AdminFlag, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var f models.AdminFlag
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&f); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flag with id %s: %w", id, err)
	}
	return &f, nil
}

// Create inserts a new flag document.
func (r *MongoFlagRepo) Create(f *models.AdminFlag) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to create flag: %w", err)
	}
	return nil
}

// List retrieves flags matching the filter, newest first.
func (r *MongoFlagRepo) List(filter models.FlagListFilter) ([]models.AdminFlag, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Resolved != nil {
		query["resolved"] = *filter.Resolved
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %w", err)
	}
	defer cursor.Close(ctx)

	var flags []models.AdminFlag
	if err := cursor.All(ctx, &flags); err != nil {
		return nil, fmt.Errorf("failed to decode flags: %w", err)
	}
	return flags, nil
}

// ListByUser retrieves all flags attached to one account, newest first.
func (r *MongoFlagRepo) ListByUser(userID string) ([]models.AdminFlag, error) {
	return r.List(models.FlagListFilter{UserID: userID})
}

// ExistsUnresolved reports whether the account already carries an open flag of
// the given type.
func (r *MongoFlagRepo) ExistsUnresolved(userID, flagType string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "type": flagType, "resolved": false}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check open flag %s for user %s: %w", flagType, userID, err)
	}
	return count > 0, nil
}

// Resolve marks a flag resolved, optionally replacing its note.
func (r *MongoFlagRepo) Resolve(id, note string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"resolved": true, "updated_at": time.Now()}
	if note != "" {
		set["note"] = note
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to resolve flag with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("flag with id %s not found", id)
	}
	return nil
}

// Unresolve reopens a resolved flag.
func (r *MongoFlagRepo) Unresolve(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"resolved": false, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to unresolve flag with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("flag with id %s not found", id)
	}
	return nil
}

// Delete removes a flag outright.
func (r *MongoFlagRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete flag with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("flag with id %s not found", id)
	}
	return nil
}

// Stats aggregates flag counts by state and type.
func (r *MongoFlagRepo) Stats() (*models.FlagStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "type", Value: "$type"}, {Key: "resolved", Value: "$resolved"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate flag stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &models.FlagStats{ByType: map[string]int{}}
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Type     string `bson:"type"`
				Resolved bool   `bson:"resolved"`
			} `bson:"_id"`
			Count int `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode flag stats row: %w", err)
		}
		stats.Total += row.Count
		if row.ID.Resolved {
			stats.Resolved += row.Count
		} else {
			stats.Active += row.Count
		}
		stats.ByType[row.ID.Type] += row.Count
	}
	return stats, nil
}
