package recordsRepo

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

// MongoRecordsRepo implements RecordsRepository using MongoDB.
type MongoRecordsRepo struct {
	orderColl *mongo.Collection
	adoptColl *mongo.Collection
}

// NewMongoRecordsRepo creates a new instance of RecordsRepository using MongoDB.
func NewMongoRecordsRepo() RecordsRepository {
	repo := &MongoRecordsRepo{
		orderColl: database.Collection("orders"),
		adoptColl: database.Collection("adopt_posts"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRecordsRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	orderIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.orderColl.Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	adoptIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.adoptColl.Indexes().CreateMany(ctx, adoptIndexes); err != nil {
		return fmt.Errorf("failed to create adopt post indexes: %w", err)
	}
	return nil
}

// CreateOrder inserts a new order document.
func (r *MongoRecordsRepo) CreateOrder(o *models.Order) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	o.CreatedAt = time.Now()
	if _, err := r.orderColl.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// ListOrdersByUser retrieves a user's orders, newest first.
func (r *MongoRecordsRepo) ListOrdersByUser(userID string) ([]models.Order, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.orderColl.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status.
func (r *MongoRecordsRepo) UpdateOrderStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.orderColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update order with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order with id %s not found", id)
	}
	return nil
}

// CreateAdoptPost inserts a new adoption listing.
func (r *MongoRecordsRepo) CreateAdoptPost(p *models.AdoptPost) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	p.CreatedAt = time.Now()
	if _, err := r.adoptColl.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create adopt post: %w", err)
	}
	return nil
}

// ListAdoptPostsByUser retrieves a user's adoption listings, newest first.
func (r *MongoRecordsRepo) ListAdoptPostsByUser(userID string) ([]models.AdoptPost, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.adoptColl.Find(ctx, bson.M{"created_by": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list adopt posts for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var posts []models.AdoptPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode adopt posts: %w", err)
	}
	return posts, nil
}

// UpdateAdoptPostStatus moves a listing to a new status.
func (r *MongoRecordsRepo) UpdateAdoptPostStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.adoptColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update adopt post with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("adopt post with id %s not found", id)
	}
	return nil
}
