package sanctionRepo

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

// MongoSanctionRepo implements SanctionRepository using MongoDB. It holds a
// handle on the users collection as well, because disciplinary actions mutate
// both collections atomically.
type MongoSanctionRepo struct {
	coll     *mongo.Collection
	userColl *mongo.Collection
}

// NewMongoSanctionRepo creates a new instance of SanctionRepository using MongoDB.
func NewMongoSanctionRepo() SanctionRepository {
	repo := &MongoSanctionRepo{
		coll:     database.Collection("user_sanctions"),
		userColl: database.Collection("users"),
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

func (r *MongoSanctionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "issued_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create appends a sanction row.
func (r *MongoSanctionRepo) Create(s *models.UserSanction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if s.IssuedAt.IsZero() {
		s.IssuedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create sanction: %w", err)
	}
	return nil
}

// ApplyWithUserUpdate appends the sanction row and patches the user document
// in one multi-document transaction.
func (r *MongoSanctionRepo) ApplyWithUserUpdate(ctx context.Context, s *models.UserSanction, userUpdate bson.M) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	if s.IssuedAt.IsZero() {
		s.IssuedAt = time.Now()
	}
	userUpdate["updated_at"] = time.Now()

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, s); err != nil {
			return fmt.Errorf("insert sanction failed: %w", err)
		}
		res, err := r.userColl.UpdateOne(sc, bson.M{"id": s.UserID}, bson.M{"$set": userUpdate})
		if err != nil {
			return fmt.Errorf("patch user failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("user with id %s not found", s.UserID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("sanction transaction failed: %w", err)
	}
	return nil
}

// ListByUser retrieves a user's sanction history, newest first.
func (r *MongoSanctionRepo) ListByUser(userID string) ([]models.UserSanction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "issued_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sanctions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var sanctions []models.UserSanction
	if err := cursor.All(ctx, &sanctions); err != nil {
		return nil, fmt.Errorf("failed to decode sanctions: %w", err)
	}
	return sanctions, nil
}
