package petRepo

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

// MongoPetRepo implements PetRepository using MongoDB.
type MongoPetRepo struct {
	coll *mongo.Collection
}

// NewMongoPetRepo creates a new instance of PetRepository using MongoDB.
func NewMongoPetRepo() PetRepository {
	repo := &MongoPetRepo{coll: database.Collection("pets")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPetRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a pet by its unique ID.
func (r *MongoPetRepo) GetByID(id string) (*models.Pet, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Pet
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pet with id %s: %w", id, err)
	}
	return &p, nil
}

// ListByOwner retrieves all pets of one owner.
func (r *MongoPetRepo) ListByOwner(ownerID string) ([]models.Pet, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list pets for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var pets []models.Pet
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", err)
	}
	return pets, nil
}

// Create inserts a new pet document.
func (r *MongoPetRepo) Create(p *models.Pet) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

// Update modifies an existing pet document.
func (r *MongoPetRepo) Update(p *models.Pet) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	p.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": p.ID}, bson.M{"$set": p})
	if err != nil {
		return fmt.Errorf("failed to update pet with id %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pet with id %s not found", p.ID)
	}
	return nil
}

// Delete removes a pet document by its ID.
func (r *MongoPetRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete pet with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("pet with id %s not found", id)
	}
	return nil
}
