package ledgerRepo

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

// MongoLedgerRepo implements LedgerRepository using MongoDB.
type MongoLedgerRepo struct {
	recordColl     *mongo.Collection
	adjustmentColl *mongo.Collection
}

// NewMongoLedgerRepo creates a new instance of LedgerRepository using MongoDB.
func NewMongoLedgerRepo() LedgerRepository {
	repo := &MongoLedgerRepo{
		recordColl:     database.Collection("collection_records"),
		adjustmentColl: database.Collection("collection_adjustments"),
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

func (r *MongoLedgerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	recordIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "month", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "month", Value: 1}}},
	}
	if _, err := r.recordColl.Indexes().CreateMany(ctx, recordIndexes); err != nil {
		return fmt.Errorf("failed to create collection record indexes: %w", err)
	}

	adjustmentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "month", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := r.adjustmentColl.Indexes().CreateMany(ctx, adjustmentIndexes); err != nil {
		return fmt.Errorf("failed to create adjustment indexes: %w", err)
	}
	return nil
}

// GetRecord retrieves the collection record for one provider-month.
func (r *MongoLedgerRepo) GetRecord(providerID, month string) (*models.CollectionRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rec models.CollectionRecord
	filter := bson.M{"provider_id": providerID, "month": month}
	if err := r.recordColl.FindOne(ctx, filter).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch collection record %s/%s: %w", providerID, month, err)
	}
	return &rec, nil
}

// ListRecordsForProvider retrieves all collection records of one provider.
func (r *MongoLedgerRepo) ListRecordsForProvider(providerID string) ([]models.CollectionRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.recordColl.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list collection records for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var records []models.CollectionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection records: %w", err)
	}
	return records, nil
}

// ListRecordsForMonth retrieves all collection records of one month.
func (r *MongoLedgerRepo) ListRecordsForMonth(month string) ([]models.CollectionRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.recordColl.Find(ctx, bson.M{"month": month})
	if err != nil {
		return nil, fmt.Errorf("failed to list collection records for month %s: %w", month, err)
	}
	defer cursor.Close(ctx)

	var records []models.CollectionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode collection records: %w", err)
	}
	return records, nil
}

// ApplyAdjustment upserts the collection record and appends the adjustment
// event in a single multi-document transaction.
func (r *MongoLedgerRepo) ApplyAdjustment(ctx context.Context, record *models.CollectionRecord, adj *models.CollectionAdjustment) error {
	client := r.recordColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	record.UpdatedAt = now
	adj.CreatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"provider_id": record.ProviderID, "month": record.Month}
		update := bson.M{
			"$set": bson.M{
				"amount_da":  record.AmountDa,
				"note":       record.Note,
				"updated_by": record.UpdatedBy,
				"updated_at": record.UpdatedAt,
			},
			"$setOnInsert": bson.M{
				"id":          record.ID,
				"provider_id": record.ProviderID,
				"month":       record.Month,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := r.recordColl.UpdateOne(sc, filter, update, opts); err != nil {
			return fmt.Errorf("upsert collection record failed: %w", err)
		}

		if _, err := r.adjustmentColl.InsertOne(sc, adj); err != nil {
			return fmt.Errorf("append adjustment failed: %w", err)
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
		return fmt.Errorf("collection adjustment transaction failed: %w", err)
	}
	return nil
}

// ListAdjustments retrieves the adjustment log for one provider-month.
func (r *MongoLedgerRepo) ListAdjustments(providerID, month string) ([]models.CollectionAdjustment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID, "month": month}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.adjustmentColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments for %s/%s: %w", providerID, month, err)
	}
	defer cursor.Close(ctx)

	var adjustments []models.CollectionAdjustment
	if err := cursor.All(ctx, &adjustments); err != nil {
		return nil, fmt.Errorf("failed to decode adjustments: %w", err)
	}
	return adjustments, nil
}
