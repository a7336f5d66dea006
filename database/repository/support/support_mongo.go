package supportRepo

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

// MongoSupportRepo implements SupportRepository using MongoDB.
type MongoSupportRepo struct {
	ticketColl  *mongo.Collection
	messageColl *mongo.Collection
}

// NewMongoSupportRepo creates a new instance of SupportRepository using MongoDB.
func NewMongoSupportRepo() SupportRepository {
	repo := &MongoSupportRepo{
		ticketColl:  database.Collection("support_tickets"),
		messageColl: database.Collection("ticket_messages"),
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

func (r *MongoSupportRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	ticketIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: -1}}},
	}
	if _, err := r.ticketColl.Indexes().CreateMany(ctx, ticketIndexes); err != nil {
		return fmt.Errorf("failed to create ticket indexes: %w", err)
	}

	messageIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "ticket_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := r.messageColl.Indexes().CreateMany(ctx, messageIndexes); err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}

// GetTicket retrieves a ticket by its unique ID.
func (r *MongoSupportRepo) GetTicket(id string) (*models.SupportTicket, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var t models.SupportTicket
	if err := r.ticketColl.FindOne(ctx, bson.M{"id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch ticket with id %s: %w", id, err)
	}
	return &t, nil
}

// CreateTicket inserts a new ticket document.
func (r *MongoSupportRepo) CreateTicket(t *models.SupportTicket) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := r.ticketColl.InsertOne(ctx, t); err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// UpdateTicket modifies an existing ticket document.
func (r *MongoSupportRepo) UpdateTicket(t *models.SupportTicket) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	t.UpdatedAt = time.Now()
	result, err := r.ticketColl.UpdateOne(ctx, bson.M{"id": t.ID}, bson.M{"$set": t})
	if err != nil {
		return fmt.Errorf("failed to update ticket with id %s: %w", t.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("ticket with id %s not found", t.ID)
	}
	return nil
}

// ListTickets retrieves tickets matching the filter, most recently updated first.
func (r *MongoSupportRepo) ListTickets(filter models.TicketListFilter) ([]models.SupportTicket, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		opts.SetSkip(filter.Offset)
	}

	cursor, err := r.ticketColl.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []models.SupportTicket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}

// AddMessage appends a message to a ticket thread and bumps the ticket's
// updated time.
func (r *MongoSupportRepo) AddMessage(m *models.TicketMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	m.CreatedAt = time.Now()
	if _, err := r.messageColl.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to add message to ticket %s: %w", m.TicketID, err)
	}

	update := bson.M{"$set": bson.M{"updated_at": m.CreatedAt}}
	if _, err := r.ticketColl.UpdateOne(ctx, bson.M{"id": m.TicketID}, update); err != nil {
		return fmt.Errorf("failed to touch ticket %s: %w", m.TicketID, err)
	}
	return nil
}

// ListMessages retrieves a ticket's thread, oldest first.
func (r *MongoSupportRepo) ListMessages(ticketID string) ([]models.TicketMessage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.messageColl.Find(ctx, bson.M{"ticket_id": ticketID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages for ticket %s: %w", ticketID, err)
	}
	defer cursor.Close(ctx)

	var messages []models.TicketMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}
