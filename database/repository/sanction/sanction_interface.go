package sanctionRepo

import (
	"context"

	"pawhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SanctionRepository defines data access for the append-only sanction log.
type SanctionRepository interface {
	// Create appends a sanction row without touching the user document.
	Create(s *models.UserSanction) error
	// ApplyWithUserUpdate appends the sanction row and patches the user
	// document in a single transaction, so a ban can never exist without its
	// audit row and vice versa.
	ApplyWithUserUpdate(ctx context.Context, s *models.UserSanction, userUpdate bson.M) error
	// ListByUser retrieves a user's sanction history, newest first.
	ListByUser(userID string) ([]models.UserSanction, error)
}
