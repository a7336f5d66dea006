package userRepo

import (
	"pawhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address; nil when absent.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// List retrieves users matching the filter, newest first.
	List(filter models.UserListFilter) ([]models.User, int64, error)
	// UpdateSetDocument applies a $set patch to one user document.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// CountByRole returns the number of users holding the given role.
	CountByRole(role string) (int64, error)
}
