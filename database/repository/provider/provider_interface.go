package providerRepo

import (
	"pawhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProviderRepository defines methods for provider profile and service catalog
// data access.
type ProviderRepository interface {
	// GetByID retrieves a provider profile by its unique ID; nil when absent.
	GetByID(id string) (*models.ProviderProfile, error)
	// GetByUserID retrieves the profile attached to a PRO user; nil when absent.
	GetByUserID(userID string) (*models.ProviderProfile, error)
	// Create inserts a new provider profile.
	Create(p *models.ProviderProfile) error
	// Update modifies an existing provider profile.
	Update(p *models.ProviderProfile) error
	// UpdateSetDocument applies a $set patch to one provider document.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// List retrieves providers matching the filter, newest first.
	List(filter models.ProviderListFilter) ([]models.ProviderProfile, int64, error)
	// ListByKind retrieves all providers of one kind.
	ListByKind(kind models.ProviderKind) ([]models.ProviderProfile, error)

	// GetService retrieves one catalog entry; nil when absent.
	GetService(id string) (*models.Service, error)
	// ListServices retrieves a provider's catalog.
	ListServices(providerID string) ([]models.Service, error)
	// CreateService inserts a catalog entry.
	CreateService(s *models.Service) error
	// UpdateService modifies a catalog entry.
	UpdateService(s *models.Service) error
	// DeleteService removes a catalog entry.
	DeleteService(id string) error
}
