package petRepo

import "pawhub/models"

// PetRepository defines methods for pet data access.
type PetRepository interface {
	// GetByID retrieves a pet by its unique ID; nil when absent.
	GetByID(id string) (*models.Pet, error)
	// ListByOwner retrieves all pets of one owner.
	ListByOwner(ownerID string) ([]models.Pet, error)
	// Create inserts a new pet.
	Create(p *models.Pet) error
	// Update modifies an existing pet.
	Update(p *models.Pet) error
	// Delete removes a pet by its ID.
	Delete(id string) error
}
