package pet

import (
	"fmt"

	petRepo "pawhub/database/repository/pet"
	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
)

// PetService defines business logic for pet records and their QR tags.
type PetService interface {
	// AddPet registers a pet under the owner.
	AddPet(ownerID string, p models.Pet) (*models.Pet, error)
	// GetPet retrieves one pet, enforcing ownership.
	GetPet(ownerID, petID string) (*models.Pet, error)
	// ListPets retrieves all pets of one owner.
	ListPets(ownerID string) ([]models.Pet, error)
	// UpdatePet edits a pet, enforcing ownership.
	UpdatePet(ownerID string, p models.Pet) (*models.Pet, error)
	// DeletePet removes a pet, enforcing ownership.
	DeletePet(ownerID, petID string) error
	// PetQRTag renders the pet's signed confirmation token as a PNG. Vets
	// scan it to confirm the active booking without the owner present.
	PetQRTag(ownerID, petID string) ([]byte, error)
}

// DefaultPetService is the production implementation.
type DefaultPetService struct {
	Repo petRepo.PetRepository
}

// AddPet registers a pet under the owner.
func (s *DefaultPetService) AddPet(ownerID string, p models.Pet) (*models.Pet, error) {
	if p.Name == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "pet name is required")
	}
	p.ID = uuid.New().String()
	p.OwnerID = ownerID
	if err := s.Repo.Create(&p); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	return &p, nil
}

// GetPet retrieves one pet, enforcing ownership.
func (s *DefaultPetService) GetPet(ownerID, petID string) (*models.Pet, error) {
	p, err := s.Repo.GetByID(petID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pet: %w", err)
	}
	if p == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("pet %s not found", petID))
	}
	if p.OwnerID != ownerID {
		return nil, utils.NewServiceError(utils.ErrForbidden, "pet belongs to another owner")
	}
	return p, nil
}

// ListPets retrieves all pets of one owner.
func (s *DefaultPetService) ListPets(ownerID string) ([]models.Pet, error) {
	return s.Repo.ListByOwner(ownerID)
}

// UpdatePet edits a pet, enforcing ownership.
func (s *DefaultPetService) UpdatePet(ownerID string, p models.Pet) (*models.Pet, error) {
	existing, err := s.GetPet(ownerID, p.ID)
	if err != nil {
		return nil, err
	}

	if p.Name != "" {
		existing.Name = p.Name
	}
	if p.Species != "" {
		existing.Species = p.Species
	}
	if p.Breed != "" {
		existing.Breed = p.Breed
	}
	if p.PhotoURL != "" {
		existing.PhotoURL = p.PhotoURL
	}

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}
	return existing, nil
}

// DeletePet removes a pet, enforcing ownership.
func (s *DefaultPetService) DeletePet(ownerID, petID string) error {
	if _, err := s.GetPet(ownerID, petID); err != nil {
		return err
	}
	return s.Repo.Delete(petID)
}

// PetQRTag renders the pet's signed confirmation token as a PNG.
func (s *DefaultPetService) PetQRTag(ownerID, petID string) ([]byte, error) {
	p, err := s.GetPet(ownerID, petID)
	if err != nil {
		return nil, err
	}
	token, err := utils.GeneratePetToken(p.ID, p.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign pet token: %w", err)
	}
	return utils.EncodePetQR(token)
}
