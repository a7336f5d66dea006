package admin

import (
	"fmt"

	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
)

// CreateFlag attaches a manual flag to an account. The category is derived
// from the flag type, never supplied by the caller.
func (s *DefaultAdminService) CreateFlag(userID, flagType, bookingID, note string) (*models.AdminFlag, error) {
	if flagType == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "flag type is required")
	}
	if _, err := s.getUser(userID); err != nil {
		return nil, err
	}
	if bookingID != "" {
		b, err := s.BookingRepo.GetByID(bookingID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch booking: %w", err)
		}
		if b == nil {
			return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("booking %s not found", bookingID))
		}
	}

	f := &models.AdminFlag{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      flagType,
		Category:  models.FlagCategoryOf(flagType),
		BookingID: bookingID,
		Note:      note,
	}
	if err := s.FlagRepo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ListFlags retrieves flags matching the filter.
func (s *DefaultAdminService) ListFlags(filter models.FlagListFilter) ([]models.AdminFlag, error) {
	return s.FlagRepo.List(filter)
}

// ResolveFlag marks a flag handled; a non-empty note replaces the stored one.
func (s *DefaultAdminService) ResolveFlag(flagID, note string) error {
	f, err := s.getFlag(flagID)
	if err != nil {
		return err
	}
	if f.Resolved {
		return utils.NewServiceError(utils.ErrInvalidState, "flag is already resolved")
	}
	return s.FlagRepo.Resolve(flagID, note)
}

// UnresolveFlag reopens a resolved flag, re-arming the heuristic dedupe for
// its type.
func (s *DefaultAdminService) UnresolveFlag(flagID string) error {
	f, err := s.getFlag(flagID)
	if err != nil {
		return err
	}
	if !f.Resolved {
		return utils.NewServiceError(utils.ErrInvalidState, "flag is not resolved")
	}
	return s.FlagRepo.Unresolve(flagID)
}

// DeleteFlag removes a flag outright.
func (s *DefaultAdminService) DeleteFlag(flagID string) error {
	if _, err := s.getFlag(flagID); err != nil {
		return err
	}
	return s.FlagRepo.Delete(flagID)
}

func (s *DefaultAdminService) getFlag(flagID string) (*models.AdminFlag, error) {
	f, err := s.FlagRepo.GetByID(flagID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("flag %s not found", flagID))
	}
	return f, nil
}

// FlagStats aggregates flag counts.
func (s *DefaultAdminService) FlagStats() (*models.FlagStats, error) {
	return s.FlagRepo.Stats()
}
