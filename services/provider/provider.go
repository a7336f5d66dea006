package provider

import (
	"fmt"

	"pawhub/config"
	providerRepo "pawhub/database/repository/provider"
	userRepo "pawhub/database/repository/user"
	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ProviderService defines business logic for professional profiles and their
// service catalogs.
type ProviderService interface {
	// Apply creates a pending professional profile for the user.
	Apply(userID string, p models.ProviderProfile) (*models.ProviderProfile, error)
	// GetByID retrieves a provider profile.
	GetByID(providerID string) (*models.ProviderProfile, error)
	// GetByUserID retrieves the profile attached to a PRO user.
	GetByUserID(userID string) (*models.ProviderProfile, error)
	// List retrieves providers matching the filter.
	List(filter models.ProviderListFilter) ([]models.ProviderProfile, int64, error)
	// SetApproval approves or rejects a pending application; approval
	// promotes the owning user to the PRO role.
	SetApproval(providerID, approval string) (*models.ProviderProfile, error)
	// UpdateProfile applies a partial profile edit by the provider.
	UpdateProfile(userID string, p models.ProviderProfile) (*models.ProviderProfile, error)

	// UpdateCommission applies an admin commission edit; nil fields keep
	// their current value.
	UpdateCommission(providerID string, upd models.CommissionUpdate) (*models.ProviderProfile, error)
	// ResetCommission restores the platform default rates.
	ResetCommission(providerID string) (*models.ProviderProfile, error)

	// CreateService adds a catalog entry for the provider.
	CreateService(userID string, svc models.Service) (*models.Service, error)
	// ListServices retrieves a provider's catalog.
	ListServices(providerID string) ([]models.Service, error)
	// UpdateService edits a catalog entry, enforcing ownership.
	UpdateService(userID string, svc models.Service) (*models.Service, error)
	// DeleteService removes a catalog entry, enforcing ownership.
	DeleteService(userID, serviceID string) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	UserRepo userRepo.UserRepository
}

// DefaultCommission returns the platform default rates from configuration.
func DefaultCommission() models.CommissionConfig {
	return models.CommissionConfig{
		VetPerBookingDa: config.AppConfig.DefaultVetCommissionDa,
		DaycareHourlyDa: config.AppConfig.DefaultDaycareHourlyDa,
		DaycareDailyDa:  config.AppConfig.DefaultDaycareDailyDa,
		PetshopPercent:  config.AppConfig.DefaultPetshopCommissionPc,
	}
}

// Apply creates a pending professional profile for the user.
func (s *DefaultProviderService) Apply(userID string, p models.ProviderProfile) (*models.ProviderProfile, error) {
	if !p.Kind.Valid() {
		return nil, utils.NewServiceError(utils.ErrValidation, fmt.Sprintf("unknown provider kind %q", p.Kind))
	}
	if p.DisplayName == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "display name is required")
	}

	existing, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing profile: %w", err)
	}
	if existing != nil {
		return nil, utils.NewServiceError(utils.ErrConflict, "user already has a provider profile")
	}

	usr, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("user %s not found", userID))
	}

	p.ID = uuid.New().String()
	p.UserID = userID
	p.Approval = models.ApprovalPending
	p.Commission = DefaultCommission()
	p.AppliedAt = p.CreatedAt

	if err := s.Repo.Create(&p); err != nil {
		return nil, fmt.Errorf("failed to create provider profile: %w", err)
	}
	utils.GetLogger().Info("Provider application received",
		zap.String("providerID", p.ID), zap.String("kind", string(p.Kind)))
	return &p, nil
}

// GetByID retrieves a provider profile.
func (s *DefaultProviderService) GetByID(providerID string) (*models.ProviderProfile, error) {
	p, err := s.Repo.GetByID(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if p == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("provider %s not found", providerID))
	}
	return p, nil
}

// GetByUserID retrieves the profile attached to a PRO user.
func (s *DefaultProviderService) GetByUserID(userID string) (*models.ProviderProfile, error) {
	p, err := s.Repo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if p == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, "no provider profile for this user")
	}
	return p, nil
}

// List retrieves providers matching the filter.
func (s *DefaultProviderService) List(filter models.ProviderListFilter) ([]models.ProviderProfile, int64, error) {
	return s.Repo.List(filter)
}

// SetApproval approves or rejects a pending application.
func (s *DefaultProviderService) SetApproval(providerID, approval string) (*models.ProviderProfile, error) {
	if approval != models.ApprovalApproved && approval != models.ApprovalRejected {
		return nil, utils.NewServiceError(utils.ErrValidation, fmt.Sprintf("unknown approval status %q", approval))
	}

	p, err := s.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	if p.Approval != models.ApprovalPending {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "application has already been decided")
	}

	p.Approval = approval
	if err := s.Repo.Update(p); err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}

	if approval == models.ApprovalApproved {
		if err := s.UserRepo.UpdateSetDocument(p.UserID, bson.M{"role": models.RolePro}); err != nil {
			return nil, fmt.Errorf("failed to promote user to PRO: %w", err)
		}
	}
	return p, nil
}

// UpdateProfile applies a partial profile edit by the provider. Kind and
// approval are immutable here.
func (s *DefaultProviderService) UpdateProfile(userID string, p models.ProviderProfile) (*models.ProviderProfile, error) {
	existing, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if p.DisplayName != "" {
		existing.DisplayName = p.DisplayName
	}
	if p.Bio != "" {
		existing.Bio = p.Bio
	}
	if p.Address != "" {
		existing.Address = p.Address
	}
	if p.Lat != nil {
		existing.Lat = p.Lat
	}
	if p.Lng != nil {
		existing.Lng = p.Lng
	}

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update provider: %w", err)
	}
	return existing, nil
}

// UpdateCommission applies an admin commission edit. The new rates only
// affect bookings created afterwards; existing bookings keep the commission
// frozen at their creation.
func (s *DefaultProviderService) UpdateCommission(providerID string, upd models.CommissionUpdate) (*models.ProviderProfile, error) {
	p, err := s.GetByID(providerID)
	if err != nil {
		return nil, err
	}

	for _, v := range []*int{upd.VetPerBookingDa, upd.DaycareHourlyDa, upd.DaycareDailyDa, upd.PetshopPercent} {
		if v != nil && *v < 0 {
			return nil, utils.NewServiceError(utils.ErrValidation, "commission rates cannot be negative")
		}
	}

	if upd.VetPerBookingDa != nil {
		p.Commission.VetPerBookingDa = *upd.VetPerBookingDa
	}
	if upd.DaycareHourlyDa != nil {
		p.Commission.DaycareHourlyDa = *upd.DaycareHourlyDa
	}
	if upd.DaycareDailyDa != nil {
		p.Commission.DaycareDailyDa = *upd.DaycareDailyDa
	}
	if upd.PetshopPercent != nil {
		p.Commission.PetshopPercent = *upd.PetshopPercent
	}

	if err := s.Repo.Update(p); err != nil {
		return nil, fmt.Errorf("failed to update commission: %w", err)
	}
	utils.GetLogger().Info("Commission updated", zap.String("providerID", providerID))
	return p, nil
}

// ResetCommission restores the platform default rates.
func (s *DefaultProviderService) ResetCommission(providerID string) (*models.ProviderProfile, error) {
	p, err := s.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	p.Commission = DefaultCommission()
	if err := s.Repo.Update(p); err != nil {
		return nil, fmt.Errorf("failed to reset commission: %w", err)
	}
	return p, nil
}

// CreateService adds a catalog entry for the provider.
func (s *DefaultProviderService) CreateService(userID string, svc models.Service) (*models.Service, error) {
	p, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if svc.Title == "" {
		return nil, utils.NewServiceError(utils.ErrValidation, "service title is required")
	}
	if svc.PriceDa <= 0 {
		return nil, utils.NewServiceError(utils.ErrValidation, "service price must be positive")
	}
	if svc.DurationMin <= 0 {
		return nil, utils.NewServiceError(utils.ErrValidation, "service duration must be positive")
	}

	svc.ID = uuid.New().String()
	svc.ProviderID = p.ID
	svc.Active = true
	if err := s.Repo.CreateService(&svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return &svc, nil
}

// ListServices retrieves a provider's catalog.
func (s *DefaultProviderService) ListServices(providerID string) ([]models.Service, error) {
	return s.Repo.ListServices(providerID)
}

// UpdateService edits a catalog entry, enforcing ownership.
func (s *DefaultProviderService) UpdateService(userID string, svc models.Service) (*models.Service, error) {
	p, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetService(svc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if existing == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("service %s not found", svc.ID))
	}
	if existing.ProviderID != p.ID {
		return nil, utils.NewServiceError(utils.ErrForbidden, "service belongs to another provider")
	}

	if svc.Title != "" {
		existing.Title = svc.Title
	}
	if svc.PriceDa > 0 {
		existing.PriceDa = svc.PriceDa
	}
	if svc.DurationMin > 0 {
		existing.DurationMin = svc.DurationMin
	}
	existing.Active = svc.Active

	if err := s.Repo.UpdateService(existing); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return existing, nil
}

// DeleteService removes a catalog entry, enforcing ownership.
func (s *DefaultProviderService) DeleteService(userID, serviceID string) error {
	p, err := s.GetByUserID(userID)
	if err != nil {
		return err
	}
	existing, err := s.Repo.GetService(serviceID)
	if err != nil {
		return fmt.Errorf("failed to fetch service: %w", err)
	}
	if existing == nil {
		return utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("service %s not found", serviceID))
	}
	if existing.ProviderID != p.ID {
		return utils.NewServiceError(utils.ErrForbidden, "service belongs to another provider")
	}
	return s.Repo.DeleteService(serviceID)
}
