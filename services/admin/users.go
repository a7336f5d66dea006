package admin

import (
	"fmt"
	"time"

	bookingRepo "pawhub/database/repository/booking"
	flagRepo "pawhub/database/repository/flag"
	petRepo "pawhub/database/repository/pet"
	providerRepo "pawhub/database/repository/provider"
	recordsRepo "pawhub/database/repository/records"
	sanctionRepo "pawhub/database/repository/sanction"
	userRepo "pawhub/database/repository/user"
	"pawhub/models"
	"pawhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// AdminService defines the back-office operations: user management, the
// disciplinary system, flags and the heuristic fraud analysis.
type AdminService interface {
	// ListUsers retrieves users matching the filter.
	ListUsers(filter models.UserListFilter) ([]models.User, int64, error)
	// FullProfile aggregates everything the dashboard shows about one user.
	FullProfile(userID string) (*UserProfile, error)
	// UpdateUser applies an admin profile edit.
	UpdateUser(userID string, upd models.UserUpdate) (*models.User, error)
	// CheckAccess returns the ban/suspension verdict for a user, lazily
	// clearing suspensions that have run out.
	CheckAccess(userID string) (*models.AccessCheck, error)

	// Warn appends a warning to the user's record.
	Warn(adminID, userID, reason string) (*models.UserSanction, error)
	// Suspend blocks the user for a number of days.
	Suspend(adminID, userID, reason string, days int) (*models.UserSanction, error)
	// Ban permanently blocks the user. Admin accounts cannot be banned;
	// banning clears any active suspension.
	Ban(adminID, userID, reason string) (*models.UserSanction, error)
	// Unban reverses a ban.
	Unban(adminID, userID, reason string) (*models.UserSanction, error)
	// LiftSuspension ends an active suspension early.
	LiftSuspension(adminID, userID, reason string) (*models.UserSanction, error)
	// SanctionHistory lists a user's sanctions with issuing admin identities.
	SanctionHistory(userID string) ([]models.SanctionWithAdmin, error)

	// CreateFlag attaches a manual flag to an account.
	CreateFlag(userID, flagType, bookingID, note string) (*models.AdminFlag, error)
	// ListFlags retrieves flags matching the filter.
	ListFlags(filter models.FlagListFilter) ([]models.AdminFlag, error)
	// ResolveFlag marks a flag handled; a non-empty note replaces the stored one.
	ResolveFlag(flagID, note string) error
	// UnresolveFlag reopens a resolved flag.
	UnresolveFlag(flagID string) error
	// DeleteFlag removes a flag outright.
	DeleteFlag(flagID string) error
	// FlagStats aggregates flag counts.
	FlagStats() (*models.FlagStats, error)

	// RunAnalysis scans providers and users against the configured
	// thresholds and files flags for what it finds.
	RunAnalysis() (*models.AnalysisReport, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	UserRepo     userRepo.UserRepository
	ProviderRepo providerRepo.ProviderRepository
	BookingRepo  bookingRepo.BookingRepository
	PetRepo      petRepo.PetRepository
	SanctionRepo sanctionRepo.SanctionRepository
	FlagRepo     flagRepo.FlagRepository
	RecordsRepo  recordsRepo.RecordsRepository
}

// UserProfile is the dashboard's aggregated view of one account.
type UserProfile struct {
	User       models.User             `json:"user"`
	Provider   *models.ProviderProfile `json:"provider,omitempty"`
	Pets       []models.Pet            `json:"pets"`
	Bookings   []models.Booking        `json:"bookings"`
	Sanctions  []models.UserSanction   `json:"sanctions"`
	Flags      []models.AdminFlag      `json:"flags"`
	Orders     []models.Order          `json:"orders"`
	AdoptPosts []models.AdoptPost      `json:"adoptPosts"`
}

// ListUsers retrieves users matching the filter.
func (s *DefaultAdminService) ListUsers(filter models.UserListFilter) ([]models.User, int64, error) {
	return s.UserRepo.List(filter)
}

// getUser loads a user or returns a not-found service error.
func (s *DefaultAdminService) getUser(userID string) (*models.User, error) {
	usr, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("user %s not found", userID))
	}
	return usr, nil
}

// FullProfile aggregates everything the dashboard shows about one user.
// Secondary lookups degrade to empty sections rather than failing the whole
// view.
func (s *DefaultAdminService) FullProfile(userID string) (*UserProfile, error) {
	usr, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{User: *usr}
	logger := utils.GetLogger()

	if prov, err := s.ProviderRepo.GetByUserID(userID); err != nil {
		logger.Error("Failed to load provider section", zap.Error(err), zap.String("userID", userID))
	} else {
		profile.Provider = prov
	}
	if pets, err := s.PetRepo.ListByOwner(userID); err != nil {
		logger.Error("Failed to load pets section", zap.Error(err), zap.String("userID", userID))
	} else {
		profile.Pets = pets
	}
	if bookings, err := s.BookingRepo.ListByClient(userID, "", 50); err != nil {
		logger.Error("Failed to load bookings section", zap.Error(err), zap.String("userID", userID))
	} else {
		profile.Bookings = bookings
	}
	if sanctions, err := s.SanctionRepo.ListByUser(userID); err != nil {
		logger.Error("Failed to load sanctions section", zap.Error(err), zap.String("userID", userID))
	} else {
		profile.Sanctions = sanctions
	}
	if flags, err := s.FlagRepo.ListByUser(userID); err != nil {
		logger.Error("Failed to load flags section", zap.Error(err), zap.String("userID", userID))
	} else {
		profile.Flags = flags
	}
	if orders, err := s.RecordsRepo.ListOrdersByUser(userID); err != nil {
		logger.Error("Failed to load orders section", zap.Error(err), zap.String("userID", userID))
	} else {
		profile.Orders = orders
	}
	if posts, err := s.RecordsRepo.ListAdoptPostsByUser(userID); err != nil {
		logger.Error("Failed to load adopt posts section", zap.Error(err), zap.String("userID", userID))
	} else {
		profile.AdoptPosts = posts
	}
	return profile, nil
}

// UpdateUser applies an admin profile edit.
func (s *DefaultAdminService) UpdateUser(userID string, upd models.UserUpdate) (*models.User, error) {
	usr, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if upd.Email != "" && upd.Email != usr.Email {
		existing, err := s.UserRepo.GetByEmail(upd.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing user: %w", err)
		}
		if existing != nil {
			return nil, utils.NewServiceError(utils.ErrConflict, fmt.Sprintf("email %s is already in use", upd.Email))
		}
		usr.Email = upd.Email
	}
	if upd.FirstName != "" {
		usr.FirstName = upd.FirstName
	}
	if upd.LastName != "" {
		usr.LastName = upd.LastName
	}
	if upd.Phone != "" {
		usr.Phone = upd.Phone
	}
	if upd.City != "" {
		usr.City = upd.City
	}

	if err := s.UserRepo.Update(usr); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return usr, nil
}

// CheckAccess returns the ban/suspension verdict for a user. Suspensions are
// not cleared by any scheduled job: the first access check after the deadline
// lazily resets the field.
func (s *DefaultAdminService) CheckAccess(userID string) (*models.AccessCheck, error) {
	usr, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if usr.IsBanned {
		return &models.AccessCheck{Allowed: false, Reason: usr.BannedReason}, nil
	}
	if usr.SuspendedUntil != nil {
		if usr.SuspendedUntil.After(time.Now()) {
			return &models.AccessCheck{Allowed: false, Reason: "account suspended", Until: usr.SuspendedUntil}, nil
		}
		if err := s.UserRepo.UpdateSetDocument(userID, bson.M{"suspended_until": nil}); err != nil {
			utils.GetLogger().Error("Failed to clear expired suspension", zap.Error(err), zap.String("userID", userID))
		}
	}
	return &models.AccessCheck{Allowed: true}, nil
}
