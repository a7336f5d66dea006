package booking

import (
	"crypto/rand"
	"fmt"
	"time"

	bookingRepo "pawhub/database/repository/booking"
	petRepo "pawhub/database/repository/pet"
	providerRepo "pawhub/database/repository/provider"
	userRepo "pawhub/database/repository/user"
	"pawhub/models"
	"pawhub/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// BookingService defines business logic for the booking lifecycle.
type BookingService interface {
	// CreateBooking books a service for the client. Price and commission are
	// frozen from the catalog entry and provider rate at this moment.
	CreateBooking(userID string, input models.BookingInput) (*models.Booking, error)
	// GetBooking retrieves a booking visible to the requester.
	GetBooking(requesterID, bookingID string) (*models.Booking, error)
	// ListMine retrieves the client's bookings.
	ListMine(userID, status string) ([]models.Booking, error)
	// ListAgenda retrieves the provider's bookings for one naive day.
	ListAgenda(proUserID, day string) ([]models.Booking, error)
	// ListProviderBookings retrieves the provider's bookings by status.
	ListProviderBookings(proUserID, status string) ([]models.Booking, error)
	// CancelBooking cancels from any non-terminal pre-completion status.
	CancelBooking(requesterID, bookingID, reason string) error

	// ConfirmSimple is the manual confirmation path: the pro vouches for the
	// client's arrival without a code.
	ConfirmSimple(proUserID, bookingID string) (*models.Booking, error)
	// ConfirmByReferenceCode confirms via the booking's human-readable code.
	ConfirmByReferenceCode(proUserID, referenceCode string) (*models.Booking, error)
	// VerifyOTP confirms via the six-digit code the client reads out.
	VerifyOTP(proUserID, bookingID, code string) (*models.Booking, error)
	// ConfirmByPetToken confirms via a scanned pet QR tag.
	ConfirmByPetToken(proUserID, token string) (*models.Booking, error)

	// CompleteByPro marks the service done from the provider's side.
	CompleteByPro(proUserID, bookingID string) (*models.Booking, error)
	// ConfirmCompletionByClient is the client's completion acknowledgement.
	ConfirmCompletionByClient(userID, bookingID string) (*models.Booking, error)

	// Sweep advances overdue bookings: confirmed ones past their end get a
	// grace period awaiting the client's acknowledgement, and bookings whose
	// grace ran out expire.
	Sweep(now time.Time) (moved, expired int, err error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
	UserRepo     userRepo.UserRepository
	PetRepo      petRepo.PetRepository
}

const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// newReferenceCode returns a human-readable booking code like "BK-7KQ2M9XC".
func newReferenceCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reference code: %w", err)
	}
	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return "BK-" + string(buf), nil
}

// CreateBooking books a service for the client.
func (s *DefaultBookingService) CreateBooking(userID string, input models.BookingInput) (*models.Booking, error) {
	usr, err := s.UserRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("user %s not found", userID))
	}
	if usr.TrustStatus == models.TrustRestricted && usr.RestrictedUntil != nil && usr.RestrictedUntil.After(time.Now()) {
		return nil, utils.NewServiceError(utils.ErrForbidden, "account is temporarily restricted from booking")
	}

	svc, err := s.ProviderRepo.GetService(input.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if svc == nil || svc.ProviderID != input.ProviderID {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("service %s not found", input.ServiceID))
	}
	if !svc.Active {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "service is no longer offered")
	}

	prov, err := s.ProviderRepo.GetByID(input.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("provider %s not found", input.ProviderID))
	}
	if prov.Approval != models.ApprovalApproved {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "provider is not approved")
	}

	scheduledAt, err := models.ParseNaive(input.ScheduledAt)
	if err != nil {
		return nil, utils.NewServiceError(utils.ErrValidation, err.Error())
	}
	if scheduledAt.Before(time.Now()) {
		return nil, utils.NewServiceError(utils.ErrValidation, "scheduled time is in the past")
	}

	for _, petID := range input.PetIDs {
		p, err := s.PetRepo.GetByID(petID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch pet: %w", err)
		}
		if p == nil || p.OwnerID != userID {
			return nil, utils.NewServiceError(utils.ErrValidation, fmt.Sprintf("pet %s does not belong to you", petID))
		}
	}

	refCode, err := newReferenceCode()
	if err != nil {
		return nil, err
	}
	otp, err := utils.GenerateBookingOTP()
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		ID:            uuid.New().String(),
		ReferenceCode: refCode,
		UserID:        userID,
		ProviderID:    prov.ID,
		ServiceID:     svc.ID,
		PetIDs:        input.PetIDs,
		Status:        models.BookingPending,
		ScheduledAt:   models.FormatNaive(scheduledAt),
		DurationMin:   svc.DurationMin,
		PriceDa:       svc.PriceDa,
		CommissionDa:  prov.CommissionForBooking(svc.DurationMin),
		OTPCode:       otp,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	utils.GetLogger().Info("Booking created",
		zap.String("bookingID", b.ID),
		zap.String("providerID", b.ProviderID),
		zap.Int("commissionDa", b.CommissionDa))
	return b, nil
}

// GetBooking retrieves a booking visible to the requester (its client or its
// provider's owner).
func (s *DefaultBookingService) GetBooking(requesterID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("booking %s not found", bookingID))
	}
	if b.UserID == requesterID {
		return b, nil
	}
	prov, err := s.ProviderRepo.GetByID(b.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov != nil && prov.UserID == requesterID {
		return b, nil
	}
	return nil, utils.NewServiceError(utils.ErrForbidden, "booking belongs to another account")
}

// ListMine retrieves the client's bookings.
func (s *DefaultBookingService) ListMine(userID, status string) ([]models.Booking, error) {
	return s.Repo.ListByClient(userID, status, 0)
}

// ListAgenda retrieves the provider's bookings for one naive day.
func (s *DefaultBookingService) ListAgenda(proUserID, day string) ([]models.Booking, error) {
	prov, err := s.providerForUser(proUserID)
	if err != nil {
		return nil, err
	}
	start, err := models.ParseNaive(day)
	if err != nil {
		return nil, utils.NewServiceError(utils.ErrValidation, err.Error())
	}
	start = start.Truncate(24 * time.Hour)
	from := models.FormatNaive(start)
	to := models.FormatNaive(start.AddDate(0, 0, 1))
	return s.Repo.ListByProviderBetween(prov.ID, from, to)
}

// ListProviderBookings retrieves the provider's bookings by status.
func (s *DefaultBookingService) ListProviderBookings(proUserID, status string) ([]models.Booking, error) {
	prov, err := s.providerForUser(proUserID)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByProvider(prov.ID, status, 0)
}

// CancelBooking cancels from any non-terminal pre-completion status. The
// caller must be the booking's client or its provider's owner.
func (s *DefaultBookingService) CancelBooking(requesterID, bookingID, reason string) error {
	b, err := s.GetBooking(requesterID, bookingID)
	if err != nil {
		return err
	}
	if !b.Cancellable() {
		return utils.NewServiceError(utils.ErrInvalidState, fmt.Sprintf("booking in status %s cannot be cancelled", b.Status))
	}

	set := bson.M{
		"status":              models.BookingCancelled,
		"cancellation_reason": reason,
	}
	ok, err := s.Repo.UpdateStatusIf(bookingID, models.CancellableStatuses, set)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NewServiceError(utils.ErrInvalidState, "booking was already finalized")
	}

	utils.GetLogger().Info("Booking cancelled",
		zap.String("bookingID", bookingID), zap.String("by", requesterID))
	return nil
}

// providerForUser resolves the provider profile owned by the PRO user.
func (s *DefaultBookingService) providerForUser(proUserID string) (*models.ProviderProfile, error) {
	prov, err := s.ProviderRepo.GetByUserID(proUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, utils.NewServiceError(utils.ErrForbidden, "no provider profile for this user")
	}
	return prov, nil
}
