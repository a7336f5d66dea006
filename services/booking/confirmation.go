package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawhub/config"
	"pawhub/models"
	"pawhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// qrEarlyWindow is how long before the scheduled start a pet QR scan already
// counts as arrival.
const qrEarlyWindow = time.Hour

// confirm transitions the booking to CONFIRMED through the given method. The
// conditional update makes every confirmation once-only: a second attempt
// finds the booking outside the confirmable statuses and fails.
func (s *DefaultBookingService) confirm(b *models.Booking, method string) (*models.Booking, error) {
	if !b.Confirmable() {
		return nil, utils.NewServiceError(utils.ErrInvalidState, fmt.Sprintf("booking in status %s cannot be confirmed", b.Status))
	}

	now := time.Now()
	set := bson.M{
		"status":              models.BookingConfirmed,
		"confirmation_method": method,
		"pro_confirmed_at":    now,
	}
	ok, err := s.Repo.UpdateStatusIf(b.ID, models.ConfirmableStatuses, set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "booking was already confirmed or cancelled")
	}

	b.Status = models.BookingConfirmed
	b.ConfirmationMethod = method
	b.ProConfirmedAt = &now

	utils.GetLogger().Info("Booking confirmed",
		zap.String("bookingID", b.ID), zap.String("method", method))
	return b, nil
}

// bookingForProvider loads the booking and checks it belongs to the PRO
// user's provider profile.
func (s *DefaultBookingService) bookingForProvider(proUserID, bookingID string) (*models.Booking, *models.ProviderProfile, error) {
	prov, err := s.providerForUser(proUserID)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("booking %s not found", bookingID))
	}
	if b.ProviderID != prov.ID {
		return nil, nil, utils.NewServiceError(utils.ErrForbidden, "booking belongs to another provider")
	}
	return b, prov, nil
}

// ConfirmSimple is the manual confirmation path.
func (s *DefaultBookingService) ConfirmSimple(proUserID, bookingID string) (*models.Booking, error) {
	b, _, err := s.bookingForProvider(proUserID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.confirm(b, models.ConfirmSimple)
}

// ConfirmByReferenceCode confirms via the booking's human-readable code.
func (s *DefaultBookingService) ConfirmByReferenceCode(proUserID, referenceCode string) (*models.Booking, error) {
	b, err := s.Repo.GetByReferenceCode(referenceCode)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("no booking with reference %s", referenceCode))
	}
	prov, err := s.providerForUser(proUserID)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != prov.ID {
		return nil, utils.NewServiceError(utils.ErrForbidden, "booking belongs to another provider")
	}
	return s.confirm(b, models.ConfirmSimple)
}

// VerifyOTP confirms via the six-digit code the client reads out. Three wrong
// codes inside fifteen minutes lock the booking out until the window passes.
func (s *DefaultBookingService) VerifyOTP(proUserID, bookingID, code string) (*models.Booking, error) {
	b, _, err := s.bookingForProvider(proUserID, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Confirmable() {
		return nil, utils.NewServiceError(utils.ErrInvalidState, fmt.Sprintf("booking in status %s cannot be confirmed", b.Status))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	locked, err := utils.OTPAttemptsExceeded(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, utils.NewServiceError(utils.ErrForbidden, "too many failed codes, try again later")
	}

	if code == "" || code != b.OTPCode {
		if err := utils.RegisterOTPAttempt(ctx, b.ID); err != nil {
			if errors.Is(err, utils.ErrOTPAttemptsExceeded) {
				utils.GetLogger().Warn("OTP attempt limit reached", zap.String("bookingID", b.ID))
			} else {
				utils.GetLogger().Error("Failed to register OTP attempt", zap.Error(err), zap.String("bookingID", b.ID))
			}
		}
		return nil, utils.NewServiceError(utils.ErrValidation, "incorrect confirmation code")
	}

	confirmed, err := s.confirm(b, models.ConfirmOTP)
	if err != nil {
		return nil, err
	}
	utils.ClearOTPAttempts(ctx, b.ID)
	return confirmed, nil
}

// ConfirmByPetToken confirms via a scanned pet QR tag. The tag resolves to
// the pet's next confirmable booking at this provider; the scan only counts
// near the scheduled window, so a stray scan weeks later confirms nothing.
func (s *DefaultBookingService) ConfirmByPetToken(proUserID, token string) (*models.Booking, error) {
	petID, _, err := utils.ParsePetToken(token)
	if err != nil {
		return nil, utils.NewServiceError(utils.ErrValidation, "invalid pet tag")
	}

	prov, err := s.providerForUser(proUserID)
	if err != nil {
		return nil, err
	}

	b, err := s.Repo.FindActiveForPet(prov.ID, petID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, "no active booking for this pet here")
	}

	scheduledAt, err := models.ParseNaive(b.ScheduledAt)
	if err != nil {
		return nil, fmt.Errorf("stored booking has invalid schedule: %w", err)
	}
	end := scheduledAt.Add(time.Duration(b.DurationMin) * time.Minute)
	graceEnd := end.Add(time.Duration(config.AppConfig.GraceAfterEndHours) * time.Hour)
	now := time.Now()
	if now.Before(scheduledAt.Add(-qrEarlyWindow)) || now.After(graceEnd) {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "booking is outside its confirmation window")
	}

	return s.confirm(b, models.ConfirmQRScan)
}

// CompleteByPro marks the service done from the provider's side. Completions
// the client never acknowledges show up in the fraud analysis as ghost
// completions.
func (s *DefaultBookingService) CompleteByPro(proUserID, bookingID string) (*models.Booking, error) {
	b, _, err := s.bookingForProvider(proUserID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingConfirmed && b.Status != models.BookingAwaitingConfirm {
		return nil, utils.NewServiceError(utils.ErrInvalidState, fmt.Sprintf("booking in status %s cannot be completed", b.Status))
	}

	now := time.Now()
	set := bson.M{
		"status":           models.BookingCompleted,
		"pro_confirmed_at": now,
	}
	from := []string{models.BookingConfirmed, models.BookingAwaitingConfirm}
	ok, err := s.Repo.UpdateStatusIf(bookingID, from, set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "booking was already finalized")
	}

	b.Status = models.BookingCompleted
	b.ProConfirmedAt = &now
	return b, nil
}

// ConfirmCompletionByClient is the client's completion acknowledgement. A
// first completed booking graduates a NEW account to VERIFIED.
func (s *DefaultBookingService) ConfirmCompletionByClient(userID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if b == nil {
		return nil, utils.NewServiceError(utils.ErrNotFound, fmt.Sprintf("booking %s not found", bookingID))
	}
	if b.UserID != userID {
		return nil, utils.NewServiceError(utils.ErrForbidden, "booking belongs to another account")
	}
	if b.Status != models.BookingConfirmed && b.Status != models.BookingAwaitingConfirm && b.Status != models.BookingCompleted {
		return nil, utils.NewServiceError(utils.ErrInvalidState, fmt.Sprintf("booking in status %s cannot be acknowledged", b.Status))
	}

	now := time.Now()
	set := bson.M{
		"status":              models.BookingCompleted,
		"client_confirmed_at": now,
	}
	from := []string{models.BookingConfirmed, models.BookingAwaitingConfirm, models.BookingCompleted}
	ok, err := s.Repo.UpdateStatusIf(bookingID, from, set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, utils.NewServiceError(utils.ErrInvalidState, "booking was already finalized")
	}

	b.Status = models.BookingCompleted
	b.ClientConfirmedAt = &now

	usr, err := s.UserRepo.GetByID(userID)
	if err == nil && usr != nil && usr.TrustStatus == models.TrustNew {
		if err := s.UserRepo.UpdateSetDocument(userID, bson.M{"trust_status": models.TrustVerified}); err != nil {
			utils.GetLogger().Error("Failed to graduate trust status", zap.Error(err), zap.String("userID", userID))
		}
	}
	return b, nil
}
