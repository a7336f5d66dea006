package booking

import (
	"time"

	"pawhub/config"
	"pawhub/models"
	"pawhub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Sweep advances overdue bookings in two passes.
//
// Pass one: CONFIRMED bookings whose scheduled end lies more than the
// configured number of hours in the past move to AWAITING_CONFIRMATION with a
// grace deadline, giving the client a window to acknowledge the service.
//
// Pass two: AWAITING_CONFIRMATION bookings whose grace deadline has passed
// become EXPIRED. Expired bookings never count toward the provider's earnings.
func (s *DefaultBookingService) Sweep(now time.Time) (moved, expired int, err error) {
	graceAfterEnd := time.Duration(config.AppConfig.GraceAfterEndHours) * time.Hour
	gracePeriod := time.Duration(config.AppConfig.GracePeriodDays) * 24 * time.Hour

	// Any booking whose end passed the threshold started before this cutoff,
	// so the query is a superset; the duration check below is exact.
	cutoff := models.FormatNaive(now.Add(-graceAfterEnd))
	candidates, err := s.Repo.ListByStatusScheduledBefore(models.BookingConfirmed, cutoff)
	if err != nil {
		return 0, 0, err
	}
	for _, b := range candidates {
		scheduledAt, perr := models.ParseNaive(b.ScheduledAt)
		if perr != nil {
			utils.GetLogger().Error("Booking has invalid schedule", zap.String("bookingID", b.ID), zap.Error(perr))
			continue
		}
		end := scheduledAt.Add(time.Duration(b.DurationMin) * time.Minute)
		if now.Before(end.Add(graceAfterEnd)) {
			continue
		}

		set := bson.M{
			"status":               models.BookingAwaitingConfirm,
			"grace_period_ends_at": now.Add(gracePeriod),
		}
		ok, uerr := s.Repo.UpdateStatusIf(b.ID, []string{models.BookingConfirmed}, set)
		if uerr != nil {
			utils.GetLogger().Error("Failed to move booking to awaiting confirmation", zap.String("bookingID", b.ID), zap.Error(uerr))
			continue
		}
		if ok {
			moved++
		}
	}

	overdue, err := s.Repo.ListGraceExpired(now)
	if err != nil {
		return moved, 0, err
	}
	for _, b := range overdue {
		set := bson.M{"status": models.BookingExpired}
		ok, uerr := s.Repo.UpdateStatusIf(b.ID, []string{models.BookingAwaitingConfirm}, set)
		if uerr != nil {
			utils.GetLogger().Error("Failed to expire booking", zap.String("bookingID", b.ID), zap.Error(uerr))
			continue
		}
		if ok {
			expired++
		}
	}

	if moved > 0 || expired > 0 {
		utils.GetLogger().Info("Booking sweep finished",
			zap.Int("movedToAwaiting", moved), zap.Int("expired", expired))
	}
	return moved, expired, nil
}
