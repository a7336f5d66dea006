package bookingRepo

import (
	"time"

	"pawhub/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID; nil when absent.
	GetByID(id string) (*models.Booking, error)
	// GetByReferenceCode retrieves a booking by its human-readable code.
	GetByReferenceCode(code string) (*models.Booking, error)
	// Create inserts a new booking.
	Create(b *models.Booking) error
	// Update modifies an existing booking.
	Update(b *models.Booking) error
	// UpdateStatusIf atomically applies set to the booking only while its
	// status is one of fromStatuses. Returns false when the booking had
	// already left those statuses (or does not exist).
	UpdateStatusIf(id string, fromStatuses []string, set bson.M) (bool, error)

	// ListByClient retrieves a client's bookings, newest schedule first.
	ListByClient(userID, status string, limit int64) ([]models.Booking, error)
	// ListByProvider retrieves a provider's bookings, newest schedule first.
	ListByProvider(providerID, status string, limit int64) ([]models.Booking, error)
	// ListByProviderBetween retrieves a provider's bookings scheduled in the
	// naive wall-clock range [from, to).
	ListByProviderBetween(providerID, from, to string) ([]models.Booking, error)
	// ListByClientBetween retrieves a client's bookings scheduled in [from, to).
	ListByClientBetween(userID, from, to string) ([]models.Booking, error)

	// FindActiveForPet retrieves the next confirmable booking at the given
	// provider that includes the pet; nil when there is none.
	FindActiveForPet(providerID, petID string) (*models.Booking, error)
	// ListByStatusScheduledBefore retrieves bookings in status scheduled
	// strictly before the naive cutoff, for the lifecycle sweep.
	ListByStatusScheduledBefore(status, cutoff string) ([]models.Booking, error)
	// ListGraceExpired retrieves AWAITING_CONFIRMATION bookings whose grace
	// period ended before now.
	ListGraceExpired(now time.Time) ([]models.Booking, error)
}
