package models

import "time"

// Booking statuses. PENDING_PRO_VALIDATION and AWAITING_CONFIRMATION are
// pre-confirmation sub-states used for client badging; they follow the same
// transition rules as PENDING.
const (
	BookingPending         = "PENDING"
	BookingPendingProCheck = "PENDING_PRO_VALIDATION"
	BookingAwaitingConfirm = "AWAITING_CONFIRMATION"
	BookingConfirmed       = "CONFIRMED"
	BookingCompleted       = "COMPLETED"
	BookingCancelled       = "CANCELLED"
	BookingExpired         = "EXPIRED"
)

// Confirmation methods recorded on a booking.
const (
	ConfirmSimple = "SIMPLE"
	ConfirmOTP    = "OTP"
	ConfirmQRScan = "QR_SCAN"
)

// Booking links a pet owner to a provider's service at a scheduled time.
// ScheduledAt is naive local wall-clock time (see NaiveLayout); PriceDa and
// CommissionDa are frozen from the service and provider rate at creation and
// never recomputed, even if the provider's rate changes later.
type Booking struct {
	ID            string   `bson:"id" json:"id"`
	ReferenceCode string   `bson:"reference_code" json:"referenceCode"`
	UserID        string   `bson:"user_id" json:"userId"`
	ProviderID    string   `bson:"provider_id" json:"providerId"`
	ServiceID     string   `bson:"service_id" json:"serviceId"`
	PetIDs        []string `bson:"pet_ids,omitempty" json:"petIds,omitempty"`

	Status      string `bson:"status" json:"status"`
	ScheduledAt string `bson:"scheduled_at" json:"scheduledAt"`
	DurationMin int    `bson:"duration_min" json:"durationMin"`

	PriceDa      int `bson:"price_da" json:"priceDa"`
	CommissionDa int `bson:"commission_da" json:"commissionDa"`

	// Six-digit confirmation code shown to the owner; the pro types it back.
	OTPCode string `bson:"otp_code,omitempty" json:"-"`

	ConfirmationMethod string     `bson:"confirmation_method,omitempty" json:"confirmationMethod,omitempty"`
	ClientConfirmedAt  *time.Time `bson:"client_confirmed_at,omitempty" json:"clientConfirmedAt,omitempty"`
	ProConfirmedAt     *time.Time `bson:"pro_confirmed_at,omitempty" json:"proConfirmedAt,omitempty"`
	GracePeriodEndsAt  *time.Time `bson:"grace_period_ends_at,omitempty" json:"gracePeriodEndsAt,omitempty"`
	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ConfirmableStatuses are the statuses from which a booking may move to
// CONFIRMED, whichever confirmation path is taken.
var ConfirmableStatuses = []string{BookingPending, BookingPendingProCheck, BookingAwaitingConfirm}

// CancellableStatuses are the statuses from which a booking may be cancelled.
var CancellableStatuses = []string{BookingPending, BookingPendingProCheck, BookingAwaitingConfirm, BookingConfirmed}

// Confirmable reports whether the booking can still be confirmed.
func (b *Booking) Confirmable() bool {
	return statusIn(b.Status, ConfirmableStatuses)
}

// Cancellable reports whether the booking can still be cancelled. COMPLETED
// and CANCELLED are terminal; a booking never leaves either.
func (b *Booking) Cancellable() bool {
	return statusIn(b.Status, CancellableStatuses)
}

func statusIn(status string, set []string) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// StatusCounts aggregates bookings per status for a provider-month.
type StatusCounts struct {
	Pending   int `bson:"pending" json:"pending"`
	Confirmed int `bson:"confirmed" json:"confirmed"`
	Completed int `bson:"completed" json:"completed"`
	Cancelled int `bson:"cancelled" json:"cancelled"`
	Expired   int `bson:"expired" json:"expired"`
}

// BookingInput is the creation payload.
type BookingInput struct {
	ProviderID  string   `json:"providerId" binding:"required"`
	ServiceID   string   `json:"serviceId" binding:"required"`
	PetIDs      []string `json:"petIds"`
	ScheduledAt string   `json:"scheduledAt" binding:"required"`
}
