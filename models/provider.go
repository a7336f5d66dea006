package models

import "time"

// ProviderKind discriminates the three professional profiles. It replaces the
// loosely-typed specialties blob the mobile client used to carry: commission
// dispatch switches on this value and nothing else.
type ProviderKind string

const (
	KindVet     ProviderKind = "VET"
	KindDaycare ProviderKind = "DAYCARE"
	KindPetshop ProviderKind = "PETSHOP"
)

// Valid reports whether k is one of the three known kinds.
func (k ProviderKind) Valid() bool {
	switch k {
	case KindVet, KindDaycare, KindPetshop:
		return true
	}
	return false
}

// Provider approval statuses.
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// CommissionConfig holds the platform's cut per provider, set by admins.
// Amounts are whole Algerian dinars; the petshop rate is a percentage and is
// currently not applied anywhere (petshop commission is still to be defined).
type CommissionConfig struct {
	VetPerBookingDa int `bson:"vet_per_booking_da" json:"vetCommissionDa"`
	DaycareHourlyDa int `bson:"daycare_hourly_da" json:"daycareHourlyCommissionDa"`
	DaycareDailyDa  int `bson:"daycare_daily_da" json:"daycareDailyCommissionDa"`
	PetshopPercent  int `bson:"petshop_percent" json:"petshopCommissionPercent"`
}

// ProviderProfile is the professional profile attached 1:1 to a PRO user.
type ProviderProfile struct {
	ID          string       `bson:"id" json:"id"`
	UserID      string       `bson:"user_id" json:"userId"`
	DisplayName string       `bson:"display_name" json:"displayName"`
	Bio         string       `bson:"bio,omitempty" json:"bio,omitempty"`
	Address     string       `bson:"address,omitempty" json:"address,omitempty"`
	Lat         *float64     `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng         *float64     `bson:"lng,omitempty" json:"lng,omitempty"`
	Kind        ProviderKind `bson:"kind" json:"kind"`
	Approval    string       `bson:"approval" json:"approval"`

	Commission CommissionConfig `bson:"commission" json:"commission"`

	AppliedAt time.Time `bson:"applied_at" json:"appliedAt"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CommissionForBooking returns the platform commission for a single booking
// of the given duration, dispatched on the provider kind.
//
// Vets owe a fixed amount per completed booking. Daycares owe an hourly rate
// for stays under a day and a daily rate otherwise. Petshop commission is
// percentage-based and not yet charged on bookings.
func (p *ProviderProfile) CommissionForBooking(durationMin int) int {
	switch p.Kind {
	case KindVet:
		return p.Commission.VetPerBookingDa
	case KindDaycare:
		if durationMin <= 0 {
			return 0
		}
		const minutesPerDay = 24 * 60
		if durationMin < minutesPerDay {
			hours := (durationMin + 59) / 60
			return hours * p.Commission.DaycareHourlyDa
		}
		days := (durationMin + minutesPerDay - 1) / minutesPerDay
		return days * p.Commission.DaycareDailyDa
	case KindPetshop:
		return 0
	}
	return 0
}

// ProviderListFilter carries the admin provider listing filters.
type ProviderListFilter struct {
	Query    string
	Approval string
	Kind     ProviderKind
	Limit    int64
	Offset   int64
}

// CommissionUpdate is the admin commission edit payload; nil fields are left
// untouched.
type CommissionUpdate struct {
	VetPerBookingDa *int `json:"vetCommissionDa"`
	DaycareHourlyDa *int `json:"daycareHourlyCommissionDa"`
	DaycareDailyDa  *int `json:"daycareDailyCommissionDa"`
	PetshopPercent  *int `json:"petshopCommissionPercent"`
}
