package models

import "time"

// MonthlyEarnings is the derived ledger row for one provider-month. It is
// computed on read from completed bookings joined with the provider's
// collection record; nothing here is persisted as-is.
type MonthlyEarnings struct {
	ProviderID   string `json:"providerId"`
	Month        string `json:"month"`
	BookingCount int    `json:"bookingCount"`

	Counts StatusCounts `json:"counts"`

	TotalAmountDa     int  `json:"totalAmount"`
	TotalCommissionDa int  `json:"totalCommission"`
	NetAmountDa       int  `json:"netAmount"`
	CollectedDa       int  `json:"collectedAmount"`
	RemainingDa       int  `json:"remaining"`
	Collected         bool `json:"collected"`
}

// CollectionRecord is the persisted "collected so far" amount for one
// provider-month, unique on (provider_id, month).
type CollectionRecord struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"provider_id" json:"providerId"`
	Month      string    `bson:"month" json:"month"`
	AmountDa   int       `bson:"amount_da" json:"amountDa"`
	Note       string    `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedBy  string    `bson:"updated_by" json:"updatedBy"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// Collection adjustment operations.
const (
	AdjustSet        = "SET"
	AdjustAdd        = "ADD"
	AdjustSubtract   = "SUBTRACT"
	AdjustCollectAll = "COLLECT_ALL"
	AdjustUncollect  = "UNCOLLECT"
)

// CollectionAdjustment is an append-only audit event written alongside every
// collection mutation, so the current amount is foldable from history.
type CollectionAdjustment struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"provider_id" json:"providerId"`
	Month       string    `bson:"month" json:"month"`
	Op          string    `bson:"op" json:"op"`
	AmountDa    int       `bson:"amount_da" json:"amountDa"`
	ResultingDa int       `bson:"resulting_da" json:"resultingDa"`
	Note        string    `bson:"note,omitempty" json:"note,omitempty"`
	AdminID     string    `bson:"admin_id" json:"adminId"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// GlobalStats aggregates the ledger across all providers of one kind.
type GlobalStats struct {
	Kind              ProviderKind `json:"kind"`
	Month             string       `json:"month"`
	Providers         int          `json:"providers"`
	TotalBookings     int          `json:"totalBookings"`
	CompletedBookings int          `json:"completedBookings"`
	TotalCommissionDa int          `json:"totalCommission"`
	CollectedDa       int          `json:"totalCollected"`
	RemainingDa       int          `json:"totalRemaining"`
}

// ArrearsReport is the read-only rollup of unpaid commission over all months
// strictly before the current one. Recomputed on every fetch, never stored.
type ArrearsReport struct {
	ProviderID string            `json:"providerId"`
	ArrearsDa  int               `json:"arrears"`
	Months     []MonthlyEarnings `json:"months"`
}
