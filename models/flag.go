package models

import "time"

// Flag categories.
const (
	FlagCategoryUser = "user"
	FlagCategoryPro  = "pro"
)

// Flag types: the closed set of suspicion markers admins and the heuristic
// analysis can attach to an account.
const (
	// User-side flags.
	FlagUserNoShowRepeat   = "USER_NO_SHOW_REPEAT"
	FlagUserLateCancels    = "USER_LATE_CANCELS"
	FlagUserHighCancelRate = "USER_HIGH_CANCEL_RATE"
	FlagUserBookingDispute = "BOOKING_DISPUTE"
	FlagUserPaymentIssue   = "USER_PAYMENT_ISSUE"
	FlagUserAbusiveContent = "USER_ABUSIVE_CONTENT"
	FlagUserFakeAdoptPost  = "USER_FAKE_ADOPT_POST"
	FlagUserSpamMessages   = "USER_SPAM_MESSAGES"
	FlagUserIdentityDoubt  = "USER_IDENTITY_DOUBT"

	// Provider-side flags.
	FlagProHighCancelRate    = "PRO_HIGH_CANCEL_RATE"
	FlagProLowCompletionRate = "PRO_LOW_COMPLETION_RATE"
	FlagProGhostCompletions  = "PRO_GHOST_COMPLETIONS"
	FlagProDisputeCluster    = "PRO_DISPUTE_CLUSTER"
	FlagProPriceManipulation = "PRO_PRICE_MANIPULATION"
	FlagProUnpaidCommission  = "PRO_UNPAID_COMMISSION"
	FlagProFakeReviews       = "PRO_FAKE_REVIEWS"
	FlagProProfileMismatch   = "PRO_PROFILE_MISMATCH"
)

// FlagCategoryOf maps a flag type to its category; unknown types default to
// the user category.
func FlagCategoryOf(flagType string) string {
	switch flagType {
	case FlagProHighCancelRate, FlagProLowCompletionRate, FlagProGhostCompletions,
		FlagProDisputeCluster, FlagProPriceManipulation, FlagProUnpaidCommission,
		FlagProFakeReviews, FlagProProfileMismatch:
		return FlagCategoryPro
	}
	return FlagCategoryUser
}

// AdminFlag is a resolvable suspicion marker on a user or provider account.
type AdminFlag struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Type      string    `bson:"type" json:"type"`
	Category  string    `bson:"category" json:"category"`
	BookingID string    `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	Resolved  bool      `bson:"resolved" json:"resolved"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// FlagListFilter carries the flag listing filters.
type FlagListFilter struct {
	Resolved *bool
	Type     string
	UserID   string
	Limit    int64
}

// FlagStats summarises open versus resolved flags.
type FlagStats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Resolved int            `json:"resolved"`
	ByType   map[string]int `json:"byType"`
}

// AnalysisCategoryReport is the per-category outcome of a heuristic scan.
type AnalysisCategoryReport struct {
	Analyzed int         `json:"analyzed"`
	Flagged  int         `json:"flagged"`
	Flags    []AdminFlag `json:"flags"`
}

// AnalysisReport is returned by the on-demand fraud analysis; it summarises
// what was scanned rather than echoing every existing flag.
type AnalysisReport struct {
	Providers AnalysisCategoryReport `json:"providers"`
	Users     AnalysisCategoryReport `json:"users"`
	RanAt     time.Time              `json:"ranAt"`
}
