package models

import "time"

// Sanction types. Every admin disciplinary action appends one of these rows;
// the rows themselves are immutable.
const (
	SanctionWarning    = "WARNING"
	SanctionSuspension = "SUSPENSION"
	SanctionBan        = "BAN"
	SanctionUnban      = "UNBAN"
	SanctionLift       = "LIFT"
)

// UserSanction is an append-only audit record of an admin action against a
// user.
type UserSanction struct {
	ID           string            `bson:"id" json:"id"`
	UserID       string            `bson:"user_id" json:"userId"`
	Type         string            `bson:"type" json:"type"`
	Reason       string            `bson:"reason" json:"reason"`
	DurationDays int               `bson:"duration_days,omitempty" json:"durationDays,omitempty"`
	ExpiresAt    *time.Time        `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	IssuedBy     string            `bson:"issued_by" json:"issuedBy"`
	IssuedAt     time.Time         `bson:"issued_at" json:"issuedAt"`
	Metadata     map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// SanctionWithAdmin decorates a sanction with the issuing admin's identity
// for the dashboard.
type SanctionWithAdmin struct {
	UserSanction
	IssuedByAdmin *User `json:"issuedByAdmin,omitempty"`
}

// AccessCheck is the middleware-facing ban/suspension verdict.
type AccessCheck struct {
	Allowed bool       `json:"allowed"`
	Reason  string     `json:"reason,omitempty"`
	Until   *time.Time `json:"until,omitempty"`
}
