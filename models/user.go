package models

import "time"

// User roles.
const (
	RoleUser  = "USER"
	RolePro   = "PRO"
	RoleAdmin = "ADMIN"
)

// Trust statuses. NEW users graduate to VERIFIED after their first completed
// booking; repeated no-shows demote them to RESTRICTED for a while.
const (
	TrustNew        = "NEW"
	TrustVerified   = "VERIFIED"
	TrustRestricted = "RESTRICTED"
)

// User represents a platform account (pet owner, professional or admin).
type User struct {
	ID           string `bson:"id" json:"id"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password_hash" json:"-"`
	FirstName    string `bson:"first_name" json:"firstName"`
	LastName     string `bson:"last_name" json:"lastName"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	City         string `bson:"city,omitempty" json:"city,omitempty"`
	Role         string `bson:"role" json:"role"`

	TrustStatus     string     `bson:"trust_status" json:"trustStatus"`
	NoShowCount     int        `bson:"no_show_count" json:"noShowCount"`
	RestrictedUntil *time.Time `bson:"restricted_until,omitempty" json:"restrictedUntil,omitempty"`

	// Admin sanction state. A banned user can never also be suspended:
	// banning clears suspended_until.
	IsBanned       bool       `bson:"is_banned" json:"isBanned"`
	BannedAt       *time.Time `bson:"banned_at,omitempty" json:"bannedAt,omitempty"`
	BannedReason   string     `bson:"banned_reason,omitempty" json:"bannedReason,omitempty"`
	BannedBy       string     `bson:"banned_by,omitempty" json:"bannedBy,omitempty"`
	SuspendedUntil *time.Time `bson:"suspended_until,omitempty" json:"suspendedUntil,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DisplayName joins first and last name, falling back to "Client".
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return "Client"
	}
	return name
}

// UserListFilter carries the admin user listing filters.
type UserListFilter struct {
	Query       string
	Role        string
	IsBanned    *bool
	TrustStatus string
	Limit       int64
	Offset      int64
}

// UserRegistration is the signup payload.
type UserRegistration struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
}

// UserUpdate is the admin profile edit payload. Zero-value fields are left
// untouched.
type UserUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
}
