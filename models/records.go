package models

import "time"

// AdoptPost statuses.
const (
	AdoptPending  = "PENDING"
	AdoptApproved = "APPROVED"
	AdoptRejected = "REJECTED"
	AdoptAdopted  = "ADOPTED"
)

// AdoptPost is an adoption-board listing. Kept light: the admin dashboard
// only aggregates these into the user's full profile.
type AdoptPost struct {
	ID         string    `bson:"id" json:"id"`
	CreatedBy  string    `bson:"created_by" json:"createdById"`
	AnimalName string    `bson:"animal_name" json:"animalName"`
	Species    string    `bson:"species" json:"species"`
	City       string    `bson:"city,omitempty" json:"city,omitempty"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Order statuses.
const (
	OrderPlaced    = "PLACED"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// Order is a petshop purchase. Petshop commission is still to be defined, so
// orders only feed the admin profile aggregation and global stats.
type Order struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"user_id" json:"userId"`
	ProviderID string    `bson:"provider_id" json:"providerId"`
	TotalDa    int       `bson:"total_da" json:"totalDa"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}
