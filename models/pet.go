package models

import "time"

// Pet belongs to a user; its ID rides inside the QR confirmation token that
// vets scan at the clinic.
type Pet struct {
	ID        string    `bson:"id" json:"id"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	Name      string    `bson:"name" json:"name"`
	Species   string    `bson:"species" json:"species"`
	Breed     string    `bson:"breed,omitempty" json:"breed,omitempty"`
	PhotoURL  string    `bson:"photo_url,omitempty" json:"photoUrl,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
