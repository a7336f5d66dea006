package models

import "time"

// Service is a bookable offering of a provider. PriceDa is the TOTAL shown to
// the client and already includes the provider's fixed per-booking commission;
// it is entered as such when the service is created or edited, never derived.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	ProviderID  string    `bson:"provider_id" json:"providerId"`
	Title       string    `bson:"title" json:"title"`
	DurationMin int       `bson:"duration_min" json:"durationMin"`
	PriceDa     int       `bson:"price_da" json:"priceDa"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
