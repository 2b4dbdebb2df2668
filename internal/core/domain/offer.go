package domain

import "time"

// Offer is a dealer promotion visible to directory users. Likes are
// deduplicated per user by the service layer.
type Offer struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	DealerID    string    `json:"dealer_id" bson:"dealer_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	DiscountPct float64   `json:"discount_pct" bson:"discount_pct"`
	ValidFrom   time.Time `json:"valid_from" bson:"valid_from"`
	ValidUntil  time.Time `json:"valid_until" bson:"valid_until"`
	Likes       int64     `json:"likes" bson:"likes"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Active reports whether the offer is valid at the given instant.
func (o Offer) Active(at time.Time) bool {
	return !at.Before(o.ValidFrom) && !at.After(o.ValidUntil)
}
