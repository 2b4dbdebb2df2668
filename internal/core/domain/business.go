package domain

import "time"

// Work is a completed or ongoing job showcased on a business profile.
type Work struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Year        int       `json:"year,omitempty" bson:"year,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Event is a business-hosted event (launch, training, exhibition).
type Event struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Title     string    `json:"title" bson:"title"`
	Venue     string    `json:"venue,omitempty" bson:"venue,omitempty"`
	StartsAt  time.Time `json:"starts_at" bson:"starts_at"`
	EndsAt    time.Time `json:"ends_at" bson:"ends_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// GalleryItem is a media reference on a business profile. The media
// itself lives elsewhere; only the pointer is stored here.
type GalleryItem struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Caption   string    `json:"caption,omitempty" bson:"caption,omitempty"`
	MediaURL  string    `json:"media_url" bson:"media_url"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Note is a private free-form note on a business account.
type Note struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body,omitempty" bson:"body,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// LoyaltyEntry is a single credit or debit in a loyalty ledger.
// Positive points are earned, negative points are redeemed.
type LoyaltyEntry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Points    int64     `json:"points" bson:"points"`
	Reason    string    `json:"reason" bson:"reason"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// DealerStats is the aggregate snapshot shown on the dealer dashboard.
type DealerStats struct {
	Products        int64   `json:"products"`
	OpenEnquiries   int64   `json:"open_enquiries"`
	TotalEnquiries  int64   `json:"total_enquiries"`
	Feedbacks       int64   `json:"feedbacks"`
	AverageRating   float64 `json:"average_rating"`
	ActiveOffers    int64   `json:"active_offers"`
	OfferLikes      int64   `json:"offer_likes"`
	LoyaltyBalance  int64   `json:"loyalty_balance"`
}

// BusinessStats is the aggregate snapshot for a business profile.
type BusinessStats struct {
	Works          int64 `json:"works"`
	UpcomingEvents int64 `json:"upcoming_events"`
	GalleryItems   int64 `json:"gallery_items"`
	Notes          int64 `json:"notes"`
	LoyaltyBalance int64 `json:"loyalty_balance"`
}
