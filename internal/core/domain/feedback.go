package domain

import "time"

// Feedback is a customer rating left on a dealer. Dealers may flag
// abusive entries for admin review, but never edit or remove them.
type Feedback struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	DealerID     string    `json:"dealer_id" bson:"dealer_id"`
	CustomerName string    `json:"customer_name" bson:"customer_name"`
	Rating       int       `json:"rating" bson:"rating"` // 1..5
	Comment      string    `json:"comment,omitempty" bson:"comment,omitempty"`
	Reported     bool      `json:"reported" bson:"reported"`
	ReportReason string    `json:"report_reason,omitempty" bson:"report_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
