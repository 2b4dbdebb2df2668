package domain

import (
	"errors"
	"time"
)

// EnquiryStatus represents the lifecycle state of a customer enquiry.
type EnquiryStatus string

const (
	EnquiryOpen      EnquiryStatus = "open"
	EnquiryResponded EnquiryStatus = "responded"
	EnquiryEscalated EnquiryStatus = "escalated"
	EnquiryClosed    EnquiryStatus = "closed"
)

// enquiryTransitions defines the allowed state machine transitions.
var enquiryTransitions = map[EnquiryStatus][]EnquiryStatus{
	EnquiryOpen:      {EnquiryResponded, EnquiryEscalated, EnquiryClosed},
	EnquiryResponded: {EnquiryEscalated, EnquiryClosed},
	EnquiryEscalated: {EnquiryResponded, EnquiryClosed},
}

var ErrInvalidEnquiryTransition = errors.New("invalid enquiry status transition")

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s EnquiryStatus) CanTransitionTo(next EnquiryStatus) bool {
	for _, allowed := range enquiryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EnquiryResponse records a single dealer reply on an enquiry.
type EnquiryResponse struct {
	Message   string    `json:"message" bson:"message"`
	Responder string    `json:"responder" bson:"responder"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Enquiry is a customer question or quote request directed at a dealer.
type Enquiry struct {
	ID            string            `json:"id" bson:"_id,omitempty"`
	Reference     string            `json:"reference" bson:"reference"`
	DealerID      string            `json:"dealer_id" bson:"dealer_id"`
	CustomerName  string            `json:"customer_name" bson:"customer_name"`
	CustomerEmail string            `json:"customer_email" bson:"customer_email"`
	CustomerPhone string            `json:"customer_phone,omitempty" bson:"customer_phone,omitempty"`
	Subject       string            `json:"subject" bson:"subject"`
	Message       string            `json:"message" bson:"message"`
	ProductID     string            `json:"product_id,omitempty" bson:"product_id,omitempty"`
	Status        EnquiryStatus     `json:"status" bson:"status"`
	Responses     []EnquiryResponse `json:"responses" bson:"responses"`
	CreatedAt     time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" bson:"updated_at"`
}
