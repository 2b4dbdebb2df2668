package ports

import (
	"context"
	"time"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// Scope carries the caller identity used for RBAC filtering. Dealer-role
// callers are restricted to their own DealerID; admins see everything.
type Scope struct {
	Role     domain.Role
	UserID   string
	DealerID string
}

// ProductInput carries the mutable fields of a product.
type ProductInput struct {
	Name        string
	Category    string
	Brand       string
	Description string
	Price       float64
	Currency    string
	Unit        string
	InStock     bool
}

// ListInput carries the common list parameters accepted by handlers.
type ListInput struct {
	Status   string
	Category string
	Search   string
	DateFrom time.Time
	DateTo   time.Time
	SortBy   string
	SortAsc  bool
	Page     int
	Limit    int
}

// ListResult is the generic paged result envelope.
type ListResult[T any] struct {
	Items      []T
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// RespondInput carries a dealer reply to an enquiry.
type RespondInput struct {
	EnquiryID string
	Message   string
	// Close moves the enquiry to closed instead of responded.
	Close bool
}

// EscalationInput is the unit of work routed through the escalation
// dispatcher to the admin queue.
type EscalationInput struct {
	EnquiryID string
	DealerID  string
	Reason    string
	Timestamp time.Time
}

// DealerService defines the dealer-facing use cases.
type DealerService interface {
	ListProducts(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.Product], error)
	GetProduct(ctx context.Context, scope Scope, id string) (*domain.Product, error)
	AddProduct(ctx context.Context, scope Scope, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, scope Scope, id string, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, scope Scope, id string) error

	ListEnquiries(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.Enquiry], error)
	GetEnquiry(ctx context.Context, scope Scope, id string) (*domain.Enquiry, error)
	CreateEnquiry(ctx context.Context, dealerID string, e *domain.Enquiry) (*domain.Enquiry, error)
	RespondToEnquiry(ctx context.Context, scope Scope, in RespondInput) (*domain.Enquiry, error)
	// SendEnquiryToAdmin enqueues an escalation; processing is
	// asynchronous with per-dealer ordering.
	SendEnquiryToAdmin(ctx context.Context, scope Scope, enquiryID, reason string) error

	ListFeedbacks(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.Feedback], error)
	ReportFeedback(ctx context.Context, scope Scope, feedbackID, reason string) error

	ListOffers(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.Offer], error)
	AddOffer(ctx context.Context, scope Scope, o *domain.Offer) (*domain.Offer, error)
	UpdateOffer(ctx context.Context, scope Scope, id string, o *domain.Offer) (*domain.Offer, error)
	DeleteOffer(ctx context.Context, scope Scope, id string) error
	// LikeOffer records one like per user per offer.
	LikeOffer(ctx context.Context, scope Scope, offerID string) error

	GetStats(ctx context.Context, scope Scope) (*domain.DealerStats, error)
}

// EscalationService processes enqueued enquiry escalations.
type EscalationService interface {
	Process(ctx context.Context, in EscalationInput) error
}
