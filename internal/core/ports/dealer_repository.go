package ports

import (
	"context"
	"time"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// ListFilter carries the common query parameters for list operations.
// DealerID scoping is always enforced by the service layer (RBAC): empty
// means no filter (admin), non-empty scopes to one dealer.
type ListFilter struct {
	DealerID  string
	Status    string    // optional: domain-specific status filter
	Category  string    // optional: product category
	Search    string    // optional: partial match on name/subject/title
	DateFrom  time.Time // optional: created_at >= DateFrom
	DateTo    time.Time // optional: created_at <= DateTo
	SortBy    string    // optional: column identifier
	SortAsc   bool
	Page      int // 1-based
	Limit     int // max rows per page (capped at 100 by service)
}

// ProductRepository defines persistence operations for dealer products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	// FindByID retrieves a product. When dealerID is non-empty the query
	// is additionally filtered by dealer_id (for RBAC).
	FindByID(ctx context.Context, id string, dealerID string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string, dealerID string) error
	// List returns a page of products matching filter and the total count.
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, int64, error)
	Count(ctx context.Context, dealerID string) (int64, error)
}

// EnquiryRepository defines persistence operations for enquiries.
type EnquiryRepository interface {
	Create(ctx context.Context, e *domain.Enquiry) error
	FindByID(ctx context.Context, id string, dealerID string) (*domain.Enquiry, error)
	// AppendResponse atomically records a reply and moves the enquiry to
	// the given status.
	AppendResponse(ctx context.Context, id string, r domain.EnquiryResponse, status domain.EnquiryStatus) error
	UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Enquiry, int64, error)
	CountByStatus(ctx context.Context, dealerID string, status domain.EnquiryStatus) (int64, error)
	Count(ctx context.Context, dealerID string) (int64, error)
}

// FeedbackRepository defines persistence operations for dealer feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) error
	FindByID(ctx context.Context, id string, dealerID string) (*domain.Feedback, error)
	// MarkReported flags a feedback for admin review.
	MarkReported(ctx context.Context, id string, reason string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Feedback, int64, error)
	// RatingSummary returns the count and average rating for a dealer.
	RatingSummary(ctx context.Context, dealerID string) (int64, float64, error)
}

// OfferRepository defines persistence operations for dealer offers.
type OfferRepository interface {
	Create(ctx context.Context, o *domain.Offer) error
	FindByID(ctx context.Context, id string, dealerID string) (*domain.Offer, error)
	Update(ctx context.Context, o *domain.Offer) error
	Delete(ctx context.Context, id string, dealerID string) error
	// IncrementLikes bumps the like counter by delta.
	IncrementLikes(ctx context.Context, id string, delta int64) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Offer, int64, error)
	// ActiveSummary returns the active-offer count and total likes for a
	// dealer at the given instant.
	ActiveSummary(ctx context.Context, dealerID string, at time.Time) (int64, int64, error)
}

// LikeRegistry deduplicates offer likes per user.
type LikeRegistry interface {
	// Register records the like; returns domain.ErrAlreadyLiked when the
	// user already liked the offer.
	Register(ctx context.Context, offerID, userID string) error
	// Deregister releases a registration so a failed like can be retried.
	Deregister(ctx context.Context, offerID, userID string) error
}
