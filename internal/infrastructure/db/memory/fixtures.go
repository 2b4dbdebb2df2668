package memory

import (
	"time"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// Repositories bundles every in-memory repository sharing one Store.
type Repositories struct {
	Store     *Store
	Auth      *AuthRepository
	OTP       *OTPStore
	Likes     *LikeRegistry
	Products  *ProductRepository
	Enquiries *EnquiryRepository
	Feedbacks *FeedbackRepository
	Offers    *OfferRepository
	Works     *WorkRepository
	Events    *EventRepository
	Gallery   *GalleryRepository
	Notes     *NoteRepository
	Loyalty   *LoyaltyRepository
}

// NewRepositories constructs the full mock-mode repository set.
func NewRepositories(latency time.Duration) *Repositories {
	store := NewStore(latency)
	return &Repositories{
		Store:     store,
		Auth:      NewAuthRepository(store),
		OTP:       NewOTPStore(store),
		Likes:     NewLikeRegistry(store),
		Products:  NewProductRepository(store),
		Enquiries: NewEnquiryRepository(store),
		Feedbacks: NewFeedbackRepository(store),
		Offers:    NewOfferRepository(store),
		Works:     NewWorkRepository(store),
		Events:    NewEventRepository(store),
		Gallery:   NewGalleryRepository(store),
		Notes:     NewNoteRepository(store),
		Loyalty:   NewLoyaltyRepository(store),
	}
}

// Seed loads a small demo dataset so mock mode is usable out of the box.
func (r *Repositories) Seed() {
	now := time.Now().UTC()
	const dealer = "dealer_demo"

	r.Products.products["p1"] = &domain.Product{
		ID: "p1", DealerID: dealer, Name: "OPC 53 Grade Cement", Category: "cement",
		Brand: "UltraBuild", Price: 395, Currency: "INR", Unit: "bag",
		InStock: true, CreatedAt: now.Add(-72 * time.Hour), UpdatedAt: now.Add(-72 * time.Hour),
	}
	r.Products.products["p2"] = &domain.Product{
		ID: "p2", DealerID: dealer, Name: "TMT Steel Bar 12mm", Category: "steel",
		Brand: "Ferron", Price: 62, Currency: "INR", Unit: "kg",
		InStock: true, CreatedAt: now.Add(-48 * time.Hour), UpdatedAt: now.Add(-48 * time.Hour),
	}
	r.Products.products["p3"] = &domain.Product{
		ID: "p3", DealerID: dealer, Name: "River Sand", Category: "aggregate",
		Price: 1800, Currency: "INR", Unit: "tonne",
		InStock: false, CreatedAt: now.Add(-24 * time.Hour), UpdatedAt: now.Add(-24 * time.Hour),
	}

	r.Enquiries.enquiries["e1"] = &domain.Enquiry{
		ID: "e1", Reference: "ENQ-1A2B3C4D", DealerID: dealer,
		CustomerName: "Asha Verma", CustomerEmail: "asha@example.com",
		Subject: "Bulk cement pricing", Message: "Need 200 bags delivered next week.",
		ProductID: "p1", Status: domain.EnquiryOpen,
		CreatedAt: now.Add(-6 * time.Hour), UpdatedAt: now.Add(-6 * time.Hour),
	}

	r.Feedbacks.feedbacks["f1"] = &domain.Feedback{
		ID: "f1", DealerID: dealer, CustomerName: "Rohit Shah",
		Rating: 4, Comment: "Quick delivery, fair prices.",
		CreatedAt: now.Add(-30 * time.Hour),
	}

	r.Offers.offers["o1"] = &domain.Offer{
		ID: "o1", DealerID: dealer, Title: "Monsoon cement discount",
		Description: "5% off on orders above 50 bags.", DiscountPct: 5,
		ValidFrom: now.Add(-24 * time.Hour), ValidUntil: now.Add(30 * 24 * time.Hour),
		Likes: 3, CreatedAt: now.Add(-24 * time.Hour),
	}

	r.Loyalty.entries = append(r.Loyalty.entries,
		&domain.LoyaltyEntry{ID: "l1", OwnerID: dealer, Points: 120, Reason: "quarterly volume bonus", CreatedAt: now.Add(-20 * 24 * time.Hour)},
		&domain.LoyaltyEntry{ID: "l2", OwnerID: dealer, Points: -40, Reason: "redeemed against invoice 8841", CreatedAt: now.Add(-2 * 24 * time.Hour)},
	)
}
