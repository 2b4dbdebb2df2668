package ports

import (
	"context"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// LoyaltyInput credits or debits points on a loyalty ledger.
type LoyaltyInput struct {
	Points int64
	Reason string
}

// LoyaltyView is the ledger page plus the running balance.
type LoyaltyView struct {
	Balance int64
	Ledger  ListResult[*domain.LoyaltyEntry]
}

// BusinessService defines the business-profile use cases shared by
// partners and dealers.
type BusinessService interface {
	ListWorks(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.Work], error)
	AddWork(ctx context.Context, scope Scope, w *domain.Work) (*domain.Work, error)

	ListEvents(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.Event], error)
	AddEvent(ctx context.Context, scope Scope, e *domain.Event) (*domain.Event, error)

	ListGallery(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.GalleryItem], error)
	AddGalleryItem(ctx context.Context, scope Scope, g *domain.GalleryItem) (*domain.GalleryItem, error)
	DeleteGalleryItem(ctx context.Context, scope Scope, id string) error

	ListOffers(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.Offer], error)
	AddOffer(ctx context.Context, scope Scope, o *domain.Offer) (*domain.Offer, error)

	ListNotes(ctx context.Context, scope Scope, in ListInput) (*ListResult[*domain.Note], error)
	AddNote(ctx context.Context, scope Scope, n *domain.Note) (*domain.Note, error)
	UpdateNote(ctx context.Context, scope Scope, id string, n *domain.Note) (*domain.Note, error)
	DeleteNote(ctx context.Context, scope Scope, id string) error

	Loyalty(ctx context.Context, scope Scope, in ListInput) (*LoyaltyView, error)
	AddLoyaltyEntry(ctx context.Context, scope Scope, in LoyaltyInput) (*domain.LoyaltyEntry, error)

	GetStats(ctx context.Context, scope Scope) (*domain.BusinessStats, error)
}
