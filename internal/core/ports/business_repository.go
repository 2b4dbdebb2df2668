package ports

import (
	"context"
	"time"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// WorkRepository defines persistence operations for showcased works.
type WorkRepository interface {
	Create(ctx context.Context, w *domain.Work) error
	FindByID(ctx context.Context, id string, ownerID string) (*domain.Work, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Work, int64, error)
	Count(ctx context.Context, ownerID string) (int64, error)
}

// EventRepository defines persistence operations for business events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Event, int64, error)
	CountUpcoming(ctx context.Context, ownerID string, after time.Time) (int64, error)
}

// GalleryRepository defines persistence operations for gallery items.
type GalleryRepository interface {
	Create(ctx context.Context, g *domain.GalleryItem) error
	Delete(ctx context.Context, id string, ownerID string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.GalleryItem, int64, error)
	Count(ctx context.Context, ownerID string) (int64, error)
}

// NoteRepository defines persistence operations for private notes.
type NoteRepository interface {
	Create(ctx context.Context, n *domain.Note) error
	FindByID(ctx context.Context, id string, ownerID string) (*domain.Note, error)
	Update(ctx context.Context, n *domain.Note) error
	Delete(ctx context.Context, id string, ownerID string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Note, int64, error)
	Count(ctx context.Context, ownerID string) (int64, error)
}

// LoyaltyRepository is an append-only ledger of loyalty points.
type LoyaltyRepository interface {
	Append(ctx context.Context, e *domain.LoyaltyEntry) error
	Ledger(ctx context.Context, ownerID string, filter ListFilter) ([]*domain.LoyaltyEntry, int64, error)
	// Balance sums all entries for the owner.
	Balance(ctx context.Context, ownerID string) (int64, error)
}
