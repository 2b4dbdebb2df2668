package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// BusinessService implements the business-profile use cases shared by
// partners and dealers: works, events, gallery, offers, notes, loyalty,
// stats.
type BusinessService struct {
	works   ports.WorkRepository
	events  ports.EventRepository
	gallery ports.GalleryRepository
	offers  ports.OfferRepository
	notes   ports.NoteRepository
	loyalty ports.LoyaltyRepository
	logger  zerolog.Logger
}

func NewBusinessService(
	works ports.WorkRepository,
	events ports.EventRepository,
	gallery ports.GalleryRepository,
	offers ports.OfferRepository,
	notes ports.NoteRepository,
	loyalty ports.LoyaltyRepository,
	logger zerolog.Logger,
) *BusinessService {
	return &BusinessService{
		works:   works,
		events:  events,
		gallery: gallery,
		offers:  offers,
		notes:   notes,
		loyalty: loyalty,
		logger:  logger,
	}
}

// profileOwner resolves the business profile a call operates on. Partners
// and dealers own exactly one profile, keyed by user ID for partners and
// dealer ID for dealers. Admins pass through unscoped for reads.
func profileOwner(scope ports.Scope) (string, error) {
	switch scope.Role {
	case domain.RolePartner:
		if scope.UserID == "" {
			return "", domain.ErrForbidden
		}
		return scope.UserID, nil
	case domain.RoleDealer:
		if scope.DealerID == "" {
			return "", domain.ErrForbidden
		}
		return scope.DealerID, nil
	case domain.RoleAdmin:
		return "", nil
	default:
		return "", domain.ErrForbidden
	}
}

// writeOwner is profileOwner restricted to a concrete profile; admins
// without one cannot write.
func writeOwner(scope ports.Scope) (string, error) {
	owner, err := profileOwner(scope)
	if err != nil {
		return "", err
	}
	if owner == "" {
		return "", domain.ErrForbidden
	}
	return owner, nil
}

// --- Works ---

func (s *BusinessService) ListWorks(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.Work], error) {
	owner, err := profileOwner(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(owner, in)
	items, total, err := s.works.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *BusinessService) AddWork(ctx context.Context, scope ports.Scope, w *domain.Work) (*domain.Work, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	w.OwnerID = owner
	w.CreatedAt = time.Now().UTC()
	if err := s.works.Create(ctx, w); err != nil {
		s.logger.Error().Err(err).Str("owner_id", owner).Msg("failed to create work")
		return nil, err
	}
	return w, nil
}

// --- Events ---

func (s *BusinessService) ListEvents(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.Event], error) {
	owner, err := profileOwner(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(owner, in)
	items, total, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *BusinessService) AddEvent(ctx context.Context, scope ports.Scope, e *domain.Event) (*domain.Event, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	e.OwnerID = owner
	e.CreatedAt = time.Now().UTC()
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// --- Gallery ---

func (s *BusinessService) ListGallery(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.GalleryItem], error) {
	owner, err := profileOwner(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(owner, in)
	items, total, err := s.gallery.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *BusinessService) AddGalleryItem(ctx context.Context, scope ports.Scope, g *domain.GalleryItem) (*domain.GalleryItem, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	g.OwnerID = owner
	g.CreatedAt = time.Now().UTC()
	if err := s.gallery.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *BusinessService) DeleteGalleryItem(ctx context.Context, scope ports.Scope, id string) error {
	owner, err := writeOwner(scope)
	if err != nil {
		return err
	}
	return s.gallery.Delete(ctx, id, owner)
}

// --- Offers ---

// Offers live in the shared offer store. The owner key doubles as the
// dealer_id column, so a partner's offers are keyed by their user ID.

func (s *BusinessService) ListOffers(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.Offer], error) {
	owner, err := profileOwner(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(owner, in)
	items, total, err := s.offers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *BusinessService) AddOffer(ctx context.Context, scope ports.Scope, o *domain.Offer) (*domain.Offer, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	o.DealerID = owner
	o.Likes = 0
	o.CreatedAt = time.Now().UTC()
	if err := s.offers.Create(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("owner_id", owner).Msg("failed to create offer")
		return nil, err
	}
	return o, nil
}

// --- Notes ---

func (s *BusinessService) ListNotes(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.Note], error) {
	// Notes are private: even admins read them through a profile context.
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(owner, in)
	items, total, err := s.notes.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *BusinessService) AddNote(ctx context.Context, scope ports.Scope, n *domain.Note) (*domain.Note, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	n.OwnerID = owner
	n.CreatedAt = now
	n.UpdatedAt = now
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *BusinessService) UpdateNote(ctx context.Context, scope ports.Scope, id string, in *domain.Note) (*domain.Note, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	n, err := s.notes.FindByID(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	n.Title = in.Title
	n.Body = in.Body
	n.UpdatedAt = time.Now().UTC()
	if err := s.notes.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *BusinessService) DeleteNote(ctx context.Context, scope ports.Scope, id string) error {
	owner, err := writeOwner(scope)
	if err != nil {
		return err
	}
	return s.notes.Delete(ctx, id, owner)
}

// --- Loyalty ---

func (s *BusinessService) Loyalty(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.LoyaltyView, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(owner, in)
	entries, total, err := s.loyalty.Ledger(ctx, owner, filter)
	if err != nil {
		return nil, err
	}
	balance, err := s.loyalty.Balance(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &ports.LoyaltyView{
		Balance: balance,
		Ledger:  *pagedResult(entries, total, filter),
	}, nil
}

func (s *BusinessService) AddLoyaltyEntry(ctx context.Context, scope ports.Scope, in ports.LoyaltyInput) (*domain.LoyaltyEntry, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}
	entry := &domain.LoyaltyEntry{
		OwnerID:   owner,
		Points:    in.Points,
		Reason:    in.Reason,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.loyalty.Append(ctx, entry); err != nil {
		return nil, err
	}
	s.logger.Info().Str("owner_id", owner).Int64("points", in.Points).Msg("loyalty entry appended")
	return entry, nil
}

// --- Stats ---

func (s *BusinessService) GetStats(ctx context.Context, scope ports.Scope) (*domain.BusinessStats, error) {
	owner, err := writeOwner(scope)
	if err != nil {
		return nil, err
	}

	stats := &domain.BusinessStats{}
	if stats.Works, err = s.works.Count(ctx, owner); err != nil {
		return nil, err
	}
	if stats.UpcomingEvents, err = s.events.CountUpcoming(ctx, owner, time.Now().UTC()); err != nil {
		return nil, err
	}
	if stats.GalleryItems, err = s.gallery.Count(ctx, owner); err != nil {
		return nil, err
	}
	if stats.Notes, err = s.notes.Count(ctx, owner); err != nil {
		return nil, err
	}
	if stats.LoyaltyBalance, err = s.loyalty.Balance(ctx, owner); err != nil {
		return nil, err
	}
	return stats, nil
}
