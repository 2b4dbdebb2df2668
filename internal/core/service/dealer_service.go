package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildlink/directory-system/internal/api/metrics"
	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// EscalationQueue is the interface the service uses to hand escalations
// to the async dispatcher.
type EscalationQueue interface {
	Enqueue(in ports.EscalationInput)
}

// DealerService implements the dealer-facing use cases: product catalog,
// enquiries, feedback, offers, and dashboard stats.
type DealerService struct {
	products  ports.ProductRepository
	enquiries ports.EnquiryRepository
	feedbacks ports.FeedbackRepository
	offers    ports.OfferRepository
	likes     ports.LikeRegistry
	loyalty   ports.LoyaltyRepository
	queue     EscalationQueue
	logger    zerolog.Logger
}

func NewDealerService(
	products ports.ProductRepository,
	enquiries ports.EnquiryRepository,
	feedbacks ports.FeedbackRepository,
	offers ports.OfferRepository,
	likes ports.LikeRegistry,
	loyalty ports.LoyaltyRepository,
	queue EscalationQueue,
	logger zerolog.Logger,
) *DealerService {
	return &DealerService{
		products:  products,
		enquiries: enquiries,
		feedbacks: feedbacks,
		offers:    offers,
		likes:     likes,
		loyalty:   loyalty,
		queue:     queue,
		logger:    logger,
	}
}

// scopeFilter returns the dealer_id filter for the caller: dealers are
// restricted to their own records, admins see everything.
func scopeFilter(scope ports.Scope) (string, error) {
	switch scope.Role {
	case domain.RoleAdmin:
		return "", nil
	case domain.RoleDealer:
		if scope.DealerID == "" {
			return "", domain.ErrForbidden
		}
		return scope.DealerID, nil
	case domain.RoleGeneralUser, domain.RolePartner:
		// Read-only directory views; no ownership filter.
		return "", nil
	default:
		return "", domain.ErrForbidden
	}
}

// mutationFilter returns the dealer_id filter for mutating operations:
// dealers may only touch their own records, admins any record. Other
// roles never mutate dealer data.
func mutationFilter(scope ports.Scope) (string, error) {
	switch scope.Role {
	case domain.RoleAdmin:
		return "", nil
	case domain.RoleDealer:
		if scope.DealerID == "" {
			return "", domain.ErrForbidden
		}
		return scope.DealerID, nil
	default:
		return "", domain.ErrForbidden
	}
}

// creationOwner resolves the dealer new records belong to. Creation always
// needs a concrete dealer context, even for admins.
func creationOwner(scope ports.Scope) (string, error) {
	if scope.Role != domain.RoleDealer && scope.Role != domain.RoleAdmin {
		return "", domain.ErrForbidden
	}
	if scope.DealerID == "" {
		return "", domain.ErrForbidden
	}
	return scope.DealerID, nil
}

func normalize(in ports.ListInput) (int, int) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func toFilter(dealerID string, in ports.ListInput) ports.ListFilter {
	page, limit := normalize(in)
	return ports.ListFilter{
		DealerID: dealerID,
		Status:   in.Status,
		Category: in.Category,
		Search:   in.Search,
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		SortBy:   in.SortBy,
		SortAsc:  in.SortAsc,
		Page:     page,
		Limit:    limit,
	}
}

func pagedResult[T any](items []T, total int64, filter ports.ListFilter) *ports.ListResult[T] {
	pages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		pages++
	}
	return &ports.ListResult[T]{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: pages,
	}
}

// newReference returns a short unique reference such as ENQ-7A8B9C2D.
func newReference(prefix string) string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%s-%08X", prefix, time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%s-%08X", prefix, b)
}

// --- Products ---

func (s *DealerService) ListProducts(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.Product], error) {
	dealerID, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(dealerID, in)
	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *DealerService) GetProduct(ctx context.Context, scope ports.Scope, id string) (*domain.Product, error) {
	dealerID, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, id, dealerID)
}

func (s *DealerService) AddProduct(ctx context.Context, scope ports.Scope, in ports.ProductInput) (*domain.Product, error) {
	dealerID, err := creationOwner(scope)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := &domain.Product{
		DealerID:    dealerID,
		Name:        in.Name,
		Category:    in.Category,
		Brand:       in.Brand,
		Description: in.Description,
		Price:       in.Price,
		Currency:    in.Currency,
		Unit:        in.Unit,
		InStock:     in.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("dealer_id", dealerID).Msg("failed to create product")
		return nil, err
	}

	metrics.ProductsCreatedTotal.WithLabelValues(p.Category).Inc()
	s.logger.Info().Str("product_id", p.ID).Str("dealer_id", dealerID).Msg("product created")
	return p, nil
}

func (s *DealerService) UpdateProduct(ctx context.Context, scope ports.Scope, id string, in ports.ProductInput) (*domain.Product, error) {
	dealerID, err := mutationFilter(scope)
	if err != nil {
		return nil, err
	}

	p, err := s.products.FindByID(ctx, id, dealerID)
	if err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Category = in.Category
	p.Brand = in.Brand
	p.Description = in.Description
	p.Price = in.Price
	p.Currency = in.Currency
	p.Unit = in.Unit
	p.InStock = in.InStock
	p.UpdatedAt = time.Now().UTC()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *DealerService) DeleteProduct(ctx context.Context, scope ports.Scope, id string) error {
	dealerID, err := mutationFilter(scope)
	if err != nil {
		return err
	}
	return s.products.Delete(ctx, id, dealerID)
}

// --- Enquiries ---

func (s *DealerService) ListEnquiries(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.Enquiry], error) {
	dealerID, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	if scope.Role == domain.RoleGeneralUser || scope.Role == domain.RolePartner {
		// Enquiry inboxes are private to the dealer they target.
		return nil, domain.ErrForbidden
	}
	filter := toFilter(dealerID, in)
	items, total, err := s.enquiries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *DealerService) GetEnquiry(ctx context.Context, scope ports.Scope, id string) (*domain.Enquiry, error) {
	dealerID, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	if scope.Role == domain.RoleGeneralUser || scope.Role == domain.RolePartner {
		return nil, domain.ErrForbidden
	}
	return s.enquiries.FindByID(ctx, id, dealerID)
}

// CreateEnquiry records a customer enquiry against a dealer. Callers are
// directory users, so no dealer scoping applies.
func (s *DealerService) CreateEnquiry(ctx context.Context, dealerID string, e *domain.Enquiry) (*domain.Enquiry, error) {
	now := time.Now().UTC()
	e.DealerID = dealerID
	e.Reference = newReference("ENQ")
	e.Status = domain.EnquiryOpen
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.enquiries.Create(ctx, e); err != nil {
		s.logger.Error().Err(err).Str("dealer_id", dealerID).Msg("failed to create enquiry")
		return nil, err
	}

	s.logger.Info().Str("reference", e.Reference).Str("dealer_id", dealerID).Msg("enquiry created")
	return e, nil
}

func (s *DealerService) RespondToEnquiry(ctx context.Context, scope ports.Scope, in ports.RespondInput) (*domain.Enquiry, error) {
	dealerID, err := mutationFilter(scope)
	if err != nil {
		return nil, err
	}

	e, err := s.enquiries.FindByID(ctx, in.EnquiryID, dealerID)
	if err != nil {
		return nil, err
	}

	next := domain.EnquiryResponded
	if in.Close {
		next = domain.EnquiryClosed
	}
	if !e.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidEnquiryTransition, e.Status, next)
	}

	resp := domain.EnquiryResponse{
		Message:   in.Message,
		Responder: scope.UserID,
		Timestamp: time.Now().UTC(),
	}
	if err := s.enquiries.AppendResponse(ctx, in.EnquiryID, resp, next); err != nil {
		return nil, err
	}

	s.logger.Info().Str("enquiry_id", in.EnquiryID).Str("status", string(next)).Msg("enquiry responded")
	return s.enquiries.FindByID(ctx, in.EnquiryID, dealerID)
}

// SendEnquiryToAdmin enqueues an escalation. The dispatcher guarantees
// per-dealer ordering; processing happens off the request path.
func (s *DealerService) SendEnquiryToAdmin(ctx context.Context, scope ports.Scope, enquiryID, reason string) error {
	dealerID, err := mutationFilter(scope)
	if err != nil {
		return err
	}

	// Verify ownership before enqueueing so a bad ID fails fast.
	e, err := s.enquiries.FindByID(ctx, enquiryID, dealerID)
	if err != nil {
		return err
	}

	s.queue.Enqueue(ports.EscalationInput{
		EnquiryID: enquiryID,
		DealerID:  e.DealerID,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
	metrics.EnquiriesEscalatedTotal.WithLabelValues(e.DealerID).Inc()
	return nil
}

// --- Feedback ---

func (s *DealerService) ListFeedbacks(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.Feedback], error) {
	dealerID, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(dealerID, in)
	items, total, err := s.feedbacks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *DealerService) ReportFeedback(ctx context.Context, scope ports.Scope, feedbackID, reason string) error {
	dealerID, err := mutationFilter(scope)
	if err != nil {
		return err
	}

	f, err := s.feedbacks.FindByID(ctx, feedbackID, dealerID)
	if err != nil {
		return err
	}
	if f.Reported {
		return domain.ErrAlreadyReported
	}
	if err := s.feedbacks.MarkReported(ctx, feedbackID, reason); err != nil {
		return err
	}

	s.logger.Info().Str("feedback_id", feedbackID).Str("dealer_id", dealerID).Msg("feedback reported")
	return nil
}

// --- Offers ---

func (s *DealerService) ListOffers(ctx context.Context, scope ports.Scope, in ports.ListInput) (*ports.ListResult[*domain.Offer], error) {
	dealerID, err := scopeFilter(scope)
	if err != nil {
		return nil, err
	}
	filter := toFilter(dealerID, in)
	items, total, err := s.offers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagedResult(items, total, filter), nil
}

func (s *DealerService) AddOffer(ctx context.Context, scope ports.Scope, o *domain.Offer) (*domain.Offer, error) {
	dealerID, err := creationOwner(scope)
	if err != nil {
		return nil, err
	}

	o.DealerID = dealerID
	o.Likes = 0
	o.CreatedAt = time.Now().UTC()
	if err := s.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info().Str("offer_id", o.ID).Str("dealer_id", dealerID).Msg("offer created")
	return o, nil
}

func (s *DealerService) UpdateOffer(ctx context.Context, scope ports.Scope, id string, in *domain.Offer) (*domain.Offer, error) {
	dealerID, err := mutationFilter(scope)
	if err != nil {
		return nil, err
	}

	o, err := s.offers.FindByID(ctx, id, dealerID)
	if err != nil {
		return nil, err
	}
	o.Title = in.Title
	o.Description = in.Description
	o.DiscountPct = in.DiscountPct
	o.ValidFrom = in.ValidFrom
	o.ValidUntil = in.ValidUntil

	if err := s.offers.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *DealerService) DeleteOffer(ctx context.Context, scope ports.Scope, id string) error {
	dealerID, err := mutationFilter(scope)
	if err != nil {
		return err
	}
	return s.offers.Delete(ctx, id, dealerID)
}

// LikeOffer records one like per user per offer; replays return
// domain.ErrAlreadyLiked and leave the counter untouched.
func (s *DealerService) LikeOffer(ctx context.Context, scope ports.Scope, offerID string) error {
	if scope.UserID == "" {
		return domain.ErrForbidden
	}
	if _, err := s.offers.FindByID(ctx, offerID, ""); err != nil {
		return err
	}
	if err := s.likes.Register(ctx, offerID, scope.UserID); err != nil {
		return err
	}
	if err := s.offers.IncrementLikes(ctx, offerID, 1); err != nil {
		// Release the registration so a retry is not mistaken for a
		// replay while the counter never moved.
		if derr := s.likes.Deregister(ctx, offerID, scope.UserID); derr != nil {
			s.logger.Error().Err(derr).Str("offer_id", offerID).Str("user_id", scope.UserID).Msg("failed to release like registration")
		}
		return err
	}
	metrics.OfferLikesTotal.Inc()
	return nil
}

// --- Stats ---

// GetStats aggregates the dealer dashboard snapshot.
func (s *DealerService) GetStats(ctx context.Context, scope ports.Scope) (*domain.DealerStats, error) {
	dealerID, err := creationOwner(scope)
	if err != nil {
		return nil, err
	}

	stats := &domain.DealerStats{}

	if stats.Products, err = s.products.Count(ctx, dealerID); err != nil {
		return nil, err
	}
	if stats.OpenEnquiries, err = s.enquiries.CountByStatus(ctx, dealerID, domain.EnquiryOpen); err != nil {
		return nil, err
	}
	if stats.TotalEnquiries, err = s.enquiries.Count(ctx, dealerID); err != nil {
		return nil, err
	}
	if stats.Feedbacks, stats.AverageRating, err = s.feedbacks.RatingSummary(ctx, dealerID); err != nil {
		return nil, err
	}
	if stats.ActiveOffers, stats.OfferLikes, err = s.offers.ActiveSummary(ctx, dealerID, time.Now().UTC()); err != nil {
		return nil, err
	}
	if stats.LoyaltyBalance, err = s.loyalty.Balance(ctx, dealerID); err != nil {
		return nil, err
	}

	return stats, nil
}
