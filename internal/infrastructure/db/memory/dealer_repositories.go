package memory

import (
	"context"
	"sort"
	"time"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// ProductRepository is the in-memory product catalog for mock mode.
type ProductRepository struct {
	store    *Store
	products map[string]*domain.Product
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store, products: make(map[string]*domain.Product)}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string, dealerID string) (*domain.Product, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || (dealerID != "" && p.DealerID != dealerID) {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string, dealerID string) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.products[id]
	if !ok || (dealerID != "" && p.DealerID != dealerID) {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Product, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.Product
	for _, p := range r.products {
		if f.DealerID != "" && p.DealerID != f.DealerID {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if !matches(f.Search, p.Name, p.Brand) || !inDateRange(p.CreatedAt, f) {
			continue
		}
		clone := *p
		rows = append(rows, &clone)
	}

	sort.Slice(rows, func(i, j int) bool {
		var less bool
		switch f.SortBy {
		case "name":
			less = rows[i].Name < rows[j].Name
		case "price":
			less = rows[i].Price < rows[j].Price
		default:
			less = rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		if f.SortAsc {
			return less
		}
		return !less
	})

	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *ProductRepository) Count(ctx context.Context, dealerID string) (int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, p := range r.products {
		if dealerID == "" || p.DealerID == dealerID {
			n++
		}
	}
	return n, nil
}

// EnquiryRepository is the in-memory enquiry store for mock mode.
type EnquiryRepository struct {
	store     *Store
	enquiries map[string]*domain.Enquiry
}

func NewEnquiryRepository(store *Store) *EnquiryRepository {
	return &EnquiryRepository{store: store, enquiries: make(map[string]*domain.Enquiry)}
}

func (r *EnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if e.ID == "" {
		e.ID = newID()
	}
	clone := *e
	r.enquiries[e.ID] = &clone
	return nil
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id string, dealerID string) (*domain.Enquiry, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.enquiries[id]
	if !ok || (dealerID != "" && e.DealerID != dealerID) {
		return nil, domain.ErrEnquiryNotFound
	}
	clone := *e
	clone.Responses = append([]domain.EnquiryResponse(nil), e.Responses...)
	return &clone, nil
}

func (r *EnquiryRepository) AppendResponse(ctx context.Context, id string, resp domain.EnquiryResponse, status domain.EnquiryStatus) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.enquiries[id]
	if !ok {
		return domain.ErrEnquiryNotFound
	}
	e.Responses = append(e.Responses, resp)
	e.Status = status
	e.UpdatedAt = resp.Timestamp
	return nil
}

func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.enquiries[id]
	if !ok {
		return domain.ErrEnquiryNotFound
	}
	e.Status = status
	e.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *EnquiryRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Enquiry, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.Enquiry
	for _, e := range r.enquiries {
		if f.DealerID != "" && e.DealerID != f.DealerID {
			continue
		}
		if f.Status != "" && string(e.Status) != f.Status {
			continue
		}
		if !matches(f.Search, e.Reference, e.Subject, e.CustomerName) || !inDateRange(e.CreatedAt, f) {
			continue
		}
		clone := *e
		rows = append(rows, &clone)
	}

	sort.Slice(rows, func(i, j int) bool {
		if f.SortAsc {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[j].CreatedAt.Before(rows[i].CreatedAt)
	})

	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *EnquiryRepository) CountByStatus(ctx context.Context, dealerID string, status domain.EnquiryStatus) (int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, e := range r.enquiries {
		if (dealerID == "" || e.DealerID == dealerID) && e.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *EnquiryRepository) Count(ctx context.Context, dealerID string) (int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, e := range r.enquiries {
		if dealerID == "" || e.DealerID == dealerID {
			n++
		}
	}
	return n, nil
}

// FeedbackRepository is the in-memory feedback store for mock mode.
type FeedbackRepository struct {
	store     *Store
	feedbacks map[string]*domain.Feedback
}

func NewFeedbackRepository(store *Store) *FeedbackRepository {
	return &FeedbackRepository{store: store, feedbacks: make(map[string]*domain.Feedback)}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if f.ID == "" {
		f.ID = newID()
	}
	clone := *f
	r.feedbacks[f.ID] = &clone
	return nil
}

func (r *FeedbackRepository) FindByID(ctx context.Context, id string, dealerID string) (*domain.Feedback, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := r.feedbacks[id]
	if !ok || (dealerID != "" && f.DealerID != dealerID) {
		return nil, domain.ErrFeedbackNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *FeedbackRepository) MarkReported(ctx context.Context, id string, reason string) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f, ok := r.feedbacks[id]
	if !ok {
		return domain.ErrFeedbackNotFound
	}
	f.Reported = true
	f.ReportReason = reason
	return nil
}

func (r *FeedbackRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Feedback, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.Feedback
	for _, fb := range r.feedbacks {
		if f.DealerID != "" && fb.DealerID != f.DealerID {
			continue
		}
		if !matches(f.Search, fb.CustomerName, fb.Comment) || !inDateRange(fb.CreatedAt, f) {
			continue
		}
		clone := *fb
		rows = append(rows, &clone)
	}

	sort.Slice(rows, func(i, j int) bool {
		if f.SortAsc {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[j].CreatedAt.Before(rows[i].CreatedAt)
	})

	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *FeedbackRepository) RatingSummary(ctx context.Context, dealerID string) (int64, float64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	var sum int64
	for _, fb := range r.feedbacks {
		if dealerID == "" || fb.DealerID == dealerID {
			count++
			sum += int64(fb.Rating)
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, float64(sum) / float64(count), nil
}

// OfferRepository is the in-memory offer store for mock mode.
type OfferRepository struct {
	store  *Store
	offers map[string]*domain.Offer
}

func NewOfferRepository(store *Store) *OfferRepository {
	return &OfferRepository{store: store, offers: make(map[string]*domain.Offer)}
}

func (r *OfferRepository) Create(ctx context.Context, o *domain.Offer) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if o.ID == "" {
		o.ID = newID()
	}
	clone := *o
	r.offers[o.ID] = &clone
	return nil
}

func (r *OfferRepository) FindByID(ctx context.Context, id string, dealerID string) (*domain.Offer, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.offers[id]
	if !ok || (dealerID != "" && o.DealerID != dealerID) {
		return nil, domain.ErrOfferNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.offers[o.ID]; !ok {
		return domain.ErrOfferNotFound
	}
	clone := *o
	r.offers[o.ID] = &clone
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string, dealerID string) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.offers[id]
	if !ok || (dealerID != "" && o.DealerID != dealerID) {
		return domain.ErrOfferNotFound
	}
	delete(r.offers, id)
	return nil
}

func (r *OfferRepository) IncrementLikes(ctx context.Context, id string, delta int64) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	o, ok := r.offers[id]
	if !ok {
		return domain.ErrOfferNotFound
	}
	o.Likes += delta
	return nil
}

func (r *OfferRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Offer, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.Offer
	for _, o := range r.offers {
		if f.DealerID != "" && o.DealerID != f.DealerID {
			continue
		}
		if !matches(f.Search, o.Title) || !inDateRange(o.CreatedAt, f) {
			continue
		}
		clone := *o
		rows = append(rows, &clone)
	}

	sort.Slice(rows, func(i, j int) bool {
		var less bool
		switch f.SortBy {
		case "likes":
			less = rows[i].Likes < rows[j].Likes
		default:
			less = rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		if f.SortAsc {
			return less
		}
		return !less
	})

	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *OfferRepository) ActiveSummary(ctx context.Context, dealerID string, at time.Time) (int64, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var active, likes int64
	for _, o := range r.offers {
		if dealerID != "" && o.DealerID != dealerID {
			continue
		}
		if o.Active(at) {
			active++
			likes += o.Likes
		}
	}
	return active, likes, nil
}
