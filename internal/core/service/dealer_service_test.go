package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ------------------------------------------------------------------ //
// Stubs

type stubProductRepo struct {
	products   map[string]*domain.Product
	lastFilter ports.ListFilter
	err        error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	if r.err != nil {
		return r.err
	}
	if p.ID == "" {
		p.ID = "prod_" + p.Name
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id, dealerID string) (*domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[id]
	if !ok || (dealerID != "" && p.DealerID != dealerID) {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id, dealerID string) error {
	p, ok := r.products[id]
	if !ok || (dealerID != "" && p.DealerID != dealerID) {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	r.lastFilter = filter
	var out []*domain.Product
	for _, p := range r.products {
		if filter.DealerID != "" && p.DealerID != filter.DealerID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Count(_ context.Context, dealerID string) (int64, error) {
	var n int64
	for _, p := range r.products {
		if dealerID == "" || p.DealerID == dealerID {
			n++
		}
	}
	return n, nil
}

type stubEnquiryRepo struct {
	enquiries map[string]*domain.Enquiry
	err       error
}

func newStubEnquiryRepo() *stubEnquiryRepo {
	return &stubEnquiryRepo{enquiries: make(map[string]*domain.Enquiry)}
}

func (r *stubEnquiryRepo) Create(_ context.Context, e *domain.Enquiry) error {
	if r.err != nil {
		return r.err
	}
	if e.ID == "" {
		e.ID = "enq_" + e.Reference
	}
	clone := *e
	r.enquiries[e.ID] = &clone
	return nil
}

func (r *stubEnquiryRepo) FindByID(_ context.Context, id, dealerID string) (*domain.Enquiry, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.enquiries[id]
	if !ok || (dealerID != "" && e.DealerID != dealerID) {
		return nil, domain.ErrEnquiryNotFound
	}
	clone := *e
	clone.Responses = append([]domain.EnquiryResponse(nil), e.Responses...)
	return &clone, nil
}

func (r *stubEnquiryRepo) AppendResponse(_ context.Context, id string, resp domain.EnquiryResponse, status domain.EnquiryStatus) error {
	e, ok := r.enquiries[id]
	if !ok {
		return domain.ErrEnquiryNotFound
	}
	e.Responses = append(e.Responses, resp)
	e.Status = status
	e.UpdatedAt = resp.Timestamp
	return nil
}

func (r *stubEnquiryRepo) UpdateStatus(_ context.Context, id string, status domain.EnquiryStatus) error {
	e, ok := r.enquiries[id]
	if !ok {
		return domain.ErrEnquiryNotFound
	}
	e.Status = status
	return nil
}

func (r *stubEnquiryRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Enquiry, int64, error) {
	var out []*domain.Enquiry
	for _, e := range r.enquiries {
		if filter.DealerID != "" && e.DealerID != filter.DealerID {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubEnquiryRepo) CountByStatus(_ context.Context, dealerID string, status domain.EnquiryStatus) (int64, error) {
	var n int64
	for _, e := range r.enquiries {
		if (dealerID == "" || e.DealerID == dealerID) && e.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubEnquiryRepo) Count(_ context.Context, dealerID string) (int64, error) {
	var n int64
	for _, e := range r.enquiries {
		if dealerID == "" || e.DealerID == dealerID {
			n++
		}
	}
	return n, nil
}

type stubFeedbackRepo struct {
	feedbacks map[string]*domain.Feedback
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{feedbacks: make(map[string]*domain.Feedback)}
}

func (r *stubFeedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	clone := *f
	r.feedbacks[f.ID] = &clone
	return nil
}

func (r *stubFeedbackRepo) FindByID(_ context.Context, id, dealerID string) (*domain.Feedback, error) {
	f, ok := r.feedbacks[id]
	if !ok || (dealerID != "" && f.DealerID != dealerID) {
		return nil, domain.ErrFeedbackNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFeedbackRepo) MarkReported(_ context.Context, id, reason string) error {
	f, ok := r.feedbacks[id]
	if !ok {
		return domain.ErrFeedbackNotFound
	}
	f.Reported = true
	f.ReportReason = reason
	return nil
}

func (r *stubFeedbackRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Feedback, int64, error) {
	var out []*domain.Feedback
	for _, f := range r.feedbacks {
		if filter.DealerID != "" && f.DealerID != filter.DealerID {
			continue
		}
		clone := *f
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubFeedbackRepo) RatingSummary(_ context.Context, dealerID string) (int64, float64, error) {
	var n int64
	var sum float64
	for _, f := range r.feedbacks {
		if dealerID == "" || f.DealerID == dealerID {
			n++
			sum += float64(f.Rating)
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return n, sum / float64(n), nil
}

type stubOfferRepo struct {
	offers       map[string]*domain.Offer
	incrementErr error
}

func newStubOfferRepo() *stubOfferRepo {
	return &stubOfferRepo{offers: make(map[string]*domain.Offer)}
}

func (r *stubOfferRepo) Create(_ context.Context, o *domain.Offer) error {
	if o.ID == "" {
		o.ID = "off_" + o.Title
	}
	clone := *o
	r.offers[o.ID] = &clone
	return nil
}

func (r *stubOfferRepo) FindByID(_ context.Context, id, dealerID string) (*domain.Offer, error) {
	o, ok := r.offers[id]
	if !ok || (dealerID != "" && o.DealerID != dealerID) {
		return nil, domain.ErrOfferNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOfferRepo) Update(_ context.Context, o *domain.Offer) error {
	if _, ok := r.offers[o.ID]; !ok {
		return domain.ErrOfferNotFound
	}
	clone := *o
	r.offers[o.ID] = &clone
	return nil
}

func (r *stubOfferRepo) Delete(_ context.Context, id, dealerID string) error {
	o, ok := r.offers[id]
	if !ok || (dealerID != "" && o.DealerID != dealerID) {
		return domain.ErrOfferNotFound
	}
	delete(r.offers, id)
	return nil
}

func (r *stubOfferRepo) IncrementLikes(_ context.Context, id string, delta int64) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	o, ok := r.offers[id]
	if !ok {
		return domain.ErrOfferNotFound
	}
	o.Likes += delta
	return nil
}

func (r *stubOfferRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.Offer, int64, error) {
	var out []*domain.Offer
	for _, o := range r.offers {
		if filter.DealerID != "" && o.DealerID != filter.DealerID {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubOfferRepo) ActiveSummary(_ context.Context, dealerID string, at time.Time) (int64, int64, error) {
	var count, likes int64
	for _, o := range r.offers {
		if (dealerID == "" || o.DealerID == dealerID) && o.Active(at) {
			count++
			likes += o.Likes
		}
	}
	return count, likes, nil
}

type stubLikeRegistry struct {
	seen map[string]bool
}

func newStubLikeRegistry() *stubLikeRegistry {
	return &stubLikeRegistry{seen: make(map[string]bool)}
}

func (r *stubLikeRegistry) Register(_ context.Context, offerID, userID string) error {
	key := offerID + ":" + userID
	if r.seen[key] {
		return domain.ErrAlreadyLiked
	}
	r.seen[key] = true
	return nil
}

func (r *stubLikeRegistry) Deregister(_ context.Context, offerID, userID string) error {
	delete(r.seen, offerID+":"+userID)
	return nil
}

type stubLoyaltyRepo struct {
	entries []*domain.LoyaltyEntry
}

func (r *stubLoyaltyRepo) Append(_ context.Context, e *domain.LoyaltyEntry) error {
	clone := *e
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubLoyaltyRepo) Ledger(_ context.Context, ownerID string, _ ports.ListFilter) ([]*domain.LoyaltyEntry, int64, error) {
	var out []*domain.LoyaltyEntry
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubLoyaltyRepo) Balance(_ context.Context, ownerID string) (int64, error) {
	var sum int64
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			sum += e.Points
		}
	}
	return sum, nil
}

type stubQueue struct {
	enqueued []ports.EscalationInput
}

func (q *stubQueue) Enqueue(in ports.EscalationInput) {
	q.enqueued = append(q.enqueued, in)
}

type dealerFixture struct {
	products  *stubProductRepo
	enquiries *stubEnquiryRepo
	feedbacks *stubFeedbackRepo
	offers    *stubOfferRepo
	likes     *stubLikeRegistry
	loyalty   *stubLoyaltyRepo
	queue     *stubQueue
	svc       *DealerService
}

func newDealerFixture() *dealerFixture {
	f := &dealerFixture{
		products:  newStubProductRepo(),
		enquiries: newStubEnquiryRepo(),
		feedbacks: newStubFeedbackRepo(),
		offers:    newStubOfferRepo(),
		likes:     newStubLikeRegistry(),
		loyalty:   &stubLoyaltyRepo{},
		queue:     &stubQueue{},
	}
	f.svc = NewDealerService(f.products, f.enquiries, f.feedbacks, f.offers, f.likes, f.loyalty, f.queue, discardLogger)
	return f
}

var (
	dealerScope  = ports.Scope{Role: domain.RoleDealer, UserID: "u_dealer", DealerID: "dealer_a"}
	adminScope   = ports.Scope{Role: domain.RoleAdmin, UserID: "u_admin"}
	userScope    = ports.Scope{Role: domain.RoleGeneralUser, UserID: "u_buyer"}
	partnerScope = ports.Scope{Role: domain.RolePartner, UserID: "u_partner"}
)

// ------------------------------------------------------------------ //
// Product tests

func TestListProducts_DealerSeesOwnOnly(t *testing.T) {
	f := newDealerFixture()
	f.products.products["p1"] = &domain.Product{ID: "p1", DealerID: "dealer_a", Name: "Cement"}
	f.products.products["p2"] = &domain.Product{ID: "p2", DealerID: "dealer_b", Name: "Bricks"}

	res, err := f.svc.ListProducts(context.Background(), dealerScope, ports.ListInput{})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if res.Total != 1 || len(res.Items) != 1 {
		t.Fatalf("got %d items (total %d), want 1", len(res.Items), res.Total)
	}
	if res.Items[0].DealerID != "dealer_a" {
		t.Errorf("leaked product of dealer %q", res.Items[0].DealerID)
	}
}

func TestListProducts_AdminSeesAll(t *testing.T) {
	f := newDealerFixture()
	f.products.products["p1"] = &domain.Product{ID: "p1", DealerID: "dealer_a"}
	f.products.products["p2"] = &domain.Product{ID: "p2", DealerID: "dealer_b"}

	res, err := f.svc.ListProducts(context.Background(), adminScope, ports.ListInput{})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("admin total = %d, want 2", res.Total)
	}
}

func TestListProducts_PaginationNormalized(t *testing.T) {
	f := newDealerFixture()

	if _, err := f.svc.ListProducts(context.Background(), adminScope, ports.ListInput{Page: 0, Limit: 500}); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if f.products.lastFilter.Page != 1 {
		t.Errorf("page = %d, want clamped to 1", f.products.lastFilter.Page)
	}
	if f.products.lastFilter.Limit != 100 {
		t.Errorf("limit = %d, want capped at 100", f.products.lastFilter.Limit)
	}

	if _, err := f.svc.ListProducts(context.Background(), adminScope, ports.ListInput{}); err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if f.products.lastFilter.Limit != 20 {
		t.Errorf("default limit = %d, want 20", f.products.lastFilter.Limit)
	}
}

func TestAddProduct_SetsOwnerAndTimestamps(t *testing.T) {
	f := newDealerFixture()

	p, err := f.svc.AddProduct(context.Background(), dealerScope, ports.ProductInput{
		Name: "Cement", Category: "construction", Price: 650, Currency: "KES",
	})
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if p.DealerID != "dealer_a" {
		t.Errorf("dealer_id = %q, want dealer_a", p.DealerID)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps not set on create")
	}
	if len(f.products.products) != 1 {
		t.Errorf("stored products = %d, want 1", len(f.products.products))
	}
}

func TestAddProduct_RequiresDealerContext(t *testing.T) {
	f := newDealerFixture()

	if _, err := f.svc.AddProduct(context.Background(), userScope, ports.ProductInput{Name: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("general_user AddProduct err = %v, want ErrForbidden", err)
	}
	// Admins create on behalf of a dealer, never without one.
	if _, err := f.svc.AddProduct(context.Background(), adminScope, ports.ProductInput{Name: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("admin without dealer AddProduct err = %v, want ErrForbidden", err)
	}
}

func TestUpdateProduct_OtherDealerBlocked(t *testing.T) {
	f := newDealerFixture()
	f.products.products["p1"] = &domain.Product{ID: "p1", DealerID: "dealer_b", Name: "Bricks"}

	if _, err := f.svc.UpdateProduct(context.Background(), dealerScope, "p1", ports.ProductInput{Name: "Stolen"}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("cross-dealer update err = %v, want ErrProductNotFound", err)
	}
	if f.products.products["p1"].Name != "Bricks" {
		t.Error("cross-dealer update mutated the record")
	}
}

// ------------------------------------------------------------------ //
// Enquiry tests

func TestListEnquiries_PrivateToDealer(t *testing.T) {
	f := newDealerFixture()

	for _, scope := range []ports.Scope{userScope, partnerScope} {
		if _, err := f.svc.ListEnquiries(context.Background(), scope, ports.ListInput{}); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s ListEnquiries err = %v, want ErrForbidden", scope.Role, err)
		}
		if _, err := f.svc.GetEnquiry(context.Background(), scope, "e1"); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s GetEnquiry err = %v, want ErrForbidden", scope.Role, err)
		}
	}
}

func TestCreateEnquiry_InitialState(t *testing.T) {
	f := newDealerFixture()

	e, err := f.svc.CreateEnquiry(context.Background(), "dealer_a", &domain.Enquiry{
		CustomerName: "Jane", Subject: "Delivery", Message: "Do you deliver to Nakuru?",
	})
	if err != nil {
		t.Fatalf("CreateEnquiry: %v", err)
	}
	if e.Status != domain.EnquiryOpen {
		t.Errorf("status = %s, want open", e.Status)
	}
	if !strings.HasPrefix(e.Reference, "ENQ-") || len(e.Reference) != 12 {
		t.Errorf("reference = %q, want ENQ- prefix with 8 hex digits", e.Reference)
	}
	if e.DealerID != "dealer_a" {
		t.Errorf("dealer_id = %q, want dealer_a", e.DealerID)
	}
}

func TestRespondToEnquiry_AppendsResponse(t *testing.T) {
	f := newDealerFixture()
	f.enquiries.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_a", Status: domain.EnquiryOpen}

	e, err := f.svc.RespondToEnquiry(context.Background(), dealerScope, ports.RespondInput{
		EnquiryID: "e1", Message: "Yes, we deliver countrywide.",
	})
	if err != nil {
		t.Fatalf("RespondToEnquiry: %v", err)
	}
	if e.Status != domain.EnquiryResponded {
		t.Errorf("status = %s, want responded", e.Status)
	}
	if len(e.Responses) != 1 || e.Responses[0].Responder != "u_dealer" {
		t.Errorf("responses = %+v, want one entry by u_dealer", e.Responses)
	}
}

func TestRespondToEnquiry_CloseFlag(t *testing.T) {
	f := newDealerFixture()
	f.enquiries.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_a", Status: domain.EnquiryResponded}

	e, err := f.svc.RespondToEnquiry(context.Background(), dealerScope, ports.RespondInput{
		EnquiryID: "e1", Message: "Closing, resolved by phone.", Close: true,
	})
	if err != nil {
		t.Fatalf("RespondToEnquiry: %v", err)
	}
	if e.Status != domain.EnquiryClosed {
		t.Errorf("status = %s, want closed", e.Status)
	}
}

func TestRespondToEnquiry_ClosedIsTerminal(t *testing.T) {
	f := newDealerFixture()
	f.enquiries.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_a", Status: domain.EnquiryClosed}

	_, err := f.svc.RespondToEnquiry(context.Background(), dealerScope, ports.RespondInput{EnquiryID: "e1", Message: "too late"})
	if !errors.Is(err, domain.ErrInvalidEnquiryTransition) {
		t.Errorf("err = %v, want ErrInvalidEnquiryTransition", err)
	}
	if len(f.enquiries.enquiries["e1"].Responses) != 0 {
		t.Error("response recorded on a closed enquiry")
	}
}

func TestSendEnquiryToAdmin_Enqueues(t *testing.T) {
	f := newDealerFixture()
	f.enquiries.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_a", Status: domain.EnquiryOpen}

	if err := f.svc.SendEnquiryToAdmin(context.Background(), dealerScope, "e1", "customer unreachable"); err != nil {
		t.Fatalf("SendEnquiryToAdmin: %v", err)
	}
	if len(f.queue.enqueued) != 1 {
		t.Fatalf("enqueued = %d, want 1", len(f.queue.enqueued))
	}
	got := f.queue.enqueued[0]
	if got.EnquiryID != "e1" || got.DealerID != "dealer_a" || got.Reason != "customer unreachable" {
		t.Errorf("enqueued = %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Error("escalation timestamp not set")
	}
	// Status is untouched until the dispatcher processes the item.
	if f.enquiries.enquiries["e1"].Status != domain.EnquiryOpen {
		t.Errorf("status changed synchronously to %s", f.enquiries.enquiries["e1"].Status)
	}
}

func TestSendEnquiryToAdmin_UnknownIDFailsFast(t *testing.T) {
	f := newDealerFixture()

	if err := f.svc.SendEnquiryToAdmin(context.Background(), dealerScope, "missing", "x"); !errors.Is(err, domain.ErrEnquiryNotFound) {
		t.Errorf("err = %v, want ErrEnquiryNotFound", err)
	}
	if len(f.queue.enqueued) != 0 {
		t.Error("escalation enqueued for a missing enquiry")
	}
}

func TestSendEnquiryToAdmin_CrossDealerBlocked(t *testing.T) {
	f := newDealerFixture()
	f.enquiries.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_b", Status: domain.EnquiryOpen}

	if err := f.svc.SendEnquiryToAdmin(context.Background(), dealerScope, "e1", "x"); !errors.Is(err, domain.ErrEnquiryNotFound) {
		t.Errorf("err = %v, want ErrEnquiryNotFound", err)
	}
	if len(f.queue.enqueued) != 0 {
		t.Error("escalation enqueued for another dealer's enquiry")
	}
}

// ------------------------------------------------------------------ //
// Feedback tests

func TestReportFeedback(t *testing.T) {
	f := newDealerFixture()
	f.feedbacks.feedbacks["fb1"] = &domain.Feedback{ID: "fb1", DealerID: "dealer_a", Rating: 1, Comment: "abusive"}

	if err := f.svc.ReportFeedback(context.Background(), dealerScope, "fb1", "contains profanity"); err != nil {
		t.Fatalf("ReportFeedback: %v", err)
	}
	got := f.feedbacks.feedbacks["fb1"]
	if !got.Reported || got.ReportReason != "contains profanity" {
		t.Errorf("feedback after report = %+v", got)
	}
}

func TestReportFeedback_Replay(t *testing.T) {
	f := newDealerFixture()
	f.feedbacks.feedbacks["fb1"] = &domain.Feedback{ID: "fb1", DealerID: "dealer_a", Reported: true, ReportReason: "spam"}

	err := f.svc.ReportFeedback(context.Background(), dealerScope, "fb1", "again")
	if !errors.Is(err, domain.ErrAlreadyReported) {
		t.Errorf("err = %v, want ErrAlreadyReported", err)
	}
	if f.feedbacks.feedbacks["fb1"].ReportReason != "spam" {
		t.Error("replay overwrote the original report reason")
	}
}

// ------------------------------------------------------------------ //
// Offer tests

func TestLikeOffer_OncePerUser(t *testing.T) {
	f := newDealerFixture()
	f.offers.offers["o1"] = &domain.Offer{ID: "o1", DealerID: "dealer_a", Title: "Sale"}

	if err := f.svc.LikeOffer(context.Background(), userScope, "o1"); err != nil {
		t.Fatalf("LikeOffer: %v", err)
	}
	if f.offers.offers["o1"].Likes != 1 {
		t.Errorf("likes = %d, want 1", f.offers.offers["o1"].Likes)
	}

	if err := f.svc.LikeOffer(context.Background(), userScope, "o1"); !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Errorf("second like err = %v, want ErrAlreadyLiked", err)
	}
	if f.offers.offers["o1"].Likes != 1 {
		t.Errorf("likes after replay = %d, want unchanged 1", f.offers.offers["o1"].Likes)
	}

	other := ports.Scope{Role: domain.RoleGeneralUser, UserID: "u_other"}
	if err := f.svc.LikeOffer(context.Background(), other, "o1"); err != nil {
		t.Fatalf("second user LikeOffer: %v", err)
	}
	if f.offers.offers["o1"].Likes != 2 {
		t.Errorf("likes = %d, want 2", f.offers.offers["o1"].Likes)
	}
}

func TestLikeOffer_UnknownOffer(t *testing.T) {
	f := newDealerFixture()

	if err := f.svc.LikeOffer(context.Background(), userScope, "missing"); !errors.Is(err, domain.ErrOfferNotFound) {
		t.Errorf("err = %v, want ErrOfferNotFound", err)
	}
}

func TestLikeOffer_CounterFailureReleasesRegistration(t *testing.T) {
	f := newDealerFixture()
	f.offers.offers["o1"] = &domain.Offer{ID: "o1", DealerID: "dealer_a", Title: "Promo"}
	f.offers.incrementErr = errors.New("write timeout")

	if err := f.svc.LikeOffer(context.Background(), userScope, "o1"); err == nil {
		t.Fatal("LikeOffer succeeded despite counter failure")
	}

	// The registration must not survive a failed increment: the retry is
	// a fresh like, not a replay, and it counts exactly once.
	f.offers.incrementErr = nil
	if err := f.svc.LikeOffer(context.Background(), userScope, "o1"); err != nil {
		t.Fatalf("retry after counter failure: %v", err)
	}
	if got := f.offers.offers["o1"].Likes; got != 1 {
		t.Errorf("likes = %d, want 1", got)
	}
}

func TestAddOffer_ResetsLikes(t *testing.T) {
	f := newDealerFixture()

	o, err := f.svc.AddOffer(context.Background(), dealerScope, &domain.Offer{Title: "Launch", Likes: 99})
	if err != nil {
		t.Fatalf("AddOffer: %v", err)
	}
	if o.Likes != 0 {
		t.Errorf("likes = %d, want 0 on create", o.Likes)
	}
	if o.DealerID != "dealer_a" {
		t.Errorf("dealer_id = %q, want dealer_a", o.DealerID)
	}
}

// ------------------------------------------------------------------ //
// Stats tests

func TestGetStats_Aggregates(t *testing.T) {
	f := newDealerFixture()
	now := time.Now().UTC()

	f.products.products["p1"] = &domain.Product{ID: "p1", DealerID: "dealer_a"}
	f.products.products["p2"] = &domain.Product{ID: "p2", DealerID: "dealer_a"}
	f.products.products["p3"] = &domain.Product{ID: "p3", DealerID: "dealer_b"}

	f.enquiries.enquiries["e1"] = &domain.Enquiry{ID: "e1", DealerID: "dealer_a", Status: domain.EnquiryOpen}
	f.enquiries.enquiries["e2"] = &domain.Enquiry{ID: "e2", DealerID: "dealer_a", Status: domain.EnquiryClosed}

	f.feedbacks.feedbacks["fb1"] = &domain.Feedback{ID: "fb1", DealerID: "dealer_a", Rating: 4}
	f.feedbacks.feedbacks["fb2"] = &domain.Feedback{ID: "fb2", DealerID: "dealer_a", Rating: 2}

	f.offers.offers["o1"] = &domain.Offer{
		ID: "o1", DealerID: "dealer_a", Likes: 7,
		ValidFrom: now.Add(-time.Hour), ValidUntil: now.Add(time.Hour),
	}
	f.offers.offers["o2"] = &domain.Offer{
		ID: "o2", DealerID: "dealer_a", Likes: 3,
		ValidFrom: now.Add(-48 * time.Hour), ValidUntil: now.Add(-24 * time.Hour),
	}

	f.loyalty.entries = []*domain.LoyaltyEntry{
		{OwnerID: "dealer_a", Points: 100},
		{OwnerID: "dealer_a", Points: -30},
		{OwnerID: "dealer_b", Points: 500},
	}

	stats, err := f.svc.GetStats(context.Background(), dealerScope)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.Products != 2 {
		t.Errorf("products = %d, want 2", stats.Products)
	}
	if stats.OpenEnquiries != 1 || stats.TotalEnquiries != 2 {
		t.Errorf("enquiries = %d open / %d total, want 1/2", stats.OpenEnquiries, stats.TotalEnquiries)
	}
	if stats.Feedbacks != 2 || stats.AverageRating != 3 {
		t.Errorf("feedbacks = %d avg %.1f, want 2 avg 3.0", stats.Feedbacks, stats.AverageRating)
	}
	if stats.ActiveOffers != 1 || stats.OfferLikes != 7 {
		t.Errorf("offers = %d active / %d likes, want 1/7", stats.ActiveOffers, stats.OfferLikes)
	}
	if stats.LoyaltyBalance != 70 {
		t.Errorf("loyalty balance = %d, want 70", stats.LoyaltyBalance)
	}
}

func TestGetStats_RequiresDealerContext(t *testing.T) {
	f := newDealerFixture()

	if _, err := f.svc.GetStats(context.Background(), userScope); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("general_user GetStats err = %v, want ErrForbidden", err)
	}
}
