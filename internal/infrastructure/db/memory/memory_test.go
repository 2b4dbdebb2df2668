package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

func seedProducts(r *ProductRepository) {
	now := time.Now().UTC()
	r.products["p1"] = &domain.Product{ID: "p1", DealerID: "d1", Name: "OPC Cement", Category: "cement", Price: 400, CreatedAt: now.Add(-3 * time.Hour)}
	r.products["p2"] = &domain.Product{ID: "p2", DealerID: "d1", Name: "White Cement", Category: "cement", Price: 900, CreatedAt: now.Add(-2 * time.Hour)}
	r.products["p3"] = &domain.Product{ID: "p3", DealerID: "d1", Name: "TMT Bar", Category: "steel", Price: 62, CreatedAt: now.Add(-1 * time.Hour)}
	r.products["p4"] = &domain.Product{ID: "p4", DealerID: "d2", Name: "River Sand", Category: "aggregate", Price: 1800, CreatedAt: now}
}

func TestProductList_Filters(t *testing.T) {
	r := NewProductRepository(NewStore(0))
	seedProducts(r)
	ctx := context.Background()

	rows, total, err := r.List(ctx, ports.ListFilter{DealerID: "d1", Category: "cement"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("cement rows = %d (total %d), want 2", len(rows), total)
	}

	rows, total, err = r.List(ctx, ports.ListFilter{DealerID: "d1", Search: "cement"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("search total = %d, want 2 (case-insensitive substring)", total)
	}
	for _, p := range rows {
		if p.DealerID != "d1" {
			t.Errorf("leaked product %s of dealer %s", p.ID, p.DealerID)
		}
	}
}

func TestProductList_SortAndPaginate(t *testing.T) {
	r := NewProductRepository(NewStore(0))
	seedProducts(r)

	rows, total, err := r.List(context.Background(), ports.ListFilter{
		DealerID: "d1", SortBy: "price", SortAsc: true, Page: 1, Limit: 2,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3 (count before paging)", total)
	}
	if len(rows) != 2 || rows[0].Price > rows[1].Price {
		t.Errorf("page 1 = %+v, want 2 rows ascending by price", rows)
	}

	rows, _, err = r.List(context.Background(), ports.ListFilter{
		DealerID: "d1", SortBy: "price", SortAsc: true, Page: 2, Limit: 2,
	})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "White Cement" {
		t.Errorf("page 2 = %+v, want the single most expensive product", rows)
	}

	rows, _, _ = r.List(context.Background(), ports.ListFilter{DealerID: "d1", Page: 9, Limit: 2})
	if len(rows) != 0 {
		t.Errorf("out-of-range page returned %d rows", len(rows))
	}
}

func TestSimulatedLatency_HonorsCancellation(t *testing.T) {
	r := NewProductRepository(NewStore(5 * time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, _, err := r.List(ctx, ports.ListFilter{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if time.Since(start) > time.Second {
		t.Error("cancelled call still waited out the latency")
	}
}

func TestSimulatedLatency_Delays(t *testing.T) {
	r := NewProductRepository(NewStore(30 * time.Millisecond))

	start := time.Now()
	if _, _, err := r.List(context.Background(), ports.ListFilter{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("elapsed = %v, want at least the configured latency", elapsed)
	}
}

func TestOTPStore_IssueAndVerify(t *testing.T) {
	s := NewOTPStore(NewStore(0))
	ctx := context.Background()

	code, err := s.Issue(ctx, "user_1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("code = %q, want 6 digits", code)
	}

	if err := s.Verify(ctx, "user_1", "999999"); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Errorf("wrong code err = %v, want ErrInvalidOTP", err)
	}
	if err := s.Verify(ctx, "user_1", code); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	// Codes are single use.
	if err := s.Verify(ctx, "user_1", code); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Errorf("replayed code err = %v, want ErrInvalidOTP", err)
	}
}

func TestOTPStore_ReissueReplaces(t *testing.T) {
	s := NewOTPStore(NewStore(0))
	ctx := context.Background()

	first, _ := s.Issue(ctx, "user_1")
	second, err := s.Issue(ctx, "user_1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if first != second {
		if err := s.Verify(ctx, "user_1", first); !errors.Is(err, domain.ErrInvalidOTP) {
			t.Errorf("stale code err = %v, want ErrInvalidOTP", err)
		}
	}
	if err := s.Verify(ctx, "user_1", second); err != nil {
		t.Errorf("latest code rejected: %v", err)
	}
}

func TestLikeRegistry_Dedup(t *testing.T) {
	r := NewLikeRegistry(NewStore(0))
	ctx := context.Background()

	if err := r.Register(ctx, "o1", "u1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(ctx, "o1", "u1"); !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Errorf("duplicate err = %v, want ErrAlreadyLiked", err)
	}
	if err := r.Register(ctx, "o1", "u2"); err != nil {
		t.Errorf("different user rejected: %v", err)
	}
	if err := r.Register(ctx, "o2", "u1"); err != nil {
		t.Errorf("different offer rejected: %v", err)
	}
}

func TestLikeRegistry_DeregisterAllowsRetry(t *testing.T) {
	r := NewLikeRegistry(NewStore(0))
	ctx := context.Background()

	if err := r.Register(ctx, "o1", "u1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Deregister(ctx, "o1", "u1"); err != nil {
		t.Fatalf("Deregister: %v", err)
	}
	if err := r.Register(ctx, "o1", "u1"); err != nil {
		t.Errorf("re-register after deregister: %v", err)
	}
	// Deregistering an absent key is a no-op.
	if err := r.Deregister(ctx, "o9", "u9"); err != nil {
		t.Errorf("deregister of unknown key: %v", err)
	}
}

func TestSeed_ProvidesWorkingDataset(t *testing.T) {
	repos := NewRepositories(0)
	repos.Seed()
	ctx := context.Background()

	_, total, err := repos.Products.List(ctx, ports.ListFilter{DealerID: "dealer_demo"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total == 0 {
		t.Error("seed left the demo catalog empty")
	}

	balance, err := repos.Loyalty.Balance(ctx, "dealer_demo")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != 80 {
		t.Errorf("seeded loyalty balance = %d, want 80", balance)
	}
}
