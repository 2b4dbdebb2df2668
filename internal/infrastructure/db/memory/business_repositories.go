package memory

import (
	"context"
	"sort"
	"time"

	"github.com/buildlink/directory-system/internal/core/domain"
	"github.com/buildlink/directory-system/internal/core/ports"
)

// WorkRepository is the in-memory works store for mock mode.
type WorkRepository struct {
	store *Store
	works map[string]*domain.Work
}

func NewWorkRepository(store *Store) *WorkRepository {
	return &WorkRepository{store: store, works: make(map[string]*domain.Work)}
}

func (r *WorkRepository) Create(ctx context.Context, w *domain.Work) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if w.ID == "" {
		w.ID = newID()
	}
	clone := *w
	r.works[w.ID] = &clone
	return nil
}

func (r *WorkRepository) FindByID(ctx context.Context, id string, ownerID string) (*domain.Work, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	w, ok := r.works[id]
	if !ok || (ownerID != "" && w.OwnerID != ownerID) {
		return nil, domain.ErrRecordNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *WorkRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Work, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.Work
	for _, w := range r.works {
		if f.DealerID != "" && w.OwnerID != f.DealerID {
			continue
		}
		if !matches(f.Search, w.Title, w.Location) || !inDateRange(w.CreatedAt, f) {
			continue
		}
		clone := *w
		rows = append(rows, &clone)
	}
	sortByCreated(rows, f.SortAsc, func(w *domain.Work) time.Time { return w.CreatedAt })
	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *WorkRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, w := range r.works {
		if ownerID == "" || w.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// EventRepository is the in-memory events store for mock mode.
type EventRepository struct {
	store  *Store
	events map[string]*domain.Event
}

func NewEventRepository(store *Store) *EventRepository {
	return &EventRepository{store: store, events: make(map[string]*domain.Event)}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if e.ID == "" {
		e.ID = newID()
	}
	clone := *e
	r.events[e.ID] = &clone
	return nil
}

func (r *EventRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Event, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.Event
	for _, e := range r.events {
		if f.DealerID != "" && e.OwnerID != f.DealerID {
			continue
		}
		if !matches(f.Search, e.Title, e.Venue) || !inDateRange(e.CreatedAt, f) {
			continue
		}
		clone := *e
		rows = append(rows, &clone)
	}
	sort.Slice(rows, func(i, j int) bool {
		if f.SortAsc {
			return rows[i].StartsAt.Before(rows[j].StartsAt)
		}
		return rows[j].StartsAt.Before(rows[i].StartsAt)
	})
	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *EventRepository) CountUpcoming(ctx context.Context, ownerID string, after time.Time) (int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, e := range r.events {
		if (ownerID == "" || e.OwnerID == ownerID) && e.StartsAt.After(after) {
			n++
		}
	}
	return n, nil
}

// GalleryRepository is the in-memory gallery store for mock mode.
type GalleryRepository struct {
	store *Store
	items map[string]*domain.GalleryItem
}

func NewGalleryRepository(store *Store) *GalleryRepository {
	return &GalleryRepository{store: store, items: make(map[string]*domain.GalleryItem)}
}

func (r *GalleryRepository) Create(ctx context.Context, g *domain.GalleryItem) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if g.ID == "" {
		g.ID = newID()
	}
	clone := *g
	r.items[g.ID] = &clone
	return nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string, ownerID string) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	g, ok := r.items[id]
	if !ok || (ownerID != "" && g.OwnerID != ownerID) {
		return domain.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *GalleryRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.GalleryItem, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.GalleryItem
	for _, g := range r.items {
		if f.DealerID != "" && g.OwnerID != f.DealerID {
			continue
		}
		if !matches(f.Search, g.Caption) || !inDateRange(g.CreatedAt, f) {
			continue
		}
		clone := *g
		rows = append(rows, &clone)
	}
	sortByCreated(rows, f.SortAsc, func(g *domain.GalleryItem) time.Time { return g.CreatedAt })
	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *GalleryRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, g := range r.items {
		if ownerID == "" || g.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// NoteRepository is the in-memory notes store for mock mode.
type NoteRepository struct {
	store *Store
	notes map[string]*domain.Note
}

func NewNoteRepository(store *Store) *NoteRepository {
	return &NoteRepository{store: store, notes: make(map[string]*domain.Note)}
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if n.ID == "" {
		n.ID = newID()
	}
	clone := *n
	r.notes[n.ID] = &clone
	return nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string, ownerID string) (*domain.Note, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n, ok := r.notes[id]
	if !ok || (ownerID != "" && n.OwnerID != ownerID) {
		return nil, domain.ErrRecordNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *NoteRepository) Update(ctx context.Context, n *domain.Note) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.notes[n.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	clone := *n
	r.notes[n.ID] = &clone
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string, ownerID string) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	n, ok := r.notes[id]
	if !ok || (ownerID != "" && n.OwnerID != ownerID) {
		return domain.ErrRecordNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *NoteRepository) List(ctx context.Context, f ports.ListFilter) ([]*domain.Note, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.Note
	for _, n := range r.notes {
		if f.DealerID != "" && n.OwnerID != f.DealerID {
			continue
		}
		if !matches(f.Search, n.Title, n.Body) || !inDateRange(n.CreatedAt, f) {
			continue
		}
		clone := *n
		rows = append(rows, &clone)
	}
	sortByCreated(rows, f.SortAsc, func(n *domain.Note) time.Time { return n.CreatedAt })
	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *NoteRepository) Count(ctx context.Context, ownerID string) (int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var n int64
	for _, note := range r.notes {
		if ownerID == "" || note.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// LoyaltyRepository is the in-memory loyalty ledger for mock mode.
type LoyaltyRepository struct {
	store   *Store
	entries []*domain.LoyaltyEntry
}

func NewLoyaltyRepository(store *Store) *LoyaltyRepository {
	return &LoyaltyRepository{store: store}
}

func (r *LoyaltyRepository) Append(ctx context.Context, e *domain.LoyaltyEntry) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if e.ID == "" {
		e.ID = newID()
	}
	clone := *e
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *LoyaltyRepository) Ledger(ctx context.Context, ownerID string, f ports.ListFilter) ([]*domain.LoyaltyEntry, int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []*domain.LoyaltyEntry
	for _, e := range r.entries {
		if ownerID != "" && e.OwnerID != ownerID {
			continue
		}
		if !inDateRange(e.CreatedAt, f) {
			continue
		}
		clone := *e
		rows = append(rows, &clone)
	}
	sortByCreated(rows, f.SortAsc, func(e *domain.LoyaltyEntry) time.Time { return e.CreatedAt })
	total := int64(len(rows))
	return paginate(rows, f.Page, f.Limit), total, nil
}

func (r *LoyaltyRepository) Balance(ctx context.Context, ownerID string) (int64, error) {
	if err := r.store.simulate(ctx); err != nil {
		return 0, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sum int64
	for _, e := range r.entries {
		if ownerID == "" || e.OwnerID == ownerID {
			sum += e.Points
		}
	}
	return sum, nil
}

// sortByCreated orders rows by a timestamp key, newest first unless asc.
func sortByCreated[T any](rows []T, asc bool, key func(T) time.Time) {
	sort.Slice(rows, func(i, j int) bool {
		if asc {
			return key(rows[i]).Before(key(rows[j]))
		}
		return key(rows[j]).Before(key(rows[i]))
	})
}
