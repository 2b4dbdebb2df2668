// Package memory implements every repository interface against in-memory
// maps. It backs mock mode: the service layer is wired identically, only
// the storage is swapped. An optional artificial latency mimics remote
// round trips so clients exercise their loading states.
package memory

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/buildlink/directory-system/internal/core/ports"
)

// Store carries the knobs shared by all in-memory repositories.
type Store struct {
	mu      sync.RWMutex
	latency time.Duration
}

// NewStore creates the shared backing store. latency <= 0 disables the
// artificial delay (tests).
func NewStore(latency time.Duration) *Store {
	return &Store{latency: latency}
}

// simulate blocks for the configured latency, honoring ctx cancellation.
func (s *Store) simulate(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// newID returns a random 12-byte hex identifier.
func newID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}

// matches reports whether needle is a case-insensitive substring of any
// of the haystack fields.
func matches(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// inDateRange applies the optional created_at bounds of a filter.
func inDateRange(t time.Time, f ports.ListFilter) bool {
	if !f.DateFrom.IsZero() && t.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && t.After(f.DateTo) {
		return false
	}
	return true
}

// paginate slices one page out of the already-filtered rows.
func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
