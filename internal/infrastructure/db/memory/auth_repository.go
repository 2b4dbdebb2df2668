package memory

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// AuthRepository is the in-memory account store for mock mode.
type AuthRepository struct {
	store *Store
	users map[string]*domain.User // keyed by ID
}

func NewAuthRepository(store *Store) *AuthRepository {
	return &AuthRepository{store: store, users: make(map[string]*domain.User)}
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}

	clone := *user
	clone.ID = newID()
	r.users[clone.ID] = &clone

	out := clone
	return &out, nil
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *AuthRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := r.store.simulate(ctx); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *AuthRepository) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Status = status
	return nil
}

// OTPStore is the in-memory OTP issuer for mock mode. Codes do not expire
// here; expiry is a property of the Redis-backed store.
type OTPStore struct {
	store *Store
	codes map[string]string // userID -> code
}

func NewOTPStore(store *Store) *OTPStore {
	return &OTPStore{store: store, codes: make(map[string]string)}
}

func (s *OTPStore) Issue(ctx context.Context, userID string) (string, error) {
	if err := s.store.simulate(ctx); err != nil {
		return "", err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	s.store.mu.Lock()
	s.codes[userID] = code
	s.store.mu.Unlock()
	return code, nil
}

func (s *OTPStore) Verify(ctx context.Context, userID, code string) error {
	if err := s.store.simulate(ctx); err != nil {
		return err
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	stored, ok := s.codes[userID]
	if !ok || stored != code {
		return domain.ErrInvalidOTP
	}
	delete(s.codes, userID)
	return nil
}

// LikeRegistry deduplicates offer likes in memory for mock mode.
type LikeRegistry struct {
	store *Store
	seen  map[string]struct{} // offerID + "\x00" + userID
}

func NewLikeRegistry(store *Store) *LikeRegistry {
	return &LikeRegistry{store: store, seen: make(map[string]struct{})}
}

func (r *LikeRegistry) Register(ctx context.Context, offerID, userID string) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := offerID + "\x00" + userID
	if _, dup := r.seen[key]; dup {
		return domain.ErrAlreadyLiked
	}
	r.seen[key] = struct{}{}
	return nil
}

func (r *LikeRegistry) Deregister(ctx context.Context, offerID, userID string) error {
	if err := r.store.simulate(ctx); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.seen, offerID+"\x00"+userID)
	return nil
}
