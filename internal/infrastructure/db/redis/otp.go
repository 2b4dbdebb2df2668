package redis

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buildlink/directory-system/internal/core/domain"
)

const defaultOTPTTL = 5 * time.Minute

// OTPStore issues and verifies one-time codes backed by Redis TTL keys.
// Key format: otp:<user_id>
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPStore creates an OTPStore wrapping the given Redis client.
func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	return &OTPStore{client: client, ttl: ttl}
}

// Issue stores a fresh 6-digit code for the user, replacing any earlier
// one. The code expires after the configured TTL.
func (s *OTPStore) Issue(ctx context.Context, userID string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("otp issue: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("otp issue: %w", err)
	}
	return code, nil
}

// Verify consumes the stored code. Wrong or expired codes return
// domain.ErrInvalidOTP; a successful verification deletes the key so the
// code is single-use.
func (s *OTPStore) Verify(ctx context.Context, userID, code string) error {
	stored, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ErrInvalidOTP
	}
	if err != nil {
		return fmt.Errorf("otp verify: %w", err)
	}
	if stored != code {
		return domain.ErrInvalidOTP
	}
	return s.client.Del(ctx, s.key(userID)).Err()
}

func (s *OTPStore) key(userID string) string {
	return "otp:" + userID
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
