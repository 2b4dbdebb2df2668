package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/buildlink/directory-system/internal/core/domain"
)

// LikeRegistry deduplicates offer likes per user via Redis SETNX.
// Key format: like:<offer_id>:<user_id>
type LikeRegistry struct {
	client *redis.Client
}

// NewLikeRegistry creates a LikeRegistry wrapping the given Redis client.
func NewLikeRegistry(client *redis.Client) *LikeRegistry {
	return &LikeRegistry{client: client}
}

// Register records the like. Likes never expire; a replay returns
// domain.ErrAlreadyLiked.
func (r *LikeRegistry) Register(ctx context.Context, offerID, userID string) error {
	ok, err := r.client.SetNX(ctx, r.key(offerID, userID), "1", 0).Result()
	if err != nil {
		return fmt.Errorf("like register: %w", err)
	}
	if !ok {
		return domain.ErrAlreadyLiked
	}
	return nil
}

// Deregister releases a registration. Missing keys are not an error, so
// the call is safe to repeat.
func (r *LikeRegistry) Deregister(ctx context.Context, offerID, userID string) error {
	if err := r.client.Del(ctx, r.key(offerID, userID)).Err(); err != nil {
		return fmt.Errorf("like deregister: %w", err)
	}
	return nil
}

func (r *LikeRegistry) key(offerID, userID string) string {
	return fmt.Sprintf("like:%s:%s", offerID, userID)
}
