// internal/domain/cart/redis_store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/shopapp-backend/internal/config"
)

// RedisStore keeps carts in Redis keyed by user ID
type RedisStore struct {
	redisClient *redis.Client
	config      *config.Config
}

// NewRedisStore creates a new Redis-backed cart store
func NewRedisStore(redisClient *redis.Client, cfg *config.Config) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		config:      cfg,
	}
}

// Items returns a snapshot of the user's cart lines
func (s *RedisStore) Items(ctx context.Context, userID uint) ([]LineItem, error) {
	sessionCart, err := s.getCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sessionCart == nil {
		return []LineItem{}, nil
	}

	// Copy so callers cannot mutate the stored slice
	items := make([]LineItem, len(sessionCart.Items))
	copy(items, sessionCart.Items)
	return items, nil
}

// AddItem adds a line to the user's cart
func (s *RedisStore) AddItem(ctx context.Context, userID uint, item LineItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if item.UnitPrice < 0 {
		return fmt.Errorf("unit price cannot be negative")
	}

	sessionCart, err := s.getCart(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if sessionCart == nil {
		sessionCart = &SessionCart{
			UserID:    userID,
			CreatedAt: now,
		}
	}

	// Merge quantity into an existing line for the same product
	merged := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == item.ProductID {
			sessionCart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		sessionCart.Items = append(sessionCart.Items, item)
	}
	sessionCart.UpdatedAt = now

	return s.saveCart(ctx, sessionCart)
}

// Clear removes the user's cart entirely
func (s *RedisStore) Clear(ctx context.Context, userID uint) error {
	return s.redisClient.Del(ctx, s.cartKey(userID)).Err()
}

// Private helper methods

func (s *RedisStore) cartKey(userID uint) string {
	return fmt.Sprintf("cart:user:%d", userID)
}

func (s *RedisStore) getCart(ctx context.Context, userID uint) (*SessionCart, error) {
	data, err := s.redisClient.Get(ctx, s.cartKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(data), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &sessionCart, nil
}

func (s *RedisStore) saveCart(ctx context.Context, sessionCart *SessionCart) error {
	data, err := json.Marshal(sessionCart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	ttl := s.config.Checkout.CartTTL
	if err := s.redisClient.Set(ctx, s.cartKey(sessionCart.UserID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
