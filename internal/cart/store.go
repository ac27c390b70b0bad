package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dignitasjota/eCommerce-origen-sub000/internal/models"
)

// Carts are volatile by design: thirty days untouched and they expire.
const cartTTL = 30 * 24 * time.Hour

// Store keeps account carts in Redis as a JSON item list per user.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(userID string) string {
	return "cart:" + userID
}

// Get returns the stored items; a missing key is an empty cart, not an error.
func (s *Store) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	raw, err := s.rdb.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("corrupt cart for %s: %v", userID, err)
	}
	return items, nil
}

// Put replaces the whole cart. The storefront owns merge semantics.
func (s *Store) Put(ctx context.Context, userID string, items []models.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(userID), raw, cartTTL).Err()
}

func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, key(userID)).Err()
}
