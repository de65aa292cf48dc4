package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/vkoval/automarket/internal/domain"
)

// LedgerStore persists cart quantities and favorite membership per session
// in Redis: one hash of productID -> quantity for the cart, one set of
// product ids for favorites. It implements domain.LedgerStore.
type LedgerStore struct {
	client *redis.Client
}

// NewLedgerStore creates a new Redis-backed ledger store
func NewLedgerStore(client *redis.Client) *LedgerStore {
	return &LedgerStore{client: client}
}

func (s *LedgerStore) cartKey(session string) string {
	return fmt.Sprintf("cart:%s:items", session)
}

func (s *LedgerStore) favoritesKey(session string) string {
	return fmt.Sprintf("favorites:%s:ids", session)
}

// GetCart returns the productID -> quantity mapping for a session.
// Malformed stored quantities are dropped rather than surfaced, so a
// corrupted hash reads as (partially) empty.
func (s *LedgerStore) GetCart(ctx context.Context, session string) (map[string]int, error) {
	raw, err := s.client.HGetAll(ctx, s.cartKey(session)).Result()
	if err != nil {
		return nil, err
	}

	cart := make(map[string]int, len(raw))
	for id, val := range raw {
		qty, err := strconv.Atoi(val)
		if err != nil || qty < 1 {
			continue
		}
		cart[id] = qty
	}
	return cart, nil
}

// SetItem writes the quantity for one product.
func (s *LedgerStore) SetItem(ctx context.Context, session, productID string, quantity int) error {
	return s.client.HSet(ctx, s.cartKey(session), productID, quantity).Err()
}

// RemoveItem deletes one product's entry.
func (s *LedgerStore) RemoveItem(ctx context.Context, session, productID string) error {
	return s.client.HDel(ctx, s.cartKey(session), productID).Err()
}

// ClearCart deletes all cart entries for a session.
func (s *LedgerStore) ClearCart(ctx context.Context, session string) error {
	return s.client.Del(ctx, s.cartKey(session)).Err()
}

// GetFavorites returns the set of favorited product ids.
func (s *LedgerStore) GetFavorites(ctx context.Context, session string) (map[string]bool, error) {
	members, err := s.client.SMembers(ctx, s.favoritesKey(session)).Result()
	if err != nil {
		if err == redis.Nil {
			return map[string]bool{}, nil
		}
		return nil, err
	}

	favorites := make(map[string]bool, len(members))
	for _, id := range members {
		favorites[id] = true
	}
	return favorites, nil
}

// AddFavorite adds a product to the favorites set.
func (s *LedgerStore) AddFavorite(ctx context.Context, session, productID string) error {
	return s.client.SAdd(ctx, s.favoritesKey(session), productID).Err()
}

// RemoveFavorite removes a product from the favorites set.
func (s *LedgerStore) RemoveFavorite(ctx context.Context, session, productID string) error {
	return s.client.SRem(ctx, s.favoritesKey(session), productID).Err()
}

var _ domain.LedgerStore = (*LedgerStore)(nil)
