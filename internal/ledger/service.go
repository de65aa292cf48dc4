package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vkoval/automarket/internal/domain"
	"github.com/vkoval/automarket/internal/pkg/logger"
)

// ProductLookup resolves a product from the current catalog snapshot.
// Quantity bounds are validated against it on every mutation; stock can
// still change between validation and checkout, which checkout owns.
type ProductLookup interface {
	Product(ctx context.Context, id string) (*domain.Product, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// CartEvent represents a ledger mutation event
type CartEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
	ProductID string    `json:"product_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
}

// Service tracks per-product cart quantities and favorite membership.
// Each call is individually atomic under the service mutex; a sequence of
// calls is not transactional.
type Service struct {
	store     domain.LedgerStore
	catalog   ProductLookup
	publisher EventPublisher
	logger    *logger.Logger
	mu        sync.Mutex
}

// NewService creates a new ledger service
func NewService(
	store domain.LedgerStore,
	catalog ProductLookup,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		store:     store,
		catalog:   catalog,
		publisher: publisher,
		logger:    log,
	}
}

// AddOrIncrement adds delta to the product's cart quantity, creating the
// entry at delta if absent. A result above available stock is rejected
// with no mutation rather than silently clamped.
func (s *Service) AddOrIncrement(ctx context.Context, session, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if delta < 1 {
		return domain.ErrInvalidInput
	}

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return err
	}

	cart, err := s.store.GetCart(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load cart", err)
		return err
	}

	next := cart[productID] + delta
	if next > product.StockQuantity {
		return domain.ErrStockExceeded
	}

	if err := s.store.SetItem(ctx, session, productID, next); err != nil {
		s.logger.Error("Failed to write cart item", err)
		return err
	}

	s.publishEvent(session, "cart.item_added", productID, next)
	return nil
}

// SetQuantity sets the cart quantity for a product. Below 1 it is
// equivalent to Remove; above the product's stock it is rejected with no
// effect and the caller is told via ErrStockExceeded.
func (s *Service) SetQuantity(ctx context.Context, session, productID string, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, session, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return err
	}

	if quantity > product.StockQuantity {
		return domain.ErrStockExceeded
	}

	if err := s.store.SetItem(ctx, session, productID, quantity); err != nil {
		s.logger.Error("Failed to write cart item", err)
		return err
	}

	s.publishEvent(session, "cart.quantity_set", productID, quantity)
	return nil
}

// Remove deletes a product's cart entry. Removing a missing entry is a
// no-op, not an error.
func (s *Service) Remove(ctx context.Context, session, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.RemoveItem(ctx, session, productID); err != nil {
		s.logger.Error("Failed to remove cart item", err)
		return err
	}

	s.publishEvent(session, "cart.item_removed", productID, 0)
	return nil
}

// ToggleFavorite flips favorite membership for a product and returns the
// new state. Toggling twice restores the original state.
func (s *Service) ToggleFavorite(ctx context.Context, session, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.catalog.Product(ctx, productID); err != nil {
		return false, err
	}

	favorites, err := s.store.GetFavorites(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load favorites", err)
		return false, err
	}

	if favorites[productID] {
		if err := s.store.RemoveFavorite(ctx, session, productID); err != nil {
			return false, err
		}
		s.publishEvent(session, "favorites.removed", productID, 0)
		return false, nil
	}

	if err := s.store.AddFavorite(ctx, session, productID); err != nil {
		return false, err
	}
	s.publishEvent(session, "favorites.added", productID, 0)
	return true, nil
}

// ClearAll destroys every cart entry for the session. There is no undo;
// requiring confirmation is the UI's job.
func (s *Service) ClearAll(ctx context.Context, session string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearCart(ctx, session); err != nil {
		s.logger.Error("Failed to clear cart", err)
		return err
	}

	s.publishEvent(session, "cart.cleared", "", 0)
	return nil
}

// Cart returns the session's cart entries ordered by product id.
func (s *Service) Cart(ctx context.Context, session string) ([]domain.CartItem, error) {
	cart, err := s.store.GetCart(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load cart", err)
		return nil, err
	}

	items := make([]domain.CartItem, 0, len(cart))
	for id, qty := range cart {
		items = append(items, domain.CartItem{ProductID: id, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items, nil
}

// Favorites returns the session's favorited product ids, sorted.
func (s *Service) Favorites(ctx context.Context, session string) ([]string, error) {
	favorites, err := s.store.GetFavorites(ctx, session)
	if err != nil {
		s.logger.Error("Failed to load favorites", err)
		return nil, err
	}

	ids := make([]string, 0, len(favorites))
	for id := range favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// TotalCount folds the cart into a total unit count.
func (s *Service) TotalCount(ctx context.Context, session string) (int, error) {
	cart, err := s.store.GetCart(ctx, session)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, qty := range cart {
		total += qty
	}
	return total, nil
}

// TotalValue folds the cart into a total price using current snapshot
// prices. Entries whose product has left the catalog are skipped.
func (s *Service) TotalValue(ctx context.Context, session string) (float64, error) {
	cart, err := s.store.GetCart(ctx, session)
	if err != nil {
		return 0, err
	}

	var total float64
	for id, qty := range cart {
		product, err := s.catalog.Product(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Debugf("cart references unknown product %s, skipping", id)
				continue
			}
			return 0, err
		}
		total += product.Price * float64(qty)
	}
	return total, nil
}

// publishEvent publishes a ledger event (non-blocking)
func (s *Service) publishEvent(session, eventType, productID string, quantity int) {
	if s.publisher == nil {
		return
	}

	event := CartEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now(),
		Session:   session,
		ProductID: productID,
		Quantity:  quantity,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event %s", eventType)
		return
	}

	// Publish in background to avoid blocking
	go func() {
		if err := s.publisher.Publish(context.Background(), "cart.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish event %s", eventType)
		}
	}()
}
