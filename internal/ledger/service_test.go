package ledger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vkoval/automarket/internal/domain"
	"github.com/vkoval/automarket/internal/pkg/logger"
)

type memStore struct {
	carts     map[string]map[string]int
	favorites map[string]map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		carts:     make(map[string]map[string]int),
		favorites: make(map[string]map[string]bool),
	}
}

func (m *memStore) GetCart(ctx context.Context, session string) (map[string]int, error) {
	out := make(map[string]int, len(m.carts[session]))
	for id, qty := range m.carts[session] {
		out[id] = qty
	}
	return out, nil
}

func (m *memStore) SetItem(ctx context.Context, session, productID string, quantity int) error {
	if m.carts[session] == nil {
		m.carts[session] = make(map[string]int)
	}
	m.carts[session][productID] = quantity
	return nil
}

func (m *memStore) RemoveItem(ctx context.Context, session, productID string) error {
	delete(m.carts[session], productID)
	return nil
}

func (m *memStore) ClearCart(ctx context.Context, session string) error {
	delete(m.carts, session)
	return nil
}

func (m *memStore) GetFavorites(ctx context.Context, session string) (map[string]bool, error) {
	out := make(map[string]bool, len(m.favorites[session]))
	for id := range m.favorites[session] {
		out[id] = true
	}
	return out, nil
}

func (m *memStore) AddFavorite(ctx context.Context, session, productID string) error {
	if m.favorites[session] == nil {
		m.favorites[session] = make(map[string]bool)
	}
	m.favorites[session][productID] = true
	return nil
}

func (m *memStore) RemoveFavorite(ctx context.Context, session, productID string) error {
	delete(m.favorites[session], productID)
	return nil
}

type stubCatalog struct {
	products map[string]*domain.Product
}

func (s *stubCatalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type MockLookup struct {
	mock.Mock
}

func (m *MockLookup) Product(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func newTestService(products ...*domain.Product) (*Service, *memStore) {
	catalog := &stubCatalog{products: make(map[string]*domain.Product)}
	for _, p := range products {
		catalog.products[p.ID] = p
	}
	store := newMemStore()
	return NewService(store, catalog, nil, logger.New("production")), store
}

const session = "session-1"

func TestService_AddOrIncrement_AccumulatesQuantity(t *testing.T) {
	svc, _ := newTestService(&domain.Product{ID: "pads", Price: 45, StockQuantity: 10})
	ctx := context.Background()

	assert.NoError(t, svc.AddOrIncrement(ctx, session, "pads", 1))
	assert.NoError(t, svc.AddOrIncrement(ctx, session, "pads", 1))

	total, err := svc.TotalCount(ctx, session)
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestService_AddOrIncrement_RejectsNonPositiveDelta(t *testing.T) {
	svc, _ := newTestService(&domain.Product{ID: "pads", StockQuantity: 10})

	err := svc.AddOrIncrement(context.Background(), session, "pads", 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_AddOrIncrement_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	err := svc.AddOrIncrement(context.Background(), session, "ghost", 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_AddOrIncrement_StockExceededLeavesCartUntouched(t *testing.T) {
	svc, store := newTestService(&domain.Product{ID: "pads", StockQuantity: 2})
	ctx := context.Background()

	assert.NoError(t, svc.AddOrIncrement(ctx, session, "pads", 2))

	err := svc.AddOrIncrement(ctx, session, "pads", 1)

	assert.ErrorIs(t, err, domain.ErrStockExceeded)
	assert.Equal(t, 2, store.carts[session]["pads"])
}

func TestService_SetQuantity_WithinStock(t *testing.T) {
	svc, store := newTestService(&domain.Product{ID: "pads", StockQuantity: 5})

	err := svc.SetQuantity(context.Background(), session, "pads", 4)

	assert.NoError(t, err)
	assert.Equal(t, 4, store.carts[session]["pads"])
}

func TestService_SetQuantity_BelowOneRemovesEntry(t *testing.T) {
	svc, store := newTestService(&domain.Product{ID: "pads", StockQuantity: 5})
	ctx := context.Background()

	assert.NoError(t, svc.AddOrIncrement(ctx, session, "pads", 3))
	assert.NoError(t, svc.SetQuantity(ctx, session, "pads", 0))

	_, held := store.carts[session]["pads"]
	assert.False(t, held)
}

func TestService_SetQuantity_StockDropBetweenCalls(t *testing.T) {
	product := &domain.Product{ID: "pads", StockQuantity: 5}
	svc, store := newTestService(product)
	ctx := context.Background()

	assert.NoError(t, svc.SetQuantity(ctx, session, "pads", 3))

	// Stock drops under the held quantity; the stale quantity stays until
	// the owner adjusts it, and re-asserting it is rejected.
	product.StockQuantity = 2

	err := svc.SetQuantity(ctx, session, "pads", 3)
	assert.ErrorIs(t, err, domain.ErrStockExceeded)
	assert.Equal(t, 3, store.carts[session]["pads"])

	assert.NoError(t, svc.SetQuantity(ctx, session, "pads", 2))
	assert.Equal(t, 2, store.carts[session]["pads"])
}

func TestService_Remove_MissingEntryIsNoop(t *testing.T) {
	svc, _ := newTestService(&domain.Product{ID: "pads", StockQuantity: 5})

	err := svc.Remove(context.Background(), session, "pads")

	assert.NoError(t, err)
}

func TestService_ToggleFavorite_RoundTrip(t *testing.T) {
	svc, _ := newTestService(&domain.Product{ID: "pads", StockQuantity: 5})
	ctx := context.Background()

	on, err := svc.ToggleFavorite(ctx, session, "pads")
	assert.NoError(t, err)
	assert.True(t, on)

	favorites, err := svc.Favorites(ctx, session)
	assert.NoError(t, err)
	assert.Equal(t, []string{"pads"}, favorites)

	off, err := svc.ToggleFavorite(ctx, session, "pads")
	assert.NoError(t, err)
	assert.False(t, off)

	favorites, err = svc.Favorites(ctx, session)
	assert.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestService_ToggleFavorite_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ToggleFavorite(context.Background(), session, "ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ClearAll_EmptiesCartButKeepsFavorites(t *testing.T) {
	svc, _ := newTestService(&domain.Product{ID: "pads", StockQuantity: 5})
	ctx := context.Background()

	assert.NoError(t, svc.AddOrIncrement(ctx, session, "pads", 2))
	_, err := svc.ToggleFavorite(ctx, session, "pads")
	assert.NoError(t, err)

	assert.NoError(t, svc.ClearAll(ctx, session))

	total, err := svc.TotalCount(ctx, session)
	assert.NoError(t, err)
	assert.Zero(t, total)

	favorites, err := svc.Favorites(ctx, session)
	assert.NoError(t, err)
	assert.Equal(t, []string{"pads"}, favorites)
}

func TestService_Cart_SortedByProductID(t *testing.T) {
	svc, _ := newTestService(
		&domain.Product{ID: "wipers", StockQuantity: 5},
		&domain.Product{ID: "pads", StockQuantity: 5},
	)
	ctx := context.Background()

	assert.NoError(t, svc.AddOrIncrement(ctx, session, "wipers", 1))
	assert.NoError(t, svc.AddOrIncrement(ctx, session, "pads", 2))

	items, err := svc.Cart(ctx, session)

	assert.NoError(t, err)
	assert.Equal(t, []domain.CartItem{
		{ProductID: "pads", Quantity: 2},
		{ProductID: "wipers", Quantity: 1},
	}, items)
}

func TestService_TotalValue_UsesSnapshotPrices(t *testing.T) {
	svc, _ := newTestService(
		&domain.Product{ID: "pads", Price: 45.90, StockQuantity: 5},
		&domain.Product{ID: "wipers", Price: 18.75, StockQuantity: 5},
	)
	ctx := context.Background()

	assert.NoError(t, svc.AddOrIncrement(ctx, session, "pads", 2))
	assert.NoError(t, svc.AddOrIncrement(ctx, session, "wipers", 1))

	value, err := svc.TotalValue(ctx, session)

	assert.NoError(t, err)
	assert.InDelta(t, 110.55, value, 0.001)
}

func TestService_TotalValue_SkipsDelistedProducts(t *testing.T) {
	store := newMemStore()
	store.carts[session] = map[string]int{"pads": 2, "ghost": 1}

	lookup := new(MockLookup)
	lookup.On("Product", mock.Anything, "pads").
		Return(&domain.Product{ID: "pads", Price: 10, StockQuantity: 5}, nil)
	lookup.On("Product", mock.Anything, "ghost").
		Return(nil, domain.ErrNotFound)

	svc := NewService(store, lookup, nil, logger.New("production"))

	value, err := svc.TotalValue(context.Background(), session)

	assert.NoError(t, err)
	assert.InDelta(t, 20.0, value, 0.001)
	lookup.AssertExpectations(t)
}

func TestService_TotalValue_SkipsWrappedNotFound(t *testing.T) {
	store := newMemStore()
	store.carts[session] = map[string]int{"pads": 1, "ghost": 2}

	lookup := new(MockLookup)
	lookup.On("Product", mock.Anything, "pads").
		Return(&domain.Product{ID: "pads", Price: 10, StockQuantity: 5}, nil)
	lookup.On("Product", mock.Anything, "ghost").
		Return(nil, fmt.Errorf("snapshot lookup: %w", domain.ErrNotFound))

	svc := NewService(store, lookup, nil, logger.New("production"))

	value, err := svc.TotalValue(context.Background(), session)

	assert.NoError(t, err)
	assert.InDelta(t, 10.0, value, 0.001)
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc, _ := newTestService(&domain.Product{ID: "pads", StockQuantity: 10})
	ctx := context.Background()

	assert.NoError(t, svc.AddOrIncrement(ctx, "session-a", "pads", 3))

	total, err := svc.TotalCount(ctx, "session-b")
	assert.NoError(t, err)
	assert.Zero(t, total)
}
