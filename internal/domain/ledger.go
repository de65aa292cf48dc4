package domain

import "context"

// CartItem is one ledger entry: a product and the quantity selected for it.
// Quantity is always at least 1; dropping below 1 removes the entry instead.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// LedgerStore persists cart quantities and favorite membership per session.
// Implementations must treat absent or malformed stored state as empty.
type LedgerStore interface {
	// GetCart returns the product-id -> quantity mapping for a session.
	GetCart(ctx context.Context, session string) (map[string]int, error)

	// SetItem writes the quantity for one product.
	SetItem(ctx context.Context, session, productID string, quantity int) error

	// RemoveItem deletes one product's entry. Removing a missing entry is a no-op.
	RemoveItem(ctx context.Context, session, productID string) error

	// ClearCart deletes all cart entries for a session.
	ClearCart(ctx context.Context, session string) error

	// GetFavorites returns the set of favorited product ids.
	GetFavorites(ctx context.Context, session string) (map[string]bool, error)

	// AddFavorite adds a product to the favorites set.
	AddFavorite(ctx context.Context, session, productID string) error

	// RemoveFavorite removes a product from the favorites set.
	RemoveFavorite(ctx context.Context, session, productID string) error
}
