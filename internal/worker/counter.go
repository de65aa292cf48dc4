package worker

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vkoval/automarket/internal/pkg/logger"
)

// Counter applies view-count increments to the products table. View count
// is monotonically non-decreasing; this is its single writer.
type Counter struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewCounter creates a new view counter
func NewCounter(db *sqlx.DB, logger *logger.Logger) *Counter {
	return &Counter{
		db:     db,
		logger: logger,
	}
}

// Increment adds delta views to a product. An unknown or unpublished
// product is not an error, just logged and skipped.
func (c *Counter) Increment(ctx context.Context, productID string, delta int) error {
	query := `
		UPDATE products
		SET view_count = view_count + $2
		WHERE id = $1 AND published = TRUE
	`

	result, err := c.db.ExecContext(ctx, query, productID, delta)
	if err != nil {
		return fmt.Errorf("failed to update view count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		c.logger.WithFields(map[string]interface{}{
			"product_id": productID,
		}).Info("Product not found or unpublished, skipping view count update")
		return nil
	}

	c.logger.WithFields(map[string]interface{}{
		"product_id": productID,
		"delta":      delta,
	}).Debug("View count updated")

	return nil
}

// CurrentViewCount retrieves the stored view count for verification.
func (c *Counter) CurrentViewCount(ctx context.Context, productID string) (int, error) {
	var count int
	query := `SELECT view_count FROM products WHERE id = $1`

	if err := c.db.GetContext(ctx, &count, query, productID); err != nil {
		return 0, fmt.Errorf("failed to get view count: %w", err)
	}

	return count, nil
}
