package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/vkoval/automarket/internal/domain"
)

// ProductSource is the primary catalog tier: the marketplace backend's
// published listings, read from PostgreSQL. It implements
// domain.CatalogSource; failures here are expected and absorbed by the
// resolver's fallback chain.
type ProductSource struct {
	db *sqlx.DB
}

// NewProductSource creates a new PostgreSQL product source
func NewProductSource(db *sqlx.DB) *ProductSource {
	return &ProductSource{db: db}
}

// Name identifies the tier in logs.
func (r *ProductSource) Name() string { return "backend" }

type productRow struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Description   string         `db:"description"`
	Tags          pq.StringArray `db:"tags"`
	Category      string         `db:"category"`
	Condition     string         `db:"condition"`
	Price         float64        `db:"price"`
	OriginalPrice *float64       `db:"original_price"`
	StockQuantity int            `db:"stock_quantity"`
	Mileage       *int           `db:"mileage"`
	ViewCount     int            `db:"view_count"`
	Rating        float64        `db:"rating"`
	ReviewCount   int            `db:"review_count"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (row *productRow) toDomain() domain.Product {
	return domain.Product{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		Tags:          []string(row.Tags),
		Category:      domain.Category(row.Category),
		Condition:     domain.Condition(row.Condition),
		Price:         row.Price,
		OriginalPrice: row.OriginalPrice,
		StockQuantity: row.StockQuantity,
		Mileage:       row.Mileage,
		ViewCount:     row.ViewCount,
		Rating:        row.Rating,
		ReviewCount:   row.ReviewCount,
		CreatedAt:     row.CreatedAt,
	}
}

// Fetch retrieves all published listings, newest first.
func (r *ProductSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, title, description, tags, category, condition, price,
		       original_price, stock_quantity, mileage, view_count, rating,
		       review_count, created_at
		FROM products
		WHERE published = TRUE
		ORDER BY created_at DESC
	`

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toDomain())
	}

	return products, nil
}
