package domain

import (
	"context"
	"time"
)

// Category classifies a listing within the marketplace.
type Category string

const (
	CategoryCars        Category = "cars"
	CategoryParts       Category = "parts"
	CategoryAccessories Category = "accessories"
	CategoryServices    Category = "services"
	CategoryTools       Category = "tools"
	CategoryTires       Category = "tires"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryCars, CategoryParts, CategoryAccessories, CategoryServices, CategoryTools, CategoryTires:
		return true
	}
	return false
}

// Condition describes the physical state of a listing.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

// Valid reports whether the condition is one of the known values.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}
	return false
}

// Product represents one sellable marketplace listing. Its fields are
// owned by the publishing backend; this service only reads them.
type Product struct {
	ID            string    `json:"id" db:"id" validate:"required"`
	Title         string    `json:"title" db:"title" validate:"required,min=1,max=255"`
	Description   string    `json:"description" db:"description"`
	Tags          []string  `json:"tags,omitempty"`
	Category      Category  `json:"category" db:"category"`
	Condition     Condition `json:"condition" db:"condition"`
	Price         float64   `json:"price" db:"price" validate:"gte=0"`
	OriginalPrice *float64  `json:"original_price,omitempty" db:"original_price"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity" validate:"gte=0"`
	Mileage       *int      `json:"mileage,omitempty" db:"mileage"`
	ViewCount     int       `json:"view_count" db:"view_count"`
	Rating        float64   `json:"rating" db:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int       `json:"review_count" db:"review_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// InStock reports whether the listing has remaining stock.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// EffectiveOriginalPrice returns the original price only when it is a
// genuine markdown (>= current price); otherwise it is treated as absent.
func (p *Product) EffectiveOriginalPrice() *float64 {
	if p.OriginalPrice == nil || *p.OriginalPrice < p.Price {
		return nil
	}
	return p.OriginalPrice
}

// CatalogSource is one tier of the catalog fallback chain. A tier may fail
// or come back empty; the resolver decides what to do with either.
type CatalogSource interface {
	// Fetch returns the published products this tier knows about.
	Fetch(ctx context.Context) ([]Product, error)

	// Name identifies the tier in logs.
	Name() string
}
