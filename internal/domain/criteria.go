package domain

import "strings"

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortNewest      SortKey = "newest"
	SortPriceAsc    SortKey = "price_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortMostPopular SortKey = "most_popular"
	SortDistance    SortKey = "distance"
)

// SearchCriteria is a value object that fully determines the output of the
// filter engine for a given catalog snapshot. All fields are optional;
// the zero value matches everything and sorts by newest.
type SearchCriteria struct {
	Query       string     `json:"query,omitempty"`
	Category    *Category  `json:"category,omitempty"`
	Condition   *Condition `json:"condition,omitempty"`
	MinPrice    *float64   `json:"min_price,omitempty"`
	MaxPrice    *float64   `json:"max_price,omitempty"`
	MaxMileage  *int       `json:"max_mileage,omitempty"`
	InStockOnly bool       `json:"in_stock_only,omitempty"`
	SortBy      SortKey    `json:"sort_by,omitempty"`
}

// NormalizedQuery returns the free-text query trimmed and lowercased.
// A blank or whitespace-only query reads as absent.
func (c SearchCriteria) NormalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(c.Query))
}

// HasQuery reports whether a usable free-text query is present.
func (c SearchCriteria) HasQuery() bool {
	return c.NormalizedQuery() != ""
}
