package catalog

import (
	"sort"
	"strings"

	"github.com/vkoval/automarket/internal/domain"
)

// DistanceComparator orders two products by geographic proximity. The
// engine itself carries no location data; a comparator is installed by
// whoever owns it (the geo service). Without one, the distance sort leaves
// the filtered order untouched.
type DistanceComparator func(a, b domain.Product) bool

// Engine narrows and orders a catalog snapshot according to search
// criteria. It is a pure function stage: it never mutates products and
// identical inputs always produce the identical ordered result.
type Engine struct {
	Distance DistanceComparator
}

// NewEngine creates a filter engine with no distance comparator installed.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply filters the snapshot through every predicate the criteria carry,
// then applies a single stable sort per the sort key. An empty catalog or
// criteria matching nothing yield an empty list, never an error. A price
// range with min > max legitimately matches nothing.
func (e *Engine) Apply(catalog []domain.Product, criteria domain.SearchCriteria) []domain.Product {
	result := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		if e.matches(&p, criteria) {
			result = append(result, p)
		}
	}

	e.sortProducts(result, criteria.SortBy)
	return result
}

// FilterMetadata summarizes the snapshot for the storefront filter panel.
type FilterMetadata struct {
	Categories   map[domain.Category]int `json:"categories"`
	InStock      int                     `json:"in_stock"`
	OutOfStock   int                     `json:"out_of_stock"`
	MinPrice     float64                 `json:"min_price"`
	MaxPrice     float64                 `json:"max_price"`
}

// Metadata computes category counts, availability counts and the price
// range over a snapshot.
func (e *Engine) Metadata(catalog []domain.Product) FilterMetadata {
	meta := FilterMetadata{Categories: make(map[domain.Category]int)}
	for i, p := range catalog {
		meta.Categories[p.Category]++
		if p.InStock() {
			meta.InStock++
		} else {
			meta.OutOfStock++
		}
		if i == 0 || p.Price < meta.MinPrice {
			meta.MinPrice = p.Price
		}
		if p.Price > meta.MaxPrice {
			meta.MaxPrice = p.Price
		}
	}
	return meta
}

func (e *Engine) matches(p *domain.Product, c domain.SearchCriteria) bool {
	if c.HasQuery() && !matchesQuery(p, c.NormalizedQuery()) {
		return false
	}
	if c.Category != nil && p.Category != *c.Category {
		return false
	}
	if c.Condition != nil && p.Condition != *c.Condition {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.MaxMileage != nil && p.Mileage != nil && *p.Mileage > *c.MaxMileage {
		return false
	}
	if c.InStockOnly && !p.InStock() {
		return false
	}
	return true
}

// matchesQuery does a case-insensitive substring match against title,
// description and tags. The query is already normalized.
func matchesQuery(p *domain.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (e *Engine) sortProducts(products []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case domain.SortMostPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ViewCount > products[j].ViewCount
		})
	case domain.SortDistance:
		if e.Distance != nil {
			cmp := e.Distance
			sort.SliceStable(products, func(i, j int) bool {
				return cmp(products[i], products[j])
			})
		}
	default:
		// newest is also the fallback for unknown keys
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
