package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vkoval/automarket/internal/domain"
)

func testCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:            "corolla",
			Title:         "Toyota Corolla 2018",
			Description:   "Reliable sedan",
			Tags:          []string{"toyota", "sedan"},
			Category:      domain.CategoryCars,
			Condition:     domain.ConditionUsed,
			Price:         12500,
			Mileage:       ptrI(64000),
			StockQuantity: 1,
			ViewCount:     400,
			CreatedAt:     time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "brake-pads",
			Title:         "Bosch Brake Pad Set",
			Description:   "Front axle pads",
			Tags:          []string{"bosch", "brakes"},
			Category:      domain.CategoryParts,
			Condition:     domain.ConditionNew,
			Price:         45.90,
			StockQuantity: 24,
			ViewCount:     1300,
			CreatedAt:     time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "wipers",
			Title:         "Silicone Wiper Blades",
			Description:   "All-weather",
			Tags:          []string{"wipers"},
			Category:      domain.CategoryParts,
			Condition:     domain.ConditionNew,
			Price:         18.75,
			StockQuantity: 0,
			ViewCount:     90,
			CreatedAt:     time.Date(2024, 10, 12, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestEngine_Apply_Deterministic(t *testing.T) {
	engine := NewEngine()
	catalog := testCatalog()
	criteria := domain.SearchCriteria{SortBy: domain.SortPriceAsc}

	first := engine.Apply(catalog, criteria)
	second := engine.Apply(catalog, criteria)

	assert.Equal(t, first, second)
}

func TestEngine_Apply_CategoryNoMatchReturnsEmpty(t *testing.T) {
	engine := NewEngine()
	category := domain.CategoryTires

	result := engine.Apply(testCatalog(), domain.SearchCriteria{Category: &category})

	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestEngine_Apply_EmptyCatalog(t *testing.T) {
	engine := NewEngine()

	result := engine.Apply(nil, domain.SearchCriteria{})

	assert.Empty(t, result)
}

func TestEngine_Apply_TextQueryMatchesTitleDescriptionAndTags(t *testing.T) {
	engine := NewEngine()
	catalog := testCatalog()

	byTitle := engine.Apply(catalog, domain.SearchCriteria{Query: "corolla"})
	byDescription := engine.Apply(catalog, domain.SearchCriteria{Query: "front axle"})
	byTag := engine.Apply(catalog, domain.SearchCriteria{Query: "BOSCH"})

	assert.Len(t, byTitle, 1)
	assert.Equal(t, "corolla", byTitle[0].ID)
	assert.Len(t, byDescription, 1)
	assert.Equal(t, "brake-pads", byDescription[0].ID)
	assert.Len(t, byTag, 1)
	assert.Equal(t, "brake-pads", byTag[0].ID)
}

func TestEngine_Apply_WhitespaceQueryTreatedAsAbsent(t *testing.T) {
	engine := NewEngine()

	result := engine.Apply(testCatalog(), domain.SearchCriteria{Query: "   "})

	assert.Len(t, result, 3)
}

func TestEngine_Apply_PriceRangeInclusive(t *testing.T) {
	engine := NewEngine()
	min := 18.75
	max := 45.90

	result := engine.Apply(testCatalog(), domain.SearchCriteria{
		MinPrice: &min,
		MaxPrice: &max,
		SortBy:   domain.SortPriceAsc,
	})

	assert.Len(t, result, 2)
	assert.Equal(t, "wipers", result[0].ID)
	assert.Equal(t, "brake-pads", result[1].ID)
}

func TestEngine_Apply_InvertedPriceRangeMatchesNothing(t *testing.T) {
	engine := NewEngine()
	min := 100.0
	max := 50.0

	result := engine.Apply(testCatalog(), domain.SearchCriteria{
		MinPrice: &min,
		MaxPrice: &max,
	})

	assert.Empty(t, result)
}

func TestEngine_Apply_MaxMileageSkipsProductsWithoutMileage(t *testing.T) {
	engine := NewEngine()
	maxMileage := 50000

	result := engine.Apply(testCatalog(), domain.SearchCriteria{MaxMileage: &maxMileage})

	// The car exceeds the bound; parts have no mileage and pass through
	assert.Len(t, result, 2)
	for _, p := range result {
		assert.NotEqual(t, "corolla", p.ID)
	}
}

func TestEngine_Apply_InStockOnly(t *testing.T) {
	engine := NewEngine()

	result := engine.Apply(testCatalog(), domain.SearchCriteria{InStockOnly: true})

	assert.Len(t, result, 2)
	for _, p := range result {
		assert.True(t, p.InStock())
	}
}

func TestEngine_Apply_SortNewestDefault(t *testing.T) {
	engine := NewEngine()

	result := engine.Apply(testCatalog(), domain.SearchCriteria{})

	assert.Equal(t, []string{"brake-pads", "corolla", "wipers"}, ids(result))
}

func TestEngine_Apply_SortMostPopular(t *testing.T) {
	engine := NewEngine()

	result := engine.Apply(testCatalog(), domain.SearchCriteria{SortBy: domain.SortMostPopular})

	assert.Equal(t, []string{"brake-pads", "corolla", "wipers"}, ids(result))
}

func TestEngine_Apply_SortPriceDesc(t *testing.T) {
	engine := NewEngine()

	result := engine.Apply(testCatalog(), domain.SearchCriteria{SortBy: domain.SortPriceDesc})

	assert.Equal(t, []string{"corolla", "brake-pads", "wipers"}, ids(result))
}

func TestEngine_Apply_PriceTiesKeepInsertionOrder(t *testing.T) {
	engine := NewEngine()
	catalog := []domain.Product{
		{ID: "first", Price: 10},
		{ID: "second", Price: 10},
		{ID: "third", Price: 10},
	}

	result := engine.Apply(catalog, domain.SearchCriteria{SortBy: domain.SortPriceAsc})

	assert.Equal(t, []string{"first", "second", "third"}, ids(result))
}

func TestEngine_Apply_DistanceWithoutComparatorKeepsOrder(t *testing.T) {
	engine := NewEngine()
	catalog := testCatalog()

	result := engine.Apply(catalog, domain.SearchCriteria{SortBy: domain.SortDistance})

	assert.Equal(t, []string{"corolla", "brake-pads", "wipers"}, ids(result))
}

func TestEngine_Apply_DistanceComparatorInstalled(t *testing.T) {
	engine := NewEngine()
	// Stand-in comparator: order by id, as a geo service would by proximity
	engine.Distance = func(a, b domain.Product) bool { return a.ID < b.ID }

	result := engine.Apply(testCatalog(), domain.SearchCriteria{SortBy: domain.SortDistance})

	assert.Equal(t, []string{"brake-pads", "corolla", "wipers"}, ids(result))
}

func TestEngine_Apply_CombinedScenario(t *testing.T) {
	engine := NewEngine()
	catalog := []domain.Product{
		{ID: "a", Price: 100, Category: domain.CategoryParts, StockQuantity: 2},
		{ID: "b", Price: 50, Category: domain.CategoryCars, StockQuantity: 0},
	}
	category := domain.CategoryParts

	result := engine.Apply(catalog, domain.SearchCriteria{
		Category:    &category,
		InStockOnly: true,
		SortBy:      domain.SortPriceAsc,
	})

	assert.Len(t, result, 1)
	assert.Equal(t, "a", result[0].ID)
}

func TestEngine_Metadata(t *testing.T) {
	engine := NewEngine()

	meta := engine.Metadata(testCatalog())

	assert.Equal(t, 1, meta.Categories[domain.CategoryCars])
	assert.Equal(t, 2, meta.Categories[domain.CategoryParts])
	assert.Equal(t, 2, meta.InStock)
	assert.Equal(t, 1, meta.OutOfStock)
	assert.Equal(t, 18.75, meta.MinPrice)
	assert.Equal(t, 12500.0, meta.MaxPrice)
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
