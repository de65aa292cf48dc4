package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkoval/automarket/internal/domain"
)

func TestGetSession(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, DefaultSession, GetSession(r))

	r.Header.Set("X-Session-ID", "session-42")
	assert.Equal(t, "session-42", GetSession(r))
}

func TestParseSearchCriteria_FullQueryString(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/catalog?q=bosch&category=parts&condition=new&min_price=10&max_price=99.5&max_mileage=50000&in_stock=true&sort=price_asc", nil)

	criteria := ParseSearchCriteria(r)

	assert.Equal(t, "bosch", criteria.Query)
	require.NotNil(t, criteria.Category)
	assert.Equal(t, domain.CategoryParts, *criteria.Category)
	require.NotNil(t, criteria.Condition)
	assert.Equal(t, domain.ConditionNew, *criteria.Condition)
	require.NotNil(t, criteria.MinPrice)
	assert.Equal(t, 10.0, *criteria.MinPrice)
	require.NotNil(t, criteria.MaxPrice)
	assert.Equal(t, 99.5, *criteria.MaxPrice)
	require.NotNil(t, criteria.MaxMileage)
	assert.Equal(t, 50000, *criteria.MaxMileage)
	assert.True(t, criteria.InStockOnly)
	assert.Equal(t, domain.SortPriceAsc, criteria.SortBy)
}

func TestParseSearchCriteria_UnparseableValuesReadAsAbsent(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/catalog?category=spaceships&condition=mint&min_price=cheap&max_mileage=low&in_stock=maybe", nil)

	criteria := ParseSearchCriteria(r)

	assert.Nil(t, criteria.Category)
	assert.Nil(t, criteria.Condition)
	assert.Nil(t, criteria.MinPrice)
	assert.Nil(t, criteria.MaxMileage)
	assert.False(t, criteria.InStockOnly)
}

func TestParseSearchCriteria_Empty(t *testing.T) {
	r := httptest.NewRequest("GET", "/catalog", nil)

	criteria := ParseSearchCriteria(r)

	assert.Equal(t, domain.SearchCriteria{}, criteria)
}
