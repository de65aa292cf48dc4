package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkoval/automarket/internal/domain"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func productColumns() []string {
	return []string{
		"id", "title", "description", "tags", "category", "condition", "price",
		"original_price", "stock_quantity", "mileage", "view_count", "rating",
		"review_count", "created_at",
	}
}

func TestProductSource_Fetch(t *testing.T) {
	db, mock := newMockDB(t)
	source := NewProductSource(db)
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(productColumns()).
		AddRow("pads-1", "Bosch Brake Pads", "Front axle", "{bosch,brakes}",
			"parts", "new", 45.90, 59.90, 24, nil, 1300, 4.7, 18, createdAt).
		AddRow("corolla", "Toyota Corolla", "Reliable sedan", "{toyota,sedan}",
			"cars", "used", 12500.0, nil, 1, 64000, 400, 4.4, 6, createdAt.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM products").
		WillReturnRows(rows)

	products, err := source.Fetch(context.Background())

	assert.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "pads-1", first.ID)
	assert.Equal(t, []string{"bosch", "brakes"}, first.Tags)
	assert.Equal(t, domain.CategoryParts, first.Category)
	assert.Equal(t, domain.ConditionNew, first.Condition)
	require.NotNil(t, first.OriginalPrice)
	assert.Equal(t, 59.90, *first.OriginalPrice)
	assert.Nil(t, first.Mileage)

	second := products[1]
	require.NotNil(t, second.Mileage)
	assert.Equal(t, 64000, *second.Mileage)
	assert.Nil(t, second.OriginalPrice)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductSource_Fetch_FiltersUnpublished(t *testing.T) {
	db, mock := newMockDB(t)
	source := NewProductSource(db)

	mock.ExpectQuery("WHERE published = TRUE").
		WillReturnRows(sqlmock.NewRows(productColumns()))

	products, err := source.Fetch(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductSource_Fetch_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	source := NewProductSource(db)

	mock.ExpectQuery("SELECT (.+) FROM products").
		WillReturnError(errors.New("connection reset"))

	products, err := source.Fetch(context.Background())

	assert.Error(t, err)
	assert.Nil(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductSource_Name(t *testing.T) {
	assert.Equal(t, "backend", NewProductSource(nil).Name())
}
