package catalog

import (
	"context"
	"time"

	"github.com/vkoval/automarket/internal/domain"
)

// SeedSource is the standing safety net of the fallback chain: a fixed
// dataset baked into the binary that resolves near-instantly. It also
// carries demo/offline operation when no backend is reachable.
type SeedSource struct{}

// NewSeedSource creates the embedded seed tier.
func NewSeedSource() *SeedSource {
	return &SeedSource{}
}

// Name identifies the tier in logs.
func (s *SeedSource) Name() string { return "seed" }

// Fetch returns a copy of the seed dataset. It never fails.
func (s *SeedSource) Fetch(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(seedProducts))
	copy(out, seedProducts)
	return out, nil
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

var seedProducts = []domain.Product{
	{
		ID:            "seed-corolla-2018",
		Title:         "Toyota Corolla 2018",
		Description:   "Well maintained sedan, single owner, full service history",
		Tags:          []string{"toyota", "sedan", "corolla"},
		Category:      domain.CategoryCars,
		Condition:     domain.ConditionUsed,
		Price:         12500,
		Mileage:       ptrI(64000),
		StockQuantity: 1,
		ViewCount:     412,
		Rating:        4.6,
		ReviewCount:   9,
		CreatedAt:     time.Date(2024, 11, 3, 10, 0, 0, 0, time.UTC),
	},
	{
		ID:            "seed-brake-pads-bosch",
		Title:         "Bosch Brake Pad Set",
		Description:   "Front axle brake pads, fits most compact models",
		Tags:          []string{"bosch", "brakes", "pads"},
		Category:      domain.CategoryParts,
		Condition:     domain.ConditionNew,
		Price:         45.90,
		OriginalPrice: ptrF(59.90),
		StockQuantity: 24,
		ViewCount:     1380,
		Rating:        4.8,
		ReviewCount:   215,
		CreatedAt:     time.Date(2025, 1, 18, 9, 30, 0, 0, time.UTC),
	},
	{
		ID:            "seed-michelin-allseason",
		Title:         "Michelin CrossClimate 205/55 R16",
		Description:   "All-season tire, set of four available",
		Tags:          []string{"michelin", "tires", "all-season"},
		Category:      domain.CategoryTires,
		Condition:     domain.ConditionNew,
		Price:         132,
		StockQuantity: 16,
		ViewCount:     976,
		Rating:        4.7,
		ReviewCount:   88,
		CreatedAt:     time.Date(2025, 2, 2, 14, 15, 0, 0, time.UTC),
	},
	{
		ID:            "seed-roof-rack",
		Title:         "Universal Roof Rack Crossbars",
		Description:   "Aluminum crossbars with lockable mounts",
		Tags:          []string{"roof rack", "carrier", "universal"},
		Category:      domain.CategoryAccessories,
		Condition:     domain.ConditionNew,
		Price:         89,
		StockQuantity: 7,
		ViewCount:     230,
		Rating:        4.2,
		ReviewCount:   31,
		CreatedAt:     time.Date(2025, 1, 5, 17, 45, 0, 0, time.UTC),
	},
	{
		ID:            "seed-obd2-scanner",
		Title:         "OBD2 Diagnostic Scanner",
		Description:   "Bluetooth code reader with live engine data",
		Tags:          []string{"obd2", "diagnostics", "scanner"},
		Category:      domain.CategoryTools,
		Condition:     domain.ConditionRefurbished,
		Price:         34.50,
		OriginalPrice: ptrF(54),
		StockQuantity: 11,
		ViewCount:     742,
		Rating:        4.4,
		ReviewCount:   53,
		CreatedAt:     time.Date(2024, 12, 20, 8, 0, 0, 0, time.UTC),
	},
	{
		ID:            "seed-oil-change",
		Title:         "Full Synthetic Oil Change Service",
		Description:   "Oil and filter change, 21-point inspection included",
		Tags:          []string{"service", "oil change", "maintenance"},
		Category:      domain.CategoryServices,
		Condition:     domain.ConditionNew,
		Price:         69,
		StockQuantity: 50,
		ViewCount:     188,
		Rating:        4.9,
		ReviewCount:   142,
		CreatedAt:     time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC),
	},
	{
		ID:            "seed-civic-2020",
		Title:         "Honda Civic 2020",
		Description:   "Low mileage hatchback, accident free",
		Tags:          []string{"honda", "civic", "hatchback"},
		Category:      domain.CategoryCars,
		Condition:     domain.ConditionUsed,
		Price:         17900,
		Mileage:       ptrI(31000),
		StockQuantity: 1,
		ViewCount:     655,
		Rating:        4.5,
		ReviewCount:   4,
		CreatedAt:     time.Date(2025, 1, 28, 16, 20, 0, 0, time.UTC),
	},
	{
		ID:            "seed-wiper-blades",
		Title:         "Silicone Wiper Blade Pair",
		Description:   "All-weather blades, 24 inch and 18 inch",
		Tags:          []string{"wipers", "blades"},
		Category:      domain.CategoryParts,
		Condition:     domain.ConditionNew,
		Price:         18.75,
		StockQuantity: 0,
		ViewCount:     95,
		Rating:        3.9,
		ReviewCount:   12,
		CreatedAt:     time.Date(2024, 10, 12, 11, 10, 0, 0, time.UTC),
	},
}

// emergencyProducts is the last-resort dataset served when both the
// backend and the seed tier come back empty. Kept deliberately minimal.
var emergencyProducts = []domain.Product{
	{
		ID:            "fallback-brake-pads",
		Title:         "Brake Pad Set",
		Description:   "Standard replacement brake pads",
		Category:      domain.CategoryParts,
		Condition:     domain.ConditionNew,
		Price:         39.99,
		StockQuantity: 5,
		Rating:        4.0,
		ReviewCount:   1,
		CreatedAt:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	},
	{
		ID:            "fallback-engine-oil",
		Title:         "Engine Oil 5W-30 4L",
		Description:   "Full synthetic motor oil",
		Category:      domain.CategoryParts,
		Condition:     domain.ConditionNew,
		Price:         28.50,
		StockQuantity: 10,
		Rating:        4.3,
		ReviewCount:   3,
		CreatedAt:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	},
}

// EmergencyProducts returns a copy of the minimal hand-authored dataset.
func EmergencyProducts() []domain.Product {
	out := make([]domain.Product, len(emergencyProducts))
	copy(out, emergencyProducts)
	return out
}
