package reports

import (
	"testing"

	"github.com/shopspring/decimal"
	"gitlab.com/gastonapp/gaston-api/internal/models"
)

func TestGenerateBreakdownChart(t *testing.T) {
	tests := []struct {
		name        string
		rows        []models.CategoryAggregate
		period      string
		expectError bool
	}{
		{
			name: "generates chart with multiple categories",
			rows: []models.CategoryAggregate{
				{
					Category: models.Category{ID: 1, Name: "Comida"},
					Count:    3,
					Sum:      decimal.NewFromFloat(2550.00),
				},
				{
					Category: models.Category{ID: 2, Name: "Transporte"},
					Count:    2,
					Sum:      decimal.NewFromFloat(1200.00),
				},
			},
			period:      "2025-01",
			expectError: false,
		},
		{
			name: "handles single category",
			rows: []models.CategoryAggregate{
				{
					Category: models.Category{ID: 1, Name: "Comida"},
					Count:    1,
					Sum:      decimal.NewFromFloat(850.00),
				},
			},
			period:      "2025-01-13 to 2025-01-19",
			expectError: false,
		},
		{
			name: "skips zero-activity categories",
			rows: []models.CategoryAggregate{
				{
					Category: models.Category{ID: 1, Name: "Comida"},
					Count:    2,
					Sum:      decimal.NewFromFloat(500.00),
				},
				{
					Category: models.Category{ID: 2, Name: "Salud"},
					Count:    0,
					Sum:      decimal.Zero,
				},
			},
			period:      "2025-01",
			expectError: false,
		},
		{
			name: "fails when every category is idle",
			rows: []models.CategoryAggregate{
				{
					Category: models.Category{ID: 1, Name: "Comida"},
					Count:    0,
					Sum:      decimal.Zero,
				},
			},
			period:      "2025-01",
			expectError: true,
		},
		{
			name:        "fails on empty breakdown",
			rows:        []models.CategoryAggregate{},
			period:      "2025-01",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := GenerateBreakdownChart(tt.rows, tt.period)

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if len(buf) == 0 {
				t.Errorf("expected non-empty PNG data")
			}

			// PNG files start with magic bytes: 89 50 4E 47
			if len(buf) >= 4 && (buf[0] != 0x89 || buf[1] != 0x50 || buf[2] != 0x4E || buf[3] != 0x47) {
				t.Errorf("output does not appear to be a PNG file")
			}
		})
	}
}
