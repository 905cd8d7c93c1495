package reports

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/gastonapp/gaston-api/internal/models"
)

func TestGenerateExpensesCSV(t *testing.T) {
	t.Parallel()

	t.Run("generates CSV with header and rows", func(t *testing.T) {
		expenses := []models.Expense{
			{
				ID:            1,
				Amount:        decimal.NewFromFloat(850.50),
				Date:          time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
				Description:   "Supermercado",
				Category:      &models.Category{Name: "Comida"},
				ExpenseName:   &models.ExpenseName{Name: "Supermercado Dia"},
				CategoryID:    1,
				ExpenseNameID: 1,
			},
			{
				ID:            2,
				Amount:        decimal.NewFromFloat(1200.00),
				Date:          time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
				Description:   "",
				Category:      &models.Category{Name: "Transporte"},
				ExpenseName:   &models.ExpenseName{Name: "SUBE"},
				CategoryID:    2,
				ExpenseNameID: 2,
			},
		}

		csvData, err := GenerateExpensesCSV(expenses)
		require.NoError(t, err)
		require.NotEmpty(t, csvData)

		reader := csv.NewReader(strings.NewReader(string(csvData)))
		records, err := reader.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3) // Header + 2 rows

		require.Equal(t, []string{"ID", "Date", "Amount", "Category", "Name", "Description"}, records[0])

		row1 := records[1]
		require.Equal(t, "1", row1[0])
		require.Equal(t, "2025-01-13", row1[1])
		require.Equal(t, "850.50", row1[2])
		require.Equal(t, "Comida", row1[3])
		require.Equal(t, "Supermercado Dia", row1[4])
		require.Equal(t, "Supermercado", row1[5])

		row2 := records[2]
		require.Equal(t, "2", row2[0])
		require.Equal(t, "1200.00", row2[2])
		require.Equal(t, "", row2[5])
	})

	t.Run("handles missing joined rows", func(t *testing.T) {
		expenses := []models.Expense{
			{
				ID:     1,
				Amount: decimal.NewFromFloat(5.00),
				Date:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			},
		}

		csvData, err := GenerateExpensesCSV(expenses)
		require.NoError(t, err)

		reader := csv.NewReader(strings.NewReader(string(csvData)))
		records, err := reader.ReadAll()
		require.NoError(t, err)
		require.Equal(t, "", records[1][3])
		require.Equal(t, "", records[1][4])
	})

	t.Run("handles empty expense list", func(t *testing.T) {
		csvData, err := GenerateExpensesCSV(nil)
		require.NoError(t, err)

		reader := csv.NewReader(strings.NewReader(string(csvData)))
		records, err := reader.ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1) // Only header
	})

	t.Run("handles special characters in description", func(t *testing.T) {
		expenses := []models.Expense{
			{
				ID:          1,
				Amount:      decimal.NewFromFloat(10.00),
				Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				Description: "Café, \"cortado\" & medialunas",
			},
		}

		csvData, err := GenerateExpensesCSV(expenses)
		require.NoError(t, err)

		reader := csv.NewReader(strings.NewReader(string(csvData)))
		records, err := reader.ReadAll()
		require.NoError(t, err)
		require.Equal(t, "Café, \"cortado\" & medialunas", records[1][5])
	})

	t.Run("formats amounts with two decimal places", func(t *testing.T) {
		expenses := []models.Expense{
			{ID: 1, Amount: decimal.NewFromFloat(5.5), Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
			{ID: 2, Amount: decimal.NewFromInt(1200), Date: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		}

		csvData, err := GenerateExpensesCSV(expenses)
		require.NoError(t, err)

		reader := csv.NewReader(strings.NewReader(string(csvData)))
		records, err := reader.ReadAll()
		require.NoError(t, err)
		require.Equal(t, "5.50", records[1][2])
		require.Equal(t, "1200.00", records[2][2])
	})
}

func TestCSVFilename(t *testing.T) {
	t.Parallel()

	filename := CSVFilename("2025-01-13", "2025-01-19")
	require.Equal(t, "expenses_2025-01-13_2025-01-19.csv", filename)
}
