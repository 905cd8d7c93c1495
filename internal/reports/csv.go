package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"gitlab.com/gastonapp/gaston-api/internal/calendar"
	"gitlab.com/gastonapp/gaston-api/internal/models"
)

// GenerateExpensesCSV renders a list of expenses as a CSV document.
func GenerateExpensesCSV(expenses []models.Expense) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"ID", "Date", "Amount", "Category", "Name", "Description"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range expenses {
		categoryName := ""
		if expenses[i].Category != nil {
			categoryName = expenses[i].Category.Name
		}
		expenseName := ""
		if expenses[i].ExpenseName != nil {
			expenseName = expenses[i].ExpenseName.Name
		}

		row := []string{
			strconv.Itoa(expenses[i].ID),
			calendar.FormatDate(expenses[i].Date),
			expenses[i].Amount.StringFixed(2),
			categoryName,
			expenseName,
			expenses[i].Description,
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// CSVFilename creates a descriptive filename for a range export, such as
// "expenses_2025-01-13_2025-01-19.csv".
func CSVFilename(start, end string) string {
	return fmt.Sprintf("expenses_%s_%s.csv", start, end)
}
