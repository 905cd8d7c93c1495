package reports

import (
	"errors"
	"fmt"

	"github.com/go-analyze/charts"
	"gitlab.com/gastonapp/gaston-api/internal/models"
)

// ErrNoChartData signals a range with no spending in any category.
var ErrNoChartData = errors.New("no expenses to chart")

// GenerateBreakdownChart creates a pie chart of per-category totals for a
// range. Zero-activity categories are left off the chart; a range with no
// spending at all cannot be charted.
// Returns PNG image as bytes.
func GenerateBreakdownChart(rows []models.CategoryAggregate, period string) ([]byte, error) {
	var values []float64
	var categoryNames []string
	for _, row := range rows {
		if row.Count == 0 {
			continue
		}
		categoryNames = append(categoryNames, row.Category.Name)
		values = append(values, row.Sum.InexactFloat64())
	}

	if len(values) == 0 {
		return nil, ErrNoChartData
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: fmt.Sprintf("Expense Breakdown - %s", period),
		}),
		charts.LegendLabelsOptionFunc(categoryNames),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}
