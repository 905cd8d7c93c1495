package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gitlab.com/gastonapp/gaston-api/internal/calendar"
	"gitlab.com/gastonapp/gaston-api/internal/logger"
	"gitlab.com/gastonapp/gaston-api/internal/models"
	"gitlab.com/gastonapp/gaston-api/internal/repository"
)

const instrumentationName = "gitlab.com/gastonapp/gaston-api/internal/reports"

// ExpenseStore is the read interface the engine composes reports from.
// Implemented by repository.ExpenseRepository.
type ExpenseStore interface {
	FindInRange(ctx context.Context, start, end time.Time, opts repository.FindOptions) ([]models.Expense, error)
	AggregateInRange(ctx context.Context, start, end time.Time, categoryID *int) (models.RangeAggregate, error)
	AggregateByCategory(ctx context.Context, start, end time.Time) ([]models.CategoryAggregate, error)
}

// Options tunes the engine. Zero values fall back to sensible defaults.
type Options struct {
	// RecentLimit caps the dashboard's recent-expenses list.
	RecentLimit int
	// RecentDays is the lookback window for the recent-expenses list.
	RecentDays int
	// Now supplies the current time; defaults to time.Now. Injected so tests
	// can pin "today".
	Now func() time.Time
}

// Engine composes expense store reads into shaped reports. It performs reads
// only and holds no mutable state; every report is recomputed from the store
// on each call.
type Engine struct {
	store       ExpenseStore
	recentLimit int
	recentDays  int
	now         func() time.Time

	tracer   trace.Tracer
	reports  metric.Int64Counter
	duration metric.Float64Histogram
}

// NewEngine creates a report engine over the given store.
func NewEngine(store ExpenseStore, opts Options) *Engine {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 10
	}
	if opts.RecentDays <= 0 {
		opts.RecentDays = 30
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	e := &Engine{
		store:       store,
		recentLimit: opts.RecentLimit,
		recentDays:  opts.RecentDays,
		now:         opts.Now,
		tracer:      otel.Tracer(instrumentationName),
	}

	meter := otel.Meter(instrumentationName)
	var err error
	e.reports, err = meter.Int64Counter("gaston.reports.generated",
		metric.WithDescription("Number of reports generated, by kind"))
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to create report counter")
	}
	e.duration, err = meter.Float64Histogram("gaston.reports.duration",
		metric.WithDescription("Report generation latency"),
		metric.WithUnit("s"))
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to create report histogram")
	}

	return e
}

// ExpenseEntry is the wire shape of a single expense inside a report.
type ExpenseEntry struct {
	ID            int         `json:"id"`
	Amount        json.Number `json:"amount"`
	Date          string      `json:"date"`
	CategoryID    int         `json:"categoryId"`
	Category      string      `json:"category,omitempty"`
	ExpenseNameID int         `json:"expenseNameId"`
	ExpenseName   string      `json:"expenseName,omitempty"`
	Description   string      `json:"description,omitempty"`
}

// WeeklyReport buckets a Monday-to-Sunday week's expenses by day. PerDay
// always contains all seven dates, possibly with empty buckets.
type WeeklyReport struct {
	WeekStart string                    `json:"weekStart"`
	WeekEnd   string                    `json:"weekEnd"`
	PerDay    map[string][]ExpenseEntry `json:"perDay"`
	WeekTotal json.Number               `json:"weekTotal"`
}

// AggregateView is the wire shape of overall range statistics.
type AggregateView struct {
	Count              int64       `json:"count"`
	Sum                json.Number `json:"sum"`
	Avg                json.Number `json:"avg"`
	Min                json.Number `json:"min"`
	Max                json.Number `json:"max"`
	DistinctCategories int64       `json:"distinctCategories"`
	DistinctNames      int64       `json:"distinctNames"`
}

// BreakdownRow is one category's share of a range.
type BreakdownRow struct {
	CategoryID int         `json:"categoryId"`
	Category   string      `json:"category"`
	Color      string      `json:"color"`
	Count      int64       `json:"count"`
	Sum        json.Number `json:"sum"`
	Avg        json.Number `json:"avg"`
}

// RangeStatistics combines the overall aggregate and the category breakdown
// for one [start, end] window. The two are computed without a shared
// snapshot; under concurrent writes they can briefly disagree, which is a
// documented property of this report, not a bug the engine hides.
type RangeStatistics struct {
	Start     string         `json:"start"`
	End       string         `json:"end"`
	Aggregate AggregateView  `json:"aggregate"`
	Breakdown []BreakdownRow `json:"breakdown"`
}

// DashboardSummary is the composed read backing the home screen.
type DashboardSummary struct {
	Week        *WeeklyReport    `json:"week"`
	Month       *RangeStatistics `json:"month"`
	Recent      []ExpenseEntry   `json:"recent"`
	GeneratedAt string           `json:"generatedAt"`
}

// WeeklyReport builds the week view for the Monday-to-Sunday week containing
// anchor. Expenses are fetched once and partitioned by exact date; the total
// is summed once at full precision and rounded only at output.
func (e *Engine) WeeklyReport(ctx context.Context, anchor time.Time) (*WeeklyReport, error) {
	ctx, span := e.tracer.Start(ctx, "reports.WeeklyReport")
	defer span.End()
	started := time.Now()
	defer e.observe("weekly", started)

	week := calendar.WeekOf(anchor)
	expenses, err := e.store.FindInRange(ctx, week.Start, week.End, repository.FindOptions{})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("weekly report: %w", err)
	}

	perDay := make(map[string][]ExpenseEntry, 7)
	for _, day := range week.Days {
		perDay[calendar.FormatDate(day)] = []ExpenseEntry{}
	}

	total := decimal.Zero
	for _, exp := range expenses {
		key := calendar.FormatDate(exp.Date)
		perDay[key] = append(perDay[key], toEntry(exp))
		total = total.Add(exp.Amount)
	}

	return &WeeklyReport{
		WeekStart: calendar.FormatDate(week.Start),
		WeekEnd:   calendar.FormatDate(week.End),
		PerDay:    perDay,
		WeekTotal: money(total),
	}, nil
}

// RangeStatistics computes the overall aggregate and category breakdown for
// [start, end]. When categoryID is set, both are narrowed to that category.
func (e *Engine) RangeStatistics(ctx context.Context, start, end time.Time, categoryID *int) (*RangeStatistics, error) {
	ctx, span := e.tracer.Start(ctx, "reports.RangeStatistics")
	defer span.End()
	started := time.Now()
	defer e.observe("range", started)

	agg, err := e.store.AggregateInRange(ctx, start, end, categoryID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("range statistics: %w", err)
	}

	rows, err := e.store.AggregateByCategory(ctx, start, end)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("range statistics: %w", err)
	}

	breakdown := make([]BreakdownRow, 0, len(rows))
	for _, row := range rows {
		if categoryID != nil && row.Category.ID != *categoryID {
			continue
		}
		breakdown = append(breakdown, BreakdownRow{
			CategoryID: row.Category.ID,
			Category:   row.Category.Name,
			Color:      row.Category.Color,
			Count:      row.Count,
			Sum:        money(row.Sum),
			Avg:        money(row.Avg),
		})
	}

	return &RangeStatistics{
		Start: calendar.FormatDate(start),
		End:   calendar.FormatDate(end),
		Aggregate: AggregateView{
			Count:              agg.Count,
			Sum:                money(agg.Sum),
			Avg:                money(agg.Avg),
			Min:                money(agg.Min),
			Max:                money(agg.Max),
			DistinctCategories: agg.DistinctCategories,
			DistinctNames:      agg.DistinctNames,
		},
		Breakdown: breakdown,
	}, nil
}

// MonthlyReport computes range statistics for a calendar month. The month is
// a YYYY-MM label; an empty label means the current month.
func (e *Engine) MonthlyReport(ctx context.Context, month string) (*RangeStatistics, error) {
	anchor := e.now()
	if month != "" {
		parsed, err := calendar.ParseMonth(month)
		if err != nil {
			return nil, err
		}
		anchor = parsed
	}

	start, end := calendar.MonthBounds(anchor)
	return e.RangeStatistics(ctx, start, end, nil)
}

// DashboardSummary composes the current week, the current month and the
// recent expenses into one read. Any failing sub-query fails the whole
// dashboard; a partial dashboard is worse than a clear failure.
func (e *Engine) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	ctx, span := e.tracer.Start(ctx, "reports.DashboardSummary")
	defer span.End()
	started := time.Now()
	defer e.observe("dashboard", started)

	now := e.now()
	today := calendar.Midnight(now)

	week, err := e.WeeklyReport(ctx, today)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	month, err := e.MonthlyReport(ctx, "")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	recent, err := e.store.FindInRange(ctx,
		today.AddDate(0, 0, -e.recentDays), today,
		repository.FindOptions{Limit: e.recentLimit})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	entries := make([]ExpenseEntry, 0, len(recent))
	for _, exp := range recent {
		entries = append(entries, toEntry(exp))
	}

	return &DashboardSummary{
		Week:        week,
		Month:       month,
		Recent:      entries,
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}, nil
}

// observe records one report generation for metrics.
func (e *Engine) observe(kind string, started time.Time) {
	attrs := metric.WithAttributes(attribute.String("report.kind", kind))
	if e.reports != nil {
		e.reports.Add(context.Background(), 1, attrs)
	}
	if e.duration != nil {
		e.duration.Record(context.Background(), time.Since(started).Seconds(), attrs)
	}
}

// money rounds a monetary value to exactly two decimal places (half away
// from zero) at the point of output.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func toEntry(exp models.Expense) ExpenseEntry {
	entry := ExpenseEntry{
		ID:            exp.ID,
		Amount:        money(exp.Amount),
		Date:          calendar.FormatDate(exp.Date),
		CategoryID:    exp.CategoryID,
		ExpenseNameID: exp.ExpenseNameID,
		Description:   exp.Description,
	}
	if exp.Category != nil {
		entry.Category = exp.Category.Name
	}
	if exp.ExpenseName != nil {
		entry.ExpenseName = exp.ExpenseName.Name
	}
	return entry
}
