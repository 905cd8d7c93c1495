package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gitlab.com/gastonapp/gaston-api/internal/calendar"
	"gitlab.com/gastonapp/gaston-api/internal/reports"
	"gitlab.com/gastonapp/gaston-api/internal/repository"
)

func (s *Server) handleWeek(c *fiber.Ctx) error {
	anchor := calendar.Midnight(s.now())
	if raw := c.Params("date"); raw != "" {
		parsed, err := calendar.ParseDate(raw)
		if err != nil {
			return err
		}
		anchor = parsed
	}

	report, err := s.engine.WeeklyReport(c.UserContext(), anchor)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, report)
}

func (s *Server) handleRange(c *fiber.Ctx) error {
	start, end, err := reports.ValidateRange(
		c.Query("start"), c.Query("end"), s.cfg.MaxRangeDays, s.now())
	if err != nil {
		return err
	}

	categoryID, err := optionalIntQuery(c, "categoryId")
	if err != nil {
		return err
	}

	stats, err := s.engine.RangeStatistics(c.UserContext(), start, end, categoryID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, stats)
}

func (s *Server) handleMonth(c *fiber.Ctx) error {
	stats, err := s.engine.MonthlyReport(c.UserContext(), strings.TrimSpace(c.Query("month")))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, stats)
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	summary, err := s.engine.DashboardSummary(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, summary)
}

func (s *Server) handleExportCSV(c *fiber.Ctx) error {
	start, end, err := reports.ValidateRange(
		c.Query("start"), c.Query("end"), s.cfg.MaxRangeDays, s.now())
	if err != nil {
		return err
	}

	expenses, err := s.store.FindInRange(c.UserContext(), start, end, repository.FindOptions{})
	if err != nil {
		return err
	}

	data, err := reports.GenerateExpensesCSV(expenses)
	if err != nil {
		return err
	}

	filename := reports.CSVFilename(calendar.FormatDate(start), calendar.FormatDate(end))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func (s *Server) handleChartPNG(c *fiber.Ctx) error {
	start, end, err := reports.ValidateRange(
		c.Query("start"), c.Query("end"), s.cfg.MaxRangeDays, s.now())
	if err != nil {
		return err
	}

	rows, err := s.store.AggregateByCategory(c.UserContext(), start, end)
	if err != nil {
		return err
	}

	period := calendar.FormatDate(start) + " to " + calendar.FormatDate(end)
	png, err := reports.GenerateBreakdownChart(rows, period)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func optionalIntQuery(c *fiber.Ctx, key string) (*int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" must be an integer")
	}
	return &n, nil
}
