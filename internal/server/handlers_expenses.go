package server

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gitlab.com/gastonapp/gaston-api/internal/reports"
	"gitlab.com/gastonapp/gaston-api/internal/repository"
	"gitlab.com/gastonapp/gaston-api/internal/service"
)

type expenseRequest struct {
	Amount        json.Number `json:"amount"`
	Date          string      `json:"date"`
	CategoryID    int         `json:"categoryId"`
	ExpenseNameID int         `json:"expenseNameId"`
	Description   string      `json:"description"`
}

func (r expenseRequest) toInput() service.ExpenseInput {
	return service.ExpenseInput{
		Amount:        r.Amount.String(),
		Date:          r.Date,
		CategoryID:    r.CategoryID,
		ExpenseNameID: r.ExpenseNameID,
		Description:   r.Description,
	}
}

// handleListExpenses lists expenses in a [start, end] range, newest first,
// with optional category filter and pagination.
func (s *Server) handleListExpenses(c *fiber.Ctx) error {
	start, end, err := reports.ValidateRange(
		c.Query("start"), c.Query("end"), s.cfg.MaxRangeDays, s.now())
	if err != nil {
		return err
	}

	categoryID, err := optionalIntQuery(c, "categoryId")
	if err != nil {
		return err
	}
	limit, err := nonNegativeIntQuery(c, "limit")
	if err != nil {
		return err
	}
	offset, err := nonNegativeIntQuery(c, "offset")
	if err != nil {
		return err
	}

	expenses, err := s.store.FindInRange(c.UserContext(), start, end, repository.FindOptions{
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}

	views := make([]expenseView, 0, len(expenses))
	for _, exp := range expenses {
		views = append(views, toExpenseView(exp))
	}
	return respond(c, fiber.StatusOK, views)
}

func (s *Server) handleGetExpense(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	exp, err := s.expenses.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toExpenseView(*exp))
}

func (s *Server) handleCreateExpense(c *fiber.Ctx) error {
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	exp, err := s.expenses.Create(c.UserContext(), req.toInput())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, toExpenseView(*exp))
}

func (s *Server) handleUpdateExpense(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req expenseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	exp, err := s.expenses.Update(c.UserContext(), id, req.toInput())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toExpenseView(*exp))
}

func (s *Server) handleDeleteExpense(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.expenses.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": id})
}

func nonNegativeIntQuery(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, key+" must be a non-negative integer")
	}
	return n, nil
}
