package server

import (
	"github.com/gofiber/fiber/v2"
)

type expenseNameRequest struct {
	Name                string `json:"name"`
	SuggestedCategoryID *int   `json:"suggestedCategoryId"`
}

func (s *Server) handleListExpenseNames(c *fiber.Ctx) error {
	names, err := s.names.List(c.UserContext())
	if err != nil {
		return err
	}

	views := make([]expenseNameView, 0, len(names))
	for _, name := range names {
		views = append(views, toExpenseNameView(name))
	}
	return respond(c, fiber.StatusOK, views)
}

func (s *Server) handleGetExpenseName(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	name, err := s.names.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toExpenseNameView(*name))
}

func (s *Server) handleCreateExpenseName(c *fiber.Ctx) error {
	var req expenseNameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	name, err := s.names.Create(c.UserContext(), req.Name, req.SuggestedCategoryID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, toExpenseNameView(*name))
}

func (s *Server) handleUpdateExpenseName(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req expenseNameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	name, err := s.names.Update(c.UserContext(), id, req.Name, req.SuggestedCategoryID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toExpenseNameView(*name))
}

func (s *Server) handleDeleteExpenseName(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.names.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
