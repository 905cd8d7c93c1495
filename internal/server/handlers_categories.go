package server

import (
	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleListCategories(c *fiber.Ctx) error {
	categories, err := s.categories.List(c.UserContext())
	if err != nil {
		return err
	}

	views := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, toCategoryView(cat))
	}
	return respond(c, fiber.StatusOK, views)
}

func (s *Server) handleGetCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cat, err := s.categories.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toCategoryView(*cat))
}

func (s *Server) handleCreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	cat, err := s.categories.Create(c.UserContext(), req.Name, req.Color)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, toCategoryView(*cat))
}

func (s *Server) handleUpdateCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	cat, err := s.categories.Update(c.UserContext(), id, req.Name, req.Color)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, toCategoryView(*cat))
}

func (s *Server) handleDeleteCategory(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := s.categories.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, fiber.Map{"deleted": id})
}

func pathID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}
