// Package server exposes the reporting engine and the CRUD services over
// HTTP with Fiber.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"gitlab.com/gastonapp/gaston-api/internal/config"
	"gitlab.com/gastonapp/gaston-api/internal/reports"
	"gitlab.com/gastonapp/gaston-api/internal/service"
)

// Server wires handlers onto a Fiber app. Optional collaborators may be nil;
// their routes are simply not registered.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	pool   *pgxpool.Pool
	engine *reports.Engine
	store  reports.ExpenseStore

	categories *service.CategoryService
	names      *service.ExpenseNameService
	expenses   *service.ExpenseService

	now func() time.Time
}

// Deps collects the server's collaborators.
type Deps struct {
	Pool       *pgxpool.Pool
	Engine     *reports.Engine
	Store      reports.ExpenseStore
	Categories *service.CategoryService
	Names      *service.ExpenseNameService
	Expenses   *service.ExpenseService
	// Now supplies the current time; defaults to time.Now.
	Now func() time.Time
}

// New creates the HTTP server and registers all routes.
func New(cfg *config.Config, deps Deps) *Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	s := &Server{
		cfg:        cfg,
		pool:       deps.Pool,
		engine:     deps.Engine,
		store:      deps.Store,
		categories: deps.Categories,
		names:      deps.Names,
		expenses:   deps.Expenses,
		now:        deps.Now,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "gaston-api",
		ErrorHandler: errorHandler,
	})
	s.app.Use(cors.New())

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)

	if s.engine != nil {
		api := s.app.Group("/api/reports")
		api.Get("/week", s.handleWeek)
		api.Get("/week/:date", s.handleWeek)
		api.Get("/range", s.handleRange)
		api.Get("/month", s.handleMonth)
		api.Get("/dashboard", s.handleDashboard)
	}

	if s.store != nil {
		s.app.Get("/api/reports/export.csv", s.handleExportCSV)
		s.app.Get("/api/reports/chart.png", s.handleChartPNG)
	}

	if s.categories != nil {
		api := s.app.Group("/api/categories")
		api.Get("/", s.handleListCategories)
		api.Get("/:id", s.handleGetCategory)
		api.Post("/", s.handleCreateCategory)
		api.Put("/:id", s.handleUpdateCategory)
		api.Delete("/:id", s.handleDeleteCategory)
	}

	if s.names != nil {
		api := s.app.Group("/api/expense-names")
		api.Get("/", s.handleListExpenseNames)
		api.Get("/:id", s.handleGetExpenseName)
		api.Post("/", s.handleCreateExpenseName)
		api.Put("/:id", s.handleUpdateExpenseName)
		api.Delete("/:id", s.handleDeleteExpenseName)
	}

	if s.expenses != nil {
		api := s.app.Group("/api/expenses")
		api.Get("/", s.handleListExpenses)
		api.Get("/:id", s.handleGetExpense)
		api.Post("/", s.handleCreateExpense)
		api.Put("/:id", s.handleUpdateExpense)
		api.Delete("/:id", s.handleDeleteExpense)
	}
}

// Listen blocks serving HTTP on the configured port.
func (s *Server) Listen() error {
	return s.app.Listen(":" + s.cfg.Port)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	if s.pool != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := s.pool.Ping(ctx); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
		}
	}
	return respond(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}
