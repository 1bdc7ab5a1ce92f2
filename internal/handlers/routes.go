package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/essay-grader/internal/criteria"
)

type Handlers struct {
	Essay      *EssayHandler
	Result     *ResultHandler
	History    *HistoryHandler
	SessionTTL time.Duration
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/criteria", func(c *fiber.Ctx) error {
		return c.JSON(criteria.All())
	})

	api.Use(SessionMiddleware(h.SessionTTL))

	api.Post("/essays", h.Essay.HandleSubmit)
	api.Get("/essays/:id", h.Result.HandleGetResult)

	api.Get("/history", h.History.HandleHistory)
	api.Get("/history/top", h.History.HandleTop)
	api.Get("/history/chart", h.History.HandleChart)
	api.Get("/history/themes", h.History.HandleThemes)
	api.Delete("/session", h.History.HandleEndSession)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ENEM Essay Grader API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/criteria",
				"POST /api/v1/essays",
				"GET /api/v1/essays/:id",
				"GET /api/v1/history",
				"GET /api/v1/history/top?n=5",
				"GET /api/v1/history/chart?n=5",
				"GET /api/v1/history/themes",
				"DELETE /api/v1/session",
			},
		})
	})
}

// ErrorHandler renders errors that reach fiber as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
