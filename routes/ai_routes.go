package routes

import (
	"github.com/gofiber/fiber/v2"

	"skillforge/handlers"
)

func AIRoutes(app *fiber.App, auth fiber.Handler, h *handlers.AIHandler) {
	api := app.Group("/api/v1")

	group := api.Group("/ai", auth)
	group.Post("/suggest-keywords", h.SuggestKeywords)
}
