package routes

import (
	"github.com/gofiber/fiber/v2"

	"skillforge/handlers"
)

func UserRoutes(app *fiber.App, auth fiber.Handler, h *handlers.AuthHandler) {
	api := app.Group("/api/v1")

	users := api.Group("/users")
	users.Post("/register", h.Register)
	users.Post("/login", h.Login)
	users.Get("/profile", auth, h.Profile)
}
