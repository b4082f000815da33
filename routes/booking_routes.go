package routes

import (
	"github.com/gofiber/fiber/v2"

	"skillforge/handlers"
)

func BookingRoutes(app *fiber.App, auth fiber.Handler, h *handlers.BookingHandler) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", auth)
	bookings.Post("", h.Create)
	bookings.Get("/student", h.ListForStudent)
	bookings.Get("/provider", h.ListForProvider)
	bookings.Patch("/:bookingId/status", h.UpdateStatus)
}
