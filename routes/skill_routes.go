package routes

import (
	"github.com/gofiber/fiber/v2"

	"skillforge/handlers"
)

func SkillRoutes(app *fiber.App, auth fiber.Handler, skills *handlers.SkillHandler, reviews *handlers.ReviewHandler) {
	api := app.Group("/api/v1")

	group := api.Group("/skills")
	group.Post("", auth, skills.Create)
	group.Get("", skills.List)
	group.Get("/:id", skills.GetByID)
	group.Put("/:id", auth, skills.Update)
	group.Delete("/:id", auth, skills.Delete)

	group.Post("/:skillId/reviews", auth, reviews.Create)
	group.Get("/:skillId/reviews", reviews.ListForSkill)
}
