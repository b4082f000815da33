package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"skillforge/ai"
)

type AIHandler struct {
	Keywords *ai.KeywordService
}

type SuggestKeywordsRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

func (h *AIHandler) SuggestKeywords(c *fiber.Ctx) error {
	var req SuggestKeywordsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Skill title is required to suggest keywords"})
	}

	keywords, raw, err := h.Keywords.Suggest(c.Context(), req.Title, req.Description)
	if err != nil {
		log.Printf("🔥 Keyword suggestion failed: %v", err)
		return c.Status(fiber.StatusBadGateway).
			JSON(fiber.Map{"error": "Failed to get keyword suggestions from the AI service"})
	}

	return c.JSON(fiber.Map{
		"suggested_keywords": keywords,
		"raw_response":       raw,
	})
}
