package handlers

import (
	"errors"
	"math"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillforge/middleware"
	"skillforge/models"
)

type ReviewHandler struct {
	DB *gorm.DB
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Rating must be a number between 1 and 5"})
	}

	var skill models.Skill
	if err := h.DB.First(&skill, "id = ?", c.Params("skillId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}
	if skill.UserID == callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You cannot review your own skill"})
	}

	review := models.Review{
		SkillID:    skill.ID,
		ReviewerID: callerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := h.DB.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already reviewed this skill"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	h.DB.Preload("Reviewer").First(&review, "id = ?", review.ID)
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) ListForSkill(c *fiber.Ctx) error {
	var skill models.Skill
	if err := h.DB.First(&skill, "id = ?", c.Params("skillId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}

	var reviews []models.Review
	if err := h.DB.Preload("Reviewer").
		Where("skill_id = ?", skill.ID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}

	averageRating := 0.0
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
		}
		averageRating = math.Round(float64(total)/float64(len(reviews))*10) / 10
	}

	return c.JSON(fiber.Map{
		"reviews":       reviews,
		"averageRating": averageRating,
		"totalReviews":  len(reviews),
	})
}
