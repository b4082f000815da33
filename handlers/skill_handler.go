package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillforge/middleware"
	"skillforge/models"
)

type SkillHandler struct {
	DB *gorm.DB
}

type CreateSkillRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	PricePerHour *float64 `json:"price_per_hour"`
}

var skillSortColumns = map[string]string{
	"title":        "title",
	"pricePerHour": "price_per_hour",
	"createdAt":    "created_at",
}

func (h *SkillHandler) Create(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	var req CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}
	if req.PricePerHour != nil && *req.PricePerHour < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price per hour cannot be negative"})
	}

	skill := models.Skill{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		PricePerHour: req.PricePerHour,
		UserID:       callerID,
	}
	if err := h.DB.Create(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create skill"})
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

func (h *SkillHandler) List(c *fiber.Ctx) error {
	q := h.DB.Model(&models.Skill{}).Preload("User")

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category)))
	}
	if v := c.Query("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q = q.Where("price_per_hour >= ?", f)
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q = q.Where("price_per_hour <= ?", f)
		}
	}
	if userID := c.Query("userId"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	// Unknown sortBy values silently fall back to newest-first.
	order := "created_at desc"
	if column, ok := skillSortColumns[c.Query("sortBy")]; ok {
		direction := "asc"
		if c.Query("sortOrder") == "desc" {
			direction = "desc"
		}
		order = column + " " + direction
	}
	q = q.Order(order)

	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q = q.Limit(n)
		}
	}

	var skills []models.Skill
	if err := q.Find(&skills).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch skills"})
	}
	return c.JSON(skills)
}

func (h *SkillHandler) GetByID(c *fiber.Ctx) error {
	var skill models.Skill
	if err := h.DB.Preload("User").First(&skill, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}
	return c.JSON(skill)
}

func (h *SkillHandler) Update(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	var skill models.Skill
	if err := h.DB.First(&skill, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}
	if skill.UserID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only update your own skills"})
	}

	// Decoded as a map so an explicit empty category or null price clears
	// the field while an absent key leaves it alone.
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if v, ok := body["title"]; ok {
		title, isString := v.(string)
		if !isString || strings.TrimSpace(title) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title cannot be empty"})
		}
		skill.Title = title
	}
	if v, ok := body["description"]; ok {
		description, _ := v.(string)
		skill.Description = description
	}
	if v, ok := body["category"]; ok {
		category, _ := v.(string)
		skill.Category = category
	}
	if v, ok := body["price_per_hour"]; ok {
		switch price := v.(type) {
		case nil:
			skill.PricePerHour = nil
		case float64:
			if price < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price per hour cannot be negative"})
			}
			skill.PricePerHour = &price
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price per hour must be a number"})
		}
	}

	if err := h.DB.Save(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update skill"})
	}
	return c.JSON(skill)
}

func (h *SkillHandler) Delete(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	var skill models.Skill
	if err := h.DB.First(&skill, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}
	if skill.UserID != callerID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own skills"})
	}

	var activeBookings int64
	h.DB.Model(&models.Booking{}).
		Where("skill_id = ? AND status IN ?", skill.ID,
			[]string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Count(&activeBookings)
	if activeBookings > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cannot delete a skill with active bookings"})
	}

	if err := h.DB.Delete(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete skill"})
	}
	return c.JSON(fiber.Map{"message": "Skill deleted successfully"})
}
