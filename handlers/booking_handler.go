package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"skillforge/middleware"
	"skillforge/models"
	"skillforge/notifications"
)

type BookingHandler struct {
	DB   *gorm.DB
	Mail notifications.Sender
}

type CreateBookingRequest struct {
	SkillID     string `json:"skill_id" validate:"required,uuid"`
	BookingTime string `json:"booking_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Message     string `json:"message"`
}

type UpdateBookingStatusRequest struct {
	Status          string  `json:"status" validate:"required"`
	ProviderMessage *string `json:"provider_message"`
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	bookingTime, _ := time.Parse(time.RFC3339, req.BookingTime)

	var skill models.Skill
	if err := h.DB.Preload("User").First(&skill, "id = ?", req.SkillID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}
	if skill.UserID == callerID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot book your own skill"})
	}

	// Advisory pre-check for the friendly message; the partial unique index
	// created in database.Migrate is what actually holds under races.
	var existing models.Booking
	err = h.DB.Where("skill_id = ? AND student_id = ? AND status IN ?",
		skill.ID, callerID,
		[]string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"error": "You already have an active booking request for this skill"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	booking := models.Booking{
		SkillID:     skill.ID,
		StudentID:   callerID,
		ProviderID:  skill.UserID,
		BookingTime: bookingTime,
		Message:     req.Message,
		Status:      models.BookingStatusPending,
	}
	if err := h.DB.Create(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "You already have an active booking request for this skill"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	h.DB.Preload("Skill").Preload("Student").Preload("Provider").First(&booking, "id = ?", booking.ID)

	message := booking.Message
	if message == "" {
		message = "N/A"
	}
	go notifications.Notify(h.Mail, booking.Provider.Name, booking.Provider.Email,
		fmt.Sprintf("New booking request for your skill: %s", skill.Title),
		fmt.Sprintf(
			"<p>Hi %s,</p><p>%s (%s) has requested to book your skill %q for %s.</p><p>Message from student: %s</p><p>Please log in to SkillForge to review this request.</p>",
			booking.Provider.Name, booking.Student.Name, booking.Student.Email,
			skill.Title, booking.BookingTime.Format(time.RFC1123), message))

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New status is required"})
	}

	status := strings.ToLower(req.Status)
	if !models.IsValidBookingStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status value"})
	}

	var booking models.Booking
	if err := h.DB.Preload("Skill").Preload("Student").Preload("Provider").
		First(&booking, "id = ?", c.Params("bookingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	role := booking.RoleOf(callerID)
	if !models.AllowedTargetForRole(role, status) {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"error": "You do not have permission to update this booking to the specified status"})
	}
	if !models.CanTransition(booking.Status, status) {
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"error": fmt.Sprintf("Cannot move a %s booking to %s", booking.Status, status)})
	}

	booking.Status = status
	if status == models.BookingStatusConfirmed && role == models.RoleProvider && req.ProviderMessage != nil {
		booking.ProviderMessage = req.ProviderMessage
	}
	if err := h.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking status"})
	}

	h.notifyStatusChange(&booking)

	return c.JSON(booking)
}

// notifyStatusChange fans the accepted transition out to the counterparty.
// Best-effort only: each send runs in its own goroutine and failures stay
// in the logs.
func (h *BookingHandler) notifyStatusChange(booking *models.Booking) {
	skillTitle := booking.Skill.Title
	when := booking.BookingTime.Format(time.RFC1123)

	switch booking.Status {
	case models.BookingStatusConfirmed:
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your booking for the skill %q with %s scheduled for %s has been confirmed.</p>",
			booking.Student.Name, skillTitle, booking.Provider.Name, when)
		if booking.ProviderMessage != nil && *booking.ProviderMessage != "" {
			body += fmt.Sprintf("<p><strong>Message from your provider:</strong></p><p>%s</p>",
				strings.ReplaceAll(*booking.ProviderMessage, "\n", "<br>"))
		}
		body += "<p>We look forward to your session!</p>"
		go notifications.Notify(h.Mail, booking.Student.Name, booking.Student.Email,
			fmt.Sprintf("Your booking for %q has been confirmed!", skillTitle), body)

	case models.BookingStatusCancelledByProvider:
		go notifications.Notify(h.Mail, booking.Student.Name, booking.Student.Email,
			fmt.Sprintf("Your booking for %q has been cancelled by the provider", skillTitle),
			fmt.Sprintf(
				"<p>Hi %s,</p><p>We regret to inform you that your booking for %q scheduled for %s has been cancelled by the provider.</p><p>Provider: %s</p>",
				booking.Student.Name, skillTitle, when, booking.Provider.Name))

	case models.BookingStatusCancelledByStudent:
		go notifications.Notify(h.Mail, booking.Provider.Name, booking.Provider.Email,
			fmt.Sprintf("A booking for your skill %q has been cancelled by the student", skillTitle),
			fmt.Sprintf(
				"<p>Hi %s,</p><p>The booking made by %s (%s) for your skill %q scheduled for %s has been cancelled by the student.</p>",
				booking.Provider.Name, booking.Student.Name, booking.Student.Email, skillTitle, when))
	}
}

func (h *BookingHandler) ListForStudent(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	var bookings []models.Booking
	if err := h.DB.Preload("Skill").Preload("Provider").
		Where("student_id = ?", callerID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}

func (h *BookingHandler) ListForProvider(c *fiber.Ctx) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	var bookings []models.Booking
	if err := h.DB.Preload("Skill").Preload("Student").
		Where("provider_id = ?", callerID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}
