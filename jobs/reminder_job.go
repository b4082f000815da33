package jobs

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"skillforge/models"
	"skillforge/notifications"
)

// ReminderJob emails both parties of a confirmed booking shortly before its
// scheduled time. RemindedAt keeps each booking to a single reminder.
type ReminderJob struct {
	DB   *gorm.DB
	Mail notifications.Sender
}

func (j *ReminderJob) SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	var upcoming []models.Booking
	err := j.DB.
		Preload("Skill").
		Preload("Student").
		Preload("Provider").
		Where("status = ? AND booking_time BETWEEN ? AND ? AND reminded_at IS NULL",
			models.BookingStatusConfirmed, now, now.Add(time.Hour)).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	for i := range upcoming {
		booking := upcoming[i]
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		subject := fmt.Sprintf("Reminder: your %q session starts soon", booking.Skill.Title)
		when := booking.BookingTime.Format(time.Kitchen)

		go notifications.Notify(j.Mail, booking.Student.Name, booking.Student.Email, subject,
			fmt.Sprintf("<p>Hi %s,</p><p>This is a friendly reminder that your %q session with %s starts at %s.</p>",
				booking.Student.Name, booking.Skill.Title, booking.Provider.Name, when))
		go notifications.Notify(j.Mail, booking.Provider.Name, booking.Provider.Email, subject,
			fmt.Sprintf("<p>Hi %s,</p><p>This is a friendly reminder that your %q session with %s starts at %s.</p>",
				booking.Provider.Name, booking.Skill.Title, booking.Student.Name, when))

		if err := j.DB.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Update("reminded_at", now).Error; err != nil {
			log.Printf("Error stamping reminder for booking %s: %v", booking.ID, err)
		}
	}
}
