package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending             = "pending"
	BookingStatusConfirmed           = "confirmed"
	BookingStatusCompleted           = "completed"
	BookingStatusCancelledByStudent  = "cancelled_by_student"
	BookingStatusCancelledByProvider = "cancelled_by_provider"
)

type Booking struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SkillID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"skill_id"`
	StudentID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	ProviderID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"provider_id"`
	BookingTime     time.Time  `gorm:"not null" json:"booking_time"`
	Message         string     `gorm:"type:text" json:"message"`
	ProviderMessage *string    `gorm:"type:text" json:"provider_message"`
	Status          string     `gorm:"size:30;not null;default:'pending'" json:"status"`
	RemindedAt      *time.Time `json:"-"`

	Skill    Skill `gorm:"foreignkey:SkillID" json:"skill,omitempty"`
	Student  User  `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Provider User  `gorm:"foreignkey:ProviderID" json:"provider,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
