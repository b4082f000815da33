package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SkillID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_reviewer_skill" json:"skill_id"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_reviewer_skill" json:"reviewer_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`

	Reviewer User `gorm:"foreignkey:ReviewerID" json:"reviewer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
