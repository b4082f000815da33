package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skillforge/models"
)

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Booking{},
		&models.Review{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// One active booking per (student, skill). The handler pre-check only
	// produces the friendly error message; this index is what holds under
	// concurrent requests.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_one_active
		ON bookings (student_id, skill_id)
		WHERE status IN ('pending', 'confirmed')`).Error
	if err != nil {
		return fmt.Errorf("failed to create active booking index: %w", err)
	}

	return nil
}
