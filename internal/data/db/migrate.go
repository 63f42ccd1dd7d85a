package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/skillnest-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// Identity
		&types.User{},

		// Catalogue + enrollment
		&types.Course{},
		&types.Enrollment{},

		// Billing
		&types.Purchase{},
		&types.BillingEvent{},

		// Video AI
		&types.VideoTranscript{},
		&types.VideoSummary{},
		&types.VideoQA{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
