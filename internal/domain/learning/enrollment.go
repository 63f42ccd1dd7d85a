package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment is the single record linking a user to a course. Both the
// user's course list and the course's roster are read from this table.
type Enrollment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string     `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID   uuid.UUID  `gorm:"column:course_id;type:uuid;not null;uniqueIndex:idx_enrollment_user_course;index" json:"courseId"`
	PurchaseID *uuid.UUID `gorm:"column:purchase_id;type:uuid;index" json:"purchaseId,omitempty"`
	CreatedAt  time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (Enrollment) TableName() string { return "enrollment" }

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
