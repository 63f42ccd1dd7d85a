package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
)

type Purchase struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            string     `gorm:"column:user_id;type:varchar(64);not null;index" json:"userId"`
	CourseID          uuid.UUID  `gorm:"column:course_id;type:uuid;not null;index" json:"courseId"`
	Amount            float64    `gorm:"column:amount;not null" json:"amount"`
	Currency          string     `gorm:"column:currency;not null;default:'usd'" json:"currency"`
	Status            string     `gorm:"column:status;not null;default:'pending';index" json:"status"`
	CheckoutSessionID string     `gorm:"column:checkout_session_id;index" json:"checkoutSessionId,omitempty"`
	CompletedAt       *time.Time `gorm:"column:completed_at" json:"completedAt,omitempty"`
	FailedAt          *time.Time `gorm:"column:failed_at" json:"failedAt,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (Purchase) TableName() string { return "purchase" }

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// IsTerminal reports whether the purchase can no longer change status.
func (p *Purchase) IsTerminal() bool {
	return p.Status == PurchaseStatusCompleted || p.Status == PurchaseStatusFailed
}
