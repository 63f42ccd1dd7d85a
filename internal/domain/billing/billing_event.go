package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventOutcomeCompleted = "completed"
	EventOutcomeFailed    = "failed"
	EventOutcomeSkipped   = "skipped"
)

// BillingEvent records a payment-provider event that changed (or deliberately
// did not change) a purchase. ProviderEventID is unique so a replayed event is
// recognised before any state is touched.
type BillingEvent struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Provider        string     `gorm:"column:provider;not null;default:'stripe'" json:"provider"`
	ProviderEventID string     `gorm:"column:provider_event_id;not null;uniqueIndex" json:"providerEventId"`
	EventType       string     `gorm:"column:event_type;not null;index" json:"eventType"`
	PurchaseID      *uuid.UUID `gorm:"column:purchase_id;type:uuid;index" json:"purchaseId,omitempty"`
	Outcome         string     `gorm:"column:outcome;not null" json:"outcome"`
	CreatedAt       time.Time  `gorm:"not null;autoCreateTime" json:"createdAt"`
}

func (BillingEvent) TableName() string { return "billing_event" }

func (e *BillingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
