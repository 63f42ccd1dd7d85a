package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type PurchaseRepo interface {
	Create(dbc dbctx.Context, p *types.Purchase) (*types.Purchase, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Purchase, error)
	// Transition moves the purchase from one status to another and reports
	// whether this call performed the move. A purchase that is no longer in
	// the from status is left untouched.
	Transition(dbc dbctx.Context, id uuid.UUID, from, to string) (bool, error)
	SetCheckoutSession(dbc dbctx.Context, id uuid.UUID, sessionID string) error
}

type purchaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPurchaseRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseRepo {
	return &purchaseRepo{db: db, log: baseLog.With("repo", "PurchaseRepo")}
}

func (r *purchaseRepo) Create(dbc dbctx.Context, p *types.Purchase) (*types.Purchase, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if p.Status == "" {
		p.Status = types.PurchaseStatusPending
	}
	if err := transaction.WithContext(dbc.Ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *purchaseRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Purchase, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out types.Purchase
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *purchaseRepo) Transition(dbc dbctx.Context, id uuid.UUID, from, to string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	switch to {
	case types.PurchaseStatusCompleted:
		updates["completed_at"] = now
	case types.PurchaseStatusFailed:
		updates["failed_at"] = now
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Purchase{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *purchaseRepo) SetCheckoutSession(dbc dbctx.Context, id uuid.UUID, sessionID string) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Purchase{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"checkout_session_id": sessionID,
			"updated_at":          time.Now().UTC(),
		}).Error
}
