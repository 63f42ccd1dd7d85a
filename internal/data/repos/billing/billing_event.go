package billing

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type BillingEventRepo interface {
	Seen(dbc dbctx.Context, providerEventID string) (bool, error)
	// Record inserts the ledger row and reports false when the provider event id was already recorded.
	Record(dbc dbctx.Context, e *types.BillingEvent) (bool, error)
}

type billingEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBillingEventRepo(db *gorm.DB, baseLog *logger.Logger) BillingEventRepo {
	return &billingEventRepo{db: db, log: baseLog.With("repo", "BillingEventRepo")}
}

func (r *billingEventRepo) Seen(dbc dbctx.Context, providerEventID string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if providerEventID == "" {
		return false, nil
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.BillingEvent{}).
		Where("provider_event_id = ?", providerEventID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *billingEventRepo) Record(dbc dbctx.Context, e *types.BillingEvent) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "provider_event_id"}}, DoNothing: true}).
		Create(e)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
