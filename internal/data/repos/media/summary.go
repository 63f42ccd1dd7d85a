package media

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type VideoSummaryRepo interface {
	Get(dbc dbctx.Context, videoID, userID, summaryType string) (*types.VideoSummary, error)
	// CreateIfAbsent inserts the summary and reports false when one already
	// exists for the same (video, user, type) key.
	CreateIfAbsent(dbc dbctx.Context, s *types.VideoSummary) (bool, error)
	ListByVideoUser(dbc dbctx.Context, videoID, userID string) ([]*types.VideoSummary, error)
}

type videoSummaryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoSummaryRepo(db *gorm.DB, baseLog *logger.Logger) VideoSummaryRepo {
	return &videoSummaryRepo{db: db, log: baseLog.With("repo", "VideoSummaryRepo")}
}

func (r *videoSummaryRepo) Get(dbc dbctx.Context, videoID, userID, summaryType string) (*types.VideoSummary, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out types.VideoSummary
	if err := transaction.WithContext(dbc.Ctx).
		Where("video_id = ? AND user_id = ? AND summary_type = ?", videoID, userID, summaryType).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.VideoID == "" {
		return nil, nil
	}
	return &out, nil
}

func (r *videoSummaryRepo) CreateIfAbsent(dbc dbctx.Context, s *types.VideoSummary) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}, {Name: "user_id"}, {Name: "summary_type"}},
			DoNothing: true,
		}).
		Create(s)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *videoSummaryRepo) ListByVideoUser(dbc dbctx.Context, videoID, userID string) ([]*types.VideoSummary, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.VideoSummary
	if err := transaction.WithContext(dbc.Ctx).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
