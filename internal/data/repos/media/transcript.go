package media

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type VideoTranscriptRepo interface {
	// CreateIfAbsent inserts the transcript and reports false when the video id is taken.
	CreateIfAbsent(dbc dbctx.Context, t *types.VideoTranscript) (bool, error)
	GetByVideoID(dbc dbctx.Context, videoID string) (*types.VideoTranscript, error)
	// List returns transcripts without segments, newest first.
	List(dbc dbctx.Context) ([]*types.VideoTranscript, error)
}

type videoTranscriptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoTranscriptRepo(db *gorm.DB, baseLog *logger.Logger) VideoTranscriptRepo {
	return &videoTranscriptRepo{db: db, log: baseLog.With("repo", "VideoTranscriptRepo")}
}

func (r *videoTranscriptRepo) CreateIfAbsent(dbc dbctx.Context, t *types.VideoTranscript) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "video_id"}}, DoNothing: true}).
		Create(t)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *videoTranscriptRepo) GetByVideoID(dbc dbctx.Context, videoID string) (*types.VideoTranscript, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, nil
	}
	var out types.VideoTranscript
	if err := transaction.WithContext(dbc.Ctx).
		Where("video_id = ?", videoID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.VideoID == "" {
		return nil, nil
	}
	return &out, nil
}

func (r *videoTranscriptRepo) List(dbc dbctx.Context) ([]*types.VideoTranscript, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.VideoTranscript
	if err := transaction.WithContext(dbc.Ctx).
		Omit("segments").
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
