package media

import (
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type VideoQARepo interface {
	Create(dbc dbctx.Context, qa *types.VideoQA) (*types.VideoQA, error)
	// FindContaining returns the earliest Q&A for the video whose normalized
	// question contains the given normalized fragment.
	FindContaining(dbc dbctx.Context, videoID, questionNorm string) (*types.VideoQA, error)
	ListRecentByVideoUser(dbc dbctx.Context, videoID, userID string, limit int) ([]*types.VideoQA, error)
}

type videoQARepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoQARepo(db *gorm.DB, baseLog *logger.Logger) VideoQARepo {
	return &videoQARepo{db: db, log: baseLog.With("repo", "VideoQARepo")}
}

func (r *videoQARepo) Create(dbc dbctx.Context, qa *types.VideoQA) (*types.VideoQA, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(qa).Error; err != nil {
		return nil, err
	}
	return qa, nil
}

func (r *videoQARepo) FindContaining(dbc dbctx.Context, videoID, questionNorm string) (*types.VideoQA, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if videoID == "" || questionNorm == "" {
		return nil, nil
	}
	var out types.VideoQA
	if err := transaction.WithContext(dbc.Ctx).
		Where("video_id = ? AND question_norm LIKE ? ESCAPE '\\'", videoID, "%"+escapeLike(questionNorm)+"%").
		Order("created_at ASC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.VideoID == "" {
		return nil, nil
	}
	return &out, nil
}

func (r *videoQARepo) ListRecentByVideoUser(dbc dbctx.Context, videoID, userID string, limit int) ([]*types.VideoQA, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 20
	}
	var out []*types.VideoQA
	if err := transaction.WithContext(dbc.Ctx).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
