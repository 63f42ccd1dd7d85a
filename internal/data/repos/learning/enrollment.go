package learning

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type EnrollmentRepo interface {
	// CreateIfAbsent inserts the enrollment and reports false when the
	// (user, course) pair is already enrolled.
	CreateIfAbsent(dbc dbctx.Context, e *types.Enrollment) (bool, error)
	Exists(dbc dbctx.Context, userID string, courseID uuid.UUID) (bool, error)
	CountByCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error)
	ListUserIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]string, error)
	ListCourseIDsByUser(dbc dbctx.Context, userID string) ([]uuid.UUID, error)
	DeleteByUser(dbc dbctx.Context, userID string) (int64, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	return &enrollmentRepo{db: db, log: baseLog.With("repo", "EnrollmentRepo")}
}

func (r *enrollmentRepo) CreateIfAbsent(dbc dbctx.Context, e *types.Enrollment) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(e)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *enrollmentRepo) Exists(dbc dbctx.Context, userID string, courseID uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *enrollmentRepo) CountByCourse(dbc dbctx.Context, courseID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *enrollmentRepo) ListUserIDsByCourse(dbc dbctx.Context, courseID uuid.UUID) ([]string, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []string{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Enrollment{}).
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Pluck("user_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *enrollmentRepo) ListCourseIDsByUser(dbc dbctx.Context, userID string) ([]uuid.UUID, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	out := []uuid.UUID{}
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Enrollment{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("course_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *enrollmentRepo) DeleteByUser(dbc dbctx.Context, userID string) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Delete(&types.Enrollment{})
	return res.RowsAffected, res.Error
}
