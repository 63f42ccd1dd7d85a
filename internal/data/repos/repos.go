package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/data/repos/billing"
	"github.com/yungbote/skillnest-backend/internal/data/repos/learning"
	"github.com/yungbote/skillnest-backend/internal/data/repos/media"
	"github.com/yungbote/skillnest-backend/internal/data/repos/user"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type CourseRepo = learning.CourseRepo
type EnrollmentRepo = learning.EnrollmentRepo

type PurchaseRepo = billing.PurchaseRepo
type BillingEventRepo = billing.BillingEventRepo

type VideoTranscriptRepo = media.VideoTranscriptRepo
type VideoSummaryRepo = media.VideoSummaryRepo
type VideoQARepo = media.VideoQARepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }

func NewCourseRepo(db *gorm.DB, log *logger.Logger) CourseRepo {
	return learning.NewCourseRepo(db, log)
}
func NewEnrollmentRepo(db *gorm.DB, log *logger.Logger) EnrollmentRepo {
	return learning.NewEnrollmentRepo(db, log)
}

func NewPurchaseRepo(db *gorm.DB, log *logger.Logger) PurchaseRepo {
	return billing.NewPurchaseRepo(db, log)
}
func NewBillingEventRepo(db *gorm.DB, log *logger.Logger) BillingEventRepo {
	return billing.NewBillingEventRepo(db, log)
}

func NewVideoTranscriptRepo(db *gorm.DB, log *logger.Logger) VideoTranscriptRepo {
	return media.NewVideoTranscriptRepo(db, log)
}
func NewVideoSummaryRepo(db *gorm.DB, log *logger.Logger) VideoSummaryRepo {
	return media.NewVideoSummaryRepo(db, log)
}
func NewVideoQARepo(db *gorm.DB, log *logger.Logger) VideoQARepo {
	return media.NewVideoQARepo(db, log)
}
