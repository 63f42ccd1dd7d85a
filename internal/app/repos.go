package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/data/repos"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

type Repos struct {
	User       repos.UserRepo
	Course     repos.CourseRepo
	Enrollment repos.EnrollmentRepo

	Purchase     repos.PurchaseRepo
	BillingEvent repos.BillingEventRepo

	VideoTranscript repos.VideoTranscriptRepo
	VideoSummary    repos.VideoSummaryRepo
	VideoQA         repos.VideoQARepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		Course:          repos.NewCourseRepo(db, log),
		Enrollment:      repos.NewEnrollmentRepo(db, log),
		Purchase:        repos.NewPurchaseRepo(db, log),
		BillingEvent:    repos.NewBillingEventRepo(db, log),
		VideoTranscript: repos.NewVideoTranscriptRepo(db, log),
		VideoSummary:    repos.NewVideoSummaryRepo(db, log),
		VideoQA:         repos.NewVideoQARepo(db, log),
	}
}
