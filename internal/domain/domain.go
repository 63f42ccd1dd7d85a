package domain

import (
	"github.com/yungbote/skillnest-backend/internal/domain/billing"
	"github.com/yungbote/skillnest-backend/internal/domain/learning"
	"github.com/yungbote/skillnest-backend/internal/domain/media"
	"github.com/yungbote/skillnest-backend/internal/domain/user"
)

const (
	PurchaseStatusPending   = billing.PurchaseStatusPending
	PurchaseStatusCompleted = billing.PurchaseStatusCompleted
	PurchaseStatusFailed    = billing.PurchaseStatusFailed

	EventOutcomeCompleted = billing.EventOutcomeCompleted
	EventOutcomeFailed    = billing.EventOutcomeFailed
	EventOutcomeSkipped   = billing.EventOutcomeSkipped

	SummaryTypeDetailed  = media.SummaryTypeDetailed
	SummaryTypeBrief     = media.SummaryTypeBrief
	SummaryTypeKeyPoints = media.SummaryTypeKeyPoints

	ConfidenceLow    = media.ConfidenceLow
	ConfidenceMedium = media.ConfidenceMedium
	ConfidenceHigh   = media.ConfidenceHigh

	AnonymousUserID = media.AnonymousUserID
)

type (
	User = user.User

	Course     = learning.Course
	Chapter    = learning.Chapter
	Lecture    = learning.Lecture
	Enrollment = learning.Enrollment

	Purchase     = billing.Purchase
	BillingEvent = billing.BillingEvent

	TranscriptSegment = media.TranscriptSegment
	VideoTranscript   = media.VideoTranscript
	VideoSummary      = media.VideoSummary
	VideoQA           = media.VideoQA
)
