package media

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SummaryTypeDetailed  = "detailed"
	SummaryTypeBrief     = "brief"
	SummaryTypeKeyPoints = "key_points"

	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"

	AnonymousUserID = "anonymous"
)

type TranscriptSegment struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Text      string `json:"text" yaml:"text"`
	Speaker   string `json:"speaker,omitempty" yaml:"speaker"`
}

type VideoTranscript struct {
	ID         uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID    string                                 `gorm:"column:video_id;not null;uniqueIndex" json:"videoId"`
	CourseID   string                                 `gorm:"column:course_id;index" json:"courseId"`
	Title      string                                 `gorm:"column:title;not null" json:"title"`
	Segments   datatypes.JSONSlice[TranscriptSegment] `gorm:"column:segments" json:"transcript,omitempty"`
	MediaURL   string                                 `gorm:"column:media_url" json:"mediaUrl,omitempty"`
	Duration   string                                 `gorm:"column:duration" json:"duration,omitempty"`
	UploadedBy string                                 `gorm:"column:uploaded_by;type:varchar(64)" json:"uploadedBy,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (VideoTranscript) TableName() string { return "video_transcript" }

func (v *VideoTranscript) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VideoSummary is an append-only cache row; at most one exists per
// (video, user, summary type).
type VideoSummary struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID     string                      `gorm:"column:video_id;not null;uniqueIndex:idx_video_summary_key" json:"videoId"`
	UserID      string                      `gorm:"column:user_id;type:varchar(64);not null;uniqueIndex:idx_video_summary_key" json:"userId"`
	SummaryType string                      `gorm:"column:summary_type;not null;uniqueIndex:idx_video_summary_key" json:"summaryType"`
	CourseID    string                      `gorm:"column:course_id" json:"courseId"`
	Summary     string                      `gorm:"column:summary;type:text;not null" json:"summary"`
	KeyPoints   datatypes.JSONSlice[string] `gorm:"column:key_points" json:"keyPoints"`
	AIPowered   bool                        `gorm:"column:ai_powered;not null;default:true" json:"aiPowered"`
	GeneratedAt time.Time                   `gorm:"column:generated_at;not null" json:"generatedAt"`
	CreatedAt   time.Time                   `gorm:"not null;autoCreateTime;index" json:"createdAt"`
}

func (VideoSummary) TableName() string { return "video_summary" }

func (s *VideoSummary) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type VideoQA struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID  string    `gorm:"column:video_id;not null;index:idx_video_qa_video_user" json:"videoId"`
	UserID   string    `gorm:"column:user_id;type:varchar(64);not null;index:idx_video_qa_video_user" json:"userId"`
	CourseID string    `gorm:"column:course_id" json:"courseId"`
	Question string    `gorm:"column:question;type:text;not null" json:"question"`
	// QuestionNorm is the lower-cased, whitespace-collapsed question used for cache lookups.
	QuestionNorm       string                      `gorm:"column:question_norm;type:text;not null" json:"-"`
	Answer             string                      `gorm:"column:answer;type:text;not null" json:"answer"`
	RelevantTimestamps datatypes.JSONSlice[string] `gorm:"column:relevant_timestamps" json:"relevantTimestamps"`
	Confidence         string                      `gorm:"column:confidence;not null;default:'medium'" json:"confidence"`
	AIPowered          bool                        `gorm:"column:ai_powered;not null;default:true" json:"aiPowered"`
	CreatedAt          time.Time                   `gorm:"not null;autoCreateTime;index" json:"createdAt"`
}

func (VideoQA) TableName() string { return "video_qa" }

func (q *VideoQA) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
