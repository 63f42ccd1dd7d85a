package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yungbote/skillnest-backend/internal/clients/aiservice"
	"github.com/yungbote/skillnest-backend/internal/data/repos"
	"github.com/yungbote/skillnest-backend/internal/data/seed"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

const (
	SourceCache = "cache"
	SourceAI    = "ai"

	questionHistoryLimit = 20
	videoAIHealthPath    = "/api/video-ai/health"

	// summaryGenerationTimeout bounds a coalesced summary generation, which
	// outlives the caller that started it.
	summaryGenerationTimeout = 2 * time.Minute
)

type VideoAIClient interface {
	Summarize(ctx context.Context, req aiservice.SummarizeRequest) (*aiservice.SummaryResponse, error)
	AskQuestion(ctx context.Context, req aiservice.QuestionRequest) (*aiservice.AnswerResponse, error)
	Health(ctx context.Context, path string) (json.RawMessage, error)
}

type SummaryResult struct {
	Summary *types.VideoSummary
	Source  string
}

type AnswerResult struct {
	QA     *types.VideoQA
	Source string
}

type VideoAIHealth struct {
	Healthy              bool
	AIConnected          bool
	TranscriptsAvailable int
}

type VideoAIService interface {
	// Summarize returns the cached summary for (video, user, type) or
	// generates, stores and returns a new one.
	Summarize(ctx context.Context, videoID, userID, summaryType string) (*SummaryResult, error)
	// AskQuestion answers from any earlier question on the same video whose
	// normalized text contains this one, otherwise asks the AI service.
	AskQuestion(ctx context.Context, videoID, userID, question string) (*AnswerResult, error)
	QuestionHistory(ctx context.Context, videoID, userID string) []*types.VideoQA
	Summaries(ctx context.Context, videoID, userID string) []*types.VideoSummary

	ListVideos(ctx context.Context) ([]*types.VideoTranscript, error)
	UploadTranscript(ctx context.Context, t *types.VideoTranscript) (*types.VideoTranscript, error)
	InitializeShowcase(ctx context.Context) (int, error)
	Health(ctx context.Context) *VideoAIHealth
}

type videoAIService struct {
	log         *logger.Logger
	ai          VideoAIClient
	transcripts repos.VideoTranscriptRepo
	summaries   repos.VideoSummaryRepo
	qas         repos.VideoQARepo
	inflight    singleflight.Group
}

func NewVideoAIService(
	baseLog *logger.Logger,
	ai VideoAIClient,
	transcripts repos.VideoTranscriptRepo,
	summaries repos.VideoSummaryRepo,
	qas repos.VideoQARepo,
) VideoAIService {
	return &videoAIService{
		log:         baseLog.With("service", "VideoAIService"),
		ai:          ai,
		transcripts: transcripts,
		summaries:   summaries,
		qas:         qas,
	}
}

// NormalizeQuestion trims, collapses internal whitespace and lower-cases q.
func NormalizeQuestion(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

func ValidSummaryType(t string) bool {
	switch t {
	case types.SummaryTypeDetailed, types.SummaryTypeBrief, types.SummaryTypeKeyPoints:
		return true
	}
	return false
}

func anonymousIfEmpty(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return types.AnonymousUserID
	}
	return userID
}

func toAISegments(in []types.TranscriptSegment) []aiservice.TranscriptSegment {
	out := make([]aiservice.TranscriptSegment, 0, len(in))
	for _, s := range in {
		out = append(out, aiservice.TranscriptSegment{Timestamp: s.Timestamp, Text: s.Text, Speaker: s.Speaker})
	}
	return out
}

func (s *videoAIService) loadTranscript(ctx context.Context, videoID string) (*types.VideoTranscript, error) {
	t, err := s.transcripts.GetByVideoID(dbctx.Context{Ctx: ctx}, videoID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	if t == nil {
		return nil, apierr.NotFound(apierr.CodeTranscriptNotFound, ErrTranscriptNotFound)
	}
	return t, nil
}

func (s *videoAIService) Summarize(ctx context.Context, videoID, userID, summaryType string) (*SummaryResult, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, apierr.BadRequest(errors.New("video id is required"))
	}
	userID = anonymousIfEmpty(userID)
	summaryType = strings.TrimSpace(summaryType)
	if summaryType == "" {
		summaryType = types.SummaryTypeDetailed
	}
	if !ValidSummaryType(summaryType) {
		return nil, apierr.BadRequest(fmt.Errorf("invalid summary type %q", summaryType))
	}

	dbc := dbctx.Context{Ctx: ctx}
	cached, err := s.summaries.Get(dbc, videoID, userID, summaryType)
	if err != nil {
		return nil, fmt.Errorf("load cached summary: %w", err)
	}
	if cached != nil {
		return &SummaryResult{Summary: cached, Source: SourceCache}, nil
	}

	// Callers waiting on the same key share one detached generation; each
	// caller still returns when its own context ends.
	key := videoID + "|" + userID + "|" + summaryType
	ch := s.inflight.DoChan(key, func() (any, error) {
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), summaryGenerationTimeout)
		defer cancel()
		return s.generateSummary(genCtx, videoID, userID, summaryType)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*SummaryResult), nil
	}
}

func (s *videoAIService) generateSummary(ctx context.Context, videoID, userID, summaryType string) (*SummaryResult, error) {
	dbc := dbctx.Context{Ctx: ctx}
	log := s.log.With("video_id", videoID, "user_id", userID, "summary_type", summaryType)

	transcript, err := s.loadTranscript(ctx, videoID)
	if err != nil {
		return nil, err
	}
	resp, err := s.ai.Summarize(ctx, aiservice.SummarizeRequest{
		VideoID:     videoID,
		Transcript:  toAISegments(transcript.Segments),
		SummaryType: summaryType,
	})
	if err != nil {
		log.Error("Summary generation failed", "error", err)
		return nil, classifyAIError(err)
	}
	if resp == nil || strings.TrimSpace(resp.Summary) == "" {
		log.Error("AI service returned an empty summary")
		return nil, invalidAIResponse()
	}

	keyPoints := resp.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}
	row := &types.VideoSummary{
		VideoID:     videoID,
		UserID:      userID,
		SummaryType: summaryType,
		CourseID:    transcript.CourseID,
		Summary:     resp.Summary,
		KeyPoints:   keyPoints,
		AIPowered:   true,
		GeneratedAt: time.Now().UTC(),
	}
	created, err := s.summaries.CreateIfAbsent(dbc, row)
	if err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}
	if !created {
		// Another instance stored it first; serve that row so callers agree.
		existing, err := s.summaries.Get(dbc, videoID, userID, summaryType)
		if err != nil {
			return nil, fmt.Errorf("reload summary: %w", err)
		}
		if existing != nil {
			return &SummaryResult{Summary: existing, Source: SourceCache}, nil
		}
	}
	log.Info("Summary generated")
	return &SummaryResult{Summary: row, Source: SourceAI}, nil
}

func (s *videoAIService) AskQuestion(ctx context.Context, videoID, userID, question string) (*AnswerResult, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, apierr.BadRequest(errors.New("video id is required"))
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apierr.BadRequest(errors.New("question is required"))
	}
	userID = anonymousIfEmpty(userID)
	norm := NormalizeQuestion(question)
	dbc := dbctx.Context{Ctx: ctx}
	log := s.log.With("video_id", videoID, "user_id", userID)

	hit, err := s.qas.FindContaining(dbc, videoID, norm)
	if err != nil {
		log.Warn("Question cache lookup failed", "error", err)
	} else if hit != nil {
		return &AnswerResult{QA: hit, Source: SourceCache}, nil
	}

	transcript, err := s.loadTranscript(ctx, videoID)
	if err != nil {
		return nil, err
	}
	resp, err := s.ai.AskQuestion(ctx, aiservice.QuestionRequest{
		VideoID:    videoID,
		Transcript: toAISegments(transcript.Segments),
		Question:   question,
	})
	if err != nil {
		log.Error("Question answering failed", "error", err)
		return nil, classifyAIError(err)
	}
	if resp == nil || strings.TrimSpace(resp.Answer) == "" {
		log.Error("AI service returned an empty answer")
		return nil, invalidAIResponse()
	}

	qa := &types.VideoQA{
		VideoID:            videoID,
		UserID:             userID,
		CourseID:           transcript.CourseID,
		Question:           question,
		QuestionNorm:       norm,
		Answer:             resp.Answer,
		RelevantTimestamps: resp.AllTimestamps(),
		Confidence:         resp.NormalizedConfidence(),
		AIPowered:          true,
	}
	if _, err := s.qas.Create(dbc, qa); err != nil {
		log.Warn("Failed to cache answer", "error", err)
	}
	return &AnswerResult{QA: qa, Source: SourceAI}, nil
}

func (s *videoAIService) QuestionHistory(ctx context.Context, videoID, userID string) []*types.VideoQA {
	out, err := s.qas.ListRecentByVideoUser(dbctx.Context{Ctx: ctx}, videoID, anonymousIfEmpty(userID), questionHistoryLimit)
	if err != nil {
		s.log.Warn("List question history failed", "video_id", videoID, "error", err)
		return []*types.VideoQA{}
	}
	if out == nil {
		out = []*types.VideoQA{}
	}
	return out
}

func (s *videoAIService) Summaries(ctx context.Context, videoID, userID string) []*types.VideoSummary {
	out, err := s.summaries.ListByVideoUser(dbctx.Context{Ctx: ctx}, videoID, anonymousIfEmpty(userID))
	if err != nil {
		s.log.Warn("List summaries failed", "video_id", videoID, "error", err)
		return []*types.VideoSummary{}
	}
	if out == nil {
		out = []*types.VideoSummary{}
	}
	return out
}

func (s *videoAIService) ListVideos(ctx context.Context) ([]*types.VideoTranscript, error) {
	out, err := s.transcripts.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	if out == nil {
		out = []*types.VideoTranscript{}
	}
	return out, nil
}

func (s *videoAIService) UploadTranscript(ctx context.Context, t *types.VideoTranscript) (*types.VideoTranscript, error) {
	if t == nil {
		return nil, apierr.BadRequest(errors.New("transcript is required"))
	}
	t.VideoID = strings.TrimSpace(t.VideoID)
	t.Title = strings.TrimSpace(t.Title)
	if t.VideoID == "" || t.Title == "" {
		return nil, apierr.BadRequest(errors.New("videoId and title are required"))
	}
	if len(t.Segments) == 0 {
		return nil, apierr.BadRequest(errors.New("transcript must be a non-empty array of segments with timestamp and text"))
	}
	for i, seg := range t.Segments {
		if strings.TrimSpace(seg.Text) == "" {
			return nil, apierr.BadRequest(fmt.Errorf("transcript segment %d has no text", i))
		}
	}
	created, err := s.transcripts.CreateIfAbsent(dbctx.Context{Ctx: ctx}, t)
	if err != nil {
		return nil, fmt.Errorf("store transcript: %w", err)
	}
	if !created {
		return nil, apierr.Conflict(errors.New("a transcript for this video already exists"))
	}
	s.log.Info("Transcript uploaded", "video_id", t.VideoID)
	return t, nil
}

// InitializeShowcase stores any bundled demo transcripts that are missing and
// returns the number of transcripts available afterwards.
func (s *videoAIService) InitializeShowcase(ctx context.Context) (int, error) {
	demo, err := seed.ShowcaseTranscripts()
	if err != nil {
		return 0, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	for _, t := range demo {
		created, err := s.transcripts.CreateIfAbsent(dbc, t)
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", t.VideoID, err)
		}
		if created {
			s.log.Info("Seeded showcase transcript", "video_id", t.VideoID)
		}
	}
	all, err := s.transcripts.List(dbc)
	if err != nil {
		return 0, fmt.Errorf("count transcripts: %w", err)
	}
	return len(all), nil
}

func (s *videoAIService) Health(ctx context.Context) *VideoAIHealth {
	h := &VideoAIHealth{Healthy: true}
	if _, err := s.ai.Health(ctx, videoAIHealthPath); err != nil {
		s.log.Warn("Video AI health probe failed", "error", err)
	} else {
		h.AIConnected = true
	}
	all, err := s.transcripts.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		s.log.Error("Transcript count failed", "error", err)
		h.Healthy = false
		return h
	}
	h.TranscriptsAvailable = len(all)
	return h
}
