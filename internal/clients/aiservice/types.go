package aiservice

import (
	"encoding/json"
	"strings"
)

type QuizSettings struct {
	QuestionCount int      `json:"question_count"`
	Difficulty    string   `json:"difficulty"`
	QuestionTypes []string `json:"question_types"`
}

type QuizRequest struct {
	Content  string       `json:"content"`
	Settings QuizSettings `json:"settings"`
	CourseID string       `json:"course_id"`
	UserID   string       `json:"user_id"`
}

type TranscriptSegment struct {
	Timestamp string `json:"timestamp,omitempty"`
	Text      string `json:"text"`
	Speaker   string `json:"speaker,omitempty"`
}

type SummarizeRequest struct {
	VideoID     string              `json:"video_id"`
	Transcript  []TranscriptSegment `json:"transcript"`
	SummaryType string              `json:"summary_type"`
}

type SummaryResponse struct {
	VideoID     string   `json:"video_id"`
	SummaryType string   `json:"summary_type"`
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	GeneratedAt string   `json:"generated_at"`
	AIPowered   bool     `json:"ai_powered"`
}

type QuestionRequest struct {
	VideoID    string              `json:"video_id"`
	Transcript []TranscriptSegment `json:"transcript"`
	Question   string              `json:"question"`
}

type AnswerResponse struct {
	VideoID            string   `json:"video_id"`
	Question           string   `json:"question"`
	Answer             string   `json:"answer"`
	Timestamps         []string `json:"timestamps"`
	RelevantTimestamps []string `json:"relevant_timestamps"`
	Confidence         string   `json:"confidence"`
	Sources            []string `json:"sources"`
	AIPowered          bool     `json:"ai_powered"`
}

// AllTimestamps returns whichever timestamp list the service populated.
func (a *AnswerResponse) AllTimestamps() []string {
	if len(a.Timestamps) > 0 {
		return a.Timestamps
	}
	if len(a.RelevantTimestamps) > 0 {
		return a.RelevantTimestamps
	}
	return []string{}
}

// NormalizedConfidence maps the reported confidence onto low/medium/high, defaulting to medium.
func (a *AnswerResponse) NormalizedConfidence() string {
	switch c := strings.ToLower(strings.TrimSpace(a.Confidence)); c {
	case "low", "medium", "high":
		return c
	default:
		return "medium"
	}
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

type ChatHistory struct {
	Messages []json.RawMessage `json:"messages"`
}
