package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/skillnest-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:    "user_" + uuid.NewString()[:8],
		Email: email,
		Name:  "Test User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, educatorID string) *types.Course {
	tb.Helper()
	c := &types.Course{
		EducatorID:  educatorID,
		Title:       "Intro to React Hooks",
		Description: "Learn hooks",
		Price:       49.99,
		Discount:    10,
		IsPublished: true,
		Content: []types.Chapter{{
			ChapterID:    "ch-1",
			ChapterOrder: 1,
			ChapterTitle: "Basics",
			ChapterContent: []types.Lecture{
				{LectureID: "lec-1", LectureTitle: "Welcome", LectureDuration: 5, LectureURL: "https://videos.example/1", IsPreviewFree: true, LectureOrder: 1},
				{LectureID: "lec-2", LectureTitle: "useState", LectureDuration: 12, LectureURL: "https://videos.example/2", LectureOrder: 2},
			},
		}},
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedPurchase(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID, status string) *types.Purchase {
	tb.Helper()
	p := &types.Purchase{
		UserID:   userID,
		CourseID: courseID,
		Amount:   44.99,
		Currency: "usd",
		Status:   status,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed purchase: %v", err)
	}
	return p
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID string, courseID uuid.UUID) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{UserID: userID, CourseID: courseID}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedTranscript(tb testing.TB, ctx context.Context, tx *gorm.DB, videoID string) *types.VideoTranscript {
	tb.Helper()
	t := &types.VideoTranscript{
		VideoID:  videoID,
		CourseID: "course-1",
		Title:    "Introduction to React Hooks",
		Segments: []types.TranscriptSegment{
			{Timestamp: "00:00", Text: "Welcome to React Hooks.", Speaker: "Instructor"},
			{Timestamp: "01:10", Text: "useState lets a function component hold state.", Speaker: "Instructor"},
		},
		Duration: "15:30",
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed transcript: %v", err)
	}
	return t
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
