package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/skillnest-backend/internal/data/repos"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/apierr"
	"github.com/yungbote/skillnest-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
	"github.com/yungbote/skillnest-backend/internal/platform/logger"
)

var (
	errEducatorRequired = errors.New("only educators can delete courses")
	errNotCourseOwner   = errors.New("you can only delete your own courses")
)

// CourseDetail is a course as shown on its landing page.
type CourseDetail struct {
	*types.Course
	EnrolledStudents []string `json:"enrolledStudents"`
}

type CourseService interface {
	ListPublished(ctx context.Context) ([]*types.Course, error)
	// GetCourse returns the course with locked lecture URLs blanked.
	GetCourse(ctx context.Context, courseID string) (*CourseDetail, error)
	DeleteCourse(ctx context.Context, auth *ctxutil.AuthData, courseID string) error
}

type courseService struct {
	db          *gorm.DB
	log         *logger.Logger
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
}

func NewCourseService(db *gorm.DB, baseLog *logger.Logger, courses repos.CourseRepo, enrollments repos.EnrollmentRepo) CourseService {
	return &courseService{
		db:          db,
		log:         baseLog.With("service", "CourseService"),
		courses:     courses,
		enrollments: enrollments,
	}
}

func parseCourseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apierr.NotFound(apierr.CodeCourseNotFound, ErrCourseNotFound)
	}
	return id, nil
}

func (s *courseService) ListPublished(ctx context.Context) ([]*types.Course, error) {
	courses, err := s.courses.ListPublished(dbctx.Context{Ctx: ctx})
	if err != nil {
		s.log.Error("List published courses failed", "error", err)
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if courses == nil {
		courses = []*types.Course{}
	}
	return courses, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*CourseDetail, error) {
	id, err := parseCourseID(courseID)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	course, err := s.courses.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, apierr.NotFound(apierr.CodeCourseNotFound, ErrCourseNotFound)
	}
	students, err := s.enrollments.ListUserIDsByCourse(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	if students == nil {
		students = []string{}
	}
	course.RedactLockedLectures()
	return &CourseDetail{Course: course, EnrolledStudents: students}, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, auth *ctxutil.AuthData, courseID string) error {
	if auth == nil || auth.UserID == "" {
		return apierr.New(http.StatusUnauthorized, apierr.CodeUnauthorized, errors.New("authentication required"))
	}
	if !auth.IsEducator() {
		return apierr.New(http.StatusForbidden, apierr.CodeForbidden, errEducatorRequired)
	}
	id, err := parseCourseID(courseID)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		course, err := s.courses.GetByID(dbc, id)
		if err != nil {
			return fmt.Errorf("load course: %w", err)
		}
		if course == nil {
			return apierr.NotFound(apierr.CodeCourseNotFound, ErrCourseNotFound)
		}
		if course.EducatorID != auth.UserID {
			return apierr.New(http.StatusForbidden, apierr.CodeForbidden, errNotCourseOwner)
		}
		n, err := s.enrollments.CountByCourse(dbc, id)
		if err != nil {
			return fmt.Errorf("count enrollments: %w", err)
		}
		if n > 0 {
			return apierr.Conflict(ErrCourseHasStudents)
		}
		if _, err := s.courses.Delete(dbc, id); err != nil {
			return fmt.Errorf("delete course: %w", err)
		}
		s.log.Info("Course deleted", "course_id", id, "user_id", auth.UserID)
		return nil
	})
}
