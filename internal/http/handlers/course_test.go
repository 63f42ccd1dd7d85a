package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/skillnest-backend/internal/data/repos"
	"github.com/yungbote/skillnest-backend/internal/data/repos/testutil"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/services"
)

func TestCourseRoutes(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := newTestLogger(t)
	course := testutil.SeedCourse(t, ctx, db, "educator_1")
	testutil.SeedEnrollment(t, ctx, db, "student_1", course.ID)

	svc := services.NewCourseService(db, log, repos.NewCourseRepo(db, log), repos.NewEnrollmentRepo(db, log))
	h := NewCourseHandler(log, svc)
	r := newTestRouter()
	r.GET("/api/course/all", h.ListCourses)
	r.GET("/api/course/:id", h.GetCourse)
	r.DELETE("/api/course/:id", asUser("educator_1", "educator"), h.DeleteCourse)

	rec := do(t, r, http.MethodGet, "/api/course/all", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, true, body["success"])
	require.Len(t, body["courses"], 1)

	rec = do(t, r, http.MethodGet, "/api/course/"+course.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["courseData"].(map[string]any)
	require.Equal(t, []any{"student_1"}, data["enrolledStudents"])

	rec = do(t, r, http.MethodDelete, "/api/course/"+course.ID.String(), "", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	body = decode(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, services.ErrCourseHasStudents.Error(), body["message"])

	var n int64
	require.NoError(t, db.Model(&types.Course{}).Where("id = ?", course.ID).Count(&n).Error)
	require.Equal(t, int64(1), n)

	rec = do(t, r, http.MethodGet, "/api/course/not-a-uuid", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
