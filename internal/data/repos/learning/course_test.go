package learning

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/skillnest-backend/internal/data/repos/testutil"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewCourseRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	published := testutil.SeedCourse(t, ctx, tx, "educator_1")
	draft := &types.Course{EducatorID: "educator_1", Title: "Draft", Price: 10, IsPublished: false}
	if _, err := repo.Create(dbc, []*types.Course{draft}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	// gorm skips false for fields with a default tag on insert.
	if err := tx.Model(&types.Course{}).Where("id = ?", draft.ID).Update("is_published", false).Error; err != nil {
		t.Fatalf("unpublish: %v", err)
	}

	got, err := repo.GetByID(dbc, published.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || len(got.Content) != 1 || len(got.Content[0].ChapterContent) != 2 {
		t.Fatalf("GetByID: content not round-tripped: %+v", got)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID (missing): got=%v err=%v", missing, err)
	}

	list, err := repo.ListPublished(dbc)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	var sawPublished bool
	for _, c := range list {
		if c.ID == draft.ID {
			t.Fatalf("ListPublished returned unpublished course")
		}
		if c.ID == published.ID {
			sawPublished = true
			if len(c.Content) != 0 {
				t.Fatalf("ListPublished should omit content")
			}
		}
	}
	if !sawPublished {
		t.Fatalf("ListPublished missing published course")
	}

	byIDs, err := repo.GetByIDs(dbc, []uuid.UUID{published.ID, draft.ID})
	if err != nil || len(byIDs) != 2 {
		t.Fatalf("GetByIDs: len=%d err=%v", len(byIDs), err)
	}

	ok, err := repo.Delete(dbc, draft.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(dbc, draft.ID)
	if err != nil || ok {
		t.Fatalf("Delete (missing): ok=%v err=%v", ok, err)
	}
}
