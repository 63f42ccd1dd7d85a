package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/skillnest-backend/internal/data/repos/testutil"
	types "github.com/yungbote/skillnest-backend/internal/domain"
	"github.com/yungbote/skillnest-backend/internal/platform/dbctx"
)

func TestPurchaseRepoTransition(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := NewPurchaseRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	p, err := repo.Create(dbc, &types.Purchase{UserID: "user_1", CourseID: uuid.New(), Amount: 19.99, Currency: "usd"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != types.PurchaseStatusPending {
		t.Fatalf("Create: expected pending, got %q", p.Status)
	}

	moved, err := repo.Transition(dbc, p.ID, types.PurchaseStatusPending, types.PurchaseStatusCompleted)
	if err != nil || !moved {
		t.Fatalf("Transition pending->completed: moved=%v err=%v", moved, err)
	}
	moved, err = repo.Transition(dbc, p.ID, types.PurchaseStatusPending, types.PurchaseStatusCompleted)
	if err != nil || moved {
		t.Fatalf("Transition replay: moved=%v err=%v", moved, err)
	}
	moved, err = repo.Transition(dbc, p.ID, types.PurchaseStatusPending, types.PurchaseStatusFailed)
	if err != nil || moved {
		t.Fatalf("Transition completed->failed must not apply: moved=%v err=%v", moved, err)
	}

	got, err := repo.GetByID(dbc, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != types.PurchaseStatusCompleted || got.CompletedAt == nil || got.FailedAt != nil {
		t.Fatalf("unexpected purchase state: %+v", got)
	}

	if err := repo.SetCheckoutSession(dbc, p.ID, "cs_test_123"); err != nil {
		t.Fatalf("SetCheckoutSession: %v", err)
	}
	got, _ = repo.GetByID(dbc, p.ID)
	if got.CheckoutSessionID != "cs_test_123" {
		t.Fatalf("SetCheckoutSession: got %q", got.CheckoutSessionID)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID (missing): got=%v err=%v", missing, err)
	}
}

func TestBillingEventRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewBillingEventRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	seen, err := repo.Seen(dbc, "evt_1")
	if err != nil || seen {
		t.Fatalf("Seen (new): seen=%v err=%v", seen, err)
	}
	recorded, err := repo.Record(dbc, &types.BillingEvent{ProviderEventID: "evt_1", EventType: "checkout.session.completed", Outcome: types.EventOutcomeCompleted})
	if err != nil || !recorded {
		t.Fatalf("Record: recorded=%v err=%v", recorded, err)
	}
	recorded, err = repo.Record(dbc, &types.BillingEvent{ProviderEventID: "evt_1", EventType: "checkout.session.completed", Outcome: types.EventOutcomeCompleted})
	if err != nil || recorded {
		t.Fatalf("Record (dupe): recorded=%v err=%v", recorded, err)
	}
	seen, err = repo.Seen(dbc, "evt_1")
	if err != nil || !seen {
		t.Fatalf("Seen (recorded): seen=%v err=%v", seen, err)
	}
}
