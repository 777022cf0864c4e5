package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPlan(t *testing.T, r testRepos, items ...domain.PlanItem) {
	t.Helper()
	ctx := context.Background()
	profile := seedSession(t, r)
	_, err := r.days.Ensure(ctx, testutil.NewTestDayRecord(testDevice, "2026-03-01", profile))
	require.NoError(t, err)
	require.NoError(t, r.items.ReplacePlan(ctx, testDevice, "2026-03-01", items))
}

func newTestStatusService(r testRepos) *statusService {
	svc := NewStatusService(r.uow).(*statusService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name        string
		initial     domain.ItemStatus
		to          domain.ItemStatus
		itemID      string
		wantFound   bool
		wantApplied bool
		wantStored  domain.ItemStatus
	}{
		{"pending to completed", domain.StatusPending, domain.StatusCompleted, "", true, true, domain.StatusCompleted},
		{"pending to skipped", domain.StatusPending, domain.StatusSkipped, "", true, true, domain.StatusSkipped},
		{"completed is terminal", domain.StatusCompleted, domain.StatusSkipped, "", true, false, domain.StatusCompleted},
		{"skipped is terminal", domain.StatusSkipped, domain.StatusCompleted, "", true, false, domain.StatusSkipped},
		{"unknown id", domain.StatusPending, domain.StatusCompleted, "missing", false, false, domain.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRepos(t)
			item := testutil.NewTestItem("Puzzle time", "13:00", testutil.WithStatus(tt.initial))
			seedPlan(t, r, item)
			svc := newTestStatusService(r)
			ctx := context.Background()

			id := item.ID
			if tt.itemID != "" {
				id = tt.itemID
			}
			res, err := svc.UpdateStatus(ctx, app.UpdateStatusRequest{
				DeviceID: testDevice,
				ItemID:   id,
				Status:   tt.to,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, res.Found)
			assert.Equal(t, tt.wantApplied, res.Applied)
			if tt.wantFound {
				require.NotNil(t, res.Item)
			} else {
				assert.Nil(t, res.Item)
			}

			stored, err := r.items.GetByID(ctx, testDevice, "2026-03-01", item.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStored, stored.Status)
		})
	}
}

func TestUpdateStatus_RejectsPending(t *testing.T) {
	r := setupRepos(t)
	item := testutil.NewTestItem("Puzzle time", "13:00")
	seedPlan(t, r, item)
	svc := newTestStatusService(r)

	_, err := svc.UpdateStatus(context.Background(), app.UpdateStatusRequest{
		DeviceID: testDevice,
		ItemID:   item.ID,
		Status:   domain.StatusPending,
	})
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "status", vErr.Field)
}

func TestUpdateStatus_ExplicitDate(t *testing.T) {
	r := setupRepos(t)
	item := testutil.NewTestItem("Story time", "14:00")
	seedPlan(t, r, item)
	svc := newTestStatusService(r)

	res, err := svc.UpdateStatus(context.Background(), app.UpdateStatusRequest{
		DeviceID: testDevice,
		Date:     "2026-02-28",
		ItemID:   item.ID,
		Status:   domain.StatusCompleted,
	})
	require.NoError(t, err)
	assert.False(t, res.Found, "items are scoped to their day")
}
