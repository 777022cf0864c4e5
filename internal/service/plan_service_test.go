package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/planner"
	"github.com/alexanderramin/thea/internal/repository"
	"github.com/alexanderramin/thea/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_RequiresProfile(t *testing.T) {
	svc := newTestPlanService(setupRepos(t))

	_, err := svc.Generate(context.Background(), app.GeneratePlanRequest{DeviceID: testDevice})
	require.Error(t, err)

	var planErr *app.PlanError
	require.True(t, errors.As(err, &planErr))
	assert.Equal(t, app.PlanErrNoProfile, planErr.Code)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestGenerate_RejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name  string
		req   app.GeneratePlanRequest
		field string
	}{
		{"missing device", app.GeneratePlanRequest{}, "deviceId"},
		{"blank description", app.GeneratePlanRequest{DeviceID: testDevice, Description: strPtr("   ")}, "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRepos(t)
			seedSession(t, r)
			svc := newTestPlanService(r)

			_, err := svc.Generate(context.Background(), tt.req)
			var planErr *app.PlanError
			require.True(t, errors.As(err, &planErr))
			assert.Equal(t, app.PlanErrInvalidRequest, planErr.Code)
			assert.Equal(t, tt.field, planErr.Field)
		})
	}
}

func TestGenerate_StoresLocalPlan(t *testing.T) {
	r := setupRepos(t)
	profile := seedSession(t, r, testutil.NewTestMedication("Tylenol", domain.Every6h, "08:00"))
	svc := newTestPlanService(r)
	ctx := context.Background()

	resp, err := svc.Generate(ctx, app.GeneratePlanRequest{DeviceID: testDevice, At: timePtr(testNow)})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", resp.Date)
	assert.Equal(t, planner.SourceLocal, resp.Source)
	assert.Nil(t, resp.Incident)
	assert.False(t, resp.Gentle)
	assert.True(t, resp.Saved)
	require.NotEmpty(t, resp.Items)
	assert.Equal(t, "13:00", resp.Items[0].Time)

	var doses int
	for _, it := range resp.Items {
		if it.Type == domain.ItemMedication {
			doses++
			assert.Equal(t, "14:00", it.Time)
		}
	}
	assert.Equal(t, 1, doses, "08:00 + 6h gives one dose before 19:30")

	stored, err := r.items.ListByDay(ctx, testDevice, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, resp.Items, stored)

	rec, err := r.days.Get(ctx, testDevice, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, profile, rec.Profile)
	require.Len(t, rec.Medications, 1)

	incidents, err := r.incidents.ListByDay(ctx, testDevice, "2026-03-01")
	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestGenerate_ReplacesPlanAndKeepsDayRecord(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)
	ctx := context.Background()

	first, err := svc.Generate(ctx, app.GeneratePlanRequest{DeviceID: testDevice, At: timePtr(testNow)})
	require.NoError(t, err)
	recBefore, err := r.days.Get(ctx, testDevice, first.Date)
	require.NoError(t, err)

	later := testNow.Add(2 * time.Hour)
	second, err := svc.Generate(ctx, app.GeneratePlanRequest{DeviceID: testDevice, At: &later})
	require.NoError(t, err)
	assert.Equal(t, "15:00", second.Items[0].Time)

	stored, err := r.items.ListByDay(ctx, testDevice, first.Date)
	require.NoError(t, err)
	assert.Equal(t, second.Items, stored)
	for _, old := range first.Items {
		for _, cur := range stored {
			assert.NotEqual(t, old.ID, cur.ID)
		}
	}

	recAfter, err := r.days.Get(ctx, testDevice, first.Date)
	require.NoError(t, err)
	assert.True(t, recBefore.CreatedAt.Equal(recAfter.CreatedAt), "day record is written once")
}

func TestReportIncident_CategoryForcesGentlePlan(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)
	ctx := context.Background()

	resp, err := svc.ReportIncident(ctx, app.GeneratePlanRequest{
		DeviceID: testDevice,
		At:       timePtr(testNow),
		Incident: incidentPtr(domain.IncidentFeverSpike),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Incident)
	assert.Equal(t, domain.IncidentFeverSpike, *resp.Incident)
	assert.True(t, resp.Gentle)
	assert.Equal(t, planner.SourceLocal, resp.Source, "no strategy configured")
	require.NotEmpty(t, resp.Items)
	assert.Equal(t, "Immediate Rest & Comfort", resp.Items[0].Title)
	for _, it := range resp.Items {
		assert.True(t, it.IsGentle, "item %s at %s", it.Title, it.Time)
	}

	incidents, err := r.incidents.ListByDay(ctx, testDevice, resp.Date)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	require.NotNil(t, incidents[0].Category)
	assert.Equal(t, domain.IncidentFeverSpike, *incidents[0].Category)
}

func TestReportIncident_ClassifiesDescription(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)
	ctx := context.Background()

	resp, err := svc.ReportIncident(ctx, app.GeneratePlanRequest{
		DeviceID:    testDevice,
		At:          timePtr(testNow),
		Description: strPtr("  She threw up after lunch "),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Incident)
	assert.Equal(t, domain.IncidentThrewUp, *resp.Incident)

	incidents, err := r.incidents.ListByDay(ctx, testDevice, resp.Date)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	assert.Equal(t, "She threw up after lunch", incidents[0].Description)
}

func TestReportIncident_RequiresIncidentOrDescription(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)

	_, err := svc.ReportIncident(context.Background(), app.GeneratePlanRequest{DeviceID: testDevice})
	var planErr *app.PlanError
	require.True(t, errors.As(err, &planErr))
	assert.Equal(t, "incident", planErr.Field)
}

func TestReportIncident_PassesPendingPlanToStrategy(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	ctx := context.Background()

	assisted := []domain.PlanItem{testutil.NewTestItem("Cuddle on the couch", "13:00", testutil.WithType(domain.ItemRest))}
	strategy := &fakeStrategy{items: assisted}
	svc := newTestPlanService(r, planner.WithStrategy(strategy))

	initial, err := svc.Generate(ctx, app.GeneratePlanRequest{DeviceID: testDevice, At: timePtr(testNow)})
	require.NoError(t, err)
	assert.Equal(t, 0, strategy.calls, "plain generation stays local")

	// Complete one item so it drops out of the adjustment context.
	doneID := initial.Items[0].ID
	applied, err := r.items.SetStatusIfPending(ctx, testDevice, initial.Date, doneID, domain.StatusCompleted)
	require.NoError(t, err)
	require.True(t, applied)

	resp, err := svc.ReportIncident(ctx, app.GeneratePlanRequest{
		DeviceID: testDevice,
		At:       timePtr(testNow),
		Incident: incidentPtr(domain.IncidentEnergyCrashed),
	})
	require.NoError(t, err)

	assert.Equal(t, planner.SourceAssisted, resp.Source)
	assert.Equal(t, assisted, resp.Items)
	require.Equal(t, 1, strategy.calls)
	assert.Len(t, strategy.last.ExistingPlan, len(initial.Items)-1)
	for _, it := range strategy.last.ExistingPlan {
		assert.NotEqual(t, doneID, it.ID)
	}
}

func TestReportIncident_StrategyFailureFallsBack(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r, planner.WithStrategy(&fakeStrategy{err: fmt.Errorf("model offline")}))

	resp, err := svc.ReportIncident(context.Background(), app.GeneratePlanRequest{
		DeviceID: testDevice,
		At:       timePtr(testNow),
		Incident: incidentPtr(domain.IncidentThrewUp),
	})
	require.NoError(t, err)
	assert.Equal(t, planner.SourceFallback, resp.Source)
	require.NotEmpty(t, resp.Items)
	assert.Equal(t, "Immediate Rest & Comfort", resp.Items[0].Title)
}

func TestGenerate_PersistenceFailureStillReturnsPlan(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)

	// Exec #1 ensures the day record, #2 clears the old plan.
	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 2, Err: fmt.Errorf("injected plan write failure")}
	r.uow = failUoW
	svc := newTestPlanService(r)
	ctx := context.Background()

	resp, err := svc.Generate(ctx, app.GeneratePlanRequest{DeviceID: testDevice, At: timePtr(testNow)})
	require.NoError(t, err)
	assert.False(t, resp.Saved)
	assert.NotEmpty(t, resp.Items)

	_, err = r.days.Get(ctx, testDevice, resp.Date)
	assert.True(t, errors.Is(err, repository.ErrNotFound), "day record rolled back")
}

func TestToday_GeneratesOnFirstViewThenReadsBack(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)
	ctx := context.Background()

	first, err := svc.Today(ctx, testDevice, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", first.Date)
	assert.Equal(t, planner.SourceLocal, first.Source)
	require.NotEmpty(t, first.Items)

	again, err := svc.Today(ctx, testDevice, "2026-03-01")
	require.NoError(t, err)
	assert.Empty(t, again.Source, "stored plan is not regenerated")
	assert.Equal(t, first.Items, again.Items)
	assert.True(t, again.Saved)
}

func TestToday_OtherDaysAreNotSynthesized(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)

	resp, err := svc.Today(context.Background(), testDevice, "2026-02-27")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.False(t, resp.Saved)
}

func TestStored_NeverGenerates(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)
	ctx := context.Background()

	empty, err := svc.Stored(ctx, testDevice, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", empty.Date)
	assert.Empty(t, empty.Items)
	assert.False(t, empty.Saved)
	_, err = r.days.Get(ctx, testDevice, "2026-03-01")
	assert.ErrorIs(t, err, repository.ErrNotFound, "no day record created")

	generated, err := svc.Today(ctx, testDevice, "2026-03-01")
	require.NoError(t, err)

	stored, err := svc.Stored(ctx, testDevice, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, generated.Items, stored.Items)
	assert.True(t, stored.Saved)
}

func TestToday_RejectsMalformedDate(t *testing.T) {
	svc := newTestPlanService(setupRepos(t))

	_, err := svc.Today(context.Background(), testDevice, "03/01/2026")
	var planErr *app.PlanError
	require.True(t, errors.As(err, &planErr))
	assert.Equal(t, "date", planErr.Field)
}

func TestGenerate_ConcurrentRequestsLeaveOneWholePlan(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)
	ctx := context.Background()

	const n = 5
	var wg sync.WaitGroup
	results := make([]*app.PlanResponse, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Generate(ctx, app.GeneratePlanRequest{DeviceID: testDevice, At: timePtr(testNow)})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	stored, err := r.items.ListByDay(ctx, testDevice, "2026-03-01")
	require.NoError(t, err)

	matched := false
	for _, resp := range results {
		if assert.ObjectsAreEqual(resp.Items, stored) {
			matched = true
		}
	}
	assert.True(t, matched, "stored plan must be exactly one generation's output")
}

func TestGenerate_EveningWindow(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	svc := newTestPlanService(r)

	at := time.Date(2026, 3, 1, 22, 50, 0, 0, time.UTC)
	resp, err := svc.Generate(context.Background(), app.GeneratePlanRequest{DeviceID: testDevice, At: &at})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1, "one block fits before 23:00")
	assert.Equal(t, "22:50", resp.Items[0].Time)
}
