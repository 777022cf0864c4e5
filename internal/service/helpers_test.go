package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/thea/internal/db"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/planner"
	"github.com/alexanderramin/thea/internal/repository"
	"github.com/alexanderramin/thea/internal/scheduler"
	"github.com/alexanderramin/thea/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testDevice = "dev-1"

// testNow is a Sunday afternoon, before the 19:00 evening cutoff.
var testNow = time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)

type testRepos struct {
	db        *sql.DB
	sessions  *repository.SQLSessionRepo
	days      *repository.SQLDayRecordRepo
	items     *repository.SQLPlanItemRepo
	incidents *repository.SQLIncidentRepo
	uow       db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	return reposOn(testutil.NewTestDB(t))
}

func reposOn(database *sql.DB) testRepos {
	return testRepos{
		db:        database,
		sessions:  repository.NewSQLSessionRepo(database),
		days:      repository.NewSQLDayRecordRepo(database),
		items:     repository.NewSQLPlanItemRepo(database),
		incidents: repository.NewSQLIncidentRepo(database),
		uow:       testutil.NewTestUoW(database),
	}
}

func seedSession(t *testing.T, r testRepos, meds ...domain.Medication) domain.ChildProfile {
	t.Helper()
	profile := testutil.NewTestProfile("Mia", testutil.WithChildEnergy(domain.ChildEnergyMedium))
	require.NoError(t, r.sessions.Upsert(context.Background(), &domain.Session{
		DeviceID:    testDevice,
		Profile:     profile,
		Medications: meds,
		UpdatedAt:   testNow,
	}))
	return profile
}

func newTestPlanService(r testRepos, opts ...planner.OrchestratorOption) *planService {
	orch := planner.NewOrchestrator(scheduler.NewSynthesizer(scheduler.WithRandSeed(7)), opts...)
	svc := NewPlanService(r.sessions, r.days, r.items, r.uow, orch).(*planService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

func incidentPtr(i domain.Incident) *domain.Incident { return &i }

// fakeStrategy stands in for an assisting model.
type fakeStrategy struct {
	items []domain.PlanItem
	err   error
	calls int
	last  planner.PlanRequest
}

func (f *fakeStrategy) Available(context.Context) bool { return true }

func (f *fakeStrategy) Adjust(_ context.Context, req planner.PlanRequest) ([]domain.PlanItem, error) {
	f.calls++
	f.last = req
	return f.items, f.err
}
