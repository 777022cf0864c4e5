package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/thea/internal/app"
	"github.com/alexanderramin/thea/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_ListsNewestFirstWithPlansAndIncidents(t *testing.T) {
	r := setupRepos(t)
	seedSession(t, r)
	plans := newTestPlanService(r)
	history := NewHistoryService(r.days, r.items, r.incidents)
	ctx := context.Background()

	yesterday := testNow.Add(-24 * time.Hour)
	_, err := plans.Generate(ctx, app.GeneratePlanRequest{DeviceID: testDevice, At: &yesterday})
	require.NoError(t, err)

	today, err := plans.ReportIncident(ctx, app.GeneratePlanRequest{
		DeviceID: testDevice,
		At:       timePtr(testNow),
		Incident: incidentPtr(domain.IncidentWontEatDrink),
	})
	require.NoError(t, err)

	records, err := history.List(ctx, testDevice)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2026-03-01", records[0].Date)
	assert.Equal(t, "2026-02-28", records[1].Date)
	assert.Equal(t, today.Items, records[0].Plan)
	require.Len(t, records[0].Incidents, 1)
	assert.Equal(t, domain.IncidentWontEatDrink, *records[0].Incidents[0].Category)
	assert.NotEmpty(t, records[1].Plan)
	assert.Empty(t, records[1].Incidents)
}

func TestHistory_EmptyForNewDevice(t *testing.T) {
	r := setupRepos(t)
	records, err := NewHistoryService(r.days, r.items, r.incidents).List(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Empty(t, records)
}
