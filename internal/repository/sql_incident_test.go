package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/alexanderramin/thea/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentRepo_AppendAndListInTimestampOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	_, err := NewSQLDayRecordRepo(database).Ensure(ctx,
		testutil.NewTestDayRecord(testDevice, testDate, testutil.NewTestProfile("Mia")))
	require.NoError(t, err)
	repo := NewSQLIncidentRepo(database)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	fever := domain.IncidentFeverSpike
	later := testutil.NewTestIncident(&fever, "", base.Add(2*time.Hour))
	earlier := testutil.NewTestIncident(nil, "she threw up", base)
	subSecond := testutil.NewTestIncident(nil, "still queasy", base.Add(1500*time.Millisecond))

	for _, rep := range []*domain.IncidentReport{later, earlier, subSecond} {
		require.NoError(t, repo.Append(ctx, testDevice, testDate, rep))
	}

	got, err := repo.ListByDay(ctx, testDevice, testDate)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "she threw up", got[0].Description)
	assert.Nil(t, got[0].Category)
	assert.Equal(t, "still queasy", got[1].Description)
	require.NotNil(t, got[2].Category)
	assert.Equal(t, domain.IncidentFeverSpike, *got[2].Category)
	assert.True(t, got[2].Timestamp.Equal(later.Timestamp))
}

func TestIncidentRepo_RequiresDayRecord(t *testing.T) {
	repo := NewSQLIncidentRepo(testutil.NewTestDB(t))

	err := repo.Append(context.Background(), testDevice, testDate,
		testutil.NewTestIncident(nil, "orphan", time.Now()))
	assert.Error(t, err)
}
