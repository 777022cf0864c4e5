package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/thea/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidentFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Incident
		wantErr bool
	}{
		{"Fever spike", domain.IncidentFeverSpike, false},
		{"  won't eat/drink ", domain.IncidentWontEatDrink, false},
		{"FEELING BETTER", domain.IncidentFeelingBetter, false},
		{"fever", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f incidentFlag
			err := f.Set(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, f.value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *f.value)
			assert.Equal(t, string(tt.want), f.String())
		})
	}
}

func TestClockFlag_On(t *testing.T) {
	var f clockFlag
	now := time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC)
	assert.Nil(t, f.on(now))

	require.NoError(t, f.Set("07:05"))
	at := f.on(now)
	require.NotNil(t, at)
	assert.Equal(t, time.Date(2026, 3, 1, 7, 5, 0, 0, time.UTC), *at)
	assert.Equal(t, "07:05", f.String())

	assert.Error(t, f.Set("7:05"))
	assert.Error(t, f.Set("24:00"))
}

func TestDateFlag(t *testing.T) {
	var f dateFlag
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-01", f.or(now))

	require.NoError(t, f.Set("2026-02-14"))
	assert.Equal(t, "2026-02-14", f.or(now))
	assert.Error(t, f.Set("02/14/2026"))
}

func TestMedicationsFlag(t *testing.T) {
	var f medicationsFlag
	require.NoError(t, f.Set("Tylenol, 5ml, 6H, 08:00"))
	require.NoError(t, f.Append("Motrin,7.5ml,8h,09:30"))

	require.Len(t, f.meds, 2)
	assert.Equal(t, domain.Medication{Name: "Tylenol", Dosage: "5ml", Frequency: domain.Every6h, TimeLastGiven: "08:00"}, f.meds[0])
	assert.Equal(t, []string{"Tylenol,5ml,6h,08:00", "Motrin,7.5ml,8h,09:30"}, f.GetSlice())

	require.NoError(t, f.Replace([]string{"Zyrtec,2.5ml,12h,07:00"}))
	assert.Equal(t, "[Zyrtec,2.5ml,12h,07:00]", f.String())

	assert.Error(t, f.Set("Tylenol,5ml,6h"))
	assert.Error(t, f.Set(",5ml,6h,08:00"))
	assert.Error(t, f.Set("Tylenol,5ml,6h,8am"))
}

func TestUpsertMedication(t *testing.T) {
	meds := []domain.Medication{{Name: "Tylenol", Dosage: "5ml"}, {Name: "Motrin", Dosage: "5ml"}}

	out := upsertMedication(meds, domain.Medication{Name: "motrin", Dosage: "7ml"})
	require.Len(t, out, 2)
	assert.Equal(t, "7ml", out[1].Dosage)
	assert.Equal(t, "5ml", meds[1].Dosage)

	out = upsertMedication(meds, domain.Medication{Name: "Zyrtec"})
	assert.Len(t, out, 3)
}
