package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivity(t *testing.T) {
	tests := []struct {
		input   string
		want    Activity
		wantErr bool
	}{
		{input: "rockhopping", want: ActivityRockHopping},
		{input: "rock-hopping", want: ActivityRockHopping},
		{input: "Sea Caves", want: ActivitySeaCaves},
		{input: "seaCaves", want: ActivitySeaCaves},
		{input: "surfing", want: ActivitySurfing},
		{input: "night", want: ActivityNightTime},
		{input: "nightTime", want: ActivityNightTime},
		{input: "jetski", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseActivity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRiskFactorDisplay(t *testing.T) {
	assert.Equal(t, "N/A", RiskFactor{Name: "Water Temp"}.Display())
	assert.Equal(t, "14.0°C", RiskFactor{Name: "Water Temp", Value: Float(14), Unit: "°C"}.Display())
	assert.Equal(t, "2.0", RiskAssessment{Score: 2.05}.ScoreDisplay())
}
