package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRegressionNeedsTwoPoints(t *testing.T) {
	assert.Nil(t, LinearRegression(nil))
	assert.Nil(t, LinearRegression([]float64{4.5}))
}

func TestLinearRegressionFitsExactLine(t *testing.T) {
	// y = 2x + 1
	reg := LinearRegression([]float64{1, 3, 5, 7, 9})
	require.NotNil(t, reg)
	assert.InDelta(t, 2.0, reg.Slope, 1e-9)
	assert.InDelta(t, 1.0, reg.Intercept, 1e-9)
}

func TestLinearRegressionFlatSeries(t *testing.T) {
	reg := LinearRegression([]float64{4, 4, 4, 4})
	require.NotNil(t, reg)
	assert.InDelta(t, 0.0, reg.Slope, 1e-9)
	assert.InDelta(t, 4.0, reg.Intercept, 1e-9)
}

func TestMovingAverageTrailingWindow(t *testing.T) {
	got := MovingAverage([]float64{3, 6, 9, 12}, 3)
	require.Len(t, got, 4)
	assert.InDelta(t, 3.0, got[0], 1e-9)      // only one point available
	assert.InDelta(t, 4.5, got[1], 1e-9)      // (3+6)/2
	assert.InDelta(t, 6.0, got[2], 1e-9)      // (3+6+9)/3
	assert.InDelta(t, 9.0, got[3], 1e-9)      // (6+9+12)/3
}

func TestRealisticDailyRate(t *testing.T) {
	tests := []struct {
		name       string
		historical []float64
		want       float64
	}{
		{
			// Every day active: rate equals the plain mean.
			name:       "uniform activity",
			historical: []float64{1, 1, 1, 1, 1},
			want:       1.0,
		},
		{
			// One burst in five days: mean(active)=10 scaled by 1/5
			// frequency, not the naive mean of 2 per active day.
			name:       "bursty activity",
			historical: []float64{0, 0, 0, 0, 10},
			want:       2.0,
		},
		{
			name:       "no activity",
			historical: []float64{0, 0, 0},
			want:       0,
		},
		{
			name:       "empty series",
			historical: nil,
			want:       0,
		},
		{
			// mean(active)=4 over 2 active of 4 total: 4 * 0.5.
			name:       "half active",
			historical: []float64{2, 0, 6, 0},
			want:       2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RealisticDailyRate(tt.historical), 1e-9)
		})
	}
}
