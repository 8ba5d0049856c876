package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeaturesLagProperties(t *testing.T) {
	s := BuildDailySeries(dailyRows("A", monday, []float64{10, 12, 9, 11, 14, 13, 15, 8, 6, 7}))

	for i := 0; i < s.Len(); i++ {
		x := Features(s, i)

		wantLag1 := 0.0
		if i > 0 {
			wantLag1 = s.Qty[i-1]
		}
		assert.Equal(t, wantLag1, x[0], "lag1 at %d", i)

		lo := i - 7
		if lo < 0 {
			lo = 0
		}
		var wantLag7 float64
		for _, q := range s.Qty[lo:i] {
			wantLag7 += q
		}
		assert.Equal(t, wantLag7, x[1], "lag7 at %d", i)
	}
}

func TestFeaturesDayOfWeekMondayIsZero(t *testing.T) {
	s := BuildDailySeries(dailyRows("A", monday, variedQtys(8)))

	assert.Equal(t, 0.0, Features(s, 0)[2], "Monday")
	assert.Equal(t, 5.0, Features(s, 5)[2], "Saturday")
	assert.Equal(t, 6.0, Features(s, 6)[2], "Sunday")
	assert.Equal(t, 0.0, Features(s, 7)[2], "next Monday")
}

func TestFeaturesDegradedLag7OnShortHistory(t *testing.T) {
	s := BuildDailySeries(dailyRows("A", monday, []float64{4, 5, 6}))

	// Only two prior days exist: partial sum, no error.
	assert.Equal(t, []float64{5, 9, 2}, Features(s, 2))
}

func TestTrainingTableLabelsAreSeriesValues(t *testing.T) {
	s := BuildDailySeries(dailyRows("A", monday, variedQtys(12)))
	X, y := TrainingTable(s)

	require.Len(t, X, s.Len())
	require.Len(t, y, s.Len())
	for i := range y {
		assert.Equal(t, s.Qty[i], y[i])
		assert.Equal(t, Features(s, i), X[i])
	}
}

func TestInferenceRowIsLastIndex(t *testing.T) {
	s := BuildDailySeries(dailyRows("A", monday, variedQtys(10)))
	assert.Equal(t, Features(s, s.Len()-1), InferenceRow(s))
}
