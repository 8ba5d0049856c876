package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDailySeriesFillsGapsWithZero(t *testing.T) {
	rows := []SalesRow{
		{Date: monday, SKU: "A", Qty: 5},
		{Date: monday.AddDate(0, 0, 3), SKU: "A", Qty: 7},
	}
	s := BuildDailySeries(rows)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []float64{5, 0, 0, 7}, s.Qty)
	assert.Equal(t, monday, s.Start)
}

func TestBuildDailySeriesSumsSameDate(t *testing.T) {
	rows := []SalesRow{
		{Date: monday, Qty: 5},
		{Date: monday, Qty: 3},
		{Date: monday.AddDate(0, 0, 1), Qty: 2},
	}
	s := BuildDailySeries(rows)

	assert.Equal(t, []float64{8, 2}, s.Qty)
}

func TestBuildDailySeriesHandlesUnorderedRows(t *testing.T) {
	rows := []SalesRow{
		{Date: monday.AddDate(0, 0, 2), Qty: 3},
		{Date: monday, Qty: 1},
		{Date: monday.AddDate(0, 0, 1), Qty: 2},
	}
	s := BuildDailySeries(rows)

	assert.Equal(t, []float64{1, 2, 3}, s.Qty)
}

func TestBuildDailySeriesNormalizesTimeOfDay(t *testing.T) {
	rows := []SalesRow{
		{Date: monday.Add(9 * time.Hour), Qty: 5},
		{Date: monday.Add(17 * time.Hour), Qty: 2},
	}
	s := BuildDailySeries(rows)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 7.0, s.Qty[0])
}

func TestBuildDailySeriesEmpty(t *testing.T) {
	s := BuildDailySeries(nil)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.Variance())
}

func TestVarianceZeroForConstantSeries(t *testing.T) {
	s := BuildDailySeries(dailyRows("A", monday, []float64{4, 4, 4, 4, 4}))
	assert.Equal(t, 0.0, s.Variance())

	s2 := BuildDailySeries(dailyRows("A", monday, []float64{4, 5, 4, 5}))
	assert.Greater(t, s2.Variance(), 0.0)
}

func TestDateAt(t *testing.T) {
	s := BuildDailySeries(dailyRows("A", monday, []float64{1, 2, 3}))
	assert.Equal(t, monday.AddDate(0, 0, 2), s.DateAt(2))
}
