package forecast

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// DailySeries is a contiguous date-indexed sequence of quantities for one
// SKU, from the first to the last observed date. Days without sales hold
// zero; they are never dropped.
type DailySeries struct {
	Start time.Time
	Qty   []float64
}

// BuildDailySeries aggregates rows by date and resamples them onto a daily
// grid. Rows may arrive in any order; quantities on the same date are summed.
func BuildDailySeries(rows []SalesRow) DailySeries {
	if len(rows) == 0 {
		return DailySeries{}
	}

	first := dateOnly(rows[0].Date)
	last := first
	for _, r := range rows[1:] {
		d := dateOnly(r.Date)
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}

	days := int(last.Sub(first).Hours()/24) + 1
	s := DailySeries{Start: first, Qty: make([]float64, days)}
	for _, r := range rows {
		i := int(dateOnly(r.Date).Sub(first).Hours() / 24)
		s.Qty[i] += r.Qty
	}
	return s
}

// Len is the number of days covered, including zero-filled gaps.
func (s DailySeries) Len() int { return len(s.Qty) }

// DateAt returns the calendar date of index i.
func (s DailySeries) DateAt(i int) time.Time {
	return s.Start.AddDate(0, 0, i)
}

// Mean is the average daily quantity over the whole grid.
func (s DailySeries) Mean() float64 {
	if len(s.Qty) == 0 {
		return 0
	}
	return stat.Mean(s.Qty, nil)
}

// Variance is the sample variance of the daily quantities. A constant
// series has zero variance and carries no trainable signal.
func (s DailySeries) Variance() float64 {
	if len(s.Qty) < 2 {
		return 0
	}
	return stat.Variance(s.Qty, nil)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
