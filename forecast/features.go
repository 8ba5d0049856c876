package forecast

// Feature layout shared by training and inference.
const (
	featLag1 = iota // previous day's quantity
	featLag7        // sum over the trailing 7 days
	featDow         // day of week, 0=Monday..6=Sunday
	numFeatures
)

// Features derives the fixed 3-feature row at index i of a daily series.
// lag1 is zero at the start of the series; lag7 degrades to a partial sum
// when fewer than 7 prior days exist. Short history never errors.
func Features(s DailySeries, i int) []float64 {
	x := make([]float64, numFeatures)

	if i > 0 {
		x[featLag1] = s.Qty[i-1]
	}

	lo := i - 7
	if lo < 0 {
		lo = 0
	}
	for _, q := range s.Qty[lo:i] {
		x[featLag7] += q
	}

	// time.Weekday has Sunday=0; shift to Monday=0.
	x[featDow] = float64((int(s.DateAt(i).Weekday()) + 6) % 7)
	return x
}

// TrainingTable builds the full feature/label table over a series. The label
// at row i is the series value at i. The first rows necessarily carry
// degraded lags; they are kept, not filtered.
func TrainingTable(s DailySeries) (X [][]float64, y []float64) {
	X = make([][]float64, 0, s.Len())
	y = make([]float64, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		X = append(X, Features(s, i))
		y = append(y, s.Qty[i])
	}
	return X, y
}

// InferenceRow is the feature row used for live prediction: the features at
// the last available index.
func InferenceRow(s DailySeries) []float64 {
	return Features(s, s.Len()-1)
}
