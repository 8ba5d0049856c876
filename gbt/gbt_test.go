package gbt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingData() ([][]float64, []float64) {
	// y is a simple step function of the first feature with a small
	// second-feature effect, easy for shallow trees to capture.
	var X [][]float64
	var y []float64
	for i := 0; i < 60; i++ {
		a := float64(i % 10)
		b := float64(i % 3)
		X = append(X, []float64{a, b})
		target := 5.0
		if a >= 5 {
			target = 20.0
		}
		y = append(y, target+b)
	}
	return X, y
}

func TestFitReducesTrainingError(t *testing.T) {
	X, y := trainingData()
	m, err := Fit(X, y, DefaultParams())
	require.NoError(t, err)

	var sse, baseSSE float64
	for i, row := range X {
		p, err := m.Predict(row)
		require.NoError(t, err)
		sse += (p - y[i]) * (p - y[i])
		baseSSE += (m.Base - y[i]) * (m.Base - y[i])
	}
	assert.Less(t, sse, baseSSE/10, "boosting should cut SSE well below the constant baseline")
}

func TestFitIsDeterministic(t *testing.T) {
	X, y := trainingData()
	m1, err := Fit(X, y, DefaultParams())
	require.NoError(t, err)
	m2, err := Fit(X, y, DefaultParams())
	require.NoError(t, err)

	for _, row := range X {
		p1, _ := m1.Predict(row)
		p2, _ := m2.Predict(row)
		assert.Equal(t, p1, p2)
	}
}

func TestJSONRoundTripPredictsIdentically(t *testing.T) {
	X, y := trainingData()
	m, err := Fit(X, y, DefaultParams())
	require.NoError(t, err)

	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var loaded Model
	require.NoError(t, json.Unmarshal(raw, &loaded))

	for _, row := range X {
		want, _ := m.Predict(row)
		got, err := loaded.Predict(row)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFitRejectsBadInput(t *testing.T) {
	_, err := Fit(nil, nil, DefaultParams())
	assert.ErrorIs(t, err, ErrEmptyTrainingSet)

	_, err = Fit([][]float64{{1, 2}}, []float64{1, 2}, DefaultParams())
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Fit([][]float64{{1, 2}, {1}}, []float64{1, 2}, DefaultParams())
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestPredictRejectsWrongWidth(t *testing.T) {
	X, y := trainingData()
	m, err := Fit(X, y, DefaultParams())
	require.NoError(t, err)

	_, err = m.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
