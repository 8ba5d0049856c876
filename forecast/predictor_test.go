package forecast

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPredictor(t *testing.T) (*Predictor, *ModelStore) {
	t.Helper()
	store, err := NewModelStore(t.TempDir())
	require.NoError(t, err)
	return NewPredictor(store), store
}

func TestPredictEmptyWindowReturnsZero(t *testing.T) {
	p, _ := newTestPredictor(t)

	pred := p.PredictDailyDemand("GHOST", nil)
	assert.Equal(t, 0.0, pred.PredictedDailyDemand)
	assert.Equal(t, SourceEmpty, pred.Source)

	// Rows for other SKUs do not count.
	window := dailyRows("OTHER", monday, []float64{3, 4})
	pred = p.PredictDailyDemand("GHOST", window)
	assert.Equal(t, SourceEmpty, pred.Source)
}

func TestPredictFallsBackToMeanWithoutModel(t *testing.T) {
	p, _ := newTestPredictor(t)

	// Mon–Sun week, mean 12.0.
	window := dailyRows("A", monday, []float64{10, 12, 9, 11, 14, 13, 15})
	pred := p.PredictDailyDemand("A", window)

	assert.Equal(t, 12.0, pred.PredictedDailyDemand)
	assert.Equal(t, SourceMean, pred.Source)
	assert.Equal(t, "no model artifact", pred.Reason)
}

func TestPredictMeanIsRoundedToTwoDecimals(t *testing.T) {
	p, _ := newTestPredictor(t)

	window := dailyRows("A", monday, []float64{1, 0, 0})
	pred := p.PredictDailyDemand("A", window)

	assert.Equal(t, 0.33, pred.PredictedDailyDemand)
	assert.Equal(t, SourceMean, pred.Source)
}

func TestPredictUsesPersistedModel(t *testing.T) {
	p, store := newTestPredictor(t)

	qtys := variedQtys(40)
	window := dailyRows("A", monday, qtys)

	s := BuildDailySeries(window)
	m := fittedModel(t)
	_, _, err := store.Save("A", m, true)
	require.NoError(t, err)

	pred := p.PredictDailyDemand("A", window)
	assert.Equal(t, SourceModel, pred.Source)
	assert.GreaterOrEqual(t, pred.PredictedDailyDemand, 0.0)

	want, err := m.Predict(InferenceRow(s))
	require.NoError(t, err)
	if want < 0 {
		want = 0
	}
	assert.Equal(t, want, pred.PredictedDailyDemand)
}

func TestPredictFallsBackWhenArtifactCorrupt(t *testing.T) {
	p, store := newTestPredictor(t)

	require.NoError(t, os.WriteFile(store.Path("A"), []byte("garbage"), 0o644))

	window := dailyRows("A", monday, []float64{10, 12, 9, 11, 14, 13, 15})
	pred := p.PredictDailyDemand("A", window)

	assert.Equal(t, SourceMean, pred.Source)
	assert.Equal(t, 12.0, pred.PredictedDailyDemand)
}

func TestPredictForLoadsFromDataSource(t *testing.T) {
	p, _ := newTestPredictor(t)

	ds := newFakeSource()
	ds.addSKU("A", dailyRows("A", monday, []float64{10, 12, 9, 11, 14, 13, 15}))

	pred, err := p.PredictFor(context.Background(), ds, "A")
	require.NoError(t, err)
	assert.Equal(t, "A", pred.SKU)
	assert.Equal(t, 12.0, pred.PredictedDailyDemand)
}
