package forecast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSalesCSVMissingPathIsEmptyWindow(t *testing.T) {
	rows, err := LoadSalesCSV("")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = LoadSalesCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadSalesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := "date,sku,qty\n2024-01-01,A,5\n2024-01-02\n2024-01-02,A\n2024-01-02,A,7\nbad-date,A,1\n2024-01-01,B,x\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := LoadSalesCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2, "truncated and unparseable rows are dropped")
	assert.Equal(t, "A", rows[0].SKU)
	assert.Equal(t, 5.0, rows[0].Qty)
	assert.Equal(t, monday, rows[0].Date)
}

func TestLoadSalesCSVRejectsMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("when,item,n\n"), 0o644))

	_, err := LoadSalesCSV(path)
	assert.Error(t, err)
}

func TestWriteSuggestionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reorder_predictions.csv")
	suggestions := []Suggestion{
		{SKU: "A", PredictedDailyDemand: 12.0, CurrentStock: 50, RecommendedReorderQty: 39},
		{SKU: "B", PredictedDailyDemand: 0.33, CurrentStock: 2, RecommendedReorderQty: 6},
	}
	require.NoError(t, WriteSuggestionsCSV(path, suggestions))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"sku,predicted_daily_demand,recommended_reorder_qty\nA,12.00,39\nB,0.33,6\n",
		string(raw))
}
