package forecast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartstock/gbt"
)

func fittedModel(t *testing.T) *gbt.Model {
	t.Helper()
	s := BuildDailySeries(dailyRows("A", monday, variedQtys(40)))
	X, y := TrainingTable(s)
	m, err := gbt.Fit(X, y, gbt.DefaultParams())
	require.NoError(t, err)
	return m
}

func TestSanitizeSKU(t *testing.T) {
	assert.Equal(t, "ABC-123_x", SanitizeSKU("ABC-123_x"))
	assert.Equal(t, "A_B_C", SanitizeSKU("A B/C"))
	assert.Equal(t, "____", SanitizeSKU("é π!"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewModelStore(t.TempDir())
	require.NoError(t, err)

	m := fittedModel(t)
	path, saved, err := store.Save("SKU/1", m, false)
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, filepath.Base(path), "SKU_1.json")

	loaded, ok := store.Load("SKU/1")
	require.True(t, ok)

	// A reloaded model must predict exactly like the in-memory one.
	s := BuildDailySeries(dailyRows("SKU/1", monday, variedQtys(40)))
	x := InferenceRow(s)
	want, err := m.Predict(x)
	require.NoError(t, err)
	got, err := loaded.Predict(x)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveSkipsExistingWithoutForce(t *testing.T) {
	store, err := NewModelStore(t.TempDir())
	require.NoError(t, err)

	m := fittedModel(t)
	_, saved, err := store.Save("A", m, false)
	require.NoError(t, err)
	require.True(t, saved)

	_, saved, err = store.Save("A", m, false)
	require.NoError(t, err)
	assert.False(t, saved, "second save without force must be skipped")

	_, saved, err = store.Save("A", m, true)
	require.NoError(t, err)
	assert.True(t, saved, "force must overwrite")
}

func TestLoadMissingArtifact(t *testing.T) {
	store, err := NewModelStore(t.TempDir())
	require.NoError(t, err)

	m, ok := store.Load("nope")
	assert.Nil(t, m)
	assert.False(t, ok)
}

func TestLoadCorruptArtifactBehavesLikeMissing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewModelStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path("bad"), []byte("{not json"), 0o644))

	m, ok := store.Load("bad")
	assert.Nil(t, m)
	assert.False(t, ok)
}

func TestNewModelStoreRequiresDir(t *testing.T) {
	_, err := NewModelStore("")
	assert.Error(t, err)
}
