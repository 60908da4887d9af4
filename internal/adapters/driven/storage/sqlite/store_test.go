package sqlite

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/xyspec-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "xyspec-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testRecord(id string, importedAt time.Time) *domain.SpectrumRecord {
	return &domain.SpectrumRecord{
		ID: id,
		Spectrum: domain.Spectrum{
			ID:         "sample-" + id,
			Waves:      []float64{400.5, 401.5, 402.5},
			Amplitudes: []float64{0.125, -0.25, 1e-9},
		},
		Format:     "asciixy",
		SourcePath: "/data/" + id + ".txt",
		ImportedAt: importedAt,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, "library.db", filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	tempDir := t.TempDir()

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.SpectrumStore().Save(context.Background(), testRecord("rec-1", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	var version int
	require.NoError(t, second.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	got, err := second.SpectrumStore().Get(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "sample-rec-1", got.Spectrum.ID)
}

func TestSpectrumStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	spectra := store.SpectrumStore()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := testRecord("rec-1", now)
	require.NoError(t, spectra.Save(ctx, rec))

	got, err := spectra.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Spectrum, got.Spectrum)
	assert.Equal(t, rec.Format, got.Format)
	assert.Equal(t, rec.SourcePath, got.SourcePath)
	assert.True(t, now.Equal(got.ImportedAt))
}

func TestSpectrumStore_NonFiniteValues(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	spectra := store.SpectrumStore()

	rec := testRecord("rec-nan", time.Now())
	rec.Spectrum.Waves = []float64{math.Inf(-1), 1}
	rec.Spectrum.Amplitudes = []float64{math.NaN(), math.Inf(1)}
	require.NoError(t, spectra.Save(ctx, rec))

	got, err := spectra.Get(ctx, "rec-nan")
	require.NoError(t, err)
	assert.True(t, math.IsInf(got.Spectrum.Waves[0], -1))
	assert.True(t, math.IsNaN(got.Spectrum.Amplitudes[0]))
	assert.True(t, math.IsInf(got.Spectrum.Amplitudes[1], 1))
}

func TestSpectrumStore_EmptySpectrum(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	spectra := store.SpectrumStore()

	rec := testRecord("empty", time.Now())
	rec.Spectrum.Waves = []float64{}
	rec.Spectrum.Amplitudes = []float64{}
	require.NoError(t, spectra.Save(ctx, rec))

	got, err := spectra.Get(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, got.Spectrum.Waves)
	assert.Empty(t, got.Spectrum.Amplitudes)
}

func TestSpectrumStore_Save_Update(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	spectra := store.SpectrumStore()

	rec := testRecord("rec-1", time.Now())
	require.NoError(t, spectra.Save(ctx, rec))

	rec.Spectrum.ID = "renamed"
	rec.Spectrum.Waves = []float64{1}
	rec.Spectrum.Amplitudes = []float64{2}
	require.NoError(t, spectra.Save(ctx, rec))

	got, err := spectra.Get(ctx, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Spectrum.ID)
	assert.Equal(t, []float64{1}, got.Spectrum.Waves)
}

func TestSpectrumStore_Save_Invalid(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	spectra := store.SpectrumStore()

	assert.ErrorIs(t, spectra.Save(ctx, nil), domain.ErrInvalidInput)

	rec := testRecord("bad", time.Now())
	rec.Spectrum.Amplitudes = rec.Spectrum.Amplitudes[:1]
	assert.ErrorIs(t, spectra.Save(ctx, rec), domain.ErrInvalidInput)
}

func TestSpectrumStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	got, err := store.SpectrumStore().Get(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpectrumStore_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	spectra := store.SpectrumStore()
	base := time.Now().UTC()

	require.NoError(t, spectra.Save(ctx, testRecord("second", base.Add(time.Second))))
	require.NoError(t, spectra.Save(ctx, testRecord("first", base)))

	records, err := spectra.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].ID)
	assert.Equal(t, "second", records[1].ID)
}

func TestSpectrumStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	spectra := store.SpectrumStore()

	require.NoError(t, spectra.Save(ctx, testRecord("rec-1", time.Now())))
	require.NoError(t, spectra.Delete(ctx, "rec-1"))

	_, err := spectra.Get(ctx, "rec-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, spectra.Delete(ctx, "rec-1"), domain.ErrNotFound)
}

func TestFloat64BytesRoundTrip(t *testing.T) {
	in := []float64{0, -1.5, math.MaxFloat64, math.SmallestNonzeroFloat64}
	assert.Equal(t, in, bytesToFloat64Slice(float64SliceToBytes(in)))
	assert.Empty(t, bytesToFloat64Slice(nil))
}
