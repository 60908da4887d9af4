package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show [file]", showCmd.Use)
}

func TestShowCmd_HasLimitFlag(t *testing.T) {
	flag := showCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)
}

func TestShowCmd_PrintsSpectrum(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeSpectrum(t, "sample7.txt", "3.0;0.5\n1.0;0.25\n2.0;1e-05\n")

	out, err := execute(t, "show", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Sample: sample7")
	assert.Contains(t, out, "Points: 3")
	assert.Contains(t, out, "Range: 1.0 .. 3.0")
	assert.Contains(t, out, "Amplitude")
	assert.Contains(t, out, "1e-05")
	assert.NotContains(t, out, "more points")
}

func TestShowCmd_Limit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeSpectrum(t, "s.txt", "1;1\n2;2\n3;3\n4;4\n")

	out, err := execute(t, "show", "-n", "2", path)

	require.NoError(t, err)
	assert.Contains(t, out, "... 2 more points")
	assert.NotContains(t, out, "3.0")
}

func TestShowCmd_EmptyFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeSpectrum(t, "empty.txt", "\n\n")

	out, err := execute(t, "show", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Points: 0")
	assert.NotContains(t, out, "Range")
}

func TestShowCmd_SampleIDPattern(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeSpectrum(t, "batch3_A12.txt", "1;1\n")

	out, err := execute(t, "show", "--sample-id-pattern", `.*_(?P<well>\w+)\.txt`, "--sample-id-group", "well", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Sample: A12")
}

func TestShowCmd_UnknownExtension(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeSpectrum(t, "s.csv", "1;1\n")

	_, err := execute(t, "show", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")

	out, err := execute(t, "show", "--from", "asciixy", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Sample: s")
}

func TestWaveRange(t *testing.T) {
	lo, hi := waveRange([]float64{5, -1, 3})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 5.0, hi)
}
