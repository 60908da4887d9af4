package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".xyspec", "config.toml"), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("sep", ";"))
	require.NoError(t, store.Set("count", 3))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, ";", store.GetString("sep"))
	assert.Equal(t, 3, store.GetInt("count"))
	assert.True(t, store.GetBool("verbose"))

	// Wrong types and missing keys fall back to zero values
	assert.Equal(t, "", store.GetString("count"))
	assert.Equal(t, 0, store.GetInt("sep"))
	assert.False(t, store.GetBool("sep"))
	assert.Equal(t, "", store.GetString("missing"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("formats.asciixy.reader.separator", "\t"))
	require.NoError(t, store1.Set("formats.asciixy.writer.separator", ","))
	require.NoError(t, store1.Set("sampleid.pattern", `(\d+)`))
	require.NoError(t, store1.Set("library.dir", "/tmp/lib"))

	// Create new store instance - should load from file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "\t", store2.GetString("formats.asciixy.reader.separator"))
	assert.Equal(t, ",", store2.GetString("formats.asciixy.writer.separator"))
	assert.Equal(t, `(\d+)`, store2.GetString("sampleid.pattern"))
	assert.Equal(t, "/tmp/lib", store2.GetString("library.dir"))
}

func TestConfigStore_SavesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("formats.asciixy.reader.separator", ","))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[formats.asciixy.reader]")
	assert.Contains(t, string(data), "separator")
}

func TestConfigStore_LoadsHandWrittenTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[formats.asciixy.reader]
separator = "\t"

[formats.asciixy.writer]
separator = ","

[sampleid]
pattern = "(\\d+)_"
group = "1"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"separator": "\t"}, store.Section("formats.asciixy.reader"))
	assert.Equal(t, map[string]any{"separator": ","}, store.Section("formats.asciixy.writer"))
	assert.Equal(t, `(\d+)_`, store.GetString("sampleid.pattern"))
	assert.Equal(t, "1", store.GetString("sampleid.group"))
}

func TestConfigStore_Section(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("formats.asciixy.reader.separator", ";"))
	require.NoError(t, store.Set("formats.asciixy.readerx", "not in section"))
	require.NoError(t, store.Set("formats.asciixy.writer.separator", ","))

	assert.Equal(t, map[string]any{"separator": ";"}, store.Section("formats.asciixy.reader"))
	assert.Empty(t, store.Section("formats.other"))
}

func TestConfigStore_Keys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("b", 1))
	require.NoError(t, store.Set("a.c", 2))

	assert.Equal(t, []string{"a.c", "b"}, store.Keys())
}

func TestConfigStore_CollidingKeysSurviveReload(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("library", "plain"))
	require.NoError(t, store.Set("library.dir", "/data"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "plain", reloaded.GetString("library"))
	assert.Equal(t, "/data", reloaded.GetString("library.dir"))
}

func TestConfigStore_TypedValuesSurviveReload(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("watch.settle_ms", 750))
	require.NoError(t, store.Set("output.plain", true))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 750, reloaded.GetInt("watch.settle_ms"))
	assert.True(t, reloaded.GetBool("output.plain"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

// TestNewConfigStore_LoadCorruptedFile tests error handling when loading corrupted TOML
func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

// TestConfigStore_Save_WriteFileError tests error handling when WriteFile fails
func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Section("key")
			_ = store.Keys()
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
