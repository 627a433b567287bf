package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFile), store.Path())
	// Nothing is written until the first Set.
	assert.NoFileExists(t, store.Path())
}

func TestDefaultConfigDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultConfigDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".basket"), dir)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.data_dir", "/tmp/basket"))

	val, ok := store.Get("storage.data_dir")
	assert.True(t, ok)
	assert.Equal(t, "/tmp/basket", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("string_key", "hello world"))
	assert.Equal(t, "hello world", store.GetString("string_key"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("bool_key", true))
	assert.Equal(t, "", store.GetString("bool_key"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("ui.show_images", true))
	assert.True(t, store.GetBool("ui.show_images"))

	require.NoError(t, store.Set("ui.confirm_delete", false))
	assert.False(t, store.GetBool("ui.confirm_delete"))

	// Non-existent key
	assert.False(t, store.GetBool("nonexistent"))

	// Wrong type
	require.NoError(t, store.Set("string_key", "true"))
	assert.False(t, store.GetBool("string_key"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("storage.data_dir", "/srv/basket"))
	require.NoError(t, store1.Set("ui.show_images", false))
	require.NoError(t, store1.Set("ui.confirm_delete", true))

	// New instance loads from file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/basket", store2.GetString("storage.data_dir"))
	assert.False(t, store2.GetBool("ui.show_images"))
	assert.True(t, store2.GetBool("ui.confirm_delete"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("storage.data_dir", "/srv/basket"))
	require.NoError(t, store.Set("ui.show_images", true))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var doc struct {
		Storage struct {
			DataDir string `toml:"data_dir"`
		} `toml:"storage"`
		UI struct {
			ShowImages bool `toml:"show_images"`
		} `toml:"ui"`
	}
	require.NoError(t, toml.Unmarshal(raw, &doc))
	assert.Equal(t, "/srv/basket", doc.Storage.DataDir)
	assert.True(t, doc.UI.ShowImages)
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte(`
[storage]
data_dir = "/data/lists"

[ui]
show_images = false
confirm_delete = false
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/data/lists", store.GetString("storage.data_dir"))
	_, ok := store.Get("ui.show_images")
	assert.True(t, ok)
	assert.False(t, store.GetBool("ui.show_images"))
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
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "ui.key" + string(rune('0'+id))
			_ = store.Set(key, id%2 == 0)
			_ = store.GetString(key)
			_ = store.GetBool(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewConfigStore(filepath.Join(blocker, "config"))

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	corrupted := []byte("this is not valid TOML {{{[[")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), corrupted, 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Set_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to cause write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("another", "value")
	assert.Error(t, err)

	// The failed write is not visible.
	_, ok := store.Get("another")
	assert.False(t, ok)
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("valid", "data"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"storage": map[string]any{"data_dir": "/x"},
		"ui":      map[string]any{"show_images": true},
		"top":     "level",
	}

	assert.Equal(t, map[string]any{
		"storage.data_dir": "/x",
		"ui.show_images":   true,
		"top":              "level",
	}, flattenMap(nested, ""))
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"storage.data_dir":  "/x",
		"ui.show_images":    true,
		"ui.confirm_delete": false,
		"top":               "level",
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"storage": map[string]any{"data_dir": "/x"},
		"ui":      map[string]any{"show_images": true, "confirm_delete": false},
		"top":     "level",
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}

func TestNestMap_ValueShadowsTable(t *testing.T) {
	nested := nestMap(map[string]any{
		"ui":             "plain",
		"ui.show_images": true,
	})

	assert.Equal(t, map[string]any{"ui": "plain"}, nested)
}
