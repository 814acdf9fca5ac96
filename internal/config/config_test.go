package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/scriptbox/internal/features/todo"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	return dir
}

func TestLoadMerged_NoProfileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Equal(t, "(default config in memory)", used)
	assert.Equal(t, filepath.Join(dir, "data", "scriptbox", "store.db"), cfg.DataFile)
	assert.Equal(t, "scriptbox@local", cfg.ScopeName())
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, todo.DefaultBaseURL, cfg.TodoBaseURL)
}

func TestLoadMerged_FlagsOverrideProfile(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Site = "news.example"
	cfg.Timeout = 3 * time.Second
	cfg.Workers = 9
	require.NoError(t, SaveYAML(cfg, path))

	got, used, err := LoadMerged(Options{Workers: 2, Script: "other"})
	require.NoError(t, err)

	assert.Equal(t, path, used)
	assert.Equal(t, "other@news.example", got.ScopeName())
	assert.Equal(t, 3*time.Second, got.Timeout)
	assert.Equal(t, 2, got.Workers)
}

func TestLoadMerged_IgnoreConfig(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("site: ignored.example\n"), 0644))

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, Debug: true})
	require.NoError(t, err)

	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, "local", cfg.Site)
	assert.True(t, cfg.Debug)
}

func TestLoadMerged_PartialProfileIsNormalized(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("timeout: 2s\n"), 0644))

	cfg, _, err := LoadMerged(Options{})
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, "scriptbox@local", cfg.ScopeName())
	assert.NotEmpty(t, cfg.DataFile)
	assert.Equal(t, todo.DefaultBaseURL, cfg.TodoBaseURL)
}

func TestProfiles_Lifecycle(t *testing.T) {
	isolate(t)

	_, err := CurrentLabel()
	assert.ErrorIs(t, err, ErrNoConfig)

	_, err = InitDefaultConfig()
	require.NoError(t, err)

	_, err = InitDefaultConfig()
	assert.ErrorIs(t, err, os.ErrExist)

	_, err = CreateConfig("work")
	require.NoError(t, err)
	_, err = CreateConfig("work")
	assert.Error(t, err)

	require.NoError(t, SwitchConfig("work"))
	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "work", label)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.True(t, list[1].Active)

	assert.Error(t, SwitchConfig("missing"))
	assert.Error(t, RemoveConfig(DefaultLabel))

	require.NoError(t, RemoveConfig("work"))
	label, err = CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, DefaultLabel, label)
}
