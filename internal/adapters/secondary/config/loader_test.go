package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOMLLoader_LoadLocal(t *testing.T) {
	loader := NewTOMLLoader()
	ctx := context.Background()

	t.Run("missing local config is not an error", func(t *testing.T) {
		cfg, err := loader.LoadLocal(ctx, t.TempDir())

		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("partial local config parses", func(t *testing.T) {
		dir := t.TempDir()
		content := `[openai]
model = "gpt-4o"
test_mode = true

[images]
skip_failed = true
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pitchdeck.toml"), []byte(content), 0600))

		cfg, err := loader.LoadLocal(ctx, dir)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
		assert.True(t, cfg.OpenAI.TestMode)
		assert.True(t, cfg.Images.SkipFailed)
		// Unmentioned sections stay zero; validation happens post-merge
		assert.Equal(t, 0, cfg.Server.Port)
	})

	t.Run("malformed toml is an error", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pitchdeck.toml"), []byte("[server\nport="), 0600))

		_, err := loader.LoadLocal(ctx, dir)
		assert.Error(t, err)
	})
}

func TestTOMLLoader_CreateDefaults(t *testing.T) {
	loader := NewTOMLLoader()
	ctx := context.Background()

	t.Run("writes a parseable default file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.toml")

		require.NoError(t, loader.CreateDefaults(ctx, path))

		cfg, err := loader.loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, GetDefaultConfig().Server.Port, cfg.Server.Port)
		assert.Equal(t, GetDefaultConfig().OpenAI.Model, cfg.OpenAI.Model)
	})
}

func TestTOMLLoader_Paths(t *testing.T) {
	loader := NewTOMLLoader()

	assert.Equal(t, "pitchdeck.toml", filepath.Base(loader.GetLocalPath(".")))
	assert.Equal(t, "config.toml", filepath.Base(loader.GetGlobalPath()))
	assert.Contains(t, loader.GetGlobalPath(), "pitchdeck")
}
