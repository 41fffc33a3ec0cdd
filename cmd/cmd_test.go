package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"hmss/internal/config"
)

func TestLoadForHuman(t *testing.T) {
	t.Run("missing file writes defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hmss_config.json")

		cfg, err := loadForHuman(path)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, config.ErrNoConfig)
		assert.FileExists(t, path)
	})

	t.Run("unknown key is a schema error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hmss_config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"royal_reps": []}`), 0644))

		_, err := loadForHuman(path)
		var schemaErr *config.SchemaError
		assert.True(t, errors.As(err, &schemaErr))
	})
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hmss_config.json")
	require.NoError(t, config.WriteDefaults(path, false))

	prevPath, prevFormat := configPath, outputFormat
	t.Cleanup(func() { configPath, outputFormat = prevPath, prevFormat })
	configPath = path

	t.Run("yaml", func(t *testing.T) {
		outputFormat = "yaml"
		var buf bytes.Buffer
		configShowCmd.SetOut(&buf)
		require.NoError(t, configShowCmd.RunE(configShowCmd, nil))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "https", got["clone_method"])
		assert.Contains(t, got["path_to_wallpaper_file"], "default.jpg")
	})

	t.Run("unknown format", func(t *testing.T) {
		outputFormat = "toml"
		assert.Error(t, configShowCmd.RunE(configShowCmd, nil))
	})
}
