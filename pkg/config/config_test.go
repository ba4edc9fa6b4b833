package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "indicator_name", cfg.Dataset.Field)
	require.Contains(t, cfg.Synonyms.BaseURL, "wordnik")
	require.Contains(t, cfg.Frequency.BaseURL, "datamuse")
	require.Len(t, cfg.Clouds, 3)

	byName := map[string]CloudConfig{}
	for _, c := range cfg.Clouds {
		byName[c.Name] = c
	}
	require.Equal(t, CloudStatic, byName["verbs"].Kind)
	require.True(t, byName["verbs"].VerbsOnly)
	require.Equal(t, CloudSynonyms, byName["male"].Kind)
	require.Equal(t, "Male", byName["male"].RowContains)
	require.Equal(t, CloudFrequency, byName["female"].Kind)
	require.Greater(t, byName["female"].MinWeight, 0.0)
}

func TestLoadDefaultsSurfaceFallsBackToName(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	for _, c := range cfg.Clouds {
		require.Equal(t, c.Name, c.Surface)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	yaml := `
dataset:
  path: /data/custom.csv
  field: title
server:
  port: 9999
clouds:
  - name: only
    kind: static
    surface: main
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/data/custom.csv", cfg.Dataset.Path)
	require.Equal(t, "title", cfg.Dataset.Field)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Len(t, cfg.Clouds, 1)
	require.Equal(t, "main", cfg.Clouds[0].Surface)
	// Untouched sections keep their defaults.
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WV_DATASET_PATH", "/env/data.csv")
	t.Setenv("WV_SYNONYMS_API_KEY", "sek-123")
	t.Setenv("WV_SERVER_PORT", "7070")
	t.Setenv("WV_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/env/data.csv", cfg.Dataset.Path)
	require.Equal(t, "sek-123", cfg.Synonyms.APIKey)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		cfg.Synonyms.APIKey = "key"
		return cfg
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.Dataset.Path = ""
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Clouds[0].Kind = "spiral"
	require.ErrorContains(t, cfg.Validate(), "kind")

	cfg = valid()
	cfg.Clouds = append(cfg.Clouds, CloudConfig{Name: "verbs", Kind: CloudStatic})
	require.ErrorContains(t, cfg.Validate(), "duplicate")

	cfg = valid()
	cfg.Render.Format = "png"
	require.ErrorContains(t, cfg.Validate(), "format")

	cfg = valid()
	cfg.Render.MinSize = 40
	cfg.Render.MaxSize = 10
	require.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Synonyms.APIKey = ""
	require.ErrorContains(t, cfg.Validate(), "apiKey")
}
