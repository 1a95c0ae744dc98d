package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestEmptyConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := EmptyCornerConfig()
	assert.Equal(t, 10, cfg.GetWindow())
	assert.Equal(t, 125.0, cfg.GetThresholdDeg())
	assert.Equal(t, "corner_data.db", cfg.GetDBPath())
	assert.Equal(t, ":8080", cfg.GetListenAddr())
	assert.Equal(t, "migrations", cfg.GetMigrationsDir())
}

func TestLoadCornerConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial config keeps defaults for omitted fields", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "partial.json", `{"window": 5}`)
		cfg, err := LoadCornerConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.GetWindow())
		assert.Equal(t, 125.0, cfg.GetThresholdDeg())
	})

	t.Run("full config", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "full.json", `{
			"window": 7,
			"threshold_degrees": 110.5,
			"db_path": "/tmp/x.db",
			"listen_addr": ":9090",
			"migrations_dir": "db/migrations"
		}`)
		cfg, err := LoadCornerConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.GetWindow())
		assert.Equal(t, 110.5, cfg.GetThresholdDeg())
		assert.Equal(t, "/tmp/x.db", cfg.GetDBPath())
		assert.Equal(t, ":9090", cfg.GetListenAddr())
		assert.Equal(t, "db/migrations", cfg.GetMigrationsDir())
	})

	t.Run("rejects non-json extension", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "config.yaml", `window: 5`)
		_, err := LoadCornerConfig(path)
		require.Error(t, err)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "bad.json", `{"window": `)
		_, err := LoadCornerConfig(path)
		require.Error(t, err)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Parallel()
		for _, content := range []string{
			`{"window": 0}`,
			`{"window": -4}`,
			`{"threshold_degrees": 0}`,
			`{"threshold_degrees": 200}`,
		} {
			path := writeConfig(t, "invalid.json", content)
			_, err := LoadCornerConfig(path)
			require.Error(t, err, "content %s", content)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadCornerConfig(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
	})
}
