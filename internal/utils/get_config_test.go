package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	cfg := readConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "head_only", cfg.AutoConsumptionPolicy)
	assert.True(t, cfg.AutoConsumptionEnabled)
}

func TestReadConfigYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "STORAGE_BACKEND: postgres\nDB_HOST: db.internal\nAUTO_CONSUMPTION_ENABLED: false\nTIMEZONE: Europe/Berlin\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("DB_HOST", "override.internal")

	cfg := readConfig(path)
	assert.Equal(t, "postgres", cfg.StorageBackend)
	assert.Equal(t, "override.internal", cfg.DBHost)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.False(t, cfg.AutoConsumptionEnabled)

	t.Setenv("AUTO_CONSUMPTION_ENABLED", "true")
	assert.True(t, readConfig(path).AutoConsumptionEnabled)
}
