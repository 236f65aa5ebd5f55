package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "StoreFront-001", cfg.Server.AppID)
	assert.Equal(t, "Warehouse", cfg.Server.WarehouseName)
	assert.Equal(t, 60, cfg.Server.TokenMaxValidityDays)
	assert.Equal(t, "storefront", cfg.Database.Name)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "storefront", cfg.Storage.Bucket)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_TOKEN_SECRET", "store-key-extremely-secret")
	t.Setenv("DATABASE_HOST", "db.internal")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "store-key-extremely-secret", cfg.Server.TokenSecret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}
