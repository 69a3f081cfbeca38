package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	v := viper.New()
	v.Set("server.port", "8080")
	v.Set("admin.token", "file-token")
	v.Set("nonce.secret", "file-secret")

	cfg, err := ParseConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "file-token", cfg.Admin.Token)
	assert.Equal(t, "file-secret", cfg.Nonce.Secret)
}

func TestParseConfigEnvOverrides(t *testing.T) {
	v := viper.New()
	v.Set("admin.token", "file-token")
	v.Set("nonce.secret", "file-secret")
	v.Set("database.password", "file-password")

	t.Setenv("ADMIN_TOKEN", "env-token")
	t.Setenv("POSTGRES_PASSWORD", "env-password")

	cfg, err := ParseConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Admin.Token)
	assert.Equal(t, "env-password", cfg.Database.Password)
	assert.Equal(t, "file-secret", cfg.Nonce.Secret, "unset env vars leave the file value")
}

func TestGetEnv(t *testing.T) {
	t.Setenv("EN_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("EN_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("EN_TEST_MISSING", "fallback"))
}
