package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.Production())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, 120*time.Second, cfg.HTTP.IdleTimeout)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "admin@assetdesk.local", cfg.Admin.Email)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, []string{"http://*", "https://*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assetdesk.yaml"), []byte(`
environment: production
http:
  addr: ":9000"
  writetimeout: 5s
database:
  path: desk.db
log:
  level: debug
`), 0o600))

	t.Setenv("ASSETDESK_DATABASE_PATH", "env.db")
	t.Setenv("ASSETDESK_CORS_ALLOWEDORIGINS", "https://desk.example.com")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("addr", ":8080", "")
	flags.Bool("seed", true, "")
	require.NoError(t, flags.Parse([]string{"--seed=false"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	// An unset flag does not shadow the file.
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "env.db", cfg.Database.Path)
	assert.False(t, cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"https://desk.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("admin:\n  email: ops@example.com\n"), 0o600))

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("config", "", "")
	require.NoError(t, flags.Parse([]string{"--config", path}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", cfg.Admin.Email)

	flags = pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("config", "", "")
	require.NoError(t, flags.Parse([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))
	_, err = Load(flags)
	assert.Error(t, err)
}
