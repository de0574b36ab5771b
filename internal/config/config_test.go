package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TITLER_AUTH_JWTSECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/titler.db", cfg.Database.DSN)
	assert.Equal(t, 1440, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "openai", cfg.Model.Provider)
	assert.Empty(t, cfg.Model.Name)
	assert.Equal(t, 60, cfg.Model.TimeoutSeconds)
	assert.Equal(t, "titler-exports", cfg.Storage.KeyPrefix)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TITLER_AUTH_JWTSECRET", "s3cret")
	t.Setenv("TITLER_DATABASE_DRIVER", "postgres")
	t.Setenv("TITLER_DATABASE_DSN", "postgres://titler@localhost/titler")
	t.Setenv("TITLER_MODEL_NAME", "llama3.2")
	t.Setenv("TITLER_MODEL_PROVIDER", "ollama")
	t.Setenv("TITLER_CORS_ALLOWEDORIGINS", "https://a.example, https://b.example")
	t.Setenv("TITLER_METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://titler@localhost/titler", cfg.Database.DSN)
	assert.Equal(t, "llama3.2", cfg.Model.Name)
	assert.Equal(t, "ollama", cfg.Model.Provider)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(
		"TITLER_AUTH_JWTSECRET=from-dotenv\nTITLER_SERVER_ADDR=127.0.0.1:9999\n"), 0o600))
	t.Setenv("TITLER_SERVER_ADDR", "127.0.0.1:7000")
	// registers cleanup for the variable .env is about to set
	t.Setenv("TITLER_AUTH_JWTSECRET", "")
	require.NoError(t, os.Unsetenv("TITLER_AUTH_JWTSECRET"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Auth.JWTSecret)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
auth:
  jwtsecret: file-secret
  tokenttlminutes: 30
storage:
  bucket: archive
`), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "archive", cfg.Storage.Bucket)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TITLER_AUTH_JWTSECRET", "  ")

	_, err := Load()
	assert.ErrorContains(t, err, "jwt secret")
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Auth.JWTSecret = "x"
		c.Auth.TokenTTLMinutes = 10
		c.Database.Driver = "sqlite"
		c.Database.DSN = "file.db"
		c.Log.Format = "text"
		return c
	}
	require.NoError(t, valid().Validate())

	for name, mutate := range map[string]func(*Config){
		"ttl":    func(c *Config) { c.Auth.TokenTTLMinutes = 0 },
		"driver": func(c *Config) { c.Database.Driver = "mysql" },
		"dsn":    func(c *Config) { c.Database.DSN = "" },
		"format": func(c *Config) { c.Log.Format = "xml" },
	} {
		c := valid()
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}
