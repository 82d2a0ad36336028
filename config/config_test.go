package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEnv_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := `env:
  env: test
  log:
    level: debug
http:
  port: 9000
auth:
  tokenSecret: from-file
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	t.Chdir(dir)
	t.Setenv("AUTH_TOKENSECRET", "from-env")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.TokenSecret)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, defaultHTTPPort, cfg.HTTP.Port)
	assert.Equal(t, defaultLogLevel, cfg.Env.Log.Level)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, defaultHashCost, cfg.Auth.BcryptCost)
}

func TestConfig_ApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.HTTP.Port = 9000
	cfg.Auth.TokenTTL = time.Hour
	cfg.Auth.BcryptCost = 12
	cfg.applyDefaults()

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
}

func TestConfig_Validate_MissingTokenSecret(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.tokenSecret is required")
}

func TestConfig_Validate_WhitespaceTokenSecret(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.TokenSecret = "   "

	require.Error(t, cfg.Validate())
}

func TestConfig_Validate_Valid(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.TokenSecret = "a-long-enough-signing-secret"

	require.NoError(t, cfg.Validate())
}

func TestPostgresConfig_DSN(t *testing.T) {
	pg := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "stark",
		Password: "secret",
		DBName:   "stark",
	}

	dsn := pg.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, "dbname=stark")
	assert.Contains(t, dsn, "sslmode=disable")
}
