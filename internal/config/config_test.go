package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FOLIO_CONFIG_PATH", "FOLIO_SERVER_HOST", "FOLIO_SERVER_PORT", "FOLIO_TRANSPORT",
		"FOLIO_DB_PATH", "FOLIO_LOG_LEVEL", "FOLIO_LOG_PATH", "FOLIO_AUTH_ENABLED",
		"FOLIO_AUTH_ALLOW_ANONYMOUS", "FOLIO_AI_API_KEY", "FOLIO_AI_MODEL",
		"FOLIO_AI_REQUESTS_PER_MINUTE", "FOLIO_AI_TIMEOUT", "GEMINI_API_KEY", "GOOGLE_API_KEY",
		"FOLIO_GITHUB_BASE_URL", "FOLIO_GITHUB_TOKEN", "FOLIO_GITHUB_TIMEOUT", "GITHUB_TOKEN",
		"FOLIO_TAXONOMY_PATH", "FOLIO_RATE_LIMIT_RPS", "FOLIO_RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
	// Keep a stray .env in the package directory from leaking in.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
transport:
  mode: stdio
auth:
  enabled: false
ai:
  model: gemini-2.5-pro
  timeout: 2m
taxonomy:
  path: tags.yaml
`), 0o644))

	t.Setenv("FOLIO_CONFIG_PATH", path)
	t.Setenv("FOLIO_SERVER_PORT", "9100")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("FOLIO_RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
	require.Equal(t, 2*time.Minute, cfg.AI.Timeout)
	require.Equal(t, "gem-key", cfg.AI.APIKey)
	require.Equal(t, "tags.yaml", cfg.Taxonomy.Path)
	require.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("FOLIO_AI_API_KEY=from-dotenv\n"), 0o644))
	// godotenv never overrides a variable that is present, even when empty.
	require.NoError(t, os.Unsetenv("FOLIO_AI_API_KEY"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "from-dotenv", cfg.AI.APIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"FOLIO_SERVER_PORT":  "eighty",
		"FOLIO_AUTH_ENABLED": "maybe",
		"FOLIO_AI_TIMEOUT":   "soon",
		"FOLIO_TRANSPORT":    "carrier-pigeon",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
