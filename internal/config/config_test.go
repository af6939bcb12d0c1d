package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRateLimit(t *testing.T) {
	tests := []struct {
		in        string
		rps, burst int
	}{
		{"10", 10, 10},
		{"5rps", 5, 5},
		{"10:20", 10, 20},
		{" 3 : 7 ", 3, 7},
		{"fast", 0, 0},
		{"", 0, 0},
	}
	for _, tt := range tests {
		rps, burst := parseRateLimit(tt.in)
		assert.Equal(t, tt.rps, rps, "rps for %q", tt.in)
		assert.Equal(t, tt.burst, burst, "burst for %q", tt.in)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir) // keep any developer .env out of the way
	for _, k := range []string{"PORT", "GROQ_API_KEY", "GROQ_BASE_URL", "GROQ_MODEL", "RATE_LIMIT", "DAILY_GOAL_ML", "LOG_LEVEL", "LOG_FILE", "ENVIRONMENT", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	t.Setenv("DB_PATH", filepath.Join(dir, "db", "w.db"))

	cfg := FromEnv()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, filepath.Join(dir, "db", "w.db"), cfg.DBPath)
	assert.Empty(t, cfg.GroqAPIKey)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.GroqBaseURL)
	assert.Equal(t, "llama3-8b-8192", cfg.GroqModel)
	assert.Equal(t, 2000, cfg.DailyGoalML)
	assert.Equal(t, 10, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.Production())
	assert.DirExists(t, filepath.Join(dir, "db"))
}

func TestFromEnv_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("GROQ_API_KEY", " secret ")
	t.Setenv("GROQ_BASE_URL", "http://localhost:1234/v1/")
	t.Setenv("RATE_LIMIT", "4:2")
	t.Setenv("DAILY_GOAL_ML", "100")
	t.Setenv("ENVIRONMENT", "Production")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg := FromEnv()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, "secret", cfg.GroqAPIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.GroqBaseURL)
	assert.Equal(t, 4, cfg.RateLimitRPS)
	assert.Equal(t, 4, cfg.RateLimitBurst, "burst is raised to rps")
	assert.Equal(t, 500, cfg.DailyGoalML, "goal is clamped to the minimum")
	assert.True(t, cfg.Production())
	require.Len(t, cfg.CORSOrigins, 2)
	assert.Equal(t, "http://b.test", cfg.CORSOrigins[1])
}

func TestFromEnv_BadPortFallsBack(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("PORT", "eighty")
	assert.Equal(t, 8080, FromEnv().Port)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
