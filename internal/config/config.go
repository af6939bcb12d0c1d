package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort       = 8080
	defaultDBPath     = "./data/water_tracker.db"
	defaultGroqURL    = "https://api.groq.com/openai/v1"
	defaultGroqModel  = "llama3-8b-8192"
	defaultDailyGoal  = 2000
	minimumDailyGoal  = 500
	defaultRateLimit  = 10
	defaultLogLevel   = "info"
	defaultCORSOrigin = "*"
)

// Config holds runtime configuration with sensible defaults for local dev.
type Config struct {
	Port           int      // HTTP port (default 8080)
	DBPath         string   // e.g., ./data/water_tracker.db
	GroqAPIKey     string   // empty disables AI feedback
	GroqBaseURL    string   // OpenAI-compatible endpoint
	GroqModel      string   // chat model name
	DailyGoalML    int      // default goal for /progress (default 2000, min 500)
	RateLimitRPS   int      // requests per second for POST endpoints (default 10)
	RateLimitBurst int      // burst tokens (default = RateLimitRPS)
	LogLevel       string   // debug, info, warn, error
	LogFile        string   // optional rotated JSON log file
	Environment    string   // "production" switches gin to release mode
	CORSOrigins    []string // allowed origins (default "*")
}

// Production reports whether the service runs in production mode.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}

// FromEnv loads configuration from environment variables, falling back to defaults.
// A local ".env" file is loaded first if present; real env vars win.
func FromEnv() Config {
	_ = godotenv.Load() // best-effort; missing file is fine

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("DB_PATH", defaultDBPath)
	v.SetDefault("GROQ_BASE_URL", defaultGroqURL)
	v.SetDefault("GROQ_MODEL", defaultGroqModel)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CORS_ORIGINS", defaultCORSOrigin)

	cfg := Config{
		Port:           getInt(v, "PORT", defaultPort),
		DBPath:         getDBPath(v.GetString("DB_PATH")),
		GroqAPIKey:     strings.TrimSpace(v.GetString("GROQ_API_KEY")),
		GroqBaseURL:    sanitizeBaseURL(v.GetString("GROQ_BASE_URL")),
		GroqModel:      getString(v, "GROQ_MODEL", defaultGroqModel),
		DailyGoalML:    getInt(v, "DAILY_GOAL_ML", defaultDailyGoal),
		RateLimitRPS:   defaultRateLimit,
		RateLimitBurst: defaultRateLimit,
		LogLevel:       strings.ToLower(getString(v, "LOG_LEVEL", defaultLogLevel)),
		LogFile:        strings.TrimSpace(v.GetString("LOG_FILE")),
		Environment:    strings.TrimSpace(v.GetString("ENVIRONMENT")),
		CORSOrigins:    splitList(v.GetString("CORS_ORIGINS")),
	}

	// Parse RATE_LIMIT if provided.
	if rl := strings.TrimSpace(v.GetString("RATE_LIMIT")); rl != "" {
		rps, burst := parseRateLimit(rl)
		if rps > 0 {
			cfg.RateLimitRPS = rps
		}
		if burst > 0 {
			cfg.RateLimitBurst = burst
		} else {
			cfg.RateLimitBurst = cfg.RateLimitRPS
		}
	}

	// Ensure burst >= rps
	if cfg.RateLimitBurst < cfg.RateLimitRPS {
		cfg.RateLimitBurst = cfg.RateLimitRPS
	}
	if cfg.DailyGoalML < minimumDailyGoal {
		cfg.DailyGoalML = minimumDailyGoal
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{defaultCORSOrigin}
	}
	return cfg
}

func getString(v *viper.Viper, key, def string) string {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		return s
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if s := strings.TrimSpace(v.GetString(key)); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return def
}

func sanitizeBaseURL(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	if s == "" {
		return defaultGroqURL
	}
	return s
}

func getDBPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = defaultDBPath
	}
	if p == ":memory:" {
		return p
	}
	// Normalize to OS-specific path; create parent dir if possible (best-effort).
	p = filepath.Clean(p)
	if dir := filepath.Dir(p); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	return p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var rateRe = regexp.MustCompile(`^\s*(\d+)\s*(?:rps)?\s*(?::\s*(\d+)\s*)?$`)

// parseRateLimit accepts "10", "10rps", or "10:20" (rps:burst).
func parseRateLimit(s string) (rps, burst int) {
	s = strings.ToLower(strings.TrimSpace(s))
	m := rateRe.FindStringSubmatch(s)
	if len(m) == 0 {
		return 0, 0
	}
	rps, _ = strconv.Atoi(m[1])
	if len(m) >= 3 && m[2] != "" {
		burst, _ = strconv.Atoi(m[2])
	} else {
		burst = rps
	}
	return rps, burst
}
