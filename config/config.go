package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every externally sourced setting the scripts use. It is read
// once at process start and passed explicitly to whatever needs it; nothing
// else in the repo touches the environment.
type Config struct {
	SupabaseURL    string
	AnonKey        string
	ServiceRoleKey string
	DatabaseURL    string
	APIBaseURL     string
	AccessToken    string
	GeminiAPIKey   string
}

// Load reads .env.local (if present) and the process environment. Every value
// is whitespace-trimmed: deployment tooling has shipped variables with a
// trailing "\n" before, and an invisible newline inside an API key produces
// auth failures that look exactly like bad credentials
// (see docs/fix-env-newlines.md).
func Load() *Config {
	_ = godotenv.Load(".env.local")

	return &Config{
		SupabaseURL:    getEnv("NEXT_PUBLIC_SUPABASE_URL", ""),
		AnonKey:        getEnv("NEXT_PUBLIC_SUPABASE_ANON_KEY", ""),
		ServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		DatabaseURL:    getEnv("SUPABASE_DB_URL", ""),
		APIBaseURL:     getEnv("API_BASE_URL", ""),
		AccessToken:    getEnv("TEST_ACCESS_TOKEN", ""),
		GeminiAPIKey:   firstKey(getEnv("GEMINI_API_KEY", "")),
	}
}

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return strings.TrimSpace(v)
}

// firstKey handles the comma-separated key rotation format some deployments
// use for GEMINI_API_KEY. Only the first key is used by these scripts.
func firstKey(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		return strings.TrimSpace(v[:i])
	}
	return v
}
