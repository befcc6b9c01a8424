package config

import (
	"errors"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port               string
	SupabaseURL        string
	SupabaseProjectRef string
	SupabaseAnonKey    string
	SupabaseSecretKey  string
}

const defaultPort = "8080"

// LoadConfig reads configuration from the environment (a .env file is
// picked up automatically). SUPABASE_URL and SUPABASE_ANON_KEY are
// required; the process must not start without them.
func LoadConfig() (*Config, error) {
	return newConfig(
		os.Getenv("SUPABASE_URL"),
		os.Getenv("SUPABASE_ANON_KEY"),
		os.Getenv("SUPABASE_SECRET_KEY"),
		os.Getenv("PORT"),
	)
}

func newConfig(supabaseURL, anonKey, secretKey, port string) (*Config, error) {
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL is not set")
	}
	if anonKey == "" {
		return nil, errors.New("SUPABASE_ANON_KEY is not set")
	}
	if port == "" {
		port = defaultPort
	}

	return &Config{
		Port:               port,
		SupabaseURL:        supabaseURL,
		SupabaseProjectRef: projectRef(supabaseURL),
		SupabaseAnonKey:    anonKey,
		SupabaseSecretKey:  secretKey,
	}, nil
}

// projectRef extracts the project reference from a hosted Supabase URL,
// e.g. https://abcdefgh.supabase.co -> abcdefgh. Self-hosted URLs are
// returned unchanged.
func projectRef(supabaseURL string) string {
	ref := supabaseURL
	ref = strings.TrimPrefix(ref, "https://")
	ref = strings.TrimPrefix(ref, "http://")
	if idx := strings.Index(ref, ".supabase.co"); idx != -1 {
		return ref[:idx]
	}
	return ref
}
