package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	tcases := []struct {
		name    string
		url     string
		anonKey string
		port    string
		err     bool
	}{
		{
			name:    "valid config",
			url:     "https://abcdefgh.supabase.co",
			anonKey: "anon-key",
			port:    "9000",
			err:     false,
		},
		{
			name:    "missing url",
			url:     "",
			anonKey: "anon-key",
			err:     true,
		},
		{
			name:    "missing anon key",
			url:     "https://abcdefgh.supabase.co",
			anonKey: "",
			err:     true,
		},
		{
			name:    "port defaults",
			url:     "https://abcdefgh.supabase.co",
			anonKey: "anon-key",
			port:    "",
			err:     false,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := newConfig(tc.url, tc.anonKey, "", tc.port)
			if tc.err {
				assert.Error(t, err, "expected error for config: %s", tc.name)
				return
			}
			assert.NoError(t, err, "expected no error for config: %s", tc.name)

			assert.Equal(t, tc.url, cfg.SupabaseURL)
			assert.Equal(t, tc.anonKey, cfg.SupabaseAnonKey)
			if tc.port == "" {
				assert.Equal(t, defaultPort, cfg.Port, "expected default port")
			} else {
				assert.Equal(t, tc.port, cfg.Port)
			}
		})
	}
}

func Test_projectRef(t *testing.T) {
	tcases := []struct {
		name string
		url  string
		ref  string
	}{
		{
			name: "hosted url",
			url:  "https://abcdefgh.supabase.co",
			ref:  "abcdefgh",
		},
		{
			name: "hosted url without scheme",
			url:  "abcdefgh.supabase.co",
			ref:  "abcdefgh",
		},
		{
			name: "self-hosted url",
			url:  "http://localhost:54321",
			ref:  "localhost:54321",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.ref, projectRef(tc.url))
		})
	}
}
