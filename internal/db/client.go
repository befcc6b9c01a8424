package db

import (
	"github.com/supabase-community/postgrest-go"

	"github.com/ncastellanos/casita/internal/config"
)

// Client builds PostgREST clients against the project's REST endpoint.
// Row-level security runs under whichever token a client carries, so
// user-facing requests must use a client bound to the caller's JWT.
type Client struct {
	baseURL   string
	anonKey   string
	secretKey string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:   cfg.SupabaseURL,
		anonKey:   cfg.SupabaseAnonKey,
		secretKey: cfg.SupabaseSecretKey,
	}
}

// UserClient returns a PostgREST client authenticated as the caller.
// With an empty token the anon key applies and row-level security
// exposes nothing user-owned.
func (c *Client) UserClient(token string) *postgrest.Client {
	restURL := c.baseURL + "/rest/v1"

	headers := map[string]string{
		"apikey": c.anonKey,
	}

	client := postgrest.NewClient(restURL, "", headers)

	if token != "" {
		client.SetAuthToken(token)
	} else {
		client.SetAuthToken(c.anonKey)
	}

	return client
}

// SystemClient returns a PostgREST client using the secret key,
// bypassing row-level security. Server-side maintenance only.
func (c *Client) SystemClient() *postgrest.Client {
	restURL := c.baseURL + "/rest/v1"

	headers := map[string]string{
		"apikey": c.secretKey,
	}

	client := postgrest.NewClient(restURL, "", headers)
	client.SetAuthToken(c.secretKey)

	return client
}
