package auth

import (
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/ncastellanos/casita/internal/config"
	"github.com/ncastellanos/casita/internal/models"
)

// Client wraps the GoTrue API behind the narrow surface this layer needs.
type Client struct {
	api gotrue.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		api: gotrue.New(cfg.SupabaseProjectRef, cfg.SupabaseAnonKey),
	}
}

// SignUp creates a new identity and returns its first session.
func (c *Client) SignUp(email, password string) (*models.Session, error) {
	res, err := c.api.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	return &models.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    res.TokenType,
		ExpiresIn:    res.ExpiresIn,
		User: models.User{
			ID:    res.User.ID.String(),
			Email: res.User.Email,
		},
	}, nil
}

// SignIn authenticates existing credentials.
func (c *Client) SignIn(email, password string) (*models.Session, error) {
	res, err := c.api.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, err
	}

	return &models.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    res.TokenType,
		ExpiresIn:    res.ExpiresIn,
		User: models.User{
			ID:    res.User.ID.String(),
			Email: res.User.Email,
		},
	}, nil
}

// SignOut invalidates the session behind accessToken.
func (c *Client) SignOut(accessToken string) error {
	return c.api.WithToken(accessToken).Logout()
}

// Refresh exchanges a refresh token for a fresh session.
func (c *Client) Refresh(refreshToken string) (*models.Session, error) {
	res, err := c.api.RefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	return &models.Session{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    res.TokenType,
		ExpiresIn:    res.ExpiresIn,
		User: models.User{
			ID:    res.User.ID.String(),
			Email: res.User.Email,
		},
	}, nil
}

// UserFromToken validates an access token against GoTrue and returns the
// identity it belongs to.
func (c *Client) UserFromToken(token string) (*models.User, error) {
	res, err := c.api.WithToken(token).GetUser()
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:    res.ID.String(),
		Email: res.Email,
	}, nil
}
