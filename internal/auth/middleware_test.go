package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ncastellanos/casita/internal/models"
)

type fakeValidator struct {
	user *models.User
	err  error

	gotToken string
}

func (f *fakeValidator) UserFromToken(token string) (*models.User, error) {
	f.gotToken = token
	return f.user, f.err
}

func TestMiddleware(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "ana@example.com"}

	tcases := []struct {
		name         string
		header       string
		validator    *fakeValidator
		expectedCode int
	}{
		{
			name:         "valid token",
			header:       "Bearer good-token",
			validator:    &fakeValidator{user: user},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing header",
			header:       "",
			validator:    &fakeValidator{user: user},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "wrong scheme",
			header:       "Basic dXNlcjpwYXNz",
			validator:    &fakeValidator{user: user},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "rejected token",
			header:       "Bearer bad-token",
			validator:    &fakeValidator{err: errors.New("token expired")},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser models.User
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUser, _ = UserFrom(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/homes", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			Middleware(tc.validator, next).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedCode, rr.Code)
			if tc.expectedCode == http.StatusOK {
				assert.True(t, called, "next handler runs for a valid token")
				assert.Equal(t, *user, gotUser, "user is injected into the context")
				assert.Equal(t, "good-token", tc.validator.gotToken)
			} else {
				assert.False(t, called, "next handler must not run")
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", BearerToken(req))

	req.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", BearerToken(req))
}
