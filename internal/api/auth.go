package api

import (
	"context"
	"net/http"

	"github.com/spolify/spolify/internal/models"
)

// Credentials carries a username/password pair for login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupData carries the fields required to register a new account.
type SignupData struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// Me checks the authentication status of the current session.
// A 401 means the session cookie is absent or expired.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates against the backend; the session cookie lands in the jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the server session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Signup registers a new user account.
func (c *Client) Signup(ctx context.Context, data SignupData) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users", data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
