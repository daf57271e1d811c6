// ABOUTME: Auth endpoints: login, register, logout
// ABOUTME: Token persistence is owned by the session manager, not this layer

package api

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the backend's response to a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls POST /auth/login and returns the opaque token and user.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	result.User.normalize()
	return &result, nil
}

// Register calls POST /auth/register. It creates the account but does not
// establish a session; the caller must log in separately.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, registerRequest{Name: name, Email: email, Password: password}, nil)
}

// Logout calls POST /auth/logout to invalidate the server-side session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
