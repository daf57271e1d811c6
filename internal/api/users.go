// ABOUTME: User profile endpoints: fetch and update
// ABOUTME: The profile read doubles as the startup session validation call

package api

import (
	"context"
	"net/http"
)

// GetProfile calls GET /users/profile for the authenticated user.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &profile); err != nil {
		return nil, err
	}
	profile.normalize()
	return &profile, nil
}

// UpdateProfile calls PUT /users/profile with the editable fields.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, update, &profile); err != nil {
		return nil, err
	}
	profile.normalize()
	return &profile, nil
}
