package billiardsapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
	"github.com/riskibarqy/billiards-tracker/internal/usecase"
)

var _ usecase.AccountAPI = (*Client)(nil)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type organizationRequest struct {
	Organization string `json:"organization"`
}

func (c *Client) RegisterUser(ctx context.Context, payload usecase.RegisterPayload) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodPost, "/users", payload)
}

func (c *Client) Login(ctx context.Context, username, password string) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password})
}

func (c *Client) Logout(ctx context.Context) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodPost, "/auth/logout", nil)
}

func (c *Client) CurrentUser(ctx context.Context) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodGet, "/auth/current", nil)
}

// CheckLoginStatus reports false on any failure.
func (c *Client) CheckLoginStatus(ctx context.Context) bool {
	resp, err := c.envelope(ctx, http.MethodGet, "/auth/status", nil)
	if err != nil {
		c.logger.DebugContext(ctx, "check login status failed", "error", err)
		return false
	}
	return resp.LoggedIn
}

func (c *Client) GetUser(ctx context.Context, username string) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodGet, userPath(username), nil)
}

func (c *Client) UpdateUser(ctx context.Context, username string, stats user.Stats) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodPut, userPath(username), stats)
}

func (c *Client) UpdateOrganization(ctx context.Context, username, organization string) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodPatch, userPath(username)+"/organization", organizationRequest{Organization: organization})
}

func (c *Client) ListUsers(ctx context.Context) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodGet, "/users", nil)
}

func (c *Client) DeleteUser(ctx context.Context, username string) (usecase.AccountEnvelope, error) {
	return c.envelope(ctx, http.MethodDelete, userPath(username), nil)
}

func (c *Client) envelope(ctx context.Context, method, path string, body any) (usecase.AccountEnvelope, error) {
	var out usecase.AccountEnvelope
	if err := c.Request(ctx, path, method, body, &out); err != nil {
		return usecase.AccountEnvelope{}, err
	}
	return out, nil
}

func userPath(username string) string {
	return "/users/" + url.PathEscape(username)
}
