package upstream

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"rol"`
}

// Login exchanges operator credentials for an upstream bearer token and role.
// Bad credentials surface as domain.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, username, password string) (token, role string, err error) {
	var resp loginResponse
	err = c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return "", "", err
	}
	return resp.AccessToken, resp.Role, nil
}

// Register creates a new operator account upstream. New accounts get the
// cashier role; the store API refuses admin self-registration and reports a
// taken username as domain.ErrInvalid.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", loginRequest{
		Username: username,
		Password: password,
	}, nil)
}
