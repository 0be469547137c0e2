package apiclient

import (
	"context"
	"net/http"

	"toolrent-console/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*Envelope[domain.AuthResult], error) {
	return send[domain.AuthResult](ctx, c, http.MethodPost, "/auth/login", "/auth/login",
		loginRequest{Email: email, Password: password})
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*Envelope[domain.AuthResult], error) {
	return send[domain.AuthResult](ctx, c, http.MethodPost, "/auth/register", "/auth/register", req)
}

func (c *Client) GetProfile(ctx context.Context) (*Envelope[domain.User], error) {
	return get[domain.User](ctx, c, "/auth/profile", "/auth/profile", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*Ack, error) {
	return send[jsonRaw](ctx, c, http.MethodPut, "/auth/profile", "/auth/profile", update)
}
