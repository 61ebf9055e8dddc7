package authclient

import (
	"context"
	"fmt"
)

const (
	registerPath = "/api/auth/register"
	loginPath    = "/api/auth/login"
)

type RegistrationRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Credentials is the one-time-visible client id/key pair issued on
// registration. Never retained beyond in-memory display.
type Credentials struct {
	ClientID  string `json:"client_id"`
	ClientKey string `json:"client_key"`
}

type LoginRequest struct {
	ClientID  string `json:"client_id"`
	ClientKey string `json:"client_key"`
}

type Session struct {
	AccessToken string `json:"access_token"`
}

// APIError is a non-2xx response from the auth backend. Detail carries the
// server-provided message verbatim when present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("auth backend returned status %d", e.Status)
}

func (c *Client) Register(ctx context.Context, req RegistrationRequest) (*Credentials, error) {
	var creds Credentials
	if err := c.post(ctx, registerPath, req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	var sess Session
	if err := c.post(ctx, loginPath, req, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
