// Package credential resolves the NYT-S token used to authenticate API calls.
package credential

import (
	"context"
	"errors"
)

// Source yields a bearer token for the games API.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// Authenticator performs a username/password login exchange.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// EnvSource returns a token supplied through the environment.
type EnvSource struct {
	Cookie string
}

// Token returns the configured cookie without any network call.
func (s EnvSource) Token(context.Context) (string, error) {
	return s.Cookie, nil
}

// LoginSource logs in with a username and password.
type LoginSource struct {
	Auth     Authenticator
	Username string
	Password string
}

// Token performs the login request. There is no retry.
func (s LoginSource) Token(ctx context.Context) (string, error) {
	if s.Auth == nil {
		return "", errors.New("no authenticator configured")
	}
	return s.Auth.Login(ctx, s.Username, s.Password)
}

// Select picks the token source for a run: an environment cookie wins over
// a login exchange.
func Select(cookie, username, password string, auth Authenticator) Source {
	if cookie != "" {
		return EnvSource{Cookie: cookie}
	}
	return LoginSource{Auth: auth, Username: username, Password: password}
}
