package client

import (
	"context"
	"time"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Account describes the user behind the current access token.
type Account struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

type Client interface {
	Close() error
	Register(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	WhoAmI(ctx context.Context) (*Account, error)
	Ping(ctx context.Context) error
	SetAccessToken(token string)
}
