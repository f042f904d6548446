package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/tokenstore"
)

// TokenStore persists the access token between runs.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

type App struct {
	config   *config.Config
	client   client.Client
	tokens   TokenStore
	userName string
	loggedIn bool
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewGophAuthClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return newApp(c, apiClient, tokenstore.NewFileStore(c.TokenFile), os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, api client.Client, tokens TokenStore, in io.Reader, out io.Writer) *App {
	a := &App{config: c, client: api, tokens: tokens, reader: bufio.NewReader(in), out: out}
	a.restoreSession()
	return a
}

// restoreSession reuses a token saved by an earlier login.
func (a *App) restoreSession() {
	token, err := a.tokens.Load()
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNoToken) {
			a.printf("Could not read saved token: %v\n", err)
		}
		return
	}
	a.client.SetAccessToken(token)
	a.loggedIn = true
}

func (a *App) Close() error {
	return a.client.Close()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
