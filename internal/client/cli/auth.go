package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}

	return userName, password, nil
}

// describe turns a client error into a line for the user.
func describe(err error) string {
	if errors.Is(err, client.ErrUnavailable) {
		return err.Error()
	}
	return common.PublicMessage(err)
}

// Register prompts for a username and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.client.Register(ctx, userName, string(password))
	if err != nil {
		a.printf("Registration failed: %s\n", describe(err))
		return err
	}

	a.printf("Registered %q (id %d). You can now log in.\n", userName, id)
	return nil
}

// Login prompts for credentials, authenticates and saves the returned token.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.client.Login(ctx, userName, string(password))
	if err != nil {
		a.printf("Login failed: %s\n", describe(err))
		return err
	}

	if err := a.tokens.Save(session.Token); err != nil {
		a.printf("Logged in, but the token could not be saved: %v\n", err)
	}

	a.userName = userName
	a.loggedIn = true
	a.printf("Login successful. Token valid until %s.\n", session.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

// WhoAmI shows the account behind the current token. An expired or rejected
// token is forgotten.
func (a *App) WhoAmI(ctx context.Context) error {
	account, err := a.client.WhoAmI(ctx)
	if err != nil {
		a.printf("whoami failed: %s\n", describe(err))
		switch common.KindOf(err) {
		case common.KindTokenExpired, common.KindInvalidToken, common.KindUnauthorized:
			_ = a.Logout(ctx)
		}
		return err
	}

	a.userName = account.Username
	a.printf("id: %d\nusername: %s\nregistered: %s\n", account.ID, account.Username, account.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

// Logout forgets the token locally. Tokens are stateless, so nothing is sent
// to the server.
func (a *App) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	a.userName = ""
	a.loggedIn = false
	if err := a.tokens.Clear(); err != nil {
		a.printf("Could not remove saved token: %v\n", err)
		return err
	}
	a.printf("Logged out.\n")
	return nil
}
