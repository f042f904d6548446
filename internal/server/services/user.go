// Package services contains server-side business logic. This file implements
// UserService: the registration flow, the authentication flow, and the token
// introspection used by protected endpoints.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/passwords"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token  string
	Claims auth.Claims
}

// UserService provides credential operations:
// - Register: validate, hash and store a new account
// - Login: verify credentials and issue an access token
// - Authenticate / WhoAmI: resolve an access token to its claims or account
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      passwords.Hasher
	issuer      *auth.Issuer
	logger      logging.Logger
	metrics     *metrics.Metrics

	dummyMu   sync.Mutex
	dummyHash string
}

// NewUserService wires a UserService. logger and m may be nil.
func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, hasher passwords.Hasher,
	issuer *auth.Issuer, logger logging.Logger, m *metrics.Metrics) *UserService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &UserService{
		db:          db,
		repomanager: rm,
		hasher:      hasher,
		issuer:      issuer,
		logger:      logger.With("module", "services.user"),
		metrics:     m,
	}
}

// Register creates an account for username. The plaintext password is hashed
// before it reaches the store and is not retained.
//
// Errors: common.ErrorInvalidInput (empty field or password too long),
// common.ErrorUsernameTaken, common.ErrorInternal.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		s.metrics.Registration(metrics.ResultInvalidInput)
		return nil, common.ErrorInvalidInput
	}

	hash, err := s.hash(password)
	if err != nil {
		if errors.Is(err, passwords.ErrPasswordTooLong) {
			s.metrics.Registration(metrics.ResultInvalidInput)
			return nil, common.ErrorPasswordTooLong
		}
		s.logger.Error(ctx, "password hashing failed", "username", username, "error", err)
		s.metrics.Registration(metrics.ResultError)
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, username, hash)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUsername) {
			s.logger.Info(ctx, "registration rejected, username taken", "username", username)
			s.metrics.Registration(metrics.ResultUsernameTaken)
			return nil, common.ErrorUsernameTaken
		}
		s.logger.Error(ctx, "error creating user", "username", username, "error", err)
		s.metrics.Registration(metrics.ResultError)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user registered", "username", username, "user_id", user.ID)
	s.metrics.Registration(metrics.ResultSuccess)
	return user, nil
}

// Login checks username/password and issues an access token carrying
// {subject: id, username}. Unknown users and wrong passwords both yield
// common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		s.metrics.Login(metrics.ResultInvalidInput)
		return nil, common.ErrorInvalidInput
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same amount of hashing work as for an existing user
			_, _ = s.verify(password, s.dummy())
			s.metrics.Login(metrics.ResultInvalidCredentials)
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "error looking up user", "username", username, "error", err)
		s.metrics.Login(metrics.ResultError)
		return nil, common.ErrorInternal
	}

	ok, err := s.verify(password, user.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored password hash is unusable", "user_id", user.ID, "error", err)
		s.metrics.Login(metrics.ResultError)
		return nil, common.ErrorInternal
	}
	if !ok {
		s.metrics.Login(metrics.ResultInvalidCredentials)
		return nil, common.ErrorInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.logger.Info(ctx, "stored password hash uses outdated parameters", "user_id", user.ID)
	}

	token, claims, err := s.issuer.Issue(auth.Claims{Subject: user.ID, Username: user.UserName})
	if err != nil {
		s.logger.Error(ctx, "error issuing token", "user_id", user.ID, "error", err)
		s.metrics.Login(metrics.ResultError)
		return nil, common.ErrorInternal
	}

	s.metrics.Login(metrics.ResultSuccess)
	return &LoginResult{Token: token, Claims: claims}, nil
}

// Authenticate verifies an access token without consulting the store.
// Errors: common.ErrInvalidToken, common.ErrTokenExpired.
func (s *UserService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	return s.issuer.Verify(token)
}

// WhoAmI resolves a token to the account it was issued for. A valid token
// whose account no longer resolves is reported as common.ErrInvalidToken.
func (s *UserService) WhoAmI(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		s.logger.Error(ctx, "error loading user", "user_id", claims.Subject, "error", err)
		return nil, common.ErrorInternal
	}

	return user, nil
}

func (s *UserService) hash(password string) (string, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(time.Since(start)) }()
	return s.hasher.Hash(password)
}

func (s *UserService) verify(password, encoded string) (bool, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveHash(time.Since(start)) }()
	return s.hasher.Verify(password, encoded)
}

// dummy returns a hash of a random secret that login verifies against when
// the username does not exist. It is computed on first use; a failed attempt
// is not cached, so the next call tries again.
func (s *UserService) dummy() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash != "" {
		return s.dummyHash
	}

	secret, err := common.MakeRandHexString(16)
	if err != nil {
		secret = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	h, err := s.hasher.Hash(secret)
	if err != nil {
		s.logger.Warn(context.Background(), "could not prepare dummy hash", "error", err)
		return ""
	}
	s.dummyHash = h
	return h
}
