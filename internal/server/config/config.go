// Package config handles configuration for the server component,
// including defaults, environment/.env overlay, JSON overlay, and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/passwords"
	"golang.org/x/crypto/bcrypt"
)

// DevelopmentSecretKey is the built-in signing secret. It exists so the
// server starts out of the box; Validate refuses it in production.
const DevelopmentSecretKey = "gophauth-development-secret-change-me"

// minProductionSecretLen is the shortest accepted HS256 secret in production.
const minProductionSecretLen = 32

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// Config holds runtime settings for the GophAuth server.
//
// Fields:
//   - EndpointAddrGRPC / EndpointAddrHTTP: bind addresses of the two transports.
//     An empty HTTP address disables the HTTP API.
//   - DatabaseDriver: postgres, sqlite or memory. DatabaseDSN is ignored for memory.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenValidityDuration: token lifetime, 1h by default.
//   - PasswordAlgorithm, BcryptCost, Argon2*: password hashing cost knobs.
//   - CORSAllowedOrigins: comma separated origins allowed to call the HTTP API.
type Config struct {
	EndpointAddrGRPC            string
	EndpointAddrHTTP            string
	DatabaseDriver              string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	PasswordAlgorithm           string
	BcryptCost                  int
	Argon2Time                  uint32
	Argon2MemoryKiB             uint32
	Argon2Threads               uint8
	CORSAllowedOrigins          string
	LogLevel                    string
	Environment                 string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and Validate rejects it in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":3000"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:database.sqlite?_pragma=busy_timeout(5000)"
	c.SecretKey = DevelopmentSecretKey
	c.AccessTokenValidityDuration = time.Hour
	c.PasswordAlgorithm = passwords.AlgorithmBcrypt
	c.BcryptCost = passwords.DefaultBcryptCost
	p := passwords.DefaultArgon2idParams()
	c.Argon2Time = p.Iterations
	c.Argon2MemoryKiB = p.MemoryKiB
	c.Argon2Threads = p.Parallelism
	c.CORSAllowedOrigins = "*"
	c.LogLevel = "info"
	c.Environment = EnvironmentDevelopment
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from .env and the environment, an optional JSON file and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports configuration that must not reach a running server.
func (c *Config) Validate() error {
	var errs []error

	if c.EndpointAddrGRPC == "" && c.EndpointAddrHTTP == "" {
		errs = append(errs, errors.New("at least one of the gRPC or HTTP addresses must be set"))
	}

	driver := strings.ToLower(c.DatabaseDriver)
	switch driver {
	case "postgres", "sqlite":
		if c.DatabaseDSN == "" {
			errs = append(errs, fmt.Errorf("database DSN is required for driver %q", c.DatabaseDriver))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.DatabaseDriver))
	}

	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}

	switch strings.ToLower(c.PasswordAlgorithm) {
	case passwords.AlgorithmBcrypt, passwords.AlgorithmArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unknown password algorithm %q", c.PasswordAlgorithm))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost))
	}

	if strings.EqualFold(c.Environment, EnvironmentProduction) {
		if c.SecretKey == DevelopmentSecretKey {
			errs = append(errs, errors.New("the development secret key must not be used in production"))
		}
		if len(c.SecretKey) < minProductionSecretLen {
			errs = append(errs, fmt.Errorf("secret key must be at least %d bytes in production", minProductionSecretLen))
		}
		if driver == "memory" {
			errs = append(errs, errors.New("the memory database driver must not be used in production"))
		}
	}

	return errors.Join(errs...)
}

// PasswordConfig converts the hashing settings for passwords.New.
func (c *Config) PasswordConfig() passwords.Config {
	return passwords.Config{
		Algorithm:  c.PasswordAlgorithm,
		BcryptCost: c.BcryptCost,
		Argon2: passwords.Argon2idParams{
			Iterations:  c.Argon2Time,
			MemoryKiB:   c.Argon2MemoryKiB,
			Parallelism: c.Argon2Threads,
		},
	}
}

// AllowedOrigins splits CORSAllowedOrigins into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
