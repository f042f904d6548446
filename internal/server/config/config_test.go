package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/server/passwords"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"server"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func withoutEnvFile(t *testing.T) {
	t.Helper()
	old := envFile
	envFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { envFile = old })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, ":3000", c.EndpointAddrHTTP)
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, DevelopmentSecretKey, c.SecretKey)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, passwords.AlgorithmBcrypt, c.PasswordAlgorithm)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, EnvironmentDevelopment, c.Environment)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	withArgs(t)
	withoutEnvFile(t)

	c := LoadConfig()
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	if diff := cmp.Diff(&want, c); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	withoutEnvFile(t)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "8080")
	t.Setenv("GOPHAUTH_DB_DRIVER", "memory")
	t.Setenv("GOPHAUTH_TOKEN_TTL", "30m")

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_driver":"postgres","database_dsn":"postgres://x"}`), 0o600))

	withArgs(t, "-c", path, "-s", "from-flag")

	c := LoadConfig()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres", c.DatabaseDriver)
	assert.Equal(t, "postgres://x", c.DatabaseDSN)
	assert.Equal(t, "from-flag", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOPHAUTH_LOG_LEVEL=debug\nGOPHAUTH_BCRYPT_COST=12\n"), 0o600))

	old := envFile
	envFile = path
	t.Cleanup(func() {
		envFile = old
		os.Unsetenv("GOPHAUTH_LOG_LEVEL")
		os.Unsetenv("GOPHAUTH_BCRYPT_COST")
	})

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 12, c.BcryptCost)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestParseEnv_InvalidNumbersKeepDefaults(t *testing.T) {
	withoutEnvFile(t)
	t.Setenv("GOPHAUTH_BCRYPT_COST", "lots")
	t.Setenv("GOPHAUTH_TOKEN_TTL", "soon")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
}

func TestParseEnv_Argon2OutOfRangeKeepsDefaults(t *testing.T) {
	withoutEnvFile(t)
	t.Setenv("GOPHAUTH_ARGON2_THREADS", "300")
	t.Setenv("GOPHAUTH_ARGON2_TIME", "-1")
	t.Setenv("GOPHAUTH_ARGON2_MEMORY_KIB", "4294967296")

	var c Config
	c.LoadDefaults()
	want := c
	parseEnv(&c)

	assert.Equal(t, want.Argon2Threads, c.Argon2Threads)
	assert.Equal(t, want.Argon2Time, c.Argon2Time)
	assert.Equal(t, want.Argon2MemoryKiB, c.Argon2MemoryKiB)

	t.Setenv("GOPHAUTH_ARGON2_THREADS", "255")
	t.Setenv("GOPHAUTH_ARGON2_MEMORY_KIB", "65536")
	parseEnv(&c)
	assert.Equal(t, uint8(255), c.Argon2Threads)
	assert.Equal(t, uint32(65536), c.Argon2MemoryKiB)
}

func TestValidate(t *testing.T) {
	strong := strings.Repeat("k", 32)

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.DatabaseDriver = "mysql" }, "unknown database driver"},
		{"missing dsn", func(c *Config) { c.DatabaseDSN = "" }, "database DSN is required"},
		{"memory without dsn", func(c *Config) { c.DatabaseDriver = "memory"; c.DatabaseDSN = "" }, ""},
		{"zero ttl", func(c *Config) { c.AccessTokenValidityDuration = 0 }, "validity must be positive"},
		{"empty secret", func(c *Config) { c.SecretKey = "" }, "secret key is required"},
		{"bad algorithm", func(c *Config) { c.PasswordAlgorithm = "md5" }, "unknown password algorithm"},
		{"cost too high", func(c *Config) { c.BcryptCost = 40 }, "bcrypt cost"},
		{"no listeners", func(c *Config) { c.EndpointAddrGRPC = ""; c.EndpointAddrHTTP = "" }, "at least one"},
		{"production dev secret", func(c *Config) { c.Environment = EnvironmentProduction }, "development secret"},
		{"production short secret", func(c *Config) { c.Environment = EnvironmentProduction; c.SecretKey = "short" }, "at least 32 bytes"},
		{"production memory", func(c *Config) {
			c.Environment = EnvironmentProduction
			c.SecretKey = strong
			c.DatabaseDriver = "memory"
		}, "memory database driver"},
		{"production memory any case", func(c *Config) {
			c.Environment = "Production"
			c.SecretKey = strong
			c.DatabaseDriver = "MEMORY"
		}, "memory database driver"},
		{"production ok", func(c *Config) { c.Environment = EnvironmentProduction; c.SecretKey = strong }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPasswordConfigAndOrigins(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.CORSAllowedOrigins = " http://a.test, ,http://b.test "

	pc := c.PasswordConfig()
	assert.Equal(t, c.BcryptCost, pc.BcryptCost)
	assert.Equal(t, c.Argon2MemoryKiB, pc.Argon2.MemoryKiB)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.AllowedOrigins())
}
