package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// envFile is the dotenv file read from the working directory, if present.
var envFile = ".env"

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first; variables already set in the process
// environment win over it.
//
// JWT_SECRET and PORT are honoured for compatibility with existing
// deployments; the GOPHAUTH_* names take precedence when both are set.
func parseEnv(c *Config) {
	_ = godotenv.Load(envFile)

	c.EndpointAddrGRPC = getEnv("GOPHAUTH_GRPC_ADDR", c.EndpointAddrGRPC)
	if port := os.Getenv("PORT"); port != "" {
		c.EndpointAddrHTTP = ":" + port
	}
	c.EndpointAddrHTTP = getEnv("GOPHAUTH_HTTP_ADDR", c.EndpointAddrHTTP)
	c.DatabaseDriver = getEnv("GOPHAUTH_DB_DRIVER", c.DatabaseDriver)
	c.DatabaseDSN = getEnv("GOPHAUTH_DB_DSN", c.DatabaseDSN)
	c.SecretKey = getEnv("JWT_SECRET", c.SecretKey)
	c.SecretKey = getEnv("GOPHAUTH_SECRET_KEY", c.SecretKey)
	c.AccessTokenValidityDuration = getEnvAsDuration("GOPHAUTH_TOKEN_TTL", c.AccessTokenValidityDuration)
	c.PasswordAlgorithm = getEnv("GOPHAUTH_PASSWORD_ALGORITHM", c.PasswordAlgorithm)
	c.BcryptCost = getEnvAsInt("GOPHAUTH_BCRYPT_COST", c.BcryptCost)
	c.Argon2Time = uint32(getEnvAsUint("GOPHAUTH_ARGON2_TIME", 32, uint64(c.Argon2Time)))
	c.Argon2MemoryKiB = uint32(getEnvAsUint("GOPHAUTH_ARGON2_MEMORY_KIB", 32, uint64(c.Argon2MemoryKiB)))
	c.Argon2Threads = uint8(getEnvAsUint("GOPHAUTH_ARGON2_THREADS", 8, uint64(c.Argon2Threads)))
	c.CORSAllowedOrigins = getEnv("GOPHAUTH_CORS_ORIGINS", c.CORSAllowedOrigins)
	c.LogLevel = getEnv("GOPHAUTH_LOG_LEVEL", c.LogLevel)
	c.Environment = getEnv("GOPHAUTH_ENV", c.Environment)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getEnvAsInt returns defaultValue when the variable is unset or not a number.
func getEnvAsInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return defaultValue
	}
	return n
}

// getEnvAsUint returns defaultValue when the variable is unset, not a number
// or does not fit in bitSize bits.
func getEnvAsUint(key string, bitSize int, defaultValue uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.ParseUint(v, 10, bitSize)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}
