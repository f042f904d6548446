package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Every field is
// optional; absent fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	DatabaseDriver              *string         `json:"database_driver"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	PasswordAlgorithm           *string         `json:"password_algorithm"`
	BcryptCost                  *int            `json:"bcrypt_cost"`
	Argon2Time                  *uint32         `json:"argon2_time"`
	Argon2MemoryKiB             *uint32         `json:"argon2_memory_kib"`
	Argon2Threads               *uint8          `json:"argon2_threads"`
	CORSAllowedOrigins          *string         `json:"cors_allowed_origins"`
	LogLevel                    *string         `json:"log_level"`
	Environment                 *string         `json:"environment"`
}

// parseJson loads the file named by -c/-config, if any, into config.
// An unreadable or invalid file panics: starting with half a config is worse
// than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.DatabaseDriver, c.DatabaseDriver)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setIf(&config.PasswordAlgorithm, c.PasswordAlgorithm)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.Argon2Time, c.Argon2Time)
	setIf(&config.Argon2MemoryKiB, c.Argon2MemoryKiB)
	setIf(&config.Argon2Threads, c.Argon2Threads)
	setIf(&config.CORSAllowedOrigins, c.CORSAllowedOrigins)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.Environment, c.Environment)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
