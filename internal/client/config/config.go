package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the GophAuth CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: deadline applied to each RPC.
//   - TokenFile: where the access token is kept between runs.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	TokenFile          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.TokenFile = defaultTokenFile()
}

// defaultTokenFile is <user config dir>/gophauth/token, or ./.gophauth-token
// when the config dir cannot be determined.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".gophauth-token"
	}
	return filepath.Join(dir, "gophauth", "token")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
