package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonConfig_ApplyOnlySetFields(t *testing.T) {
	var c Config
	c.LoadDefaults()

	var jc JsonConfig
	require.NoError(t, json.Unmarshal([]byte(`{
		"endpoint_addr_grpc": ":6000",
		"access_token_validity_duration": "15m",
		"argon2_threads": 2,
		"environment": "production"
	}`), &jc))
	jc.apply(&c)

	assert.Equal(t, ":6000", c.EndpointAddrGRPC)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, uint8(2), c.Argon2Threads)
	assert.Equal(t, EnvironmentProduction, c.Environment)
	assert.Equal(t, ":3000", c.EndpointAddrHTTP)
	assert.Equal(t, DevelopmentSecretKey, c.SecretKey)
}

func TestParseJson_NoFlag(t *testing.T) {
	withArgs(t)

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	withArgs(t, "-config", filepath.Join(t.TempDir(), "nope.json"))

	var c Config
	assert.Panics(t, func() { parseJson(&c) })
}

func TestParseJson_InvalidJSONPanics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	withArgs(t, "-c", path)

	var c Config
	assert.Panics(t, func() { parseJson(&c) })
}
