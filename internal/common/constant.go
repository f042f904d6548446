// Package common contains shared constants and sentinel errors used across
// GophAuth components.
package common

import "time"

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultAccessTokenTTL is the validity window of an issued access token.
const DefaultAccessTokenTTL = time.Hour
