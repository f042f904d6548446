// Package client contains the client-side transport for GophAuth.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, WhoAmI and Ping.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects the access token via an interceptor, and maps gRPC
//     status codes back to the sentinel errors in internal/common.
//
// # Error Handling
//
// Server outcomes are returned as the shared sentinels (common.ErrorInvalidInput,
// common.ErrorUsernameTaken, common.ErrorInvalidCredentials, common.ErrTokenExpired,
// common.ErrInvalidToken, common.ErrorUnauthorized); transport problems as
// ErrUnavailable. Match with errors.Is.
package client
