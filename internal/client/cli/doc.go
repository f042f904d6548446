// Package cli provides the interactive GophAuth command-line client.
//
// It wires configuration, the gRPC client and the token file into a small
// REPL. The token saved by login is reused on the next start, the same way a
// browser keeps a JWT in local storage.
//
// Commands:
//   - register / login: prompt for a username and password (no echo)
//   - whoami: show the account behind the stored token
//   - logout: forget the stored token
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
