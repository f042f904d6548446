// Package proto defines the gophauth.v1.CredentialService gRPC contract:
// request/response messages, the service descriptor, client stub and
// server registration.
//
// Messages are plain Go structs carried by the "json" codec registered in
// this package; clients built with NewCredentialServiceClient select it
// automatically.
package proto
