// Package transport implements the HTTP execution core shared by every
// RielPay resource client: request dispatch, authentication header
// synthesis, timeout enforcement, retry with exponential backoff and
// jitter, and classification of failures into typed errors.
//
// The package is internal; resource clients in the root package reach
// it through the rielpay.Client wrapper. Its single operation is
// Client.Do: execute a described request and return a decoded result
// or a typed error. Retries are local to one Do call — no state is
// shared between calls beyond the session's access token and URN.
package transport
