// Package rielpay provides a Go client SDK for the RielPay platform:
// accounts, identities, and currency-swap / payment-rail orders over
// the platform's REST API.
//
// The SDK is a thin typed surface over a shared HTTP transport core
// that handles authentication, timeouts, retries with backoff, and
// error classification.
//
// Basic usage:
//
//	client, err := rielpay.New(
//	    rielpay.WithAPIKey("your-api-key"),
//	    rielpay.WithOrigin("your-origin"),
//	    rielpay.WithMode(rielpay.ModeSandbox),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Exchange the API key for a session token
//	identity, err := client.Connect(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("URN:", identity.URN)
//
//	// List accounts
//	accounts, err := client.ListAccounts(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All failures surface as typed errors (ConfigError, APIError,
// RateLimitError, NetworkError, TimeoutError) that support errors.Is
// against the package sentinels.
package rielpay
