// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running entrypoint such as an HTTP server.
type Delivery interface {
	// Serve blocks until the entrypoint stops or fails.
	Serve(ctx context.Context) error
}
