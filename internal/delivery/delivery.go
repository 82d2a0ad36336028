// Package delivery defines the contract every transport implementation
// (HTTP, future gRPC or workers) must satisfy.
package delivery

import "context"

// Delivery is a running transport endpoint of the application.
type Delivery interface {
	// Serve blocks until the transport stops or fails.
	Serve(ctx context.Context) error
}
