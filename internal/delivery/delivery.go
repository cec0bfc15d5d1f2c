// Package delivery defines the contract every transport entry point satisfies.
package delivery

import "context"

// Delivery is a long-running transport surface such as an HTTP server.
// Implementations are collected into the deliveries group and started
// together by the application entry point.
type Delivery interface {
	Serve(ctx context.Context) error
}
