// Package lifecycle holds shared constants for fx lifecycle hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work performed inside
// fx lifecycle hooks (DB pings, HTTP server drain, etc.).
const DefaultTimeout = 10 * time.Second
