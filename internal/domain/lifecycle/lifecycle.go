// Package lifecycle holds shared constants for service startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as DB pings and HTTP shutdown.
const DefaultTimeout = 10 * time.Second
