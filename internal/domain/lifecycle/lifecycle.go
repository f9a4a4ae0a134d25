// Package lifecycle holds timeouts shared by fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start and stop hook.
const DefaultTimeout = 10 * time.Second
