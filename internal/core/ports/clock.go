package ports

import (
	"time"
)

// Clock abstracts the current time so command handlers and the transition
// policy stay deterministic under test.
type Clock interface {
	Now() time.Time
}
