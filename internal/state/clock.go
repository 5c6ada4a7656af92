package state

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource hands out identifiers for points entering history. A source must
// never return the same value twice during a session.
type IDSource func() string

// UUIDSource is the default IDSource.
func UUIDSource() IDSource {
	return uuid.NewString
}

// SequentialSource returns IDs of the form "<prefix>-<n>" with n counting up
// from 1. Useful where stable IDs matter, such as tests and replays.
func SequentialSource(prefix string) IDSource {
	var n uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, atomic.AddUint64(&n, 1))
	}
}
