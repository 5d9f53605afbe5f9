package payment

import (
	"fmt"
	"sync/atomic"
	"time"
)

var orderSeq uint32

// NewOrderID generates a fresh order identifier: a fixed prefix, a
// millisecond timestamp and a process-local counter. Uniqueness only has
// to hold across the lifetime of pending and recent orders, and the
// counter disambiguates creations inside the same millisecond.
func NewOrderID() string {
	seq := atomic.AddUint32(&orderSeq, 1) % 1000
	return fmt.Sprintf("DC%d%03d", time.Now().UnixMilli(), seq)
}
