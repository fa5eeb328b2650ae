package state

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time. The capture session and stroke buffer take
// one so tests can drive time by hand.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func newID() string {
	return uuid.NewString()
}
