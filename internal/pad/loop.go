package pad

import (
	"time"

	"MyInkPad/internal/state"
)

// Loop is the single-threaded event loop the pad runs on. AfterFunc must run
// fn on the same goroutine that delivers pointer events, never concurrently
// with them.
type Loop interface {
	state.Clock
	AfterFunc(d time.Duration, fn func())
}
