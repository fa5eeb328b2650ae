package ui

import (
	"time"

	"fyne.io/fyne/v2"
)

// fyneLoop runs pad timers on the fyne event goroutine, where every other
// pad call is made.
type fyneLoop struct{}

func (fyneLoop) Now() time.Time { return time.Now() }

func (fyneLoop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { fyne.Do(fn) })
}
