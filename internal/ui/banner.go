package ui

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrorDisplayDuration is how long an error message stays visible.
const ErrorDisplayDuration = 3 * time.Second

// ErrorSurface displays a single error message.
type ErrorSurface interface {
	Show(message string)
}

// Banner is an ErrorSurface that hides itself ErrorDisplayDuration after the
// most recent Show. A timer from an earlier message never hides a later one.
type Banner struct {
	clock clockwork.Clock

	mu      sync.Mutex
	message string
	visible bool
	seq     uint64
	timer   clockwork.Timer
}

// NewBanner creates a hidden banner driven by clock.
func NewBanner(clock clockwork.Clock) *Banner {
	return &Banner{clock: clock}
}

// Show displays message and schedules it to clear.
func (b *Banner) Show(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.message = message
	b.visible = true
	if b.timer != nil {
		b.timer.Stop()
	}
	seq := b.seq
	b.timer = b.clock.AfterFunc(ErrorDisplayDuration, func() { b.expire(seq) })
}

// Clear hides the banner immediately.
func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	b.visible = false
	b.message = ""
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// Message returns the visible message, if any.
func (b *Banner) Message() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.message, b.visible
}

func (b *Banner) expire(seq uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq != b.seq {
		return
	}
	b.visible = false
	b.message = ""
	b.timer = nil
}
