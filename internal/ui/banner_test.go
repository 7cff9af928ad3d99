package ui

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func visible(b *Banner) bool {
	_, ok := b.Message()
	return ok
}

func TestBanner_AutoClears(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewBanner(clock)

	b.Show("City 'Atlantis' not found")

	msg, ok := b.Message()
	assert.True(t, ok)
	assert.Equal(t, "City 'Atlantis' not found", msg)

	clock.Advance(ErrorDisplayDuration - time.Millisecond)
	assert.True(t, visible(b), "still visible before the timeout")

	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return !visible(b) }, time.Second, 5*time.Millisecond)
}

func TestBanner_NewerMessageRestartsTimer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewBanner(clock)

	b.Show("first")
	clock.Advance(2 * time.Second)
	b.Show("second")
	clock.Advance(2 * time.Second) // first timer would have fired by now

	assert.Never(t, func() bool { return !visible(b) }, 50*time.Millisecond, 5*time.Millisecond)
	msg, _ := b.Message()
	assert.Equal(t, "second", msg)

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return !visible(b) }, time.Second, 5*time.Millisecond)
}

func TestBanner_Clear(t *testing.T) {
	b := NewBanner(clockwork.NewFakeClock())

	assert.False(t, visible(b))
	b.Show("boom")
	b.Clear()

	msg, ok := b.Message()
	assert.False(t, ok)
	assert.Empty(t, msg)
}
