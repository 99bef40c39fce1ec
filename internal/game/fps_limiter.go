package game

import (
	"time"

	"mini-terrain/internal/config"
)

// Frame rate used while paused, regardless of the configured limit.
const pausedFPS = 30

// FrameLimiter paces the main loop to the configured frame rate.
type FrameLimiter struct {
	limit func() int
	next  time.Time
}

// NewFrameLimiter creates a limiter that follows config.GetFPSLimit.
func NewFrameLimiter() *FrameLimiter {
	return &FrameLimiter{limit: config.GetFPSLimit}
}

// Wait blocks until the next frame is due. A limit of zero or less disables pacing.
// Sleeps coarsely, then spins the last stretch.
func (f *FrameLimiter) Wait(paused bool) {
	fps := f.limit()
	if paused {
		fps = pausedFPS
	}
	if fps <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(fps)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// after a hitch, resync rather than rushing frames to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
