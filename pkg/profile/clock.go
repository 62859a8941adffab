package profile

import (
	"time"
)

const usecPerSec = 1_000_000

// Timestamp is a wall-clock instant split into whole seconds and
// microseconds within the second, the granularity the sampling gate
// compares at.
type Timestamp struct {
	Sec  int64
	Usec int64
}

// Now returns the current wall-clock time as a Timestamp.
func Now() Timestamp {
	now := time.Now()

	return Timestamp{Sec: now.Unix(), Usec: int64(now.Nanosecond()) / 1_000}
}

// Before reports whether t is strictly earlier than u.
func (t Timestamp) Before(u Timestamp) bool {
	return t.Sec < u.Sec || (t.Sec == u.Sec && t.Usec < u.Usec)
}

// SampleClock decides when the next sample is due. It is driven by the
// single callback stream of one logical CPU and is not safe for concurrent
// use.
type SampleClock struct {
	interval int64 // microseconds
	nextDue  Timestamp
}

// NewSampleClock returns a gate that is due at now and then fires once per
// interval. A zero interval makes every check due.
func NewSampleClock(interval time.Duration, now Timestamp) *SampleClock {
	return &SampleClock{
		interval: interval.Microseconds(),
		nextDue:  now,
	}
}

// ShouldSample reports whether a sample is due at now. On a true result the
// caller must Advance before the next check.
func (c *SampleClock) ShouldSample(now Timestamp) bool {
	return !now.Before(c.nextDue)
}

// Advance schedules the next sample at now + interval. The deadline is
// relative to now rather than to the previous deadline, so callbacks that
// arrive late do not cause a burst of catch-up samples.
func (c *SampleClock) Advance(now Timestamp) {
	due := Timestamp{
		Sec:  now.Sec + c.interval/usecPerSec,
		Usec: now.Usec + c.interval%usecPerSec,
	}
	if due.Usec >= usecPerSec {
		due.Sec++
		due.Usec -= usecPerSec
	}

	c.nextDue = due
}
