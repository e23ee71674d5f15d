package geocoding

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// MaxAttempts is the number of provider calls made for one address before giving up.
const MaxAttempts = 5

// DefaultSchedule is the rate-limit tier table. After failed attempt i the client
// waits for the sum of segments 0..i: 5s, 10s, 15s, 75s.
var DefaultSchedule = []time.Duration{
	5 * time.Second,
	5 * time.Second,
	5 * time.Second,
	60 * time.Second,
	120 * time.Second,
}

// tieredBackOff implements backoff.BackOff over a segment schedule.
type tieredBackOff struct {
	schedule []time.Duration
	round    int
}

var _ backoff.BackOff = (*tieredBackOff)(nil)

// newTieredBackOff returns a policy allowing MaxAttempts calls in total.
func newTieredBackOff(schedule []time.Duration) backoff.BackOff {
	return backoff.WithMaxRetries(&tieredBackOff{schedule: schedule}, MaxAttempts-1)
}

// NextBackOff returns the wait before the next attempt.
func (b *tieredBackOff) NextBackOff() time.Duration {
	delay := Delay(b.schedule, b.round)
	b.round++

	return delay
}

// Reset restarts the schedule from the first segment.
func (b *tieredBackOff) Reset() {
	b.round = 0
}

// Delay returns the wait after failed attempt index round. Rounds beyond the
// schedule reuse all segments.
func Delay(schedule []time.Duration, round int) time.Duration {
	var total time.Duration
	for seg := 0; seg <= round && seg < len(schedule); seg++ {
		total += schedule[seg]
	}

	return total
}
