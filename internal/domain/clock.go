package domain

import "time"

// Clock supplies the current instant to every time-sensitive rule in the
// aggregate. Injecting it keeps hold expiry and scheduling checks
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// UTCClock is the production clock.
type UTCClock struct{}

func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}
