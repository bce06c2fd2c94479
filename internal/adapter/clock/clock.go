package clock

import (
	"time"

	"worktrack/internal/core/ports"
)

// System reads the wall clock in UTC, truncated to the second so stored timestamps
// compare the same way in every SQL driver.
type System struct{}

var _ ports.Clock = System{}

func (System) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Fixed always returns the same instant. Advance moves it forward.
type Fixed struct {
	At time.Time
}

var _ ports.Clock = (*Fixed)(nil)

func (f *Fixed) Now() time.Time {
	return f.At
}

func (f *Fixed) Advance(d time.Duration) {
	f.At = f.At.Add(d)
}
