package engine

import "time"

// Clock supplies "today" to the Generator. Age and due dates are both derived
// from a single Now() reading per Generate call.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in local time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
