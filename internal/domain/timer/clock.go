package timer

import "time"

// Clock abstracts wall-clock time so tests can drive the state machine
// deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the host wall clock.
func SystemClock() Clock { return systemClock{} }
