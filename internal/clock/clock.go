package clock

import "time"

//go:generate mockgen -destination=mock/mock_clock.go -package=mockclock -source=clock.go

// Clock provides the current time so timestamps can be pinned in tests
type Clock interface {
	Now() time.Time
}

// Real reads the system clock in UTC
type Real struct{}

// Now implements Clock
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fixed always returns the same instant
type Fixed time.Time

// Now implements Clock
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
