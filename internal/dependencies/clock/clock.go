// Package clock provides time operations that can be mocked for
// testing. The session clock needs real timers and tickers, not just
// Now(), so this is a thin re-export of clockwork; tests use
// clockwork.NewFakeClock and Advance/BlockUntil to drive grace periods
// and race ticks deterministically.
package clock

import "github.com/jonboulle/clockwork"

// Clock is the time source used throughout the engine
type Clock = clockwork.Clock

// Timer is a cancellable one-shot timer
type Timer = clockwork.Timer

// Ticker delivers periodic ticks
type Ticker = clockwork.Ticker

// New returns a Clock backed by the system clock
func New() Clock {
	return clockwork.NewRealClock()
}
