package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is the time source behind every record's FetchedAt.
var clock = clockwork.NewRealClock()

// SetClock makes DecodeWeather and DecodeFlightPlan stamp records with times
// from c. Pass nil to go back to the wall clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
}

// fetchedNow is the FetchedAt value for a record built now. It is UTC with no
// monotonic reading, so records compare equal with ==.
func fetchedNow() time.Time {
	return clock.Now().UTC()
}
