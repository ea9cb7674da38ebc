// Package state holds the pad's application state and the reducer that is the
// only code allowed to change it.
//
// Every change arrives as an [Event]. [Reduce] applies one event to a [State]
// and returns the [Command] values the event implies (fetches to start,
// follow-up events to apply). [Loop] owns the single live State, applies
// events one at a time in arrival order, and hands commands to a
// [Dispatcher]. Nothing outside the loop touches the live State; readers get
// immutable copies through [Loop.Snapshot].
package state

import (
	"github.com/couchcryptid/flypad/internal/domain"
)

// SlotID names one of the two airport slots.
type SlotID int

const (
	Departure SlotID = iota
	Arrival
)

func (s SlotID) String() string {
	switch s {
	case Departure:
		return "departure"
	case Arrival:
		return "arrival"
	default:
		return "unknown"
	}
}

// Valid reports whether s names a real slot.
func (s SlotID) Valid() bool {
	return s == Departure || s == Arrival
}

// Slot is one airport column: the station being watched and the last weather
// fetched for it.
type Slot struct {
	Identifier string         `json:"identifier"`
	Weather    domain.Weather `json:"weather"`
	// Metar is the display copy of Weather.Metar(); only a successful fetch
	// replaces it.
	Metar string `json:"metar"`
	Notes string `json:"notes"`
}

// State is the whole application state. The zero value is the startup state.
type State struct {
	UserID     string             `json:"user_id"`
	Departure  Slot               `json:"departure"`
	Arrival    Slot               `json:"arrival"`
	FlightPlan *domain.FlightPlan `json:"flight_plan,omitempty"`
	// Route is the navigation-system route string of the last plan.
	Route string `json:"route"`
}

// Slot returns a copy of the named slot. Unknown ids return the zero slot.
func (s State) Slot(id SlotID) Slot {
	if p := s.slot(id); p != nil {
		return *p
	}
	return Slot{}
}

func (s *State) slot(id SlotID) *Slot {
	switch id {
	case Departure:
		return &s.Departure
	case Arrival:
		return &s.Arrival
	default:
		return nil
	}
}
