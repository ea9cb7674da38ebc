package state

// Command is work the reducer asks for. Emit is handled by the loop itself;
// the rest go to a Dispatcher.
type Command interface {
	isCommand()
}

// StartWeatherFetch fetches weather for Station and reports it as a
// WeatherFetched event for Slot.
type StartWeatherFetch struct {
	Slot    SlotID
	Station string
}

// StartFlightPlanFetch fetches the plan for UserID and reports it as a
// FlightPlanFetched event.
type StartFlightPlanFetch struct {
	UserID string
}

// ReadUserID loads the persisted identifier and reports UserIDLoaded.
type ReadUserID struct{}

// WriteUserID persists UserID and reports UserIDSaved.
type WriteUserID struct {
	UserID string
}

// Emit queues a follow-up event. It is applied after the current event and
// before the next inbound one.
type Emit struct {
	Event Event
}

func (StartWeatherFetch) isCommand()    {}
func (StartFlightPlanFetch) isCommand() {}
func (ReadUserID) isCommand()           {}
func (WriteUserID) isCommand()          {}
func (Emit) isCommand()                 {}
