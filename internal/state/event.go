package state

import "github.com/couchcryptid/flypad/internal/domain"

// Event is an immutable input to the reducer: a user action or the outcome of
// an asynchronous operation. The set is closed; see the types below.
type Event interface {
	// Name labels the event in logs and metrics.
	Name() string
	isEvent()
}

// EditIdentifier replaces a slot's station identifier. Weather is untouched.
type EditIdentifier struct {
	Slot       SlotID
	Identifier string
}

// EditNotes replaces a slot's free-text notes.
type EditNotes struct {
	Slot SlotID
	Text string
}

// RefreshWeather requests fresh weather for both slots.
type RefreshWeather struct{}

// WeatherFetched carries the outcome of one weather fetch. Err is non-nil when
// the fetch produced no record.
type WeatherFetched struct {
	Slot    SlotID
	Station string
	Weather domain.Weather
	Err     error
}

// FetchFlightPlan requests the latest plan for the current user.
type FetchFlightPlan struct{}

// FlightPlanFetched carries the outcome of one flight-plan fetch.
type FlightPlanFetched struct {
	Plan domain.FlightPlan
	Err  error
}

// LoadUserID asks for the persisted user identifier.
type LoadUserID struct{}

// UserIDLoaded carries the persisted identifier; OK is false when nothing was
// saved.
type UserIDLoaded struct {
	UserID string
	OK     bool
}

// SetUserID replaces the user identifier.
type SetUserID struct {
	UserID string
}

// SaveUserID asks for the current identifier to be persisted.
type SaveUserID struct{}

// UserIDSaved carries the outcome of a save.
type UserIDSaved struct {
	Err error
}

func (EditIdentifier) Name() string    { return "edit_identifier" }
func (EditNotes) Name() string         { return "edit_notes" }
func (RefreshWeather) Name() string    { return "refresh_weather" }
func (WeatherFetched) Name() string    { return "weather_fetched" }
func (FetchFlightPlan) Name() string   { return "fetch_flight_plan" }
func (FlightPlanFetched) Name() string { return "flight_plan_fetched" }
func (LoadUserID) Name() string        { return "load_user_id" }
func (UserIDLoaded) Name() string      { return "user_id_loaded" }
func (SetUserID) Name() string         { return "set_user_id" }
func (SaveUserID) Name() string        { return "save_user_id" }
func (UserIDSaved) Name() string       { return "user_id_saved" }

func (EditIdentifier) isEvent()    {}
func (EditNotes) isEvent()         {}
func (RefreshWeather) isEvent()    {}
func (WeatherFetched) isEvent()    {}
func (FetchFlightPlan) isEvent()   {}
func (FlightPlanFetched) isEvent() {}
func (LoadUserID) isEvent()        {}
func (UserIDLoaded) isEvent()      {}
func (SetUserID) isEvent()         {}
func (SaveUserID) isEvent()        {}
func (UserIDSaved) isEvent()       {}
