package state

// Reduce applies ev to s and returns the commands it implies. It never blocks,
// never panics, and leaves s valid for every event, including events that name
// an unknown slot (those are no-ops).
func Reduce(s *State, ev Event) []Command {
	switch ev := ev.(type) {
	case EditIdentifier:
		if slot := s.slot(ev.Slot); slot != nil {
			slot.Identifier = ev.Identifier
		}
		return nil

	case EditNotes:
		if slot := s.slot(ev.Slot); slot != nil {
			slot.Notes = ev.Text
		}
		return nil

	case RefreshWeather:
		return []Command{
			StartWeatherFetch{Slot: Departure, Station: s.Departure.Identifier},
			StartWeatherFetch{Slot: Arrival, Station: s.Arrival.Identifier},
		}

	case WeatherFetched:
		// A failed fetch keeps the previous record on screen.
		if ev.Err != nil {
			return nil
		}
		if slot := s.slot(ev.Slot); slot != nil {
			slot.Weather = ev.Weather
			slot.Metar = ev.Weather.Metar()
		}
		return nil

	case FetchFlightPlan:
		return []Command{StartFlightPlanFetch{UserID: s.UserID}}

	case FlightPlanFetched:
		if ev.Err != nil {
			return nil
		}
		plan := ev.Plan
		s.FlightPlan = &plan
		s.Route = plan.Overview.RouteNavigraph
		return []Command{
			Emit{Event: EditIdentifier{Slot: Departure, Identifier: plan.Origin.ICAO}},
			Emit{Event: EditIdentifier{Slot: Arrival, Identifier: plan.Destination.ICAO}},
		}

	case LoadUserID:
		return []Command{ReadUserID{}}

	case UserIDLoaded:
		if !ev.OK {
			return nil
		}
		return []Command{Emit{Event: SetUserID{UserID: ev.UserID}}}

	case SetUserID:
		s.UserID = ev.UserID
		return nil

	case SaveUserID:
		return []Command{WriteUserID{UserID: s.UserID}}

	case UserIDSaved:
		return nil
	}

	return nil
}
