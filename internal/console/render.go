package console

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/flypad/internal/state"
)

// Render formats a snapshot as plain text.
func Render(s state.State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "user: %s\n", orDash(s.UserID))
	renderSlot(&b, "DEP", s.Departure)
	renderSlot(&b, "ARR", s.Arrival)

	if p := s.FlightPlan; p != nil {
		fmt.Fprintf(&b, "plan: %s%s %s -> %s  CI %s  FL %s\n",
			p.Overview.AirlineICAO, p.Overview.FlightNumber,
			p.Origin.ICAO, p.Destination.ICAO,
			p.Overview.CostIndex, p.Overview.InitialAltitude)
		fmt.Fprintf(&b, "  fuel: taxi %s  trip %s  reserve %s  takeoff %s  ramp %s\n",
			p.Fuel.Taxi, p.Fuel.EnrouteBurn, p.Fuel.Reserve, p.Fuel.PlanTakeoff, p.Fuel.PlanRamp)
	}
	fmt.Fprintf(&b, "route: %s\n", orDash(s.Route))
	return b.String()
}

func renderSlot(b *strings.Builder, label string, slot state.Slot) {
	fmt.Fprintf(b, "%s %s\n", label, orDash(slot.Identifier))

	w := slot.Weather
	if !w.IsZero() {
		wind := fmt.Sprintf("%03.0f/%.0fkt", w.WindDirection(), w.WindSpeed())
		if gust, ok := w.WindGust(); ok {
			wind += fmt.Sprintf(" G%.0f", gust)
		}
		fmt.Fprintf(b, "  temp %.1f  dew %.1f  wind %s  vis %s  altim %.2f\n",
			w.Temperature(), w.DewPoint(), wind, orDash(w.Visibility()), w.Altimeter())
	}
	fmt.Fprintf(b, "  metar: %s\n", orDash(slot.Metar))
	if taf, ok := w.TAF(); ok {
		fmt.Fprintf(b, "  taf: %s\n", taf)
	}
	if slot.Notes != "" {
		fmt.Fprintf(b, "  notes: %s\n", slot.Notes)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
