package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Airport describes the origin or destination of a plan. Fields that are
// missing or not strings read as "".
type Airport struct {
	ICAO            string `json:"icao_code"`
	IATA            string `json:"iata_code"`
	Name            string `json:"name"`
	PlannedRunway   string `json:"plan_rwy"`
	TransitionAlt   string `json:"trans_alt"`
	TransitionLevel string `json:"trans_level"`
}

// UnmarshalJSON decodes an airport object member by member.
func (a *Airport) UnmarshalJSON(data []byte) error {
	var f fieldSet
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	text := func(key string) string { return AirportText(f.get(key)) }

	*a = Airport{
		ICAO:            text("icao_code"),
		IATA:            text("iata_code"),
		Name:            text("name"),
		PlannedRunway:   text("plan_rwy"),
		TransitionAlt:   text("trans_alt"),
		TransitionLevel: text("trans_level"),
	}
	return nil
}

// Overview is the "general" section of a plan. Fields that are missing or not
// strings read as Placeholder.
type Overview struct {
	AirlineICAO     string `json:"icao_airline"`
	FlightNumber    string `json:"flight_number"`
	CostIndex       string `json:"costindex"`
	RouteDistance   string `json:"route_distance"`
	AirDistance     string `json:"air_distance"`
	StepClimb       string `json:"stepclimb_string"`
	InitialAltitude string `json:"initial_altitude"`
	RouteIFPS       string `json:"route_ifps"`
	RouteNavigraph  string `json:"route_navigraph"`
	SIDIdent        string `json:"sid_ident"`
	SIDTransition   string `json:"sid_trans"`
	STARIdent       string `json:"star_ident"`
	STARTransition  string `json:"star_trans"`
}

// UnmarshalJSON decodes the general section member by member so one
// malformed field cannot abort the rest.
func (o *Overview) UnmarshalJSON(data []byte) error {
	var f fieldSet
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	text := func(key string) string { return PlanText(f.get(key)) }

	*o = Overview{
		AirlineICAO:     text("icao_airline"),
		FlightNumber:    text("flight_number"),
		CostIndex:       text("costindex"),
		RouteDistance:   text("route_distance"),
		AirDistance:     text("air_distance"),
		StepClimb:       text("stepclimb_string"),
		InitialAltitude: text("initial_altitude"),
		RouteIFPS:       text("route_ifps"),
		RouteNavigraph:  text("route_navigraph"),
		SIDIdent:        text("sid_ident"),
		SIDTransition:   text("sid_trans"),
		STARIdent:       text("star_ident"),
		STARTransition:  text("star_trans"),
	}
	return nil
}

// Fuel is the fuel summary of a plan, in the plan's weight unit. Fields that
// are missing or not strings read as Placeholder.
type Fuel struct {
	Taxi          string `json:"taxi"`
	EnrouteBurn   string `json:"enroute_burn"`
	Contingency   string `json:"contingency"`
	AlternateBurn string `json:"alternate_burn"`
	Reserve       string `json:"reserve"`
	ETOPS         string `json:"etops"`
	Extra         string `json:"extra"`
	ExtraRequired string `json:"extra_required"`
	ExtraOptional string `json:"extra_optional"`
	MinTakeoff    string `json:"min_takeoff"`
	PlanTakeoff   string `json:"plan_takeoff"`
	PlanRamp      string `json:"plan_ramp"`
	PlanLanding   string `json:"plan_landing"`
	AvgFuelFlow   string `json:"avg_fuel_flow"`
	MaxTanks      string `json:"max_tanks"`
}

// UnmarshalJSON decodes the fuel section member by member.
func (fu *Fuel) UnmarshalJSON(data []byte) error {
	var f fieldSet
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	text := func(key string) string { return PlanText(f.get(key)) }

	*fu = Fuel{
		Taxi:          text("taxi"),
		EnrouteBurn:   text("enroute_burn"),
		Contingency:   text("contingency"),
		AlternateBurn: text("alternate_burn"),
		Reserve:       text("reserve"),
		ETOPS:         text("etops"),
		Extra:         text("extra"),
		ExtraRequired: text("extra_required"),
		ExtraOptional: text("extra_optional"),
		MinTakeoff:    text("min_takeoff"),
		PlanTakeoff:   text("plan_takeoff"),
		PlanRamp:      text("plan_ramp"),
		PlanLanding:   text("plan_landing"),
		AvgFuelFlow:   text("avg_fuel_flow"),
		MaxTanks:      text("max_tanks"),
	}
	return nil
}

// FlightPlan is one dispatched plan. It is an atomic snapshot: consumers read
// it, they never modify it.
type FlightPlan struct {
	UserID      string    `json:"user_id"`
	Origin      Airport   `json:"origin"`
	Destination Airport   `json:"destination"`
	Overview    Overview  `json:"general"`
	Fuel        Fuel      `json:"fuel"`
	FetchedAt   time.Time `json:"fetched_at"`
}

type flightPlanWire struct {
	Origin      *Airport  `json:"origin"`
	Destination *Airport  `json:"destination"`
	General     *Overview `json:"general"`
	Fuel        *Fuel     `json:"fuel"`
}

// DecodeFlightPlan parses a fetcher body. The four sections must be present
// objects; fields inside them are never fatal.
func DecodeFlightPlan(userID string, body []byte) (FlightPlan, error) {
	op := "decode flight plan " + userID

	var w flightPlanWire
	if err := json.Unmarshal(body, &w); err != nil {
		return FlightPlan{}, DecodeError(op, err)
	}

	var missing []string
	if w.Origin == nil {
		missing = append(missing, "origin")
	}
	if w.Destination == nil {
		missing = append(missing, "destination")
	}
	if w.General == nil {
		missing = append(missing, "general")
	}
	if w.Fuel == nil {
		missing = append(missing, "fuel")
	}
	if len(missing) > 0 {
		return FlightPlan{}, DecodeError(op, fmt.Errorf("missing sections: %s", strings.Join(missing, ", ")))
	}

	return FlightPlan{
		UserID:      userID,
		Origin:      *w.Origin,
		Destination: *w.Destination,
		Overview:    *w.General,
		Fuel:        *w.Fuel,
		FetchedAt:   fetchedNow(),
	}, nil
}
