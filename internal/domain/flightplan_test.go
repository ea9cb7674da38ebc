package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFlightPlanBody = `{
	"origin": {"icao_code":"KJFK","iata_code":"JFK","name":"John F Kennedy Intl","plan_rwy":"31L","trans_alt":"18000","trans_level":"18000"},
	"destination": {"icao_code":"EGLL","iata_code":"LHR","name":"London Heathrow","plan_rwy":"27R","trans_alt":"6000","trans_level":"7000"},
	"general": {
		"icao_airline":"BAW","flight_number":"114","costindex":{},"route_distance":"3012","air_distance":"2890",
		"stepclimb_string":"KJFK/0340","initial_altitude":"34000",
		"route_ifps":"N0488F340 HAPIE3 HAPIE DCT YAHOO","route_navigraph":"HAPIE3 HAPIE DCT YAHOO DCT DOVEY",
		"sid_ident":"HAPIE3","sid_trans":"HAPIE","star_ident":"OCK1H","star_trans":"OCK"
	},
	"fuel": {
		"taxi":"400","enroute_burn":"38210","contingency":"1911","alternate_burn":"2810","reserve":"2330",
		"etops":"0","extra":"0","extra_required":"0","extra_optional":"0","min_takeoff":"45261",
		"plan_takeoff":"45261","plan_ramp":"45661","plan_landing":"7051","avg_fuel_flow":"5640","max_tanks":"93000"
	}
}`

func TestDecodeFlightPlan(t *testing.T) {
	plan, err := DecodeFlightPlan("791411", []byte(testFlightPlanBody))
	require.NoError(t, err)

	assert.Equal(t, "791411", plan.UserID)
	assert.Equal(t, Airport{
		ICAO: "KJFK", IATA: "JFK", Name: "John F Kennedy Intl",
		PlannedRunway: "31L", TransitionAlt: "18000", TransitionLevel: "18000",
	}, plan.Origin)
	assert.Equal(t, "EGLL", plan.Destination.ICAO)
	assert.Equal(t, "7000", plan.Destination.TransitionLevel)

	assert.Equal(t, Placeholder, plan.Overview.CostIndex)
	assert.Equal(t, "BAW", plan.Overview.AirlineICAO)
	assert.Equal(t, "114", plan.Overview.FlightNumber)
	assert.Equal(t, "3012", plan.Overview.RouteDistance)
	assert.Equal(t, "2890", plan.Overview.AirDistance)
	assert.Equal(t, "KJFK/0340", plan.Overview.StepClimb)
	assert.Equal(t, "34000", plan.Overview.InitialAltitude)
	assert.Equal(t, "N0488F340 HAPIE3 HAPIE DCT YAHOO", plan.Overview.RouteIFPS)
	assert.Equal(t, "HAPIE3 HAPIE DCT YAHOO DCT DOVEY", plan.Overview.RouteNavigraph)
	assert.Equal(t, "HAPIE3", plan.Overview.SIDIdent)
	assert.Equal(t, "HAPIE", plan.Overview.SIDTransition)
	assert.Equal(t, "OCK1H", plan.Overview.STARIdent)
	assert.Equal(t, "OCK", plan.Overview.STARTransition)

	assert.Equal(t, Fuel{
		Taxi: "400", EnrouteBurn: "38210", Contingency: "1911", AlternateBurn: "2810", Reserve: "2330",
		ETOPS: "0", Extra: "0", ExtraRequired: "0", ExtraOptional: "0", MinTakeoff: "45261",
		PlanTakeoff: "45261", PlanRamp: "45661", PlanLanding: "7051", AvgFuelFlow: "5640", MaxTanks: "93000",
	}, plan.Fuel)
}

func TestDecodeFlightPlan_FieldDefaults(t *testing.T) {
	body := `{
		"origin": {"icao_code":"KJFK","trans_alt":18000,"name":{}},
		"destination": {},
		"general": {"icao_airline":"BAW","flight_number":114,"sid_ident":null,"route_navigraph":["A","B"]},
		"fuel": {"taxi":{},"reserve":"2330"}
	}`

	plan, err := DecodeFlightPlan("1", []byte(body))
	require.NoError(t, err)

	// Airport members fall back to empty text.
	assert.Equal(t, "KJFK", plan.Origin.ICAO)
	assert.Empty(t, plan.Origin.TransitionAlt)
	assert.Empty(t, plan.Origin.Name)
	assert.Equal(t, Airport{}, plan.Destination)

	// Overview and fuel members fall back to the placeholder.
	assert.Equal(t, "BAW", plan.Overview.AirlineICAO)
	assert.Equal(t, Placeholder, plan.Overview.FlightNumber)
	assert.Equal(t, Placeholder, plan.Overview.SIDIdent)
	assert.Equal(t, Placeholder, plan.Overview.RouteNavigraph)
	assert.Equal(t, Placeholder, plan.Overview.CostIndex)
	assert.Equal(t, Placeholder, plan.Fuel.Taxi)
	assert.Equal(t, "2330", plan.Fuel.Reserve)
	assert.Equal(t, Placeholder, plan.Fuel.MaxTanks)
}

func TestDecodeFlightPlan_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"not json", `Error: unknown user`, "invalid character"},
		{"array", `[]`, "cannot unmarshal"},
		{"missing origin and destination", `{"general":{},"fuel":{}}`, "origin, destination"},
		{"fetch error envelope", `{"fetch":{"status":"Error: Unknown UserID"}}`, "missing sections"},
		{"origin is a string", `{"origin":"KJFK","destination":{},"general":{},"fuel":{}}`, "cannot unmarshal"},
		{"null section", `{"origin":{},"destination":{},"general":null,"fuel":{}}`, "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFlightPlan("1", []byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFlightPlan_JSONRoundTrip(t *testing.T) {
	plan, err := DecodeFlightPlan("791411", []byte(testFlightPlanBody))
	require.NoError(t, err)

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded FlightPlan
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, plan.Overview, decoded.Overview)
	assert.Equal(t, plan.Fuel, decoded.Fuel)
	assert.Equal(t, plan.Origin, decoded.Origin)
}
