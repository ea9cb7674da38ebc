package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// Weather is one station observation. The zero value is the all-defaults
// record shown before any fetch. Fields are unexported so a record cannot be
// changed after construction; a newer fetch replaces it wholesale.
type Weather struct {
	station       string
	temperature   float64
	dewPoint      float64
	windDirection float64
	windSpeed     float64
	windGust      float64
	hasGust       bool
	visibility    string
	altimeter     float64
	metar         string
	taf           string
	hasTAF        bool
	fetchedAt     time.Time
}

// weatherWire mirrors one element of the METAR endpoint's array. Members are
// kept raw so a mistyped field cannot fail the whole element.
type weatherWire struct {
	Temp   json.RawMessage `json:"temp"`
	Dewp   json.RawMessage `json:"dewp"`
	Wdir   json.RawMessage `json:"wdir"`
	Wspd   json.RawMessage `json:"wspd"`
	Wgst   json.RawMessage `json:"wgst"`
	Visib  json.RawMessage `json:"visib"`
	Altim  json.RawMessage `json:"altim"`
	RawOb  json.RawMessage `json:"rawOb"`
	RawTaf json.RawMessage `json:"rawTaf"`
}

// DecodeWeather parses a METAR endpoint body and returns the first
// observation. An empty array yields ErrEmpty; anything that is not an array
// of objects yields ErrDecode.
func DecodeWeather(station string, body []byte) (Weather, error) {
	op := "decode weather " + station

	var elems []weatherWire
	if err := json.Unmarshal(body, &elems); err != nil {
		return Weather{}, DecodeError(op, err)
	}
	if elems == nil {
		return Weather{}, DecodeError(op, errors.New("body is null"))
	}
	if len(elems) == 0 {
		return Weather{}, EmptyError(op)
	}

	return newWeather(station, elems[0]), nil
}

func newWeather(station string, w weatherWire) Weather {
	num := func(raw json.RawMessage) float64 {
		n, _ := Measurement(Classify(raw))
		return n
	}

	gust, hasGust := Measurement(Classify(w.Wgst))
	visibility, _ := Visibility(Classify(w.Visib))
	taf, hasTAF := OptionalText(Classify(w.RawTaf))
	metar, _ := OptionalText(Classify(w.RawOb))

	return Weather{
		station:       station,
		temperature:   num(w.Temp),
		dewPoint:      num(w.Dewp),
		windDirection: num(w.Wdir),
		windSpeed:     num(w.Wspd),
		windGust:      gust,
		hasGust:       hasGust,
		visibility:    visibility,
		altimeter:     num(w.Altim),
		metar:         metar,
		taf:           taf,
		hasTAF:        hasTAF,
		fetchedAt:     fetchedNow(),
	}
}

// Station is the identifier the record was requested for.
func (w Weather) Station() string { return w.station }

// Temperature in °C.
func (w Weather) Temperature() float64 { return w.temperature }

// DewPoint in °C.
func (w Weather) DewPoint() float64 { return w.dewPoint }

// WindDirection in degrees true. Variable wind reads as 0.
func (w Weather) WindDirection() float64 { return w.windDirection }

// WindSpeed in knots.
func (w Weather) WindSpeed() float64 { return w.windSpeed }

// WindGust in knots; ok is false when no gust was reported.
func (w Weather) WindGust() (gust float64, ok bool) { return w.windGust, w.hasGust }

// Visibility is display text, e.g. "10+" or "6". Empty when not reported.
func (w Weather) Visibility() string { return w.visibility }

// Altimeter is the QNH setting.
func (w Weather) Altimeter() float64 { return w.altimeter }

// Metar is the raw observation, verbatim.
func (w Weather) Metar() string { return w.metar }

// TAF is the raw forecast; ok is false when none was returned.
func (w Weather) TAF() (taf string, ok bool) { return w.taf, w.hasTAF }

// FetchedAt is when the record was built. Zero for the default record.
func (w Weather) FetchedAt() time.Time { return w.fetchedAt }

// IsZero reports whether w is the all-defaults record.
func (w Weather) IsZero() bool { return w == Weather{} }

// Equal reports whether two records carry the same observation.
func (w Weather) Equal(o Weather) bool { return w == o }

type weatherJSON struct {
	Station       string    `json:"station"`
	Temperature   float64   `json:"temperature"`
	DewPoint      float64   `json:"dew_point"`
	WindDirection float64   `json:"wind_direction"`
	WindSpeed     float64   `json:"wind_speed"`
	WindGust      *float64  `json:"wind_gust,omitempty"`
	Visibility    string    `json:"visibility"`
	Altimeter     float64   `json:"altimeter"`
	Metar         string    `json:"metar"`
	TAF           *string   `json:"taf,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// MarshalJSON renders the normalized record for snapshots and publishing.
func (w Weather) MarshalJSON() ([]byte, error) {
	out := weatherJSON{
		Station:       w.station,
		Temperature:   w.temperature,
		DewPoint:      w.dewPoint,
		WindDirection: w.windDirection,
		WindSpeed:     w.windSpeed,
		Visibility:    w.visibility,
		Altimeter:     w.altimeter,
		Metar:         w.metar,
		FetchedAt:     w.fetchedAt,
	}
	if w.hasGust {
		gust := w.windGust
		out.WindGust = &gust
	}
	if w.hasTAF {
		taf := w.taf
		out.TAF = &taf
	}
	return json.Marshal(out)
}
