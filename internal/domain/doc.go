// Package domain models the two upstream feeds consumed by the flight deck pad:
// station weather observations and dispatched flight plans.
//
// # Data Sources
//
// Weather comes from the aviationweather.gov data API. The METAR endpoint
// always answers with a JSON array because it accepts a comma-separated list
// of stations; a single-station query yields a one-element array, and an
// unknown station yields an empty array rather than an HTTP error.
//
// Flight plans come from the SimBrief fetcher endpoint in JSON mode. The JSON
// form is a mechanical conversion of the XML document, so elements that are
// empty in XML arrive as an empty JSON object ({}) instead of an empty string.
//
// # Wire Conventions
//
// Weather (one array element):
//
//	temp, dewp      °C, number
//	wdir            degrees, number; "VRB" for variable wind
//	wspd, wgst      knots, number; wgst omitted when no gusts are reported
//	visib           statute miles, number (6) or string ("10+", "1/2")
//	altim           hPa, number
//	rawOb, rawTaf   verbatim report text
//
// Flight plan (single object):
//
//	origin, destination   airport objects; absent fields read as ""
//	general, fuel         string fields; non-string values read as "No Value"
//
// # Coercion Rules
//
// Every field is decoded through a classification of its wire shape (see
// [Classify]) and one of three pure coercions:
//
//	[PlanText]     string passes through, anything else is [Placeholder]
//	[Visibility]   string passes through, number becomes canonical decimal
//	               text, anything else is absent
//	[Measurement]  number (or numeric string) is kept, anything else is absent
//
// None of the coercions can fail. Only transport errors, a body that is not
// the expected top-level shape, or an empty weather array surface as a
// [FetchError].
package domain
