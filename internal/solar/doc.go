// Package solar computes the apparent position of the sun and the daily
// solar events (sunrise, solar noon, sunset) for a fixed observation site.
//
// # Method
//
// The computation follows the NOAA Global Monitoring Division solar
// calculator (https://gml.noaa.gov/grad/solcalc/calcdetails.html): a fixed
// chain of closed-form polynomial and trigonometric approximations driven by
// the Julian century number. Results are accurate to roughly a minute of time
// and a tenth of a degree for the years 1901–2099 and latitudes within ±72°.
//
// # Conventions
//
//	Latitude:   decimal degrees, positive north.
//	Longitude:  decimal degrees, positive east, negative west.
//	Time zone:  integer hours offset from UTC, negative west (PST = -8).
//	Timestamps: seconds since 1970-01-01T00:00:00.
//	Angles:     degrees in every exported field; conversion to radians
//	            happens only at trig call sites.
//	Azimuth:    degrees clockwise from north, [0, 360).
//
// Angle normalization uses floored division (x - 360*floor(x/360)) rather
// than truncating remainder, so negative intermediate values wrap upward.
//
// # Polar day and night
//
// Above roughly ±66° latitude the sun may not cross the horizon on a given
// day. The hour angle at sunrise is then the arccosine of a value outside
// [-1, 1], and it, sunrise, sunset, and day length all come out NaN. That is
// the expected steady-state signal for "no sunrise today", not an error:
// [Compute] never fails, and solar noon, elevation, and azimuth stay finite.
// Callers that need a hard boundary should use [Position.SunriseTime] and
// [Position.SunsetTime], which report existence explicitly.
//
// [Compute] is a pure function: it derives every field from its two arguments
// on each call, holds no state, and is safe for concurrent use.
package solar
