package solar

import (
	"math"
	"time"
)

// Position is the full set of solar quantities derived from one timestamp and
// one Site. Every field is consistent with that single instant; a fresh value
// is produced per Compute call, so results from different calls never alias.
//
// Fields that depend on the hour angle at sunrise (Sunrise, Sunset,
// SunDuration) are NaN on polar days and nights; the corresponding Unix
// fields are zero then.
type Position struct {
	// Time bookkeeping.
	TimeFracDay   float64 // fraction of the day past midnight, [0, 1)
	UnixDays      int64   // whole days since 1970-01-01
	JulianDay     float64 // Julian day number, UTC-referenced
	JulianCentury float64 // Julian centuries since J2000.0

	// Orbital elements and corrections.
	GeomMeanLongSun  float64 // geometric mean longitude of the sun, degrees [0, 360)
	GeomMeanAnomSun  float64 // geometric mean anomaly, degrees
	EccentEarthOrbit float64 // orbital eccentricity, dimensionless
	SunEqOfCenter    float64 // equation of center, degrees
	SunTrueLong      float64 // true longitude, degrees
	SunTrueAnom      float64 // true anomaly, degrees
	SunRadVector     float64 // earth-sun distance, AU
	SunAppLong       float64 // apparent longitude, degrees

	// Equatorial coordinates.
	MeanObliqEcliptic float64 // mean obliquity of the ecliptic, degrees
	ObliqCorrection   float64 // nutation-corrected obliquity, degrees
	SunRightAscension float64 // degrees
	SunDeclination    float64 // degrees

	// Timekeeping quantities.
	VarY             float64 // tan²(obliquity/2), equation-of-time intermediate
	EquationOfTime   float64 // apparent minus mean solar time, minutes
	HourAngleSunrise float64 // degrees; NaN when the sun does not cross the horizon

	// Daily events. SolarNoonFrac is a fraction of the UTC day; the Days and
	// second-valued fields are local (time-zone corrected) epoch quantities.
	SolarNoonFrac float64 // fraction of day, UTC
	SolarNoonDays float64 // days since epoch, local
	SolarNoonUnix int64   // epoch seconds, truncated
	Sunrise       float64 // epoch seconds, fractional; NaN on polar days/nights
	SunriseUnix   int64   // epoch seconds, truncated; 0 when Sunrise is NaN
	Sunset        float64 // epoch seconds, fractional; NaN on polar days/nights
	SunsetUnix    int64   // epoch seconds, truncated; 0 when Sunset is NaN
	SunDuration   float64 // minutes of sunlight; NaN on polar days/nights

	// Instantaneous sky position.
	TrueSolarTime      float64 // minutes, [0, 1440)
	HourAngle          float64 // degrees east/west of the local meridian
	ZenithAngle        float64 // degrees from straight up
	ElevationAngle     float64 // degrees above the horizon, 90 - zenith
	Refraction         float64 // atmospheric refraction correction, degrees
	ElevationCorrected float64 // refraction-corrected elevation, degrees
	Azimuth            float64 // degrees clockwise from north, [0, 360)
}

// SolarNoonTime returns solar noon as a UTC instant. Solar noon exists on
// every day at every latitude.
func (p Position) SolarNoonTime() time.Time {
	return time.Unix(p.SolarNoonUnix, 0).UTC()
}

// SunriseTime returns the sunrise instant for the day of the computation.
// The second return is false on polar days and nights, when no sunrise
// occurs.
func (p Position) SunriseTime() (time.Time, bool) {
	if math.IsNaN(p.Sunrise) {
		return time.Time{}, false
	}
	return time.Unix(p.SunriseUnix, 0).UTC(), true
}

// SunsetTime returns the sunset instant for the day of the computation.
// The second return is false on polar days and nights, when no sunset
// occurs.
func (p Position) SunsetTime() (time.Time, bool) {
	if math.IsNaN(p.Sunset) {
		return time.Time{}, false
	}
	return time.Unix(p.SunsetUnix, 0).UTC(), true
}

// SunlightDuration returns the day length as a Duration. The second return
// is false when the sun does not cross the horizon that day.
func (p Position) SunlightDuration() (time.Duration, bool) {
	if math.IsNaN(p.SunDuration) {
		return 0, false
	}
	return time.Duration(p.SunDuration * float64(time.Minute)), true
}
