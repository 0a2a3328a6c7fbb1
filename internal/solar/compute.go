package solar

import (
	"math"
	"time"
)

// julianUnixEpoch is the Julian day number of 1970-01-01T00:00:00 UTC.
const julianUnixEpoch = 2440587.5

// horizonZenith is the zenith angle defining sunrise/sunset: 90° plus
// standard corrections for atmospheric refraction and the solar radius.
const horizonZenith = 90.833

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// floorMod reduces x into [0, m) using floored division. Truncating
// remainder (math.Mod) would leave negative inputs negative, which breaks
// the angle and clock-time normalizations below.
func floorMod(x, m float64) float64 {
	return x - m*math.Floor(x/m)
}

// unixOrZero truncates fractional epoch seconds to a whole-second timestamp,
// mapping NaN (no event that day) to zero.
func unixOrZero(secs float64) int64 {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0
	}
	return int64(secs)
}

// Compute derives the complete Position for the timestamp t (seconds since
// the Unix epoch, read from the site-local clock) at the given site.
//
// The steps form a fixed dependency chain: each quantity may feed any later
// one, so the order below is load-bearing. All coefficients follow the NOAA
// solar calculator spreadsheet. Compute is pure and never fails; domain
// errors in the inverse trig surface as NaN in the affected fields and
// everything downstream of them.
func Compute(t int64, site Site) Position {
	var p Position

	// Fraction of the day past midnight: 0.5 at noon.
	hour, minute, second := time.Unix(t, 0).UTC().Clock()
	p.TimeFracDay = (float64(hour) + float64(minute)/60 + float64(second)/3600) / 24

	// Whole days since the Unix epoch, truncating toward it.
	p.UnixDays = t / 86400

	// Julian day number. The tzOffset subtraction re-references the
	// site-local clock reading to UTC.
	p.JulianDay = julianUnixEpoch + float64(p.UnixDays) + p.TimeFracDay -
		float64(site.TZOffsetHours)/24

	// Julian centuries since the J2000.0 epoch, the polynomial variable for
	// every orbital-element formula below.
	p.JulianCentury = (p.JulianDay - 2451545) / 36525
	jc := p.JulianCentury

	// Geometric mean longitude of the sun, normalized to [0, 360).
	p.GeomMeanLongSun = floorMod(280.46646+jc*(36000.76983+jc*0.0003032), 360)

	// Geometric mean anomaly and orbital eccentricity.
	p.GeomMeanAnomSun = 357.52911 + jc*(35999.05029-0.0001537*jc)
	p.EccentEarthOrbit = 0.016708634 - jc*(0.000042037+0.0000001267*jc)

	// Equation of center: three sine terms at multiples of the mean anomaly.
	p.SunEqOfCenter = math.Sin(degToRad(p.GeomMeanAnomSun))*(1.914602-jc*(0.004817+0.000014*jc)) +
		math.Sin(degToRad(2*p.GeomMeanAnomSun))*(0.019993-0.000101*jc) +
		math.Sin(degToRad(3*p.GeomMeanAnomSun))*0.000289

	p.SunTrueLong = p.GeomMeanLongSun + p.SunEqOfCenter
	p.SunTrueAnom = p.GeomMeanAnomSun + p.SunEqOfCenter

	// Earth-sun distance in AU.
	p.SunRadVector = (1.000001018 * (1 - p.EccentEarthOrbit*p.EccentEarthOrbit)) /
		(1 + p.EccentEarthOrbit*math.Cos(degToRad(p.SunTrueAnom)))

	// Apparent longitude: true longitude corrected for nutation along the
	// lunar node at 125.04° - 1934.136°/century.
	p.SunAppLong = p.SunTrueLong - 0.00569 -
		0.00478*math.Sin(degToRad(125.04-1934.136*jc))

	// Mean obliquity of the ecliptic in nested degrees-minutes-seconds form,
	// then the nutation correction on the same lunar-node argument.
	p.MeanObliqEcliptic = 23 + (26+(21.448-jc*(46.815+jc*(0.00059-jc*0.001813)))/60)/60
	p.ObliqCorrection = p.MeanObliqEcliptic + 0.00256*math.Cos(degToRad(125.04-1934.136*jc))

	// Equatorial coordinates.
	p.SunRightAscension = radToDeg(math.Atan2(
		math.Cos(degToRad(p.ObliqCorrection))*math.Sin(degToRad(p.SunAppLong)),
		math.Cos(degToRad(p.SunAppLong)),
	))
	p.SunDeclination = radToDeg(math.Asin(
		math.Sin(degToRad(p.ObliqCorrection)) * math.Sin(degToRad(p.SunAppLong)),
	))

	// Equation of time, minutes. VarY = tan²(obliquity/2).
	halfObliq := math.Tan(degToRad(p.ObliqCorrection / 2))
	p.VarY = halfObliq * halfObliq
	p.EquationOfTime = 4 * radToDeg(
		p.VarY*math.Sin(2*degToRad(p.GeomMeanLongSun))-
			2*p.EccentEarthOrbit*math.Sin(degToRad(p.GeomMeanAnomSun))+
			4*p.EccentEarthOrbit*p.VarY*math.Sin(degToRad(p.GeomMeanAnomSun))*
				math.Cos(2*degToRad(p.GeomMeanLongSun))-
			0.5*p.VarY*p.VarY*math.Sin(4*degToRad(p.GeomMeanLongSun))-
			1.25*p.EccentEarthOrbit*p.EccentEarthOrbit*math.Sin(2*degToRad(p.GeomMeanAnomSun)))

	lat := degToRad(site.Latitude)
	dec := degToRad(p.SunDeclination)

	// Hour angle at sunrise. The acos argument leaves [-1, 1] near the poles
	// around the solstices; the resulting NaN flows into sunrise, sunset, and
	// day length, which is the intended no-event signal.
	p.HourAngleSunrise = radToDeg(math.Acos(
		math.Cos(degToRad(horizonZenith))/(math.Cos(lat)*math.Cos(dec)) -
			math.Tan(lat)*math.Tan(dec),
	))

	// Solar noon as a fraction of the UTC day, then as a site-local epoch
	// timestamp. 4 minutes per degree of longitude.
	p.SolarNoonFrac = (720 - 4*site.Longitude - p.EquationOfTime) / 1440
	p.SolarNoonDays = float64(p.UnixDays) + p.SolarNoonFrac + float64(site.TZOffsetHours)/24
	p.SolarNoonUnix = unixOrZero(p.SolarNoonDays * 86400)

	// Sunrise and sunset sit HourAngleSunrise*4 minutes either side of noon.
	p.Sunrise = (float64(p.UnixDays) + p.SolarNoonFrac - p.HourAngleSunrise*4/1440 +
		float64(site.TZOffsetHours)/24) * 86400
	p.SunriseUnix = unixOrZero(p.Sunrise)
	p.Sunset = (float64(p.UnixDays) + p.SolarNoonFrac + p.HourAngleSunrise*4/1440 +
		float64(site.TZOffsetHours)/24) * 86400
	p.SunsetUnix = unixOrZero(p.Sunset)

	// Day length in minutes: 2 hour angles at 4 minutes per degree.
	p.SunDuration = 8 * p.HourAngleSunrise

	// True solar time in minutes, wrapped into [0, 1440).
	p.TrueSolarTime = floorMod(
		p.TimeFracDay*1440+p.EquationOfTime+4*site.Longitude-60*float64(site.TZOffsetHours),
		1440)

	// Hour angle: negative before local solar noon, positive after.
	if p.TrueSolarTime/4 < 0 {
		p.HourAngle = p.TrueSolarTime/4 + 180
	} else {
		p.HourAngle = p.TrueSolarTime/4 - 180
	}

	// Zenith and elevation from the spherical law of cosines.
	p.ZenithAngle = radToDeg(math.Acos(
		math.Sin(lat)*math.Sin(dec) +
			math.Cos(lat)*math.Cos(dec)*math.Cos(degToRad(p.HourAngle)),
	))
	p.ElevationAngle = 90 - p.ZenithAngle

	p.Refraction = refraction(p.ElevationAngle)
	p.ElevationCorrected = p.ElevationAngle + p.Refraction

	p.Azimuth = azimuth(lat, dec, p.ZenithAngle, p.HourAngle)

	return p
}

// refraction returns the approximate atmospheric refraction correction in
// degrees for a true elevation angle. The piecewise form and its breakpoints
// (85°, 5°, -0.575°) are the NOAA empirical fit; each branch evaluates in
// arc-seconds and the result is scaled to degrees.
func refraction(elevation float64) float64 {
	var arcsec float64
	switch {
	case elevation > 85:
		arcsec = 0
	case elevation > 5:
		tanEl := math.Tan(degToRad(elevation))
		arcsec = 58.1/tanEl - 0.07/math.Pow(tanEl, 3) + 0.000086/math.Pow(tanEl, 5)
	case elevation > -0.575:
		arcsec = 1735 + elevation*(-581.2+elevation*(103.4+elevation*(-12.79+elevation*0.711)))
	default:
		arcsec = -20.772 / math.Tan(degToRad(elevation))
	}
	return arcsec / 3600
}

// azimuth returns the solar azimuth in degrees clockwise from north,
// normalized to [0, 360). The hour angle's sign selects the branch: the same
// acos term measures from due south, offset by +180° in the afternoon and
// reflected off 540° in the morning. Near zenith extremes the denominator
// cos(lat)*sin(zenith) approaches zero and the result is NaN, which callers
// must expect.
func azimuth(latRad, decRad, zenithDeg, hourAngle float64) float64 {
	arc := radToDeg(math.Acos(
		(math.Sin(latRad)*math.Cos(degToRad(zenithDeg)) - math.Sin(decRad)) /
			(math.Cos(latRad) * math.Sin(degToRad(zenithDeg))),
	))
	if hourAngle > 0 {
		return floorMod(arc+180, 360)
	}
	return floorMod(540-arc, 360)
}
