package solar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monterey, California — the reference site for NOAA calculator comparisons.
var monterey = NewSite(-8, 36.62, -121.904)

// montereyNoon is 2024-06-20 12:00:00 on the site-local (PST) clock,
// encoded as epoch seconds.
const montereyNoon int64 = 1718884800

func TestCompute_MontereyKnownValues(t *testing.T) {
	p := Compute(montereyNoon, monterey)

	// Intermediate chain quantities, cross-checked against the NOAA
	// solcalc spreadsheet for this instant.
	assert.InDelta(t, 0.5, p.TimeFracDay, 1e-12)
	assert.Equal(t, int64(19894), p.UnixDays)
	assert.InDelta(t, 2460482.3333333335, p.JulianDay, 1e-6)
	assert.InDelta(t, 0.2446908510152906, p.JulianCentury, 1e-12)
	assert.InDelta(t, 89.52548506197672, p.GeomMeanLongSun, 1e-8)
	assert.InDelta(t, 0.016698340344709156, p.EccentEarthOrbit, 1e-12)
	assert.InDelta(t, 0.44839413278409646, p.SunEqOfCenter, 1e-8)
	assert.InDelta(t, 1.0162306525278748, p.SunRadVector, 1e-9)
	assert.InDelta(t, 23.436109108068248, p.MeanObliqEcliptic, 1e-9)
	assert.InDelta(t, 23.438615240268774, p.ObliqCorrection, 1e-9)
	assert.InDelta(t, 89.96426518147582, p.SunRightAscension, 1e-7)
	assert.InDelta(t, 23.438611173416867, p.SunDeclination, 1e-7)
	assert.InDelta(t, -1.7799674726862096, p.EquationOfTime, 1e-7)
	assert.InDelta(t, 109.99583620334194, p.HourAngleSunrise, 1e-6)

	// Daily events. NOAA publishes 05:49 PDT sunrise, 20:29 PDT sunset,
	// and a 14h40m day for Monterey on the 2024 June solstice.
	assert.InDelta(t, 1718885363, float64(p.SolarNoonUnix), 1)
	assert.InDelta(t, 1718858964.757, p.Sunrise, 1)
	assert.InDelta(t, 1718911762.758, p.Sunset, 1)
	assert.InDelta(t, 879.9666896267355, p.SunDuration, 1e-6)

	rise, ok := p.SunriseTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 20, 4, 49, 24, 0, time.UTC), rise)

	set, ok := p.SunsetTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 20, 19, 29, 22, 0, time.UTC), set)

	dur, ok := p.SunlightDuration()
	require.True(t, ok)
	assert.InDelta(t, (14*time.Hour + 40*time.Minute).Minutes(), dur.Minutes(), 0.5)

	// Instantaneous sky position just before local solar noon.
	assert.InDelta(t, 710.6040325273138, p.TrueSolarTime, 1e-6)
	assert.InDelta(t, -2.348991868171538, p.HourAngle, 1e-8)
	assert.InDelta(t, 13.335970867649745, p.ZenithAngle, 1e-7)
	assert.InDelta(t, 76.66402913235025, p.ElevationAngle, 1e-7)
	assert.InDelta(t, 76.66785464495268, p.ElevationCorrected, 1e-7)
	assert.InDelta(t, 170.6172757335147, p.Azimuth, 1e-6)
}

func TestCompute_Deterministic(t *testing.T) {
	first := Compute(montereyNoon, monterey)
	second := Compute(montereyNoon, monterey)
	assert.Equal(t, first, second)
}

func TestCompute_EventOrderingAndDayLength(t *testing.T) {
	instants := []int64{
		montereyNoon,
		1704110400, // 2024-01-01 12:00 local
		1727784000, // 2024-10-01 12:00 local
	}
	for _, ts := range instants {
		p := Compute(ts, monterey)

		assert.LessOrEqual(t, p.Sunrise, float64(p.SolarNoonUnix)+1)
		assert.LessOrEqual(t, float64(p.SolarNoonUnix)-1, p.Sunset)

		// Sunset - sunrise spans exactly the day length.
		assert.InDelta(t, p.SunDuration*60, p.Sunset-p.Sunrise, 1e-5)
	}
}

func TestCompute_NormalizationBounds(t *testing.T) {
	sites := []Site{
		monterey,
		NewSite(0, 0, 0),
		NewSite(10, -33.87, 151.21), // Sydney
		NewSite(1, 59.91, 10.75),    // Oslo
		NewSite(-3, -22.91, -43.17), // Rio
	}
	instants := []int64{0, 86399, 1718884800, 1734782400, 946684800}

	for _, site := range sites {
		for _, ts := range instants {
			p := Compute(ts, site)

			assert.GreaterOrEqual(t, p.GeomMeanLongSun, 0.0)
			assert.Less(t, p.GeomMeanLongSun, 360.0)
			assert.GreaterOrEqual(t, p.TrueSolarTime, 0.0)
			assert.Less(t, p.TrueSolarTime, 1440.0)
			if !math.IsNaN(p.Azimuth) {
				assert.GreaterOrEqual(t, p.Azimuth, 0.0)
				assert.Less(t, p.Azimuth, 360.0)
			}
		}
	}
}

func TestCompute_ElevationZenithComplement(t *testing.T) {
	for hour := int64(0); hour < 24; hour++ {
		p := Compute(montereyNoon+hour*3600, monterey)
		assert.InDelta(t, 90, p.ElevationAngle+p.ZenithAngle, 1e-12)
	}
}

// Describing the same physical instant either as a UTC clock reading with a
// zero offset, or as a local clock reading with the matching offset, must
// place sunrise, sunset, and solar noon at the same absolute moment.
func TestCompute_TimeZoneShiftInvariance(t *testing.T) {
	const offset = -8
	shift := float64(-offset * 3600)

	local := Compute(montereyNoon, monterey)
	utc := Compute(montereyNoon+int64(shift), NewSite(0, monterey.Latitude, monterey.Longitude))

	// The underlying astronomy is identical.
	assert.InDelta(t, utc.JulianDay, local.JulianDay, 1e-9)
	assert.InDelta(t, utc.SunDeclination, local.SunDeclination, 1e-12)
	assert.InDelta(t, utc.EquationOfTime, local.EquationOfTime, 1e-12)
	assert.InDelta(t, utc.ElevationAngle, local.ElevationAngle, 1e-12)
	assert.InDelta(t, utc.Azimuth, local.Azimuth, 1e-12)

	// Event timestamps differ by exactly the encoding shift.
	assert.InDelta(t, shift, utc.Sunrise-local.Sunrise, 1e-3)
	assert.InDelta(t, shift, utc.Sunset-local.Sunset, 1e-3)
	assert.InDelta(t, shift, float64(utc.SolarNoonUnix-local.SolarNoonUnix), 1.5)
}

func TestCompute_PolarNight(t *testing.T) {
	// 75°N at the 2024 winter solstice: the sun never clears the horizon.
	p := Compute(1734782400, NewSite(0, 75, 0))

	assert.True(t, math.IsNaN(p.HourAngleSunrise))
	assert.True(t, math.IsNaN(p.Sunrise))
	assert.True(t, math.IsNaN(p.Sunset))
	assert.True(t, math.IsNaN(p.SunDuration))
	assert.Zero(t, p.SunriseUnix)
	assert.Zero(t, p.SunsetUnix)

	_, ok := p.SunriseTime()
	assert.False(t, ok)
	_, ok = p.SunsetTime()
	assert.False(t, ok)
	_, ok = p.SunlightDuration()
	assert.False(t, ok)

	// Solar noon and the instantaneous position stay finite.
	assert.Equal(t, int64(1734782299), p.SolarNoonUnix)
	assert.InDelta(t, -8.438918863884382, p.ElevationAngle, 1e-7)
	assert.InDelta(t, 180.38910384765833, p.Azimuth, 1e-6)
}

func TestCompute_PolarDay(t *testing.T) {
	// 75°N at the June solstice: the sun never sets.
	p := Compute(montereyNoon, NewSite(0, 75, 0))

	assert.True(t, math.IsNaN(p.HourAngleSunrise))
	assert.True(t, math.IsNaN(p.Sunrise))
	assert.True(t, math.IsNaN(p.Sunset))
	assert.False(t, math.IsNaN(p.ElevationAngle))
	assert.InDelta(t, 38.43766733497124, p.ElevationAngle, 1e-7)
}

// Elevation sampled hourly over one day must rise to a single maximum near
// local solar noon and fall on either side of it.
func TestCompute_ElevationSingleMaximum(t *testing.T) {
	dayStart := montereyNoon - 12*3600

	elevations := make([]float64, 24)
	for h := range elevations {
		elevations[h] = Compute(dayStart+int64(h)*3600, monterey).ElevationAngle
	}

	peak := 0
	for h, e := range elevations {
		if e > elevations[peak] {
			peak = h
		}
	}
	assert.Equal(t, 12, peak, "maximum should fall near local solar noon")

	for h := 1; h <= peak; h++ {
		assert.Greater(t, elevations[h], elevations[h-1], "hour %d should still be climbing", h)
	}
	for h := peak + 1; h < len(elevations); h++ {
		assert.Less(t, elevations[h], elevations[h-1], "hour %d should be descending", h)
	}
}

func TestRefraction(t *testing.T) {
	tests := []struct {
		name      string
		elevation float64
		expected  float64
	}{
		{"overhead", 90, 0},
		{"just above high cutoff", 85.0001, 0},
		{"high cutoff", 85, 0.00141195679860842},
		{"mid sky", 45, 0.016119468333333338},
		{"low sky", 10, 0.08812151941446983},
		{"just above horizon band", 5.0001, 0.16009023954918955},
		{"horizon band", 2, 0.24868222222222222},
		{"at horizon", 0, 0.48194444444444445},
		{"below horizon band", -0.5, 0.5703036631944445},
		{"lower cutoff", -0.575, 0.5749313897928536},
		{"below lower cutoff", -0.6, 0.5509742717373242},
		{"deep below horizon", -5, 0.06595140178693294},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, refraction(tt.elevation), 1e-12)
		})
	}
}

func TestFloorMod(t *testing.T) {
	tests := []struct {
		name     string
		x, m     float64
		expected float64
	}{
		{"negative angle wraps up", -30, 360, 330},
		{"positive overflow wraps down", 725.5, 360, 5.5},
		{"negative minutes wrap up", -0.5, 1440, 1439.5},
		{"in range unchanged", 180, 360, 180},
		{"zero", 0, 360, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, floorMod(tt.x, tt.m), 1e-12)
		})
	}
}
