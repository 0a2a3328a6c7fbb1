package solar

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Report is the serialized summary of a Position for machine consumers.
// Quantities that do not exist on a given day (sunrise, sunset, day length on
// polar days and nights) and quantities that can hit inverse-trig domain
// limits (azimuth) are pointers and null in JSON, since NaN has no JSON
// representation.
type Report struct {
	ID   string    `json:"id"`
	Site Site      `json:"site"`
	Time time.Time `json:"time"` // the instant the position describes

	ElevationDeg          float64  `json:"elevation_deg"`
	ElevationCorrectedDeg float64  `json:"elevation_corrected_deg"`
	ZenithDeg             float64  `json:"zenith_deg"`
	AzimuthDeg            *float64 `json:"azimuth_deg"`
	DeclinationDeg        float64  `json:"declination_deg"`
	RightAscensionDeg     float64  `json:"right_ascension_deg"`
	EquationOfTimeMin     float64  `json:"equation_of_time_min"`
	RadVectorAU           float64  `json:"rad_vector_au"`

	SolarNoon    time.Time  `json:"solar_noon"`
	Sunrise      *time.Time `json:"sunrise"`       // null when the sun does not rise
	Sunset       *time.Time `json:"sunset"`        // null when the sun does not set
	DayLengthMin *float64   `json:"day_length_min"` // null on polar days and nights

	ComputedAt time.Time `json:"computed_at"`
}

// Message is a keyed, headered payload ready for a broker or log sink.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// BuildReport computes the Position for t at site and summarizes it.
// ComputedAt comes from the package clock so tests can freeze it.
func BuildReport(t int64, site Site) Report {
	pos := Compute(t, site)

	r := Report{
		ID:   reportID(site, t),
		Site: site,
		Time: time.Unix(t, 0).UTC(),

		ElevationDeg:          pos.ElevationAngle,
		ElevationCorrectedDeg: pos.ElevationCorrected,
		ZenithDeg:             pos.ZenithAngle,
		AzimuthDeg:            finiteOrNil(pos.Azimuth),
		DeclinationDeg:        pos.SunDeclination,
		RightAscensionDeg:     pos.SunRightAscension,
		EquationOfTimeMin:     pos.EquationOfTime,
		RadVectorAU:           pos.SunRadVector,

		SolarNoon:    pos.SolarNoonTime(),
		DayLengthMin: finiteOrNil(pos.SunDuration),

		ComputedAt: clock.Now().UTC(),
	}

	if rise, ok := pos.SunriseTime(); ok {
		r.Sunrise = &rise
	}
	if set, ok := pos.SunsetTime(); ok {
		r.Sunset = &set
	}
	return r
}

// SerializeReport marshals a Report into a keyed message. The key is the
// deterministic report ID, so replays of the same site and timestamp land on
// the same partition and dedupe downstream.
func SerializeReport(r Report) (Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return Message{}, fmt.Errorf("serialize solar report: %w", err)
	}
	return Message{
		Key:   []byte(r.ID),
		Value: data,
		Headers: map[string]string{
			"site":        fmt.Sprintf("%.4f,%.4f", r.Site.Latitude, r.Site.Longitude),
			"computed_at": r.ComputedAt.Format(time.RFC3339),
		},
	}, nil
}

// reportID produces a deterministic ID from the site and timestamp.
// Recomputing the same instant for the same site yields the same ID, which
// keeps downstream upserts idempotent under replay.
func reportID(site Site, t int64) string {
	input := fmt.Sprintf("%.6f|%.6f|%d|%d", site.Latitude, site.Longitude, site.TZOffsetHours, t)
	hash := sha256.Sum256([]byte(input))
	return "solar-" + hex.EncodeToString(hash[:8])
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
