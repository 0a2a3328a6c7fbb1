package solar

import "time"

// Site identifies an observation point: a geographic coordinate pair and the
// UTC offset of the clock that supplies timestamps for it. It is a plain
// value; copies are cheap and concurrent reads are safe. The package performs
// no range validation — callers own the plausibility of their coordinates,
// and inputs beyond ±72° latitude degrade accuracy (see the package doc).
type Site struct {
	TZOffsetHours int     `json:"tz_offset_hours"` // hours east of UTC, negative west (PST = -8)
	Latitude      float64 `json:"lat"`             // decimal degrees, positive north
	Longitude     float64 `json:"lon"`             // decimal degrees, positive east
}

// NewSite builds a Site from a UTC offset in hours and decimal-degree
// coordinates.
func NewSite(tzOffsetHours int, latitude, longitude float64) Site {
	return Site{
		TZOffsetHours: tzOffsetHours,
		Latitude:      latitude,
		Longitude:     longitude,
	}
}

// LocalClock converts a UTC instant to the site-local clock reading that
// [Compute] consumes: epoch seconds as read off a wall clock running at the
// site's UTC offset.
func (s Site) LocalClock(t time.Time) int64 {
	return t.Unix() + int64(s.TZOffsetHours)*3600
}
