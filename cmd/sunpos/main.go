// Command sunpos computes the apparent solar position and daily sun events
// for a location and prints them to stdout.
//
// Usage:
//
//	go run ./cmd/sunpos -lat 36.62 -lon -121.904 -tz -8
//	go run ./cmd/sunpos -lat 68.35 -lon 18.83 -tz 1 -time 2024-12-21T12:00:00Z
//	go run ./cmd/sunpos -lat 36.62 -lon -121.904 -tz -8 -time 1718884800 -json
//
// The -time flag accepts RFC 3339 or unix seconds and names a UTC instant;
// it defaults to now. With -json the full report is printed as JSON instead
// of the human-readable table.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/solar-position-service/internal/solar"
)

func main() {
	lat := flag.Float64("lat", 36.62, "site latitude in degrees, north positive")
	lon := flag.Float64("lon", -121.904, "site longitude in degrees, east positive")
	tz := flag.Int("tz", -8, "site UTC offset in whole hours")
	when := flag.String("time", "", "instant as RFC 3339 or unix seconds (default: now)")
	asJSON := flag.Bool("json", false, "print the full report as JSON")
	flag.Parse()

	if code := run(*lat, *lon, *tz, *when, *asJSON); code != 0 {
		os.Exit(code)
	}
}

func run(lat, lon float64, tz int, when string, asJSON bool) int {
	if lat < -90 || lat > 90 {
		fmt.Fprintf(os.Stderr, "error: lat %g out of range [-90, 90]\n", lat)
		return 1
	}
	if lon < -180 || lon > 180 {
		fmt.Fprintf(os.Stderr, "error: lon %g out of range [-180, 180]\n", lon)
		return 1
	}
	if tz < -12 || tz > 14 {
		fmt.Fprintf(os.Stderr, "error: tz %d out of range [-12, 14]\n", tz)
		return 1
	}

	instant, err := parseInstant(when)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	site := solar.NewSite(tz, lat, lon)
	report := solar.BuildReport(site.LocalClock(instant), site)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "error: encode report: %v\n", err)
			return 1
		}
		return 0
	}

	printReport(report)
	return 0
}

// parseInstant parses a -time flag value. Empty means now.
func parseInstant(when string) (time.Time, error) {
	if when == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, when); err == nil {
		return t, nil
	}
	if secs, err := strconv.ParseInt(when, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: want RFC 3339 or unix seconds", when)
}

const clockLayout = "2006-01-02 15:04:05"

func printReport(r solar.Report) {
	fmt.Printf("Site:             %.4f, %.4f (UTC%+d)\n", r.Site.Latitude, r.Site.Longitude, r.Site.TZOffsetHours)
	fmt.Printf("Local time:       %s\n", r.Time.Format(clockLayout))
	fmt.Println()
	fmt.Printf("Elevation:        %9.4f deg (apparent, refraction-corrected)\n", r.ElevationCorrectedDeg)
	fmt.Printf("                  %9.4f deg (geometric)\n", r.ElevationDeg)
	fmt.Printf("Azimuth:          %s\n", formatDeg(r.AzimuthDeg))
	fmt.Printf("Zenith:           %9.4f deg\n", r.ZenithDeg)
	fmt.Printf("Declination:      %9.4f deg\n", r.DeclinationDeg)
	fmt.Printf("Right ascension:  %9.4f deg\n", r.RightAscensionDeg)
	fmt.Printf("Equation of time: %9.4f min\n", r.EquationOfTimeMin)
	fmt.Printf("Sun distance:     %9.6f AU\n", r.RadVectorAU)
	fmt.Println()
	fmt.Printf("Sunrise:          %s\n", formatEvent(r.Sunrise))
	fmt.Printf("Solar noon:       %s\n", r.SolarNoon.Format(clockLayout))
	fmt.Printf("Sunset:           %s\n", formatEvent(r.Sunset))
	fmt.Printf("Day length:       %s\n", formatDayLength(r.DayLengthMin))
}

func formatDeg(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%9.4f deg", *v)
}

func formatEvent(t *time.Time) string {
	if t == nil {
		return "none (polar day or night)"
	}
	return t.Format(clockLayout)
}

func formatDayLength(minutes *float64) string {
	if minutes == nil {
		return "none (polar day or night)"
	}
	d := time.Duration(*minutes * float64(time.Minute))
	return fmt.Sprintf("%s (%.1f min)", d.Round(time.Second), *minutes)
}
