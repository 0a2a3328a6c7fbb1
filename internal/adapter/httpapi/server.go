package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/solar-position-service/internal/observability"
	"github.com/couchcryptid/solar-position-service/internal/solar"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and solar position HTTP
// endpoints. Position queries default to the configured site but accept
// lat, lon, and tz overrides per request.
type Server struct {
	httpServer *http.Server
	site       solar.Site
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
	events     *lruCache
}

// NewServer creates an HTTP server with health, metrics, and solar API routes.
func NewServer(addr string, site solar.Site, cacheSize int, ready ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		site:    site,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
		events:  newLRUCache(cacheSize),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/position", s.handlePosition)
	mux.HandleFunc("GET /v1/events", s.handleEvents)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handlePosition serves the full solar position report for one instant.
// Query parameters: lat, lon, tz override the configured site; t is the
// instant as unix seconds UTC, defaulting to the current time.
func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	s.metrics.PositionRequests.Inc()

	site, err := s.siteFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	instant := s.clock.Now()
	if raw := r.URL.Query().Get("t"); raw != "" {
		secs, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid t %q: must be unix seconds", raw))
			return
		}
		instant = time.Unix(secs, 0)
	}

	report := solar.BuildReport(site.LocalClock(instant), site)
	writeJSON(w, http.StatusOK, report)
}

// eventsResponse holds the rise, noon, and set times for one date at one
// site. Sunrise, sunset, and day length are null on polar days and nights.
type eventsResponse struct {
	Date         string     `json:"date"`
	Site         solar.Site `json:"site"`
	Sunrise      *time.Time `json:"sunrise"`
	SolarNoon    time.Time  `json:"solar_noon"`
	Sunset       *time.Time `json:"sunset"`
	DayLengthMin *float64   `json:"day_length_min"`
}

// handleEvents serves the daily sunrise, solar noon, sunset, and day length
// for a date. Query parameters: date (YYYY-MM-DD, defaults to today at the
// site), plus the lat, lon, tz site overrides. Responses are cached since
// event times for a past or fixed date never change.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	site, err := s.siteFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Unix(site.LocalClock(s.clock.Now()), 0).UTC().Format(time.DateOnly)
	}
	day, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date))
		return
	}

	key := fmt.Sprintf("%s|%.6f|%.6f|%d", date, site.Latitude, site.Longitude, site.TZOffsetHours)
	if resp, ok := s.events.get(key); ok {
		s.metrics.EventsCache.WithLabelValues("hit").Inc()
		writeJSON(w, http.StatusOK, resp)
		return
	}
	s.metrics.EventsCache.WithLabelValues("miss").Inc()

	// Local noon of the requested date, encoded the way Compute expects.
	pos := solar.Compute(day.Unix()+12*3600, site)

	resp := eventsResponse{
		Date:      date,
		Site:      site,
		SolarNoon: pos.SolarNoonTime(),
	}
	if rise, ok := pos.SunriseTime(); ok {
		resp.Sunrise = &rise
	}
	if set, ok := pos.SunsetTime(); ok {
		resp.Sunset = &set
	}
	if !math.IsNaN(pos.SunDuration) {
		d := pos.SunDuration
		resp.DayLengthMin = &d
	}

	s.events.put(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// siteFromQuery builds the effective site for a request, starting from the
// configured site and applying any lat, lon, tz query overrides.
func (s *Server) siteFromQuery(r *http.Request) (solar.Site, error) {
	site := s.site
	q := r.URL.Query()

	if raw := q.Get("lat"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil || lat < -90 || lat > 90 {
			return solar.Site{}, fmt.Errorf("invalid lat %q: want a number in [-90, 90]", raw)
		}
		site.Latitude = lat
	}
	if raw := q.Get("lon"); raw != "" {
		lon, err := strconv.ParseFloat(raw, 64)
		if err != nil || lon < -180 || lon > 180 {
			return solar.Site{}, fmt.Errorf("invalid lon %q: want a number in [-180, 180]", raw)
		}
		site.Longitude = lon
	}
	if raw := q.Get("tz"); raw != "" {
		tz, err := strconv.Atoi(raw)
		if err != nil || tz < -12 || tz > 14 {
			return solar.Site{}, fmt.Errorf("invalid tz %q: want whole hours in [-12, 14]", raw)
		}
		site.TZOffsetHours = tz
	}
	return site, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
