package sampler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/solar-position-service/internal/observability"
	"github.com/couchcryptid/solar-position-service/internal/solar"
	"github.com/jonboulle/clockwork"
)

// Publisher writes one report to the destination.
type Publisher interface {
	Publish(ctx context.Context, report solar.Report) error
}

const (
	// Exponential backoff after publish failures: start at 200ms, double
	// each failure, cap at 5s. Keeps retry storms short while avoiding
	// tight loops during broker outages.
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Sampler periodically computes the solar position for a fixed site and
// publishes the resulting report.
type Sampler struct {
	site      solar.Site
	interval  time.Duration
	publisher Publisher // nil disables publishing
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	ready     atomic.Bool
}

// New creates a Sampler. Pass a nil publisher to compute samples without
// writing them anywhere (metrics and readiness still update).
func New(site solar.Site, interval time.Duration, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Sampler {
	return &Sampler{
		site:      site,
		interval:  interval,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
	}
}

// CheckReadiness returns nil once the sampler has produced at least one
// successful sample, or an error describing why the service is not yet ready.
func (s *Sampler) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("sampler has not produced a sample yet")
	}
	return nil
}

// Run samples immediately and then on every interval tick until the context
// is cancelled.
func (s *Sampler) Run(ctx context.Context) error {
	s.logger.Info("sampler started",
		"interval", s.interval,
		"lat", s.site.Latitude,
		"lon", s.site.Longitude,
		"tz_offset", s.site.TZOffsetHours,
		"publishing", s.publisher != nil,
	)
	s.metrics.SamplerRunning.Set(1)
	defer s.metrics.SamplerRunning.Set(0)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	backoff := initialBackoff
	s.sampleOnce(ctx, &backoff)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sampler stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			s.sampleOnce(ctx, &backoff)
		}
	}
}

// sampleOnce runs one compute-publish cycle.
func (s *Sampler) sampleOnce(ctx context.Context, backoff *time.Duration) {
	start := time.Now()
	report := solar.BuildReport(s.site.LocalClock(s.clock.Now()), s.site)
	s.metrics.ComputeTotal.Inc()
	s.metrics.ComputeDuration.Observe(time.Since(start).Seconds())

	if report.Sunrise == nil || report.Sunset == nil {
		s.metrics.PolarEvents.Inc()
	}

	s.logger.Debug("sampled solar position",
		"report_id", report.ID,
		"elevation", report.ElevationCorrectedDeg,
		"solar_noon", report.SolarNoon,
	)

	if s.publisher == nil {
		s.ready.Store(true)
		return
	}

	if err := s.publisher.Publish(ctx, report); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("publish report failed", "error", err, "report_id", report.ID)
		s.metrics.PublishErrors.Inc()
		if s.sleep(ctx, *backoff) {
			*backoff = nextBackoff(*backoff)
		}
		return
	}

	*backoff = initialBackoff
	s.metrics.SamplesPublished.Inc()
	s.ready.Store(true)
}

// sleep waits for d on the sampler clock. Returns false if the context was
// cancelled first.
func (s *Sampler) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	select {
	case <-ctx.Done():
		return false
	case <-s.clock.After(d):
		return true
	}
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
