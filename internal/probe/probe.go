package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-search/internal/weather"
)

// Probe periodically checks that the weather provider is reachable by issuing
// a lookup for a configured city. Outcomes are only logged; history is never
// touched.
type Probe struct {
	scheduler *gocron.Scheduler
	gateway   *weather.Gateway
	city      string
	interval  time.Duration
	log       *slog.Logger
}

// New creates a Probe. An empty city disables it.
func New(city string, interval time.Duration, gateway *weather.Gateway, log *slog.Logger) *Probe {
	s := gocron.NewScheduler(time.UTC)
	return &Probe{
		scheduler: s,
		gateway:   gateway,
		city:      city,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic check and starts the underlying scheduler.
func (p *Probe) Start() error {
	if p.city == "" {
		p.log.Info("probe: no city configured; provider probe disabled")
		return nil
	}

	minutes := int(p.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := p.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := p.gateway.Current(ctx, p.city); err != nil {
			p.log.Warn("probe: provider unreachable", "city", p.city, "error", err)
			return
		}
		p.log.Debug("probe: provider reachable", "city", p.city)
	})
	if err != nil {
		return err
	}

	p.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future checks.
func (p *Probe) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}
