package bar

import (
	"context"
	"sync"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/rs/zerolog"

	"github.com/tessera-shell/tessera/internal/logging"
	"github.com/tessera-shell/tessera/internal/models"
)

// Poller samples on a fixed interval and keeps the latest reading.
type Poller struct {
	sampler  *Sampler
	clock    clock.Clock
	interval time.Duration
	log      zerolog.Logger

	mu      sync.RWMutex
	latest  models.Metrics
	samples int
}

// NewPoller creates a Poller. A non-positive interval defaults to two seconds.
func NewPoller(sampler *Sampler, clk clock.Clock, interval time.Duration) *Poller {
	if clk == nil {
		clk = clock.C
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{
		sampler:  sampler,
		clock:    clk,
		interval: interval,
		log:      logging.Component("bar"),
	}
}

// Run samples immediately and then once per interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info().Dur("interval", p.interval).Msg("metrics poller started")
	for {
		p.poll(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-p.clock.After(p.interval):
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	m := p.sampler.Sample(ctx)
	p.mu.Lock()
	p.latest = m
	p.samples++
	p.mu.Unlock()

	p.log.Debug().
		Float64("cpu", m.CPUUsage.Value).
		Float64("cpu_temp", m.CPUTemp.Value).
		Float64("power", m.PowerDraw.Value).
		Msg("metrics sampled")
}

// Latest returns the most recent reading and whether one has been taken yet.
func (p *Poller) Latest() (models.Metrics, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.samples > 0
}

// Samples returns the number of polls taken so far.
func (p *Poller) Samples() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.samples
}
