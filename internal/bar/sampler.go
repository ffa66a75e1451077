// Package bar samples the system readings shown as gauges on the bar.
package bar

import (
	"context"
	"errors"
	"strings"

	"github.com/WatchBeam/clock"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/tessera-shell/tessera/internal/models"
)

// Sources are the raw readers a Sampler draws from. Any of them may be nil.
type Sources struct {
	CPUPercent   func(ctx context.Context) (float64, error)
	Temperatures func(ctx context.Context) ([]host.TemperatureStat, error)
	PowerDraw    func() (float64, error)
	Charging     func() (bool, error)
}

// SystemSources reads from gopsutil and the configured power supply.
func SystemSources(cfg models.BarConfig) Sources {
	supply := NewPowerSupply("", cfg.PowerSupply)
	return Sources{
		CPUPercent: func(ctx context.Context) (float64, error) {
			// Interval 0 compares against the previous call.
			pct, err := cpu.PercentWithContext(ctx, 0, false)
			if err != nil {
				return 0, err
			}
			if len(pct) == 0 {
				return 0, errors.New("no cpu stats")
			}
			return pct[0], nil
		},
		Temperatures: func(ctx context.Context) ([]host.TemperatureStat, error) {
			temps, err := host.SensorsTemperaturesWithContext(ctx)
			// Partial results come back together with a warnings error.
			if len(temps) > 0 {
				return temps, nil
			}
			return nil, err
		},
		PowerDraw: supply.Watts,
		Charging:  supply.Charging,
	}
}

// Sampler turns raw readings into gauges.
type Sampler struct {
	cfg     models.BarConfig
	sources Sources
	clock   clock.Clock
}

// NewSampler creates a Sampler.
func NewSampler(cfg models.BarConfig, sources Sources, clk clock.Clock) *Sampler {
	if clk == nil {
		clk = clock.C
	}
	return &Sampler{cfg: cfg, sources: sources, clock: clk}
}

// Sample takes one reading of every gauge. Failing sources yield an
// unavailable gauge rather than an error.
func (s *Sampler) Sample(ctx context.Context) models.Metrics {
	m := models.Metrics{
		CPUUsage:  models.Gauge{Unit: "%"},
		CPUTemp:   models.Gauge{Unit: "°C"},
		GPUTemp:   models.Gauge{Unit: "°C"},
		PowerDraw: models.Gauge{Unit: "W"},
		SampledAt: s.clock.Now(),
	}

	if s.sources.CPUPercent != nil {
		if v, err := s.sources.CPUPercent(ctx); err == nil {
			m.CPUUsage = gauge(v, "%", 100)
		}
	}

	if s.sources.Temperatures != nil {
		if temps, err := s.sources.Temperatures(ctx); err == nil {
			if v, ok := hottest(temps, s.cfg.CPUSensors); ok {
				m.CPUTemp = s.temperature(v)
			}
			if v, ok := hottest(temps, s.cfg.GPUSensors); ok {
				m.GPUTemp = s.temperature(v)
			}
		}
	}

	if s.sources.PowerDraw != nil {
		if v, err := s.sources.PowerDraw(); err == nil {
			m.PowerDraw = gauge(v, "W", s.cfg.MaxPowerDraw)
		}
	}

	if s.sources.Charging != nil {
		if charging, err := s.sources.Charging(); err == nil {
			m.Charging = charging
		}
	}
	return m
}

func (s *Sampler) temperature(v float64) models.Gauge {
	g := gauge(v, "°C", s.cfg.MaxTemp)
	g.Hot = s.cfg.HotTemp > 0 && v > s.cfg.HotTemp
	return g
}

// hottest returns the highest reading among sensors whose key starts with one
// of the prefixes.
func hottest(temps []host.TemperatureStat, prefixes []string) (float64, bool) {
	var best float64
	found := false
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		for _, p := range prefixes {
			if p == "" || !strings.HasPrefix(key, strings.ToLower(p)) {
				continue
			}
			if !found || t.Temperature > best {
				best = t.Temperature
				found = true
			}
			break
		}
	}
	return best, found
}

func gauge(value float64, unit string, full float64) models.Gauge {
	g := models.Gauge{Value: value, Unit: unit, Available: true}
	if full > 0 {
		g.Percent = value / full * 100
	}
	switch {
	case g.Percent < 0:
		g.Percent = 0
	case g.Percent > 100:
		g.Percent = 100
	}
	return g
}
