package bar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-shell/tessera/internal/models"
)

func writeSupply(t *testing.T, files map[string]string) PowerSupply {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "BAT0")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return NewPowerSupply(root, "BAT0")
}

func TestPowerSupplyWatts(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  float64
		err   error
	}{
		{"power_now", map[string]string{"power_now": "12500000\n"}, 12.5, nil},
		{"negative power_now", map[string]string{"power_now": "-8000000"}, 8, nil},
		{"current and voltage", map[string]string{"current_now": "1000000", "voltage_now": "12000000"}, 12, nil},
		{"missing voltage", map[string]string{"current_now": "1000000"}, 0, ErrNoPowerReading},
		{"nothing", map[string]string{}, 0, ErrNoPowerReading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := writeSupply(t, tt.files).Watts()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, w, 1e-9)
		})
	}
}

func TestPowerSupplyGarbage(t *testing.T) {
	_, err := writeSupply(t, map[string]string{"power_now": "n/a"}).Watts()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPowerReading)
}

func testConfig() models.BarConfig {
	cfg := models.NewSettings().Bar
	cfg.MaxPowerDraw = 50
	return cfg
}

func TestSample(t *testing.T) {
	mock := clock.NewMockClock()
	s := NewSampler(testConfig(), Sources{
		CPUPercent: func(context.Context) (float64, error) { return 37.5, nil },
		Temperatures: func(context.Context) ([]host.TemperatureStat, error) {
			return []host.TemperatureStat{
				{SensorKey: "coretemp_core_0", Temperature: 51},
				{SensorKey: "coretemp_core_1", Temperature: 63},
				{SensorKey: "amdgpu_edge", Temperature: 48},
				{SensorKey: "nvme_composite", Temperature: 80},
			}, nil
		},
		PowerDraw: func() (float64, error) { return 75, nil },
	}, mock)

	m := s.Sample(context.Background())
	assert.Equal(t, models.Gauge{Value: 37.5, Unit: "%", Percent: 37.5, Available: true}, m.CPUUsage)
	assert.Equal(t, 63.0, m.CPUTemp.Value)
	assert.Equal(t, 63.0, m.CPUTemp.Percent)
	assert.Equal(t, 48.0, m.GPUTemp.Value)
	assert.Equal(t, 100.0, m.PowerDraw.Percent, "clamped")
	assert.Equal(t, mock.Now(), m.SampledAt)
}

func TestSampleHotAndCharging(t *testing.T) {
	s := NewSampler(testConfig(), Sources{
		Temperatures: func(context.Context) ([]host.TemperatureStat, error) {
			return []host.TemperatureStat{
				{SensorKey: "k10temp_tctl", Temperature: 86},
				{SensorKey: "amdgpu_edge", Temperature: 80},
			}, nil
		},
		Charging: func() (bool, error) { return true, nil },
	}, clock.NewMockClock())

	m := s.Sample(context.Background())
	assert.True(t, m.CPUTemp.Hot)
	assert.False(t, m.GPUTemp.Hot, "the threshold itself is not hot")
	assert.True(t, m.Charging)
}

func TestPowerSupplyCharging(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  bool
	}{
		{"charging", map[string]string{"status": "Charging\n"}, true},
		{"discharging", map[string]string{"status": "Discharging\n"}, false},
		{"full", map[string]string{"status": "Full"}, false},
		{"no status", map[string]string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := writeSupply(t, tt.files).Charging()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSampleUnavailableSources(t *testing.T) {
	fail := errors.New("boom")
	s := NewSampler(testConfig(), Sources{
		CPUPercent:   func(context.Context) (float64, error) { return 0, fail },
		Temperatures: func(context.Context) ([]host.TemperatureStat, error) { return nil, fail },
	}, clock.NewMockClock())

	m := s.Sample(context.Background())
	assert.False(t, m.CPUUsage.Available)
	assert.False(t, m.CPUTemp.Available)
	assert.False(t, m.GPUTemp.Available)
	assert.False(t, m.PowerDraw.Available)
	assert.Equal(t, "W", m.PowerDraw.Unit)
}

func TestHottestMatchesPrefixesCaseInsensitively(t *testing.T) {
	temps := []host.TemperatureStat{
		{SensorKey: "K10Temp_Tctl", Temperature: 70},
		{SensorKey: "acpitz", Temperature: 90},
	}
	v, ok := hottest(temps, []string{"k10temp"})
	assert.True(t, ok)
	assert.Equal(t, 70.0, v)

	_, ok = hottest(temps, []string{"", "radeon"})
	assert.False(t, ok)
}

func TestPoller(t *testing.T) {
	mock := clock.NewMockClock()
	calls := 0
	s := NewSampler(testConfig(), Sources{
		CPUPercent: func(context.Context) (float64, error) {
			calls++
			return float64(calls), nil
		},
	}, mock)
	p := NewPoller(s, mock, time.Second)

	_, ok := p.Latest()
	assert.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return p.Samples() == 1 }, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		mock.AddTime(time.Second)
		return p.Samples() >= 2
	}, time.Second, 5*time.Millisecond)

	m, ok := p.Latest()
	assert.True(t, ok)
	assert.GreaterOrEqual(t, m.CPUUsage.Value, 2.0)

	cancel()
	require.NoError(t, <-done)
}
