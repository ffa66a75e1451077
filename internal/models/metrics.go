package models

import "time"

// Gauge is a single bar reading. Percent drives the circular progress gauge
// and is clamped to [0, 100]; Available is false when the source is missing.
// Hot marks a temperature above the configured threshold.
type Gauge struct {
	Value     float64 `json:"value" yaml:"value"`
	Unit      string  `json:"unit" yaml:"unit"`
	Percent   float64 `json:"percent" yaml:"percent"`
	Available bool    `json:"available" yaml:"available"`
	Hot       bool    `json:"hot,omitempty" yaml:"hot,omitempty"`
}

// Metrics is one poll of the bar's system readings.
type Metrics struct {
	CPUUsage  Gauge     `json:"cpu_usage" yaml:"cpu_usage"`
	CPUTemp   Gauge     `json:"cpu_temp" yaml:"cpu_temp"`
	GPUTemp   Gauge     `json:"gpu_temp" yaml:"gpu_temp"`
	PowerDraw Gauge     `json:"power_draw" yaml:"power_draw"`
	Charging  bool      `json:"charging" yaml:"charging"`
	SampledAt time.Time `json:"sampled_at" yaml:"sampled_at"`
}
