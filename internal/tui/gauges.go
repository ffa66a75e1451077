package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessera-shell/tessera/internal/models"
)

const maxBarWidth = 40

// Gauges renders the bar readings as progress bars.
type Gauges struct {
	bar     progress.Model
	metrics models.Metrics
}

// NewGauges creates gauges with nothing sampled yet.
func NewGauges() *Gauges {
	return &Gauges{
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
			progress.WithWidth(20),
		),
	}
}

// Set stores the latest reading.
func (g *Gauges) Set(m models.Metrics) {
	g.metrics = m
}

// SetWidth sizes the bars to the terminal width.
func (g *Gauges) SetWidth(width int) {
	w := width - lipgloss.Width(gaugeLabelStyle.Render("")) - lipgloss.Width(gaugeValueStyle.Render("")) - 8
	if w > maxBarWidth {
		w = maxBarWidth
	}
	if w < 4 {
		w = 4
	}
	g.bar.Width = w
}

// View renders one line per gauge. Gauges without a reading show n/a.
func (g *Gauges) View(ready bool) string {
	rows := []struct {
		label string
		gauge models.Gauge
		mark  string
	}{
		{"CPU", g.metrics.CPUUsage, ""},
		{"CPU °C", g.metrics.CPUTemp, hotMark(g.metrics.CPUTemp)},
		{"GPU °C", g.metrics.GPUTemp, hotMark(g.metrics.GPUTemp)},
		{"Power", g.metrics.PowerDraw, chargingMark(g.metrics.Charging)},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, g.row(r.label, r.gauge, r.mark, ready))
	}
	return strings.Join(lines, "\n")
}

func (g *Gauges) row(label string, gauge models.Gauge, mark string, ready bool) string {
	if !ready || !gauge.Available {
		return gaugeLabelStyle.Render(label) + " " +
			overlayDimStyle.Render(strings.Repeat("·", g.bar.Width)) + " " +
			gaugeValueStyle.Render("n/a")
	}
	return gaugeLabelStyle.Render(label) + " " +
		g.bar.ViewAs(gauge.Percent/100) + " " +
		gaugeValueStyle.Render(formatReading(gauge)) + mark
}

func hotMark(g models.Gauge) string {
	if !g.Hot {
		return ""
	}
	return " " + gaugeAlertStyle.Render("hot")
}

func chargingMark(charging bool) string {
	if !charging {
		return ""
	}
	return " " + gaugeAlertStyle.Render("charging")
}

func formatReading(g models.Gauge) string {
	if g.Unit == "%" {
		return fmt.Sprintf("%.0f%%", g.Value)
	}
	return fmt.Sprintf("%.1f %s", g.Value, g.Unit)
}
