// Package chart turns a numeric series into renderable line/area geometry
// for the dashboard's bespoke SVG chart. The server only computes; the
// client draws.
package chart

import (
	"fmt"
	"strings"
	"time"
)

// Series kinds and periods recognized by the dashboard.
const (
	KindAdmissions = "admissions"
	KindRecoveries = "recoveries"

	PeriodToday = "today"
	PeriodMonth = "month"
)

// NominalMax is substituted for the display maximum when every value is
// zero, so a flat series still plots above the baseline.
const NominalMax = 10

// Series is an ordered sequence of (label, value) pairs. It is derived on
// every request and never persisted.
type Series struct {
	Kind   string    `json:"kind"`
	Period string    `json:"period"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Dims describes the plotting area in abstract units.
type Dims struct {
	Width    float64
	Height   float64
	PaddingX float64
	PaddingY float64
}

// DefaultDims matches the dashboard's chart viewport.
var DefaultDims = Dims{Width: 600, Height: 220, PaddingX: 24, PaddingY: 16}

// Point is one plotted data point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stats are summary statistics over the raw values, independent of any
// display scaling.
type Stats struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
	Sum float64 `json:"sum"`
}

// Geometry is everything the client needs to draw the series.
type Geometry struct {
	Points        []Point  `json:"points"`
	Polyline      string   `json:"polyline"`
	AreaPath      string   `json:"areaPath"`
	DisplayMax    float64  `json:"displayMax"`
	HasActualData bool     `json:"hasActualData"`
	Stats         Stats    `json:"stats"`
	YAxisLabels   []string `json:"yAxisLabels"`
}

// Placeholder synthesizes an all-zero series for the given period so the
// chart always has a fixed-shape frame to draw: 24 hourly buckets for
// "today", one bucket per day of the current month for "month".
func Placeholder(kind, period string, now time.Time) Series {
	var labels []string
	switch period {
	case PeriodMonth:
		days := daysInMonth(now)
		labels = make([]string, days)
		for i := 0; i < days; i++ {
			labels[i] = fmt.Sprintf("%d", i+1)
		}
	default:
		labels = make([]string, 24)
		for i := 0; i < 24; i++ {
			labels[i] = fmt.Sprintf("%02d:00", i)
		}
		period = PeriodToday
	}
	return Series{
		Kind:   kind,
		Period: period,
		Labels: labels,
		Values: make([]float64, len(labels)),
	}
}

// Derive maps the series onto the plotting area. Labels and values must
// have equal length; an empty series should go through Placeholder first.
func Derive(s Series, dims Dims) (Geometry, error) {
	if len(s.Labels) != len(s.Values) {
		return Geometry{}, fmt.Errorf("labels/values length mismatch: %d vs %d", len(s.Labels), len(s.Values))
	}
	if len(s.Values) == 0 {
		return Geometry{}, fmt.Errorf("empty series: synthesize a placeholder first")
	}
	if dims.Width <= 0 || dims.Height <= 0 {
		dims = DefaultDims
	}

	stats := summarize(s.Values)
	displayMax := stats.Max
	if displayMax == 0 {
		displayMax = NominalMax
	}

	plotWidth := dims.Width - 2*dims.PaddingX
	plotHeight := dims.Height - 2*dims.PaddingY
	baseline := dims.Height - dims.PaddingY

	points := make([]Point, len(s.Values))
	for i, v := range s.Values {
		x := dims.PaddingX + plotWidth/2
		if len(s.Values) > 1 {
			x = dims.PaddingX + float64(i)/float64(len(s.Values)-1)*plotWidth
		}
		y := baseline - v/displayMax*plotHeight
		points[i] = Point{X: round2(x), Y: round2(y)}
	}

	return Geometry{
		Points:        points,
		Polyline:      polyline(points),
		AreaPath:      areaPath(points, baseline),
		DisplayMax:    displayMax,
		HasActualData: hasActualData(s.Values),
		Stats:         stats,
		YAxisLabels:   yAxisLabels(displayMax),
	}, nil
}

// hasActualData reports whether at least one value is positive. An all-zero
// series renders muted and dashed with a "no data" label instead.
func hasActualData(values []float64) bool {
	for _, v := range values {
		if v > 0 {
			return true
		}
	}
	return false
}

func summarize(values []float64) Stats {
	stats := Stats{Max: values[0], Min: values[0]}
	for _, v := range values {
		if v > stats.Max {
			stats.Max = v
		}
		if v < stats.Min {
			stats.Min = v
		}
		stats.Sum += v
	}
	return stats
}

func polyline(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

// areaPath closes the polyline down to the baseline for the filled region.
func areaPath(points []Point, baseline float64) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&b, "M %g %g", p.X, p.Y)
			continue
		}
		fmt.Fprintf(&b, " L %g %g", p.X, p.Y)
	}
	first := points[0]
	last := points[len(points)-1]
	fmt.Fprintf(&b, " L %g %g L %g %g Z", last.X, round2(baseline), first.X, round2(baseline))
	return b.String()
}

// yAxisLabels produces the tick labels top to bottom: max, midpoint, 0.
func yAxisLabels(displayMax float64) []string {
	return []string{
		trimFloat(displayMax),
		trimFloat(displayMax / 2),
		"0",
	}
}

func trimFloat(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", v), "0"), ".")
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func daysInMonth(now time.Time) int {
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1).Day()
}
