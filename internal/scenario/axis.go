package scenario

import (
	"math"

	"misleadviz/internal/fixtures"
)

// Y axis bounds, in millions of votes.
const (
	AxisYMinAllowed = 0
	AxisYMaxAllowed = 85
)

// AxisSnapshot is the framing chosen on the polling chart.
type AxisSnapshot struct {
	XMinIndex int     `json:"xMinIndex"`
	XMaxIndex int     `json:"xMaxIndex"`
	YMin      float64 `json:"yMin"`
	YMax      float64 `json:"yMax"`
}

// Span is the visible y range.
func (s AxisSnapshot) Span() float64 {
	return s.YMax - s.YMin
}

// Axis is the dual range slider state of the polling chart.
type Axis struct {
	xMin, xMax int
	yMin, yMax float64
}

// NewAxis starts with the full year range and the full y range.
func NewAxis() *Axis {
	return &Axis{
		xMin: 0,
		xMax: len(fixtures.PollingYears) - 1,
		yMin: AxisYMinAllowed,
		yMax: AxisYMaxAllowed,
	}
}

// Init resets the sliders to their starting position.
func (a *Axis) Init() {
	*a = *NewAxis()
}

// SetX sets the year range by index. Handles may arrive in either order.
func (a *Axis) SetX(i, j int) {
	last := len(fixtures.PollingYears) - 1
	i, j = clampInt(i, 0, last), clampInt(j, 0, last)
	a.xMin, a.xMax = min(i, j), max(i, j)
}

// SetY sets the y range. Values snap to whole millions.
func (a *Axis) SetY(lo, hi float64) {
	if math.IsNaN(lo) {
		lo = a.yMin
	}
	if math.IsNaN(hi) {
		hi = a.yMax
	}
	lo = math.Round(clampFloat(lo, AxisYMinAllowed, AxisYMaxAllowed))
	hi = math.Round(clampFloat(hi, AxisYMinAllowed, AxisYMaxAllowed))
	a.yMin, a.yMax = math.Min(lo, hi), math.Max(lo, hi)
}

// Snapshot reads the current slider values.
func (a *Axis) Snapshot() AxisSnapshot {
	return AxisSnapshot{XMinIndex: a.xMin, XMaxIndex: a.xMax, YMin: a.yMin, YMax: a.yMax}
}

// BarDataset is one party's bars.
type BarDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor"`
}

// BarChart is what the chart library needs to draw scene 1.
type BarChart struct {
	Type       string       `json:"type"`
	Title      string       `json:"title"`
	Labels     []int        `json:"labels"`
	Datasets   []BarDataset `json:"datasets"`
	YMin       float64      `json:"yMin"`
	YMax       float64      `json:"yMax"`
	RangeLabel string       `json:"rangeLabel"`
	YLabel     string       `json:"yLabel"`
}

// Chart slices the polling table to the chosen years.
func (a *Axis) Chart() BarChart {
	years := fixtures.PollingYears[a.xMin : a.xMax+1]
	datasets := make([]BarDataset, 0, len(fixtures.PollingParties))
	for i, party := range fixtures.PollingParties {
		datasets = append(datasets, BarDataset{
			Label:           party,
			Data:            fixtures.PollingValues(party)[a.xMin : a.xMax+1],
			BackgroundColor: fixtures.PollingColor(i),
		})
	}
	return BarChart{
		Type:       "bar",
		Title:      "Election Polling by Party (in millions)",
		Labels:     append([]int(nil), years...),
		Datasets:   datasets,
		YMin:       a.yMin,
		YMax:       a.yMax,
		RangeLabel: formatYears(years[0], years[len(years)-1]),
		YLabel:     formatRange(a.yMin, a.yMax),
	}
}
