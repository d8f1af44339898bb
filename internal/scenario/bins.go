package scenario

import (
	"fmt"
	"math"
	"sort"

	"misleadviz/internal/fixtures"
)

// Bin count limits and handle constraints of the histogram scene.
const (
	MinBins     = 1
	MaxBins     = 8
	DefaultBins = 3
	BinStep     = 5000
	MinBinWidth = 20000
)

// BinSnapshot is the aggregation chosen for the income histogram.
type BinSnapshot struct {
	BinCount int       `json:"binCount"`
	Edges    []float64 `json:"edges"`
}

// ClampBinCount forces k into [MinBins, MaxBins].
func ClampBinCount(k int) int {
	return clampInt(k, MinBins, MaxBins)
}

// DefaultEdges returns the starting edges for k bins: 3 bins split at 50k and
// 100k, any other count splits the income range evenly.
func DefaultEdges(k int) []float64 {
	k = ClampBinCount(k)
	edges := []float64{fixtures.MinIncome}
	if k == 3 {
		edges = append(edges, 50000, 100000)
	} else {
		step := float64(fixtures.MaxIncome-fixtures.MinIncome) / float64(k)
		for i := 1; i < k; i++ {
			edges = append(edges, fixtures.MinIncome+step*float64(i))
		}
	}
	return append(edges, fixtures.MaxIncome)
}

// Bins is the bin-count input plus the boundary handles.
type Bins struct {
	count int
	edges []float64
	rows  []fixtures.IncomeRow
}

// NewBins starts with the default three bins.
func NewBins() *Bins {
	return &Bins{
		count: DefaultBins,
		edges: DefaultEdges(DefaultBins),
		rows:  fixtures.IncomeVotes(),
	}
}

// Init resets the input to three bins.
func (b *Bins) Init() {
	b.count = DefaultBins
	b.edges = DefaultEdges(DefaultBins)
}

// SetCount changes the number of bins and rebuilds the handles at their
// default positions. It returns the clamped count.
func (b *Bins) SetCount(k int) int {
	b.count = ClampBinCount(k)
	b.edges = DefaultEdges(b.count)
	return b.count
}

// SetInnerEdges moves the boundary handles. Handles are sorted, snapped to
// BinStep and pushed apart so every bin is at least MinBinWidth wide.
func (b *Bins) SetInnerEdges(inner []float64) error {
	if len(inner) != b.count-1 {
		return fmt.Errorf("%w: got %d handles for %d bins", ErrEdgeCount, len(inner), b.count)
	}
	handles := append([]float64(nil), inner...)
	sort.Float64s(handles)
	n := len(handles)
	prev := float64(fixtures.MinIncome)
	for i, v := range handles {
		if math.IsNaN(v) {
			v = b.edges[i+1]
		}
		lo := prev + MinBinWidth
		hi := float64(fixtures.MaxIncome) - MinBinWidth*float64(n-i)
		v = math.Round(v/BinStep) * BinStep
		handles[i] = clampFloat(v, lo, hi)
		prev = handles[i]
	}
	edges := make([]float64, 0, n+2)
	edges = append(edges, fixtures.MinIncome)
	edges = append(edges, handles...)
	b.edges = append(edges, fixtures.MaxIncome)
	return nil
}

// Snapshot reads the current bin count and edges.
func (b *Bins) Snapshot() BinSnapshot {
	return BinSnapshot{BinCount: b.count, Edges: append([]float64(nil), b.edges...)}
}

// Bin is the aggregated vote share over one income interval. Means are nil
// for an empty bin.
type Bin struct {
	Left        float64  `json:"left"`
	Right       float64  `json:"right"`
	Center      float64  `json:"center"`
	Label       string   `json:"label"`
	Count       int      `json:"count"`
	MeanJenny   *float64 `json:"meanJenny"`
	MeanMatthew *float64 `json:"meanMatthew"`
}

// ComputeBins averages both candidates' shares per interval. Intervals are
// half open except the last, which includes its right edge.
func ComputeBins(rows []fixtures.IncomeRow, edges []float64) []Bin {
	if len(edges) < 2 {
		return nil
	}
	bins := make([]Bin, 0, len(edges)-1)
	for i := 0; i < len(edges)-1; i++ {
		left, right := edges[i], edges[i+1]
		last := i == len(edges)-2
		var sumA, sumB float64
		count := 0
		for _, r := range rows {
			in := r.Income >= left && r.Income < right
			if last {
				in = r.Income >= left && r.Income <= right
			}
			if in {
				sumA += r.Jenny
				sumB += r.Matthew
				count++
			}
		}
		bin := Bin{
			Left:   left,
			Right:  right,
			Center: (left + right) / 2,
			Label:  formatIncome(left) + " – " + formatIncome(right),
			Count:  count,
		}
		if count > 0 {
			a, m := sumA/float64(count), sumB/float64(count)
			bin.MeanJenny, bin.MeanMatthew = &a, &m
		}
		bins = append(bins, bin)
	}
	return bins
}

// Histogram is the chart data of scene 4.
type Histogram struct {
	Title      string    `json:"title"`
	Candidates []string  `json:"candidates"`
	Colors     []string  `json:"colors"`
	XMin       float64   `json:"xMin"`
	XMax       float64   `json:"xMax"`
	BinCount   int       `json:"binCount"`
	Edges      []float64 `json:"edges"`
	Bins       []Bin     `json:"bins"`
	Step       float64   `json:"step"`
	MinWidth   float64   `json:"minWidth"`
}

// Chart bins the income dataset with the current edges.
func (b *Bins) Chart() Histogram {
	return Histogram{
		Title:      "Vote share by median income",
		Candidates: []string{"Jenny", "Matthew"},
		Colors:     []string{fixtures.ColorPurple, fixtures.ColorGreen},
		XMin:       fixtures.MinIncome,
		XMax:       fixtures.MaxIncome,
		BinCount:   b.count,
		Edges:      append([]float64(nil), b.edges...),
		Bins:       ComputeBins(b.rows, b.edges),
		Step:       BinStep,
		MinWidth:   MinBinWidth,
	}
}
