package scenario

import (
	"fmt"
	"math"

	"misleadviz/internal/fixtures"
)

// Map view modes, from most to least misleading.
const (
	ModeArea = iota
	ModeEqualCircles
	ModeSizedCircles
	ModeBeeswarm
	ModeBeeswarmRegion
)

// ModeLabels are shown under the mode slider.
var ModeLabels = []string{
	"Districts (area choropleth)",
	"Equal-size circles at district centers",
	"Circles sized & shaded by voters",
	"Beeswarm by margin",
	"Beeswarm by margin and region",
}

// Party names on the map legend.
const (
	MapPartyA = "Boston Tea Party (Jenny)"
	MapPartyB = "Birthday Party (Matthew)"
)

// Map canvas size.
const (
	mapWidth  = 900.0
	mapHeight = 500.0
)

// MapSnapshot is the map view mode chosen by the player.
type MapSnapshot struct {
	Mode int `json:"mode"`
}

// LandMap is the mode slider over the district grid.
type LandMap struct {
	mode      int
	districts []fixtures.District
}

// NewLandMap starts on the area choropleth.
func NewLandMap() *LandMap {
	return &LandMap{mode: ModeArea, districts: fixtures.Districts()}
}

// Init moves the slider back to the first mode.
func (m *LandMap) Init() {
	m.mode = ModeArea
}

// SetMode moves the slider, clamped to the known modes.
func (m *LandMap) SetMode(mode int) int {
	m.mode = clampInt(mode, ModeArea, ModeBeeswarmRegion)
	return m.mode
}

// Snapshot reads the slider.
func (m *LandMap) Snapshot() MapSnapshot {
	return MapSnapshot{Mode: m.mode}
}

// MapDistrict is one district as drawn in the current mode. TargetX and
// TargetY are the anchors handed to the client's collision layout in the
// beeswarm modes; CX/CY are used otherwise.
type MapDistrict struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	LandFill   string  `json:"landFill"`
	CX         float64 `json:"cx"`
	CY         float64 `json:"cy"`
	TargetX    float64 `json:"targetX"`
	TargetY    float64 `json:"targetY"`
	Radius     float64 `json:"radius"`
	CircleFill string  `json:"circleFill"`
	Tooltip    string  `json:"tooltip"`
	Winner     string  `json:"winner"`
	Voters     float64 `json:"voters"`
	Margin     float64 `json:"margin"`
	Region     string  `json:"region"`
}

// PartyShare compares how much land a party won with how many voters it won.
type PartyShare struct {
	Party      string  `json:"party"`
	Districts  int     `json:"districts"`
	LandShare  float64 `json:"landShare"`
	Voters     float64 `json:"voters"`
	VoterShare float64 `json:"voterShare"`
}

// RegionLabel is a facet label shown in the by-region beeswarm.
type RegionLabel struct {
	Name string  `json:"name"`
	Y    float64 `json:"y"`
}

// MapView is the data for scene 3 in its current mode.
type MapView struct {
	Mode          int           `json:"mode"`
	Label         string        `json:"label"`
	Width         float64       `json:"width"`
	Height        float64       `json:"height"`
	LandOpacity   float64       `json:"landOpacity"`
	CircleOpacity float64       `json:"circleOpacity"`
	Swarm         bool          `json:"swarm"`
	Regions       []RegionLabel `json:"regions"`
	ShowRegions   bool          `json:"showRegions"`
	Districts     []MapDistrict `json:"districts"`
	Shares        []PartyShare  `json:"shares"`
}

var landOpacityByMode = []float64{1, 0.25, 0.2, 0.1, 0.1}

func winnerColor(winner string) string {
	if winner == fixtures.WinnerA {
		return fixtures.ColorPurple
	}
	return fixtures.ColorGreen
}

// marginColor shades strong margins darker. Typical margins stay within
// 25 points; the curve darkens mid margins too.
func marginColor(winner string, margin float64) string {
	t := math.Pow(math.Min(1, math.Abs(margin)/25), 0.7)
	if winner == fixtures.WinnerA {
		return mixColor("#f0e7f6", "#4b2f59", t)
	}
	return mixColor("#d3f2e2", "#18553c", t)
}

type linearScale struct{ d0, d1, r0, r1 float64 }

func (s linearScale) at(v float64) float64 {
	if s.d1 == s.d0 {
		return s.r0
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// pointScale places n categories across [r0, r1] with half a step of padding.
func pointScale(n int, r0, r1 float64) []float64 {
	if n == 0 {
		return nil
	}
	const padding = 0.5
	step := (r1 - r0) / (float64(n-1) + 2*padding)
	out := make([]float64, n)
	for i := range out {
		out[i] = r0 + step*(padding+float64(i))
	}
	return out
}

func winnerName(winner string) string {
	if winner == fixtures.WinnerA {
		return MapPartyA
	}
	return MapPartyB
}

func districtTooltip(d fixtures.District) string {
	sign := ""
	if d.Margin >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s\nWinner: %s\nMargin: %s%.1f pts\nVoters: %d",
		d.Name, winnerName(d.Winner), sign, d.Margin, jsRound(d.Voters))
}

// View lays the districts out for the current mode.
func (m *LandMap) View() MapView {
	x0, x1 := mapWidth*0.15, mapWidth*0.8
	y0, y1 := mapHeight*0.15, mapHeight*0.85
	cellW := (x1 - x0) / fixtures.GridCols
	cellH := (y1 - y0) / fixtures.GridRows

	minM, maxM := math.Inf(1), math.Inf(-1)
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, d := range m.districts {
		minM, maxM = math.Min(minM, d.Margin), math.Max(maxM, d.Margin)
		minV, maxV = math.Min(minV, d.Voters), math.Max(maxV, d.Voters)
	}
	marginX := linearScale{minM, maxM, mapWidth * 0.15, mapWidth * 0.85}
	radius := linearScale{math.Sqrt(minV), math.Sqrt(maxV), 6, 28}

	names := fixtures.Regions()
	regionY := pointScale(len(names), mapHeight*0.2, mapHeight*0.8)
	regionAt := make(map[string]float64, len(names))
	labels := make([]RegionLabel, len(names))
	for i, name := range names {
		regionAt[name] = regionY[i]
		labels[i] = RegionLabel{Name: name, Y: regionY[i]}
	}

	view := MapView{
		Mode:        m.mode,
		Label:       ModeLabels[m.mode],
		Width:       mapWidth,
		Height:      mapHeight,
		LandOpacity: landOpacityByMode[m.mode],
		Swarm:       m.mode >= ModeBeeswarm,
		Regions:     labels,
		ShowRegions: m.mode == ModeBeeswarmRegion,
		Districts:   make([]MapDistrict, 0, len(m.districts)),
		Shares:      shares(m.districts),
	}
	if m.mode > ModeArea {
		view.CircleOpacity = 1
	}

	for _, d := range m.districts {
		md := MapDistrict{
			ID:       d.ID,
			Name:     d.Name,
			Row:      d.Row,
			Col:      d.Col,
			X:        x0 + float64(d.Col)*cellW,
			Y:        y0 + float64(d.Row)*cellH,
			Width:    cellW - 1,
			Height:   cellH - 1,
			LandFill: winnerColor(d.Winner),
			CX:       x0 + (float64(d.Col)+0.5)*cellW,
			CY:       y0 + (float64(d.Row)+0.5)*cellH,
			Tooltip:  districtTooltip(d),
			Winner:   d.Winner,
			Voters:   d.Voters,
			Margin:   d.Margin,
			Region:   d.Region,
		}
		md.TargetX, md.TargetY = md.CX, md.CY
		switch m.mode {
		case ModeArea:
			md.CircleFill = winnerColor(d.Winner)
		case ModeEqualCircles:
			md.Radius = 10
			md.CircleFill = winnerColor(d.Winner)
		default:
			md.Radius = radius.at(math.Sqrt(d.Voters))
			md.CircleFill = marginColor(d.Winner, d.Margin)
		}
		switch m.mode {
		case ModeBeeswarm:
			md.TargetX, md.TargetY = marginX.at(d.Margin), mapHeight*0.55
		case ModeBeeswarmRegion:
			md.TargetX, md.TargetY = marginX.at(d.Margin), regionAt[d.Region]
		}
		view.Districts = append(view.Districts, md)
	}
	return view
}

func shares(districts []fixtures.District) []PartyShare {
	byWinner := map[string]*PartyShare{
		fixtures.WinnerA: {Party: MapPartyA},
		fixtures.WinnerB: {Party: MapPartyB},
	}
	var total float64
	for _, d := range districts {
		s := byWinner[d.Winner]
		s.Districts++
		s.Voters += d.Voters
		total += d.Voters
	}
	out := make([]PartyShare, 0, 2)
	for _, w := range []string{fixtures.WinnerA, fixtures.WinnerB} {
		s := *byWinner[w]
		if n := len(districts); n > 0 {
			s.LandShare = roundTo(float64(s.Districts)/float64(n)*100, 1)
		}
		if total > 0 {
			s.VoterShare = roundTo(s.Voters/total*100, 1)
		}
		out = append(out, s)
	}
	return out
}
