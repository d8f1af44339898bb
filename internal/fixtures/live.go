package fixtures

// Party is a side in the election-night scene.
type Party string

const (
	PartyPurple Party = "Purple Party"
	PartyGreen  Party = "Green Party"
)

// TrueWinner is the final result of the election-night scene.
const TrueWinner = PartyPurple

// Color returns the party's map color.
func (p Party) Color() string {
	if p == PartyPurple {
		return ColorPurple
	}
	return ColorGreen
}

// Valid reports whether p is one of the two parties.
func (p Party) Valid() bool {
	return p == PartyPurple || p == PartyGreen
}

// LiveSeconds is the length of the election-night broadcast.
const LiveSeconds = 60

// LiveStep is the reported state of the count at second T.
type LiveStep struct {
	T      int     `json:"t" yaml:"t"`
	Pct    float64 `json:"pct" yaml:"pct"`
	Purple float64 `json:"purple" yaml:"purple"`
	Green  float64 `json:"green" yaml:"green"`
}

// Leader returns the party ahead at this step. Ties go to purple.
func (s LiveStep) Leader() Party {
	if s.Purple >= s.Green {
		return PartyPurple
	}
	return PartyGreen
}

// LiveSeries returns one step per second from 0 to LiveSeconds inclusive.
// Early returns lean green, purple catches up and wins.
func LiveSeries() []LiveStep {
	steps := make([]LiveStep, 0, LiveSeconds+1)
	for t := 0; t <= LiveSeconds; t++ {
		f := float64(t) / LiveSeconds
		steps = append(steps, LiveStep{
			T:      t,
			Pct:    20 + 80*f,
			Purple: 44 + 10*f,
			Green:  56 - 10*f,
		})
	}
	return steps
}

// DistrictReport says when a district reports and who really won it.
type DistrictReport struct {
	ID         int     `json:"id" yaml:"id"`
	Row        int     `json:"row" yaml:"row"`
	Col        int     `json:"col" yaml:"col"`
	ReportAt   float64 `json:"reportAt" yaml:"reportAt"`
	TrueWinner Party   `json:"trueWinner" yaml:"trueWinner"`
	Noise      float64 `json:"noise" yaml:"noise"`
}

// DistrictReports derives the reporting model from the district grid.
// Thresholds fall between 15% and 90% reported.
func DistrictReports() []DistrictReport {
	districts := Districts()
	out := make([]DistrictReport, 0, len(districts))
	for _, d := range districts {
		winner := PartyGreen
		if d.Winner == WinnerA {
			winner = PartyPurple
		}
		out = append(out, DistrictReport{
			ID:         d.ID,
			Row:        d.Row,
			Col:        d.Col,
			ReportAt:   15 + Seeded(float64(d.ID)*13.7)*75,
			TrueWinner: winner,
			Noise:      Seeded(float64(d.ID) * 91.3),
		})
	}
	return out
}
