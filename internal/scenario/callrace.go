package scenario

import (
	"fmt"
	"math"

	"misleadviz/internal/fixtures"
)

// CallSnapshot is the player's election-night call, if any.
type CallSnapshot struct {
	DidCall bool           `json:"didCall"`
	Picked  fixtures.Party `json:"picked,omitempty"`
	TimeSec float64        `json:"timeSec"`
	Pct     float64        `json:"pct"`
}

// Announcer is a rival broadcaster that calls the race at a fixed second.
type Announcer struct {
	Name   string         `json:"name"`
	At     int            `json:"at"`
	Called fixtures.Party `json:"called"`
}

// Announcers in broadcast order.
var Announcers = []Announcer{
	{Name: "BBT", At: 20, Called: fixtures.PartyGreen},
	{Name: "ABG", At: 40, Called: fixtures.PartyPurple},
}

// announcerVisibleFor is how long an announcer banner stays on screen.
const announcerVisibleFor = 5

// CallRace is the 60-second live results scene. It does not own a timer:
// the caller starts it, feeds it one Tick per second and stops feeding it
// once Tick reports the end of the series.
type CallRace struct {
	series  []fixtures.LiveStep
	reports []fixtures.DistrictReport

	next    int
	running bool
	ended   bool
	called  bool
	picked  fixtures.Party
	current fixtures.LiveStep
	status  string
}

// NewCallRace builds the scene waiting behind its start overlay.
func NewCallRace() *CallRace {
	c := &CallRace{
		series:  fixtures.LiveSeries(),
		reports: fixtures.DistrictReports(),
	}
	c.Reset()
	return c
}

// Init resets the scene; it is what entering the slide does.
func (c *CallRace) Init() {
	c.Reset()
}

// Reset puts the scene back behind the start overlay.
func (c *CallRace) Reset() {
	c.next = 0
	c.running = false
	c.ended = false
	c.called = false
	c.picked = ""
	c.current = c.series[len(c.series)-1]
	c.status = ""
}

// Steps is the number of Tick calls after Start needed to reach the end.
func (c *CallRace) Steps() int {
	return len(c.series)
}

// Start leaves the overlay and shows the first second of results.
func (c *CallRace) Start() error {
	if c.running {
		return ErrAlreadyRunning
	}
	c.Reset()
	c.running = true
	c.render()
	return nil
}

// Running reports whether results are still coming in.
func (c *CallRace) Running() bool {
	return c.running
}

// Ended reports whether the broadcast ran to the end.
func (c *CallRace) Ended() bool {
	return c.ended
}

// Called reports whether the player made a call.
func (c *CallRace) Called() bool {
	return c.called
}

// Tick shows the next second of results. It returns true once, when the
// series is exhausted and the scene stops.
func (c *CallRace) Tick() bool {
	if !c.running {
		return false
	}
	if c.next >= len(c.series) {
		c.running = false
		c.ended = true
		if !c.called {
			c.status = "Time's up - you didn't call."
		}
		return true
	}
	c.render()
	return false
}

func (c *CallRace) render() {
	c.current = c.series[c.next]
	c.next++
}

// Call locks in a winner at the current second.
func (c *CallRace) Call(p fixtures.Party) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownParty, p)
	}
	if c.called {
		return ErrAlreadyCalled
	}
	if !c.running {
		return ErrNotRunning
	}
	c.called = true
	c.picked = p
	c.running = false
	c.status = fmt.Sprintf("You called: %s at %ds", p, c.current.T)
	return nil
}

// Hold acknowledges the player is waiting for more data.
func (c *CallRace) Hold() error {
	if !c.running {
		return ErrNotRunning
	}
	c.status = "You're ready. Call a winner when you decide."
	return nil
}

// Snapshot reads the call as it stands. Until the scene starts the clock
// reads the full 60 seconds.
func (c *CallRace) Snapshot() CallSnapshot {
	return CallSnapshot{
		DidCall: c.called,
		Picked:  c.picked,
		TimeSec: float64(c.current.T),
		Pct:     c.current.Pct,
	}
}

// LiveDistrict is a district tile on the live map.
type LiveDistrict struct {
	ID   int    `json:"id"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Fill string `json:"fill"`
}

// LiveView is the live results panel at the current second.
type LiveView struct {
	Clock      string         `json:"clock"`
	Second     int            `json:"second"`
	Pct        int            `json:"pct"`
	Split      string         `json:"split"`
	Leader     string         `json:"leader"`
	Running    bool           `json:"running"`
	Ended      bool           `json:"ended"`
	Called     bool           `json:"called"`
	CanCall    bool           `json:"canCall"`
	Overlay    bool           `json:"overlay"`
	Status     string         `json:"status"`
	Announcers []Announcer    `json:"announcers"`
	Districts  []LiveDistrict `json:"districts"`
}

// districtFill ramps a district from grey to its winner's color once the
// count passes its reporting threshold.
func districtFill(r fixtures.DistrictReport, pct float64) string {
	if pct < r.ReportAt {
		return fixtures.ColorGrey
	}
	t := (pct - r.ReportAt) / (100 - r.ReportAt)
	return mixColor(fixtures.ColorGrey, r.TrueWinner.Color(), math.Max(0.15, math.Min(1, t)))
}

// Live renders the panel. Behind the overlay nothing has reported yet.
func (c *CallRace) Live() LiveView {
	started := c.running || c.ended || c.called
	step := c.current
	if !started {
		step = c.series[0]
	}
	view := LiveView{
		Clock:     formatClock(step.T) + " / " + formatClock(fixtures.LiveSeconds),
		Second:    step.T,
		Pct:       jsRound(step.Pct),
		Split:     fmt.Sprintf("%s %.1f%% · %s %.1f%%", fixtures.PartyPurple, step.Purple, fixtures.PartyGreen, step.Green),
		Leader:    string(step.Leader()) + " leads",
		Running:   c.running,
		Ended:     c.ended,
		Called:    c.called,
		CanCall:   c.running && !c.called,
		Overlay:   !started,
		Status:    c.status,
		Districts: make([]LiveDistrict, 0, len(c.reports)),
	}
	for _, a := range Announcers {
		if started && step.T >= a.At && step.T < a.At+announcerVisibleFor {
			view.Announcers = append(view.Announcers, a)
		}
	}
	for _, r := range c.reports {
		fill := fixtures.ColorGrey
		if started {
			fill = districtFill(r, step.Pct)
		}
		view.Districts = append(view.Districts, LiveDistrict{ID: r.ID, Row: r.Row, Col: r.Col, Fill: fill})
	}
	return view
}
