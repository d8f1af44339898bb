// Package viewmodel holds the data the HTML and terminal renderers consume,
// built from the controller's view.
package viewmodel

import (
	"misleadviz/internal/fixtures"
	"misleadviz/internal/game"
	"misleadviz/internal/outcome"
	"misleadviz/internal/scenario"
)

// Home holds data for the landing page.
type Home struct {
	Title string
}

// Page holds data for the full game page.
type Page struct {
	Title     string
	SessionID string
	ShareURL  string
	Slide     Slide
}

// Nav is the state of the navigation buttons.
type Nav struct {
	PrevEnabled    bool
	NextVisible    bool
	NextEnabled    bool
	NextLabel      string
	RestartVisible bool
}

// Bubble is one dialogue line.
type Bubble struct {
	Speaker string
	Right   bool
	Text    string
	Shown   bool
}

// Post is a feed card with every counter filled in.
type Post struct {
	Icon   string
	Name   string
	Handle string
	Time   string
	Text   string
	Reply  int
	RT     int
	Like   int
}

// Flag is one dashboard flag.
type Flag struct {
	Key   string
	Value string
}

// Card is one dashboard entry.
type Card struct {
	Title  string
	Choice string
	Detail string
	Flags  []Flag
}

// Slide holds data for the slide fragment.
type Slide struct {
	SessionID string
	ID        string
	Title     string
	Panel     string
	Scene     string
	Index     int
	Total     int
	Revealing bool
	Steps     []Bubble
	Nav       Nav

	// Reaction panels. Published is false until the scene is published.
	Published bool
	Bubbles   []Bubble
	Posts     []Post

	Cards      []Card
	EmptyTitle string
	EmptyHint  string

	Widgets Widgets
}

// Widgets is the live state of the interactive controls on screen.
type Widgets struct {
	Years      []int
	Axis       scenario.AxisSnapshot
	MapMode    int
	MapLabels  []string
	Bins       scenario.BinSnapshot
	MinBins    int
	MaxBins    int
	Live       scenario.LiveView
	LiveActive bool
}

// Default feed counters for post index i when the post carries none.
func defaultReply(i int) int { return 8 + (i*7)%17 }
func defaultRT(i int) int    { return 34 + (i*11)%41 }
func defaultLike(i int) int  { return 120 + (i*37)%160 }

func orDefault(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

// Feed fills in missing counters and default icon and time.
func Feed(posts []outcome.Post) []Post {
	out := make([]Post, 0, len(posts))
	for i, p := range posts {
		icon := p.Icon
		if icon == "" {
			icon = "👤"
		}
		when := p.Time
		if when == "" {
			when = "now"
		}
		out = append(out, Post{
			Icon:   icon,
			Name:   p.Name,
			Handle: p.Handle,
			Time:   when,
			Text:   p.Text,
			Reply:  orDefault(p.Reply, defaultReply(i)),
			RT:     orDefault(p.RT, defaultRT(i)),
			Like:   orDefault(p.Like, defaultLike(i)),
		})
	}
	return out
}

// Bubbles converts dialogue lines; the first shown of them are visible.
func Bubbles(lines []outcome.Line, shown int) []Bubble {
	out := make([]Bubble, 0, len(lines))
	for i, l := range lines {
		out = append(out, Bubble{
			Speaker: l.Speaker,
			Right:   l.Side == outcome.SideRight,
			Text:    l.Text,
			Shown:   i < shown,
		})
	}
	return out
}

// FromView builds the slide fragment for a session.
func FromView(sessionID string, v game.View) Slide {
	s := Slide{
		SessionID: sessionID,
		ID:        v.Slide.ID,
		Title:     v.Slide.Title,
		Panel:     v.Slide.Panel,
		Scene:     string(v.Scene),
		Index:     v.Index,
		Total:     v.Total,
		Revealing: v.Revealing,
		Steps:     Bubbles(v.Slide.Steps, v.StepsShown),
		Nav: Nav{
			PrevEnabled:    v.PrevEnabled,
			NextVisible:    v.NextVisible,
			NextEnabled:    v.NextEnabled,
			NextLabel:      v.NextLabel,
			RestartVisible: v.RestartVisible,
		},
		EmptyTitle: game.EmptyDashboardTitle,
		EmptyHint:  game.EmptyDashboardHint,
	}
	if d := v.Decision; d != nil {
		s.Published = true
		switch v.Slide.Panel {
		case game.PanelImmediate:
			s.Bubbles = Bubbles(d.Immediate, len(d.Immediate))
		case game.PanelFeedNow:
			s.Posts = Feed(d.Now)
		case game.PanelFeedLater:
			s.Posts = Feed(d.Later)
		}
	}
	if v.Dashboard != nil {
		for _, c := range v.Dashboard.Cards {
			card := Card{Title: c.Title, Choice: c.Choice, Detail: c.Detail}
			for _, f := range c.Flags {
				card.Flags = append(card.Flags, Flag{Key: f.Key, Value: f.Value})
			}
			s.Cards = append(s.Cards, card)
		}
	}
	return s
}

// FromController builds the slide fragment including widget state. The
// caller holds the session lock.
func FromController(sessionID string, c *game.Controller) Slide {
	s := FromView(sessionID, c.View())
	s.Widgets = Widgets{
		Years:     fixtures.PollingYears,
		Axis:      c.Axis().Snapshot(),
		MapMode:   c.LandMap().Snapshot().Mode,
		MapLabels: scenario.ModeLabels,
		Bins:      c.Bins().Snapshot(),
		MinBins:   scenario.MinBins,
		MaxBins:   scenario.MaxBins,
	}
	if s.Panel == game.PanelLive {
		s.Widgets.Live = c.CallRace().Live()
		s.Widgets.LiveActive = true
	}
	return s
}
