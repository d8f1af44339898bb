package game

import (
	"misleadviz/internal/outcome"
	"misleadviz/internal/scenario"
)

// View is a read-only projection of the controller for renderers.
type View struct {
	Index      int   `json:"index"`
	Total      int   `json:"total"`
	Slide      Slide `json:"slide"`
	StepsShown int   `json:"stepsShown"`
	Revealing  bool  `json:"revealing"`

	PrevEnabled    bool   `json:"prevEnabled"`
	NextVisible    bool   `json:"nextVisible"`
	NextEnabled    bool   `json:"nextEnabled"`
	NextLabel      string `json:"nextLabel"`
	RestartVisible bool   `json:"restartVisible"`

	// Scene is set on slides that host or report on a scene.
	Scene     scenario.Key     `json:"scene,omitempty"`
	Decision  *outcome.Outcome `json:"decision,omitempty"`
	Dashboard *Dashboard       `json:"dashboard,omitempty"`
}

// Last reports whether the view is on the final slide.
func (v View) Last() bool { return v.Index == v.Total-1 }

// View projects the current slide and navigation state.
func (c *Controller) View() View {
	s := c.Current()
	last := c.current == c.deck.Len()-1
	revealing := c.revealing()
	v := View{
		Index:          c.current,
		Total:          c.deck.Len(),
		Slide:          s,
		StepsShown:     c.revealIndex,
		Revealing:      revealing,
		PrevEnabled:    c.current != 0,
		NextEnabled:    !s.NextDisabled && !last,
		NextLabel:      c.deck.NextLabel(c.current),
		RestartVisible: last,
	}
	v.NextVisible = v.NextEnabled && !revealing

	name := s.Scene
	if name == "" {
		name = s.Hook
	}
	if key, err := scenario.ParseKey(name); err == nil {
		v.Scene = key
		if o, ok := c.state.Decision(key); ok {
			v.Decision = &o
		}
	}
	if s.Panel == PanelDashboard {
		d := BuildDashboard(c.state)
		v.Dashboard = &d
	}
	return v
}
