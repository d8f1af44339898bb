package views

import (
	"fmt"

	"github.com/a-h/templ"

	"misleadviz/internal/game"
	"misleadviz/internal/scenario"
	"misleadviz/internal/viewmodel"
)

// SlideFragment renders the current slide with its navigation.
func SlideFragment(s viewmodel.Slide) templ.Component {
	return component(func(h *writer) {
		class := "slide panel-" + s.Panel
		if s.Revealing {
			class += " revealing"
		}
		h.raw(`<section id="slide" class="`, esc(class), `" data-slide="`, esc(s.ID),
			`" data-session="`, esc(s.SessionID), `" data-scene="`, esc(s.Scene), `">`)
		h.raw(`<header><h2>`)
		h.text(s.Title)
		h.raw(`</h2><span class="progress">`, itoa(s.Index+1), ` / `, itoa(s.Total), `</span></header>`)
		if len(s.Steps) > 0 {
			h.raw(`<div class="steps">`)
			bubbles(h, s.Steps)
			h.raw(`</div>`)
		}
		h.raw(`<div class="panel">`)
		switch s.Panel {
		case game.PanelAxis:
			axisPanel(h, s)
		case game.PanelLive:
			h.raw(`<div id="live" sse-swap="live" hx-swap="innerHTML">`)
			h.render(LivePanel(s.SessionID, s.Widgets.Live))
			h.raw(`</div>`)
		case game.PanelMap:
			mapPanel(h, s)
		case game.PanelBins:
			binsPanel(h, s)
		case game.PanelImmediate:
			if s.Published {
				bubbles(h, s.Bubbles)
			} else {
				notPublished(h)
			}
		case game.PanelFeedNow, game.PanelFeedLater:
			if s.Published {
				feed(h, s.Posts)
			} else {
				notPublished(h)
			}
		case game.PanelDashboard:
			dashboard(h, s)
		}
		h.raw(`</div>`)
		h.render(slideNav(s))
		h.raw(`</section>`)
	})
}

func avatar(speaker string) string {
	switch speaker {
	case "Editor":
		return "🧑‍💼"
	case "Wizard":
		return "🧙"
	case "You":
		return "🧑‍💻"
	}
	return ""
}

func bubbles(h *writer, lines []viewmodel.Bubble) {
	for _, b := range lines {
		side := "left"
		if b.Right {
			side = "right"
		}
		show := ""
		if b.Shown {
			show = " show"
		}
		h.raw(`<div class="scene-row `, side, `">`)
		if a := avatar(b.Speaker); a != "" {
			h.raw(`<span class="avatar" aria-hidden="true">`, a, `</span>`)
		}
		h.raw(`<div class="step bubble `, side, show, `">`)
		if b.Speaker != "" {
			h.raw(`<strong>`)
			h.text(b.Speaker)
			h.raw(`:</strong> `)
		}
		h.text(b.Text)
		h.raw(`</div></div>`)
	}
}

func feed(h *writer, posts []viewmodel.Post) {
	h.raw(`<div class="feed">`)
	for _, p := range posts {
		h.raw(`<article class="post"><div class="post-head"><div class="post-avatar">`)
		h.text(p.Icon)
		h.raw(`</div><div class="post-meta"><span class="post-name">`)
		h.text(p.Name)
		h.raw(`</span> <span class="post-handle">@`)
		h.text(p.Handle)
		h.raw(`</span> <span class="post-time">· `)
		h.text(p.Time)
		h.raw(`</span></div></div><div class="post-text">`)
		h.text(p.Text)
		h.raw(`</div><div class="post-actions">`)
		h.raw(fmt.Sprintf("💬 Replies %d | 🔁 Reposts %d | ❤️ Likes %d", p.Reply, p.RT, p.Like))
		h.raw(`</div></article>`)
	}
	h.raw(`</div>`)
}

func notPublished(h *writer) {
	h.raw(`<p class="muted">Nothing published for this scene yet.</p>`)
}

func dashboard(h *writer, s viewmodel.Slide) {
	h.raw(`<div id="dashboard">`)
	if len(s.Cards) == 0 {
		h.raw(`<div class="dash-card"><h3>`)
		h.text(s.EmptyTitle)
		h.raw(`</h3><div class="dash-meta">`)
		h.text(s.EmptyHint)
		h.raw(`</div></div></div>`)
		return
	}
	for _, c := range s.Cards {
		h.raw(`<div class="dash-card"><h3>`)
		h.text(c.Title)
		h.raw(`</h3><div class="dash-meta"><strong>You published:</strong> `)
		h.text(c.Choice)
		h.raw(`</div><div class="dash-meta">`)
		h.text(c.Detail)
		h.raw(`</div><div class="flag-row">`)
		for i, f := range c.Flags {
			if i > 0 {
				h.raw(` · `)
			}
			h.raw(`<span><strong>`)
			h.text(f.Key)
			h.raw(`</strong>: `)
			h.text(f.Value)
			h.raw(`</span>`)
		}
		h.raw(`</div></div>`)
	}
	h.raw(`</div>`)
}

// widgetForm opens a form that posts control changes and swaps the slide.
func widgetForm(h *writer, action string) {
	h.raw(`<form class="widget" method="post" action="`, esc(action), `" hx-post="`, esc(action),
		`" hx-trigger="change" hx-target="#slide" hx-swap="outerHTML">`)
}

func rangeInput(h *writer, name, label string, lo, hi, step, value float64) {
	h.raw(`<label>`)
	h.text(label)
	h.raw(` <input type="range" name="`, esc(name), `" min="`, ftoa(lo), `" max="`, ftoa(hi),
		`" step="`, ftoa(step), `" value="`, ftoa(value), `"></label>`)
}

func chart(h *writer, s viewmodel.Slide, key scenario.Key) {
	h.raw(`<div class="chart" data-chart="`, esc(sessionPath(s.SessionID, "chart/"+string(key))), `"></div>`)
}

func publish(h *writer, s viewmodel.Slide, key scenario.Key) {
	button(h, sessionPath(s.SessionID, "publish/"+string(key)), "Publish", "publish primary", true)
}

func axisPanel(h *writer, s viewmodel.Slide) {
	a := s.Widgets.Axis
	last := float64(len(s.Widgets.Years) - 1)
	chart(h, s, scenario.KeyAxis)
	widgetForm(h, sessionPath(s.SessionID, "axis"))
	rangeInput(h, "x_min", "From", 0, last, 1, float64(a.XMinIndex))
	rangeInput(h, "x_max", "To", 0, last, 1, float64(a.XMaxIndex))
	rangeInput(h, "y_min", "Y min", scenario.AxisYMinAllowed, scenario.AxisYMaxAllowed, 1, a.YMin)
	rangeInput(h, "y_max", "Y max", scenario.AxisYMinAllowed, scenario.AxisYMaxAllowed, 1, a.YMax)
	h.raw(`<noscript><button type="submit">Apply</button></noscript></form>`)
	publish(h, s, scenario.KeyAxis)
}

func mapPanel(h *writer, s viewmodel.Slide) {
	mode := s.Widgets.MapMode
	chart(h, s, scenario.KeyMap)
	widgetForm(h, sessionPath(s.SessionID, "map"))
	rangeInput(h, "mode", "View", 0, float64(len(s.Widgets.MapLabels)-1), 1, float64(mode))
	if mode >= 0 && mode < len(s.Widgets.MapLabels) {
		h.raw(`<span class="mode-label">`)
		h.text(s.Widgets.MapLabels[mode])
		h.raw(`</span>`)
	}
	h.raw(`<noscript><button type="submit">Apply</button></noscript></form>`)
	publish(h, s, scenario.KeyMap)
}

func binsPanel(h *writer, s viewmodel.Slide) {
	b := s.Widgets.Bins
	chart(h, s, scenario.KeyBins)
	widgetForm(h, sessionPath(s.SessionID, "bins"))
	h.raw(`<label>Bins <input type="number" name="bins" min="`, itoa(s.Widgets.MinBins), `" max="`,
		itoa(s.Widgets.MaxBins), `" value="`, itoa(b.BinCount), `"></label>`)
	h.raw(`<noscript><button type="submit">Apply</button></noscript></form>`)
	if len(b.Edges) > 2 {
		lo, hi := b.Edges[0], b.Edges[len(b.Edges)-1]
		widgetForm(h, sessionPath(s.SessionID, "bins/edges"))
		for i, e := range b.Edges[1 : len(b.Edges)-1] {
			rangeInput(h, "edge", "Boundary "+itoa(i+1), lo, hi, scenario.BinStep, e)
		}
		h.raw(`<noscript><button type="submit">Apply</button></noscript></form>`)
	}
	publish(h, s, scenario.KeyBins)
}
