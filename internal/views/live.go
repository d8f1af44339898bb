package views

import (
	"github.com/a-h/templ"

	"misleadviz/internal/fixtures"
	"misleadviz/internal/scenario"
)

// LivePanel renders election night: the start overlay, the clock, the
// district grid and the call buttons.
func LivePanel(sessionID string, v scenario.LiveView) templ.Component {
	return component(func(h *writer) {
		if v.Overlay {
			h.raw(`<div class="overlay"><p>Results are about to come in.</p>`)
			button(h, sessionPath(sessionID, "call/start"), "Start", "primary", true)
			h.raw(`</div>`)
		}
		h.raw(`<div class="live-head"><span class="clock">`)
		h.text(v.Clock)
		h.raw(`</span> <span class="reported">`, itoa(v.Pct), `% reported</span> <span class="split">`)
		h.text(v.Split)
		h.raw(`</span> <span class="leader">`)
		h.text(v.Leader)
		h.raw(`</span></div>`)
		for _, a := range v.Announcers {
			h.raw(`<div class="announcer">`)
			h.text(a.Name + " calls it for " + string(a.Called))
			h.raw(`</div>`)
		}
		h.raw(`<svg class="grid" viewBox="0 0 `, itoa(fixtures.GridCols*40), ` `, itoa(fixtures.GridRows*40), `">`)
		for _, d := range v.Districts {
			h.raw(`<rect x="`, itoa(d.Col*40), `" y="`, itoa(d.Row*40), `" width="38" height="38" fill="`, esc(d.Fill), `"></rect>`)
		}
		h.raw(`</svg>`)
		if v.Status != "" {
			h.raw(`<p class="status">`)
			h.text(v.Status)
			h.raw(`</p>`)
		}
		h.raw(`<div class="call-buttons">`)
		for _, p := range []fixtures.Party{fixtures.PartyPurple, fixtures.PartyGreen} {
			button(h, sessionPath(sessionID, "call/"+partySlug(p)), "Call "+string(p), "call", v.CanCall)
		}
		button(h, sessionPath(sessionID, "call/hold"), "Wait for more data", "hold", v.CanCall)
		h.raw(`</div>`)
	})
}

func partySlug(p fixtures.Party) string {
	if p == fixtures.PartyPurple {
		return "purple"
	}
	return "green"
}
