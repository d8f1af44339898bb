// Package views renders the game's HTML as templ components.
package views

import (
	"context"
	"embed"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Static holds the stylesheet and the client glue script.
//
//go:embed static/*
var Static embed.FS

// writer accumulates the first write error so components can emit markup
// without checking every call.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *writer) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

func (h *writer) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *writer) render(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(h *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &writer{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

func itoa(i int) string { return strconv.Itoa(i) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func sessionPath(id, suffix string) string {
	return "/s/" + id + "/" + suffix
}

// button renders actionButton inline.
func button(h *writer, action, label, class string, enabled bool) {
	h.render(actionButton(action, label, class, enabled))
}
