package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"misleadviz/internal/fixtures"
	"misleadviz/internal/game"
	"misleadviz/internal/scenario"
	"misleadviz/internal/viewmodel"
	"misleadviz/internal/views"
)

var errCallPublish = errors.New("the call scene is published by calling the race")

type sessionKey struct{}

type SessionHandler struct {
	store   *game.Store
	log     *zap.Logger
	metrics *Metrics
	baseURL string
}

func NewSessionHandler(store *game.Store, log *zap.Logger, metrics *Metrics, baseURL string) *SessionHandler {
	return &SessionHandler{store: store, log: log, metrics: metrics, baseURL: baseURL}
}

// RegisterRoutes mounts page and action routes. Streams are mounted by
// RegisterStream so they can skip the request timeout.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/s/{id}", func(r chi.Router) {
		r.Use(h.loadSession)
		r.Get("/", h.page)
		r.Get("/slide", h.slideFragment)
		r.Get("/chart/{scene}", h.chart)

		r.Group(func(r chi.Router) {
			r.Use(h.throttle)
			r.Post("/next", h.next)
			r.Post("/back", h.back)
			r.Post("/tap", h.tap)
			r.Post("/restart", h.restart)
			r.Post("/goto/{index}", h.goTo)
			r.Post("/axis", h.axis)
			r.Post("/bins", h.bins)
			r.Post("/bins/edges", h.binEdges)
			r.Post("/map", h.landMap)
			r.Post("/publish/{scene}", h.publish)
			r.Post("/call/start", h.callStart)
			r.Post("/call/hold", h.callHold)
			r.Post("/call/{party}", h.call)
		})
	})
}

// RegisterStream mounts the server-sent event stream.
func (h *SessionHandler) RegisterStream(r chi.Router) {
	r.With(h.loadSession).Get("/s/{id}/stream", h.stream)
}

func (h *SessionHandler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := h.store.GetSession(chi.URLParam(r, "id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func (h *SessionHandler) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !sessionFrom(r).Allow() {
			h.metrics.Throttled()
			http.Error(w, "too many actions", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFrom(r *http.Request) *game.Session {
	return r.Context().Value(sessionKey{}).(*game.Session)
}

func (h *SessionHandler) page(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var slide viewmodel.Slide
	sess.Do(func(c *game.Controller) { slide = viewmodel.FromController(sess.ID, c) })
	render(w, r, views.GamePage(viewmodel.Page{
		Title:     appTitle,
		SessionID: sess.ID,
		ShareURL:  buildShareURL(h.baseURL, r, sess.ID),
		Slide:     slide,
	}))
}

func (h *SessionHandler) slideFragment(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	var slide viewmodel.Slide
	sess.Do(func(c *game.Controller) { slide = viewmodel.FromController(sess.ID, c) })
	render(w, r, views.SlideFragment(slide))
}

// act runs fn under the session lock and answers with the new slide: a
// fragment for htmx requests, a redirect to the page otherwise.
func (h *SessionHandler) act(w http.ResponseWriter, r *http.Request, fn func(c *game.Controller) error) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var (
		err   error
		slide viewmodel.Slide
	)
	sess.Do(func(c *game.Controller) {
		err = fn(c)
		slide = viewmodel.FromController(sess.ID, c)
	})
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("action failed", zap.String("session", sess.ID), zap.String("path", r.URL.Path), zap.Error(err))
		}
		http.Error(w, err.Error(), status)
		return
	}
	h.store.Publish(sess.ID, game.EventSlide)
	if r.Header.Get("Hx-Request") == "true" {
		render(w, r, views.SlideFragment(slide))
		return
	}
	http.Redirect(w, r, "/s/"+sess.ID+"/", http.StatusSeeOther)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrAdvanceDisabled),
		errors.Is(err, game.ErrBackDisabled),
		errors.Is(err, game.ErrNotDashboard),
		errors.Is(err, game.ErrNotOnScene),
		errors.Is(err, game.ErrCountdownIdle),
		errors.Is(err, scenario.ErrAlreadyCalled),
		errors.Is(err, scenario.ErrAlreadyRunning),
		errors.Is(err, scenario.ErrNotRunning),
		errors.Is(err, errCallPublish):
		return http.StatusConflict
	case errors.Is(err, scenario.ErrUnknownScene),
		errors.Is(err, game.ErrUnknownSlide):
		return http.StatusNotFound
	case errors.Is(err, scenario.ErrUnknownParty),
		errors.Is(err, scenario.ErrEdgeCount):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *SessionHandler) next(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error { return c.Advance() })
}

func (h *SessionHandler) back(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error { return c.Back() })
}

func (h *SessionHandler) tap(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error {
		c.Tap()
		return nil
	})
}

func (h *SessionHandler) restart(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error { return c.Restart() })
}

func (h *SessionHandler) goTo(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error {
		c.GoTo(parseInt(chi.URLParam(r, "index"), c.Index()))
		return nil
	})
}

func (h *SessionHandler) axis(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error {
		cur := c.Axis().Snapshot()
		c.Axis().SetX(parseInt(r.FormValue("x_min"), cur.XMinIndex), parseInt(r.FormValue("x_max"), cur.XMaxIndex))
		c.Axis().SetY(parseFloat(r.FormValue("y_min"), cur.YMin), parseFloat(r.FormValue("y_max"), cur.YMax))
		return nil
	})
}

func (h *SessionHandler) bins(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error {
		c.Bins().SetCount(parseInt(r.FormValue("bins"), c.Bins().Snapshot().BinCount))
		return nil
	})
}

// binEdges takes the inner boundaries as repeated edge values. Unparseable
// handles keep their position.
func (h *SessionHandler) binEdges(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error {
		raw := r.Form["edge"]
		inner := make([]float64, 0, len(raw))
		for _, v := range raw {
			inner = append(inner, parseFloat(v, math.NaN()))
		}
		return c.Bins().SetInnerEdges(inner)
	})
}

func (h *SessionHandler) landMap(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error {
		c.LandMap().SetMode(parseInt(r.FormValue("mode"), c.LandMap().Snapshot().Mode))
		return nil
	})
}

func (h *SessionHandler) publish(w http.ResponseWriter, r *http.Request) {
	key, err := scenario.ParseKey(chi.URLParam(r, "scene"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	h.act(w, r, func(c *game.Controller) error {
		if key == scenario.KeyCall {
			return errCallPublish
		}
		_, err := c.Publish(key)
		return err
	})
}

func (h *SessionHandler) callStart(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error { return c.StartCall() })
}

func (h *SessionHandler) callHold(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *game.Controller) error { return c.Hold() })
}

func (h *SessionHandler) call(w http.ResponseWriter, r *http.Request) {
	party, err := parseParty(chi.URLParam(r, "party"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	h.act(w, r, func(c *game.Controller) error {
		_, err := c.Call(party)
		return err
	})
}

func parseParty(s string) (fixtures.Party, error) {
	switch strings.ToLower(s) {
	case "purple", strings.ToLower(string(fixtures.PartyPurple)):
		return fixtures.PartyPurple, nil
	case "green", strings.ToLower(string(fixtures.PartyGreen)):
		return fixtures.PartyGreen, nil
	}
	return "", scenario.ErrUnknownParty
}

// chart serves the data the client-side chart library draws.
func (h *SessionHandler) chart(w http.ResponseWriter, r *http.Request) {
	key, err := scenario.ParseKey(chi.URLParam(r, "scene"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	var payload any
	sessionFrom(r).Do(func(c *game.Controller) {
		switch key {
		case scenario.KeyAxis:
			payload = c.Axis().Chart()
		case scenario.KeyCall:
			payload = c.CallRace().Live()
		case scenario.KeyMap:
			payload = c.LandMap().View()
		case scenario.KeyBins:
			payload = c.Bins().Chart()
		}
	})
	writeJSON(w, payload)
}

func (h *SessionHandler) stream(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	hub, ok := h.store.Broadcaster(sess.ID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	send := func(includeSlide bool) {
		var slide viewmodel.Slide
		sess.Do(func(c *game.Controller) { slide = viewmodel.FromController(sess.ID, c) })
		if includeSlide {
			writeSSE(w, string(game.EventSlide), renderToString(r, views.SlideFragment(slide)))
		} else if slide.Widgets.LiveActive {
			writeSSE(w, string(game.EventLive), renderToString(r, views.LivePanel(sess.ID, slide.Widgets.Live)))
		}
		flusher.Flush()
	}

	send(true)

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				return
			}
			send(event == game.EventSlide)
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func buildShareURL(baseURL string, r *http.Request, id string) string {
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		return strings.TrimRight(baseURL, "/") + "/s/" + id + "/"
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/s/" + id + "/"
}
