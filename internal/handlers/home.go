package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"misleadviz/internal/game"
	"misleadviz/internal/viewmodel"
	"misleadviz/internal/views"
)

const (
	appTitle          = "Misleading by Design"
	sessionCookieName = "misleadviz_session"
)

type HomeHandler struct {
	store *game.Store
	log   *zap.Logger
}

func NewHomeHandler(store *game.Store, log *zap.Logger) *HomeHandler {
	return &HomeHandler{store: store, log: log}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/sessions", h.createSession)
}

// home resumes the player's game when the cookie still names a live session.
func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookieName); err == nil {
		if _, ok := h.store.GetSession(c.Value); ok {
			http.Redirect(w, r, "/s/"+c.Value+"/", http.StatusSeeOther)
			return
		}
	}
	render(w, r, views.HomePage(viewmodel.Home{Title: appTitle}))
}

func (h *HomeHandler) createSession(w http.ResponseWriter, r *http.Request) {
	sess := h.store.CreateSession()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	http.Redirect(w, r, "/s/"+sess.ID+"/", http.StatusSeeOther)
}
