package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"misleadviz/internal/game"
	"misleadviz/internal/scenario"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *game.Store
}

func newTestServer(t *testing.T, cfg game.StoreConfig) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Hour
	}
	cfg.Observer = metrics
	store := game.NewStore(cfg)
	metrics.TrackSessions(store)
	h, err := NewRouter(Deps{Store: store, Metrics: metrics, Gatherer: reg})
	require.NoError(t, err)
	return &testServer{t: t, handler: h, store: store}
}

func (s *testServer) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("Hx-Request", "true")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) newSession() string {
	sess := s.store.CreateSession()
	return sess.ID
}

func slideIndex(t *testing.T, id string) int {
	t.Helper()
	i, err := game.DefaultDeck().Find(id)
	require.NoError(t, err)
	return i
}

func TestHome_RendersForm(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	rec := s.do(http.MethodGet, "/", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/sessions"`)
}

func TestCreateSession_RedirectsAndResumes(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	rec := s.do(http.MethodPost, "/sessions", nil, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/s/"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, loc, rec.Header().Get("Location"))

	page := s.do(http.MethodGet, loc, nil, false)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), `data-slide="start"`)
}

func TestUnknownSession(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/s/nope/", nil, false).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/s/nope/next", nil, true).Code)
}

func TestNext_FragmentOrRedirect(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	id := s.newSession()

	rec := s.do(http.MethodPost, "/s/"+id+"/next", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-slide="s1-intro"`)

	rec = s.do(http.MethodPost, "/s/"+id+"/back", nil, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/s/"+id+"/", rec.Header().Get("Location"))
}

func TestNext_DisabledIsConflict(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	id := s.newSession()
	i := slideIndex(t, "s1-interact")
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/s/"+id+"/goto/"+strconv.Itoa(i), nil, true).Code)

	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/s/"+id+"/next", nil, true).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/s/"+id+"/restart", nil, true).Code)
}

func TestAxisPublishFlow(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	id := s.newSession()
	base := "/s/" + id + "/"
	s.do(http.MethodPost, base+"goto/"+strconv.Itoa(slideIndex(t, "s1-interact")), nil, true)

	rec := s.do(http.MethodPost, base+"axis", url.Values{"y_min": {"60"}, "y_max": {"80"}, "x_min": {"bogus"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="y_min" min="0" max="85" step="1" value="60"`)

	rec = s.do(http.MethodPost, base+"publish/axis", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-slide="s1-immediate"`)
	assert.Contains(t, rec.Body.String(), "That swing looks HUGE.")

	s.do(http.MethodPost, base+"goto/999", nil, true)
	rec = s.do(http.MethodGet, base+"slide", nil, false)
	assert.Contains(t, rec.Body.String(), "Truncated y-axis range")
	assert.Contains(t, rec.Body.String(), "exaggerated")

	metrics := s.do(http.MethodGet, "/metrics", nil, false).Body.String()
	assert.Contains(t, metrics, `misleadviz_publishes_total{flag="exaggerated",scene="scene1"} 1`)
	assert.Contains(t, metrics, `misleadviz_sessions_active 1`)
	assert.Contains(t, metrics, `misleadviz_slide_views_total{slide="s1-immediate"} 1`)
}

func TestPublish_Errors(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	id := s.newSession()
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/s/"+id+"/publish/call", nil, true).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/s/"+id+"/publish/pie", nil, true).Code)
}

func TestPublish_OffSceneIsConflict(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	id := s.newSession()
	base := "/s/" + id + "/"

	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, base+"publish/bins", nil, true).Code)

	s.do(http.MethodPost, base+"goto/"+strconv.Itoa(slideIndex(t, "s1-interact")), nil, true)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, base+"publish/map", nil, true).Code)

	s.do(http.MethodPost, base+"goto/999", nil, true)
	rec := s.do(http.MethodGet, base+"slide", nil, false)
	assert.Contains(t, rec.Body.String(), game.EmptyDashboardTitle)
}

func TestBins_CountAndEdges(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	id := s.newSession()
	base := "/s/" + id + "/"

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, base+"bins", url.Values{"bins": {"12"}}, true).Code)
	rec := s.do(http.MethodGet, base+"chart/bins", nil, false)
	var hist scenario.Histogram
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hist))
	assert.Equal(t, scenario.MaxBins, hist.BinCount)

	rec = s.do(http.MethodPost, base+"bins/edges", url.Values{"edge": {"1", "2"}}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "eight bins need seven handles")
}

func TestCall_Routes(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	id := s.newSession()
	base := "/s/" + id + "/"

	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, base+"call/start", nil, true).Code)
	s.do(http.MethodPost, base+"goto/"+strconv.Itoa(slideIndex(t, "scene2-live")), nil, true)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, base+"call/orange", nil, true).Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, base+"call/hold", nil, true).Code)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, base+"call/start", nil, true).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, base+"call/hold", nil, true).Code)
	rec := s.do(http.MethodPost, base+"call/purple", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-slide="s2-immediate"`)

	sess, ok := s.store.GetSession(id)
	require.True(t, ok)
	sess.Do(func(c *game.Controller) {
		o, ok := c.State().Decision(scenario.KeyCall)
		require.True(t, ok)
		assert.True(t, o.Correct)
		assert.False(t, c.CountdownRunning())
	})
}

func TestThrottle(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{ActionRate: 0.001, ActionBurst: 1})
	id := s.newSession()
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/s/"+id+"/tap", nil, true).Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(http.MethodPost, "/s/"+id+"/tap", nil, true).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/s/"+id+"/slide", nil, false).Code, "reads are not throttled")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	rec := s.do(http.MethodGet, "/healthz", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatic(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	rec := s.do(http.MethodGet, "/static/app.js", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "misleadvizDraw")
}

func TestStream_SendsSlideFirst(t *testing.T) {
	s := newTestServer(t, game.StoreConfig{})
	id := s.newSession()
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/s/"+id+"/stream", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: slide\n", line)
}
