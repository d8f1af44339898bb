package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"misleadviz/internal/fixtures"
	"misleadviz/internal/game"
	"misleadviz/internal/scenario"
	"misleadviz/internal/viewmodel"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestSlideFragment_RevealHidesLaterSteps(t *testing.T) {
	c := game.NewController(nil)
	require.NoError(t, c.GoToID("s1-intro"))
	html := renderString(t, SlideFragment(viewmodel.FromController("sid", c)))

	assert.Equal(t, 1, bytes.Count([]byte(html), []byte(`step bubble left show`)))
	assert.Contains(t, html, `class="slide panel-story revealing"`)
	assert.Contains(t, html, `/s/sid/tap`)
	assert.NotContains(t, html, `/s/sid/next`, "next stays hidden until every step is shown")
}

func TestSlideFragment_EscapesText(t *testing.T) {
	s := viewmodel.Slide{
		SessionID: "sid",
		Title:     `<script>alert(1)</script>`,
		Panel:     game.PanelStory,
		Total:     1,
	}
	html := renderString(t, SlideFragment(s))
	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestSlideFragment_FeedCounters(t *testing.T) {
	c := game.NewController(nil)
	require.NoError(t, c.GoToID("s3-interact"))
	_, err := c.Publish(scenario.KeyMap)
	require.NoError(t, err)
	require.NoError(t, c.GoToID("s3-feed-now"))
	html := renderString(t, SlideFragment(viewmodel.FromController("sid", c)))

	for _, want := range []string{"Replies 8 ", "Reposts 34 ", "Likes 120", "Replies 15 ", "Reposts 45 ", "Likes 157"} {
		assert.Contains(t, html, want)
	}
	assert.Contains(t, html, "@landslide")
}

func TestSlideFragment_DashboardPlaceholder(t *testing.T) {
	c := game.NewController(nil)
	c.GoTo(c.Deck().Len() - 1)
	html := renderString(t, SlideFragment(viewmodel.FromController("sid", c)))

	assert.Contains(t, html, "No decisions recorded")
	assert.Contains(t, html, "/s/sid/restart")
}

func TestSlideFragment_Widgets(t *testing.T) {
	c := game.NewController(nil)
	require.NoError(t, c.GoToID("s4-interact"))
	html := renderString(t, SlideFragment(viewmodel.FromController("sid", c)))
	assert.Contains(t, html, `name="bins"`)
	assert.Equal(t, 2, bytes.Count([]byte(html), []byte(`name="edge"`)))
	assert.Contains(t, html, `data-chart="/s/sid/chart/scene4"`)
	assert.Contains(t, html, `/s/sid/publish/scene4`)
}

func TestLivePanel_Overlay(t *testing.T) {
	race := scenario.NewCallRace()
	html := renderString(t, LivePanel("sid", race.Live()))
	assert.Contains(t, html, "/s/sid/call/start")
	assert.Equal(t, fixtures.GridRows*fixtures.GridCols, bytes.Count([]byte(html), []byte("<rect ")))
	assert.Contains(t, html, `/s/sid/call/purple`)
}

func TestHomePage(t *testing.T) {
	html := renderString(t, HomePage(viewmodel.Home{Title: "Misleading by Design"}))
	assert.Contains(t, html, `action="/sessions"`)
	assert.Contains(t, html, "<title>Misleading by Design</title>")
}

func TestGamePage_StreamAndNav(t *testing.T) {
	c := game.NewController(nil)
	html := renderString(t, GamePage(viewmodel.Page{
		Title:     "Misleading by Design",
		SessionID: "sid",
		ShareURL:  "http://example.test/s/sid/",
		Slide:     viewmodel.FromController("sid", c),
	}))

	assert.Contains(t, html, `sse-connect="/s/sid/stream"`)
	assert.Contains(t, html, `value="http://example.test/s/sid/"`)
	assert.Contains(t, html, `<form method="post" action="/s/sid/back" hx-post="/s/sid/back"`)
	assert.Contains(t, html, `class="nav-prev" disabled>`)
	assert.Contains(t, html, `action="/s/sid/next"`)
	assert.NotContains(t, html, `action="/s/sid/restart"`)
}
