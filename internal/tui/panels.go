package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"misleadviz/internal/game"
	"misleadviz/internal/scenario"
	"misleadviz/internal/viewmodel"
)

const barWidth = 30

func (m *Model) bubble(b viewmodel.Bubble) string {
	style := m.styles.bubble
	if b.Right {
		style = m.styles.player
	}
	line := style.Render(m.styles.title.UnsetMarginBottom().Render(b.Speaker) + ": " + b.Text)
	if b.Right {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, line)
	}
	return line
}

func (m *Model) panel(s viewmodel.Slide) string {
	switch s.Panel {
	case game.PanelAxis:
		return m.axisPanel()
	case game.PanelMap:
		return m.mapPanel()
	case game.PanelBins:
		return m.binsPanel()
	case game.PanelLive:
		return m.livePanel(s.Widgets.Live)
	case game.PanelImmediate:
		var b strings.Builder
		for _, l := range s.Bubbles {
			b.WriteString(m.bubble(l))
			b.WriteString("\n")
		}
		return b.String()
	case game.PanelFeedNow, game.PanelFeedLater:
		return m.feed(s.Posts)
	case game.PanelDashboard:
		return m.dashboard(s)
	}
	return ""
}

func (m *Model) feed(posts []viewmodel.Post) string {
	var b strings.Builder
	for _, p := range posts {
		head := fmt.Sprintf("%s %s @%s · %s", p.Icon, p.Name, p.Handle, p.Time)
		counters := m.styles.muted.Render(fmt.Sprintf("↩ %d  ⟳ %d  ♥ %d", p.Reply, p.RT, p.Like))
		b.WriteString(m.styles.post.Render(head + "\n" + p.Text + "\n" + counters))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) dashboard(s viewmodel.Slide) string {
	if len(s.Cards) == 0 {
		return m.styles.card.Render(s.EmptyTitle + "\n" + m.styles.muted.Render(s.EmptyHint))
	}
	var b strings.Builder
	for _, c := range s.Cards {
		body := m.styles.title.UnsetMarginBottom().Render(c.Title) + "\n" + c.Choice + "\n" + m.styles.muted.Render(c.Detail)
		for _, f := range c.Flags {
			body += "\n" + f.Key + ": " + m.styles.flag.Render(f.Value)
		}
		b.WriteString(m.styles.card.Render(body))
		b.WriteString("\n")
	}
	return b.String()
}

func bar(v, lo, hi float64) string {
	if hi <= lo {
		return ""
	}
	n := int((v - lo) / (hi - lo) * barWidth)
	n = max(0, min(barWidth, n))
	return strings.Repeat("█", n)
}

func (m *Model) axisPanel() string {
	ch := m.ctrl.Axis().Chart()
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  y: %s\n", ch.Title, ch.RangeLabel, ch.YLabel)
	for i, year := range ch.Labels {
		fmt.Fprintf(&b, "%d\n", year)
		for _, ds := range ch.Datasets {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(ds.BackgroundColor))
			fmt.Fprintf(&b, "  %-14s %s %.1f\n", ds.Label, style.Render(bar(ds.Data[i], ch.YMin, ch.YMax)), ds.Data[i])
		}
	}
	return b.String()
}

func (m *Model) mapPanel() string {
	v := m.ctrl.LandMap().View()
	var b strings.Builder
	fmt.Fprintf(&b, "View %d/%d: %s\n\n", v.Mode+1, len(scenario.ModeLabels), v.Label)
	grid := map[[2]int]string{}
	rows, cols := 0, 0
	for _, d := range v.Districts {
		fill := d.LandFill
		if v.CircleOpacity > v.LandOpacity {
			fill = d.CircleFill
		}
		grid[[2]int{d.Row, d.Col}] = fill
		rows = max(rows, d.Row+1)
		cols = max(cols, d.Col+1)
	}
	writeGrid(&b, grid, rows, cols)
	b.WriteString("\n")
	for _, s := range v.Shares {
		fmt.Fprintf(&b, "%s: %d districts, %.0f%% of land, %.0f%% of voters\n", s.Party, s.Districts, s.LandShare, s.VoterShare)
	}
	return b.String()
}

func (m *Model) binsPanel() string {
	h := m.ctrl.Bins().Chart()
	var b strings.Builder
	fmt.Fprintf(&b, "%s  (%d bins)\n", h.Title, h.BinCount)
	for _, bin := range h.Bins {
		fmt.Fprintf(&b, "%-22s n=%-4d", bin.Label, bin.Count)
		if bin.MeanJenny != nil && bin.MeanMatthew != nil {
			fmt.Fprintf(&b, " %s %4.1f%%  %s %4.1f%%",
				m.styles.purple.Render(h.Candidates[0]), *bin.MeanJenny,
				m.styles.green.Render(h.Candidates[1]), *bin.MeanMatthew)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) livePanel(v scenario.LiveView) string {
	var b strings.Builder
	if v.Overlay {
		b.WriteString(m.styles.card.Render("Press s to start the live count"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s  %d%% reporting\n%s  %s\n", v.Clock, v.Pct, v.Split, v.Leader)
	if v.Status != "" {
		b.WriteString(m.styles.muted.Render(v.Status))
		b.WriteString("\n")
	}
	for _, a := range v.Announcers {
		fmt.Fprintf(&b, "📺 %s calls it for %s\n", a.Name, a.Called)
	}
	grid := map[[2]int]string{}
	rows, cols := 0, 0
	for _, d := range v.Districts {
		grid[[2]int{d.Row, d.Col}] = d.Fill
		rows = max(rows, d.Row+1)
		cols = max(cols, d.Col+1)
	}
	writeGrid(&b, grid, rows, cols)
	return b.String()
}

func writeGrid(b *strings.Builder, grid map[[2]int]string, rows, cols int) {
	for r := range rows {
		for c := range cols {
			if fill, ok := grid[[2]int{r, c}]; ok {
				b.WriteString(swatch(fill))
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
}

func (m *Model) help(s viewmodel.Slide) string {
	keys := []string{"←/→ navigate", "q quit"}
	switch s.Panel {
	case game.PanelAxis:
		keys = append(keys, "↑/↓ y min", "pgup/pgdn y max", "enter publish")
	case game.PanelMap:
		keys = append(keys, "↑/↓ view", "enter publish")
	case game.PanelBins:
		keys = append(keys, "↑/↓ bins", "enter publish")
	case game.PanelLive:
		keys = append(keys, "s start", "p purple", "g green", "w wait")
	case game.PanelDashboard:
		keys = append(keys, "r restart")
	}
	return strings.Join(keys, " · ")
}
