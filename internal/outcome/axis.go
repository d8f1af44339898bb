package outcome

import (
	"fmt"
	"math"

	"misleadviz/internal/scenario"
)

// ExaggeratedSpan is the widest y range that still reads as a dramatic swing.
const ExaggeratedSpan = 22

// FrameFlag classifies a y range.
func FrameFlag(yMin, yMax float64) Flag {
	if yMax-yMin <= ExaggeratedSpan {
		return Exaggerated
	}
	return Balanced
}

// Axis scores the polling chart framing.
func Axis(s scenario.AxisSnapshot) Outcome {
	span := safeNum(s.YMax, 100) - safeNum(s.YMin, 0)
	flag := FrameFlag(safeNum(s.YMin, 0), safeNum(s.YMax, 100))
	o := Outcome{
		Scene:  scenario.KeyAxis,
		Flag:   flag,
		Title:  "Scene 1 - Framing the Polls",
		Detail: fmt.Sprintf("Y span: %d", int(math.Round(span))),
		Flags:  map[string]string{"flag_frame": string(flag)},
	}
	if flag == Exaggerated {
		o.Choice = "Truncated y-axis range"
		o.Immediate = []Line{
			editor("That swing looks HUGE."),
			editor("(quiet) This makes Green look like they're crashing."),
			wizard("What does the axis measure - and what might readers assume?"),
		}
		o.Now = []Post{
			post("📈", "pollwatcher", "1m", "WAIT Purple is surging??"),
			post("🟩", "greenstan", "2m", "Green is collapsing. It's over."),
			post("👀", "skeptic", "4m", "This feels off. What's the axis?"),
		}
		o.Later = []Post{
			post("🧵", "threadmaker", "3d", "They manipulated the y-axis. Here's the full scale."),
			post("🕵️", "conspiracypost", "4d", "Conspiracy: polls are being 'cooked'."),
		}
		return o
	}
	o.Choice = "Contextual y-axis range"
	o.Immediate = []Line{
		editor("Not dramatic but it's honest."),
		editor("We can still use it for comparison."),
		wizard("How could you clarify change without distorting scale?"),
	}
	o.Now = []Post{
		post("🧠", "statguy", "2m", "Ok small change, but this is clear."),
		post("📊", "chartnerd", "5m", "Scale makes it readable."),
		post("💬", "policywonk", "7m", "Cool. Now tell me why it moved."),
	}
	o.Later = []Post{
		post("✅", "localnews", "3d", "This chart aged well, baseline for later polls."),
		post("📌", "researcher", "5d", "Nice example of showing change without drama."),
	}
	return o
}
