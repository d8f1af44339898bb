package outcome

import (
	"fmt"

	"misleadviz/internal/fixtures"
	"misleadviz/internal/scenario"
)

// Timing bands of the election-night call, in seconds.
const (
	IdealFrom = 20
	LateFrom  = 40
)

// CallBand classifies the second a call was made at.
func CallBand(t float64) Flag {
	switch {
	case t < IdealFrom:
		return TooEarly
	case t < LateFrom:
		return Ideal
	default:
		return TooLate
	}
}

// uncertaintyFlag is the dashboard wording of a band. Not calling at all
// counts as late: the clock ran out.
func uncertaintyFlag(f Flag) string {
	switch f {
	case TooEarly:
		return "rushed"
	case Ideal:
		return "timely"
	default:
		return "late"
	}
}

// Call scores the election-night call.
func Call(s scenario.CallSnapshot) Outcome {
	t := safeNum(s.TimeSec, fixtures.LiveSeconds)
	flag := Missed
	if s.DidCall {
		flag = CallBand(t)
	}
	correct := s.DidCall && s.Picked == fixtures.TrueWinner

	o := Outcome{
		Scene:   scenario.KeyCall,
		Flag:    flag,
		Correct: correct,
		Title:   "Scene 2 - Call the Race",
		Choice:  "Did not call",
		Detail:  "Time ran out",
		Flags:   map[string]string{"flag_uncertainty": uncertaintyFlag(flag)},
	}
	if s.DidCall {
		o.Choice = "Called: " + string(s.Picked)
		o.Detail = fmt.Sprintf("Time: %.1fs", t)
	}

	switch flag {
	case Missed:
		o.Immediate = []Line{
			editor("We missed the moment."),
			wizard("No decision is still a decision."),
		}
		o.Now = []Post{
			post("📺", "livetv", "now", "ABG already called it."),
			post("🙃", "viewer", "now", "Why so slow?"),
		}
		o.Later = []Post{
			post("🗓️", "archive", "3d", "Nobody remembers your broadcast. The story moved on."),
		}
	case TooLate:
		o.Immediate = []Line{
			editor(fmt.Sprintf("You called %s after the big broadcasts.", s.Picked)),
			wizard("Timing shapes impact."),
		}
		o.Now = []Post{
			post("😴", "scrolling", "now", "Already saw this."),
			post("📉", "metrics", "now", "Too late. Engagement tanks."),
		}
		o.Later = []Post{
			post("🗓️", "archive", "4d", "Even if you're right, your clip is buried."),
		}
	case TooEarly:
		o.Immediate = []Line{
			editor("We're first, but this is risky."),
			wizard("What evidence did you have, and what didn't you have?"),
		}
		o.Now = []Post{
			post("🔥", "breaking", "now", "They called it already??"),
			post("👀", "doubt", "now", "Risky, are they sure?"),
		}
		later := "Your call was wrong. Trust takes a hit."
		if correct {
			later = "You end up right, but people debate how reckless it felt."
		}
		o.Later = []Post{post("✅", "recap", "3d", later)}
	default:
		o.Immediate = []Line{
			editor("Ok - we're taking a stance."),
			wizard("Nice timing. Now explain uncertainty clearly."),
		}
		o.Now = []Post{
			post("📢", "livetweet", "now", fmt.Sprintf("BBT says Green Party (Matthew), but this channel says %s.", s.Picked)),
			post("🧠", "nerd", "now", "They waited for more data."),
		}
		later := "As the count finalizes, the call doesn't hold."
		if correct {
			later = "As the count finalizes, your call holds up."
		}
		o.Later = []Post{post("✅", "finalcount", "3d", later)}
	}
	return o
}
