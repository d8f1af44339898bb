package outcome

import (
	"fmt"

	"misleadviz/internal/scenario"
)

// AggregationFlag classifies a bin count after clamping it to [1, 8].
func AggregationFlag(k int) Flag {
	k = scenario.ClampBinCount(k)
	switch {
	case k <= 2:
		return TooCoarse
	case k >= 7:
		return TooNoisy
	default:
		return GoodBalance
	}
}

// Bins scores the income histogram aggregation.
func Bins(s scenario.BinSnapshot) Outcome {
	k := scenario.ClampBinCount(s.BinCount)
	flag := AggregationFlag(k)
	o := Outcome{
		Scene:  scenario.KeyBins,
		Flag:   flag,
		Title:  "Scene 4 - Aggregation",
		Choice: fmt.Sprintf("Bin count: %d", k),
		Flags:  map[string]string{"flag_aggregation": string(flag)},
	}
	switch flag {
	case TooCoarse:
		o.Detail = "Too coarse: hides the mid-range reversal"
		o.Immediate = []Line{
			editor("Clean, but it feels like it's hiding something."),
			wizard("Aggregation can erase turning points."),
		}
		o.Now = []Post{post("😌", "simplifier", "now", "So income predicts everything.")}
		o.Later = []Post{post("🧵", "threadmaker", "5d", "Over-generalizations spread: 'one rule explains voters.'")}
	case TooNoisy:
		o.Detail = "Too many bins: invites over-reading noise"
		o.Immediate = []Line{
			editor("This looks jumpy."),
			wizard("When does detail become noise?"),
		}
		o.Now = []Post{post("😵", "confused", "now", "Why does it zig-zag?")}
		o.Later = []Post{post("📉", "dropoff", "5d", "Readers stop trusting because it feels arbitrary.")}
	default:
		o.Detail = "Balanced: shows structure without overfitting"
		o.Immediate = []Line{
			editor("Nice. This actually explains the pattern."),
			wizard("Good. Now describe what flips where."),
		}
		o.Now = []Post{post("🧠", "reader", "now", "Oh wow, the middle income group flips.")}
		o.Later = []Post{post("✅", "explainer", "5d", "People cite your chart in longer explainers.")}
	}
	return o
}
