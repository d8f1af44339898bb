package outcome

import (
	"fmt"

	"misleadviz/internal/scenario"
)

// MapFlag classifies a map mode: only views that show population clarify.
func MapFlag(mode int) Flag {
	if mode < scenario.ModeSizedCircles {
		return Misleading
	}
	return Clarifying
}

// Map scores the land-vs-voters view.
func Map(s scenario.MapSnapshot) Outcome {
	flag := MapFlag(s.Mode)
	o := Outcome{
		Scene:  scenario.KeyMap,
		Flag:   flag,
		Title:  "Scene 3 - Land Doesn't Vote",
		Detail: fmt.Sprintf("View mode: %d", s.Mode),
		Flags:  map[string]string{"flag_map": string(flag)},
	}
	if flag == Clarifying {
		o.Choice = "Population-aware view"
		o.Immediate = []Line{
			editor("Nice, population is obvious now."),
			wizard("Good. Name the gap between land and voters."),
		}
		o.Now = []Post{
			post("🧠", "citykid", "now", "Ohhh cities are smaller but heavier."),
			post("📊", "mapreader", "now", "First map was misleading."),
		}
		o.Later = []Post{post("✅", "factcheck", "4d", "Landslide narrative loses steam.")}
		return o
	}
	o.Choice = "Area-only map"
	o.Immediate = []Line{
		editor("This screams GREEN landslide."),
		wizard("Does area equal voters?"),
	}
	o.Now = []Post{
		post("🟩", "landslide", "now", "Green won everywhere."),
		post("🧨", "rage", "now", "Purple must've cheated."),
	}
	o.Later = []Post{post("🧵", "threadmaker", "4d", "Conspiracy threads grow: 'Land = mandate.'")}
	return o
}
