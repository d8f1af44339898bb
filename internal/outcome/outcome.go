// Package outcome classifies a published scene and picks the narrative that
// follows it. Every evaluator is a pure function of its snapshot.
package outcome

import (
	"fmt"
	"math"

	"misleadviz/internal/scenario"
)

// Flag is the classification of one published scene.
type Flag string

const (
	Exaggerated Flag = "exaggerated"
	Balanced    Flag = "balanced"

	TooEarly Flag = "too_early"
	Ideal    Flag = "ideal"
	TooLate  Flag = "too_late"
	Missed   Flag = "missed"

	Misleading Flag = "misleading"
	Clarifying Flag = "clarifying"

	TooCoarse   Flag = "too_coarse"
	GoodBalance Flag = "good_balance"
	TooNoisy    Flag = "too_noisy"
)

// Dialogue sides.
const (
	SideLeft  = "left"
	SideRight = "right"
)

// Line is one dialogue bubble.
type Line struct {
	Speaker string `json:"speaker"`
	Side    string `json:"side"`
	Text    string `json:"text"`
}

// Post is one social feed card. Nil counters are filled in by the renderer.
type Post struct {
	Icon   string `json:"icon"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Time   string `json:"time"`
	Text   string `json:"text"`
	Reply  *int   `json:"reply,omitempty"`
	RT     *int   `json:"rt,omitempty"`
	Like   *int   `json:"like,omitempty"`
}

// Outcome is the classification of a scene plus its narrative.
type Outcome struct {
	Scene   scenario.Key      `json:"scene"`
	Flag    Flag              `json:"flag"`
	Correct bool              `json:"correct"`
	Title   string            `json:"title"`
	Choice  string            `json:"choice"`
	Detail  string            `json:"detail"`
	Flags   map[string]string `json:"flags"`

	Immediate []Line `json:"immediate"`
	Now       []Post `json:"now"`
	Later     []Post `json:"later"`
}

// Evaluate dispatches on the snapshot type.
func Evaluate(snapshot any) (Outcome, error) {
	switch s := snapshot.(type) {
	case scenario.AxisSnapshot:
		return Axis(s), nil
	case scenario.CallSnapshot:
		return Call(s), nil
	case scenario.MapSnapshot:
		return Map(s), nil
	case scenario.BinSnapshot:
		return Bins(s), nil
	}
	return Outcome{}, fmt.Errorf("%w: snapshot %T", scenario.ErrUnknownScene, snapshot)
}

func safeNum(x, fallback float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}

func editor(text string) Line { return Line{Speaker: "Editor", Side: SideLeft, Text: text} }
func wizard(text string) Line { return Line{Speaker: "Wizard", Side: SideLeft, Text: text} }

func post(icon, handle, time, text string) Post {
	return Post{Icon: icon, Name: handle, Handle: handle, Time: time, Text: text}
}
