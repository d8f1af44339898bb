package game

import (
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"misleadviz/internal/outcome"
	"misleadviz/internal/scenario"
)

// Slide panels.
const (
	PanelStory     = "story"
	PanelAxis      = "axis"
	PanelLive      = "live"
	PanelMap       = "map"
	PanelBins      = "bins"
	PanelImmediate = "immediate"
	PanelFeedNow   = "feed-now"
	PanelFeedLater = "feed-later"
	PanelDashboard = "dashboard"
)

const (
	defaultNextLabel = "Next ▶"
	startNextLabel   = "Start ▶"
	startSlideID     = "start"
)

var (
	ErrEmptyDeck    = errors.New("deck has no slides")
	ErrDuplicateID  = errors.New("duplicate slide id")
	ErrMissingID    = errors.New("slide without id")
	ErrUnknownSlide = errors.New("unknown slide")
	ErrEmptyReveal  = errors.New("reveal slide without steps")
)

//go:embed deck.yaml
var defaultDeck []byte

// Slide is one screen of the game.
type Slide struct {
	ID           string         `yaml:"id" json:"id"`
	Title        string         `yaml:"title" json:"title"`
	Panel        string         `yaml:"panel" json:"panel"`
	Steps        []outcome.Line `yaml:"steps" json:"steps"`
	Reveal       bool           `yaml:"reveal" json:"reveal"`
	NextDisabled bool           `yaml:"next_disabled" json:"nextDisabled"`
	NextLabel    string         `yaml:"next_label" json:"nextLabel,omitempty"`
	// Hook names the interactive scene set up when the slide is entered.
	Hook string `yaml:"hook" json:"hook,omitempty"`
	// Scene names the scene whose published outcome the panel shows.
	Scene string `yaml:"scene" json:"scene,omitempty"`
}

// Deck is the ordered, immutable list of slides.
type Deck struct {
	slides []Slide
	byID   map[string]int
}

type deckFile struct {
	Slides []Slide `yaml:"slides"`
}

// DefaultDeck parses the embedded deck. It panics on a malformed file since
// the file ships with the binary.
func DefaultDeck() *Deck {
	d, err := ParseDeck(defaultDeck)
	if err != nil {
		panic(fmt.Sprintf("embedded deck: %v", err))
	}
	return d
}

// LoadDeck reads a deck from r.
func LoadDeck(r io.Reader) (*Deck, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return ParseDeck(data)
}

// ParseDeck decodes and validates a YAML deck.
func ParseDeck(data []byte) (*Deck, error) {
	var f deckFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse deck: %w", err)
	}
	if len(f.Slides) == 0 {
		return nil, ErrEmptyDeck
	}
	d := &Deck{slides: f.Slides, byID: make(map[string]int, len(f.Slides))}
	for i, s := range f.Slides {
		if s.ID == "" {
			return nil, fmt.Errorf("%w at index %d", ErrMissingID, i)
		}
		if _, dup := d.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, s.ID)
		}
		if s.Reveal && len(s.Steps) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyReveal, s.ID)
		}
		if s.Scene != "" {
			if _, err := scenario.ParseKey(s.Scene); err != nil {
				return nil, fmt.Errorf("slide %q: %w", s.ID, err)
			}
		}
		d.byID[s.ID] = i
	}
	return d, nil
}

// Len is the number of slides.
func (d *Deck) Len() int { return len(d.slides) }

// At returns the slide at index i, which must be in range.
func (d *Deck) At(i int) Slide { return d.slides[i] }

// Slides returns a copy of the slide list.
func (d *Deck) Slides() []Slide {
	return append([]Slide(nil), d.slides...)
}

// Find returns the index of the slide with the given id.
func (d *Deck) Find(id string) (int, error) {
	i, ok := d.byID[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSlide, id)
	}
	return i, nil
}

// Immediate returns the index of the first slide showing the newsroom
// reaction to key.
func (d *Deck) Immediate(key scenario.Key) (int, bool) {
	for i, s := range d.slides {
		if s.Panel != PanelImmediate {
			continue
		}
		if k, err := scenario.ParseKey(s.Scene); err == nil && k == key {
			return i, true
		}
	}
	return 0, false
}

// NextLabel is the caption of the advance button on slide i.
func (d *Deck) NextLabel(i int) string {
	s := d.slides[i]
	if i == 0 || s.ID == startSlideID {
		return startNextLabel
	}
	if s.NextLabel != "" {
		return s.NextLabel
	}
	return defaultNextLabel
}
