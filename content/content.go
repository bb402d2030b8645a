// Package content loads the table of gift boxes and easter eggs that make up
// a surprise scene.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/quiz"
	"github.com/phanxgames/surprise/reveal"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrUnknownKind is returned for egg kinds other than heart, star, gift
	// and butterfly.
	ErrUnknownKind = errors.New("content: unknown egg kind")
	// ErrInvalidColor is returned for colors that are not #rgb or #rrggbb.
	ErrInvalidColor = errors.New("content: invalid color")
	// ErrInvalidSize is returned for boxes with a negative size.
	ErrInvalidSize = errors.New("content: box size must be positive")
	// ErrEmptyMessage is returned for objects without a message.
	ErrEmptyMessage = errors.New("content: empty message")
)

// Box is one gift box record.
type Box struct {
	Position    [3]float64       `yaml:"position"`
	Rotation    [3]float64       `yaml:"rotation"`
	Size        float64          `yaml:"size"`
	BoxColor    string           `yaml:"boxColor"`
	RibbonColor string           `yaml:"ribbonColor"`
	Float       bool             `yaml:"float"`
	Message     string           `yaml:"message"`
	Image       string           `yaml:"image"`
	Audio       string           `yaml:"audio"`
	Quiz        *quiz.Definition `yaml:"quiz"`
}

// Egg is one hidden easter egg record.
type Egg struct {
	Kind     string           `yaml:"kind"`
	Position [3]float64       `yaml:"position"`
	Message  string           `yaml:"message"`
	Image    string           `yaml:"image"`
	Audio    string           `yaml:"audio"`
	Quiz     *quiz.Definition `yaml:"quiz"`
}

// Table is the complete scene content.
type Table struct {
	Title    string   `yaml:"title"`
	Playlist []string `yaml:"playlist"`
	Boxes    []Box    `yaml:"boxes"`
	Eggs     []Egg    `yaml:"eggs"`
}

// Default returns the built-in table.
func Default() (*Table, error) {
	return Parse(defaultYAML)
}

// Load reads and validates a YAML table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML table. Unknown fields are rejected.
func Parse(data []byte) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate reports every problem in the table at once.
func (t *Table) Validate() error {
	var errs []error
	for i, b := range t.Boxes {
		if err := b.validate(); err != nil {
			errs = append(errs, fmt.Errorf("boxes[%d]: %w", i, err))
		}
	}
	for i, e := range t.Eggs {
		if err := e.validate(); err != nil {
			errs = append(errs, fmt.Errorf("eggs[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (b Box) validate() error {
	var errs []error
	if b.Size < 0 {
		errs = append(errs, fmt.Errorf("%w: %g", ErrInvalidSize, b.Size))
	}
	for _, c := range []string{b.BoxColor, b.RibbonColor} {
		if c == "" {
			continue
		}
		if _, err := surprise.ParseHexColor(c); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidColor, c))
		}
	}
	errs = append(errs, validatePayload(b.Message, b.Quiz)...)
	return errors.Join(errs...)
}

func (e Egg) validate() error {
	var errs []error
	k, err := reveal.ParseKind(e.Kind)
	if err != nil || !k.IsEgg() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind))
	}
	errs = append(errs, validatePayload(e.Message, e.Quiz)...)
	return errors.Join(errs...)
}

func validatePayload(msg string, q *quiz.Definition) []error {
	var errs []error
	if msg == "" {
		errs = append(errs, ErrEmptyMessage)
	}
	if q != nil {
		if err := q.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("quiz: %w", err))
		}
	}
	return errs
}

func vec(v [3]float64) surprise.Vec3 {
	return surprise.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func colorOr(s string, def surprise.Color) surprise.Color {
	if s == "" {
		return def
	}
	c, err := surprise.ParseHexColor(s)
	if err != nil {
		return def
	}
	return c
}

// Objects converts the table into reveal configurations, boxes first. The
// table must have passed Validate.
func (t *Table) Objects() []reveal.Config {
	out := make([]reveal.Config, 0, len(t.Boxes)+len(t.Eggs))
	for _, b := range t.Boxes {
		out = append(out, reveal.Config{
			Kind:        reveal.KindBox,
			Position:    vec(b.Position),
			Rotation:    vec(b.Rotation),
			Size:        b.Size,
			BoxColor:    colorOr(b.BoxColor, reveal.DefaultBoxColor),
			RibbonColor: colorOr(b.RibbonColor, reveal.DefaultRibbonColor),
			Float:       b.Float,
			Payload:     reveal.Payload{Message: b.Message, Image: b.Image, Audio: b.Audio, Quiz: b.Quiz},
		})
	}
	for _, e := range t.Eggs {
		k, _ := reveal.ParseKind(e.Kind)
		out = append(out, reveal.Config{
			Kind:     k,
			Position: vec(e.Position),
			Payload:  reveal.Payload{Message: e.Message, Image: e.Image, Audio: e.Audio, Quiz: e.Quiz},
		})
	}
	return out
}

// Images returns the distinct image references in table order.
func (t *Table) Images() []string {
	var refs []string
	seen := map[string]bool{}
	add := func(r string) {
		if r != "" && !seen[r] {
			seen[r] = true
			refs = append(refs, r)
		}
	}
	for _, b := range t.Boxes {
		add(b.Image)
	}
	for _, e := range t.Eggs {
		add(e.Image)
	}
	return refs
}
