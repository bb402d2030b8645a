package surprise

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Script actions.
const (
	ActionClick      = "click"
	ActionHover      = "hover"
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
	ActionQuit       = "quit"
)

// ScriptStep is one action of a Script.
type ScriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// Script replays pointer input and screenshots across frames, for demos and
// visual checks without a human at the mouse. Attach it with Scene.SetScript.
type Script struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
	quit      bool
}

// ParseScript reads a script of the form {steps: [{action: click, x: 1, y: 2}]}.
// YAML and JSON are both accepted.
func ParseScript(data []byte) (*Script, error) {
	var doc struct {
		Steps []ScriptStep `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(doc.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range doc.Steps {
		switch st.Action {
		case ActionClick, ActionHover, ActionWait, ActionScreenshot, ActionQuit:
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: doc.Steps}, nil
}

// SetScript attaches a script to the scene. It advances at the start of every
// Step, before input is processed. Nil detaches.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. It returns ebiten.Termination once
// a quit step runs.
func (r *Script) step(s *Scene) error {
	if r.quit {
		return ebiten.Termination
	}
	if r.done {
		return nil
	}
	// Injected events drain before the next action.
	if len(s.injectQueue) > 0 {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case ActionClick:
		s.InjectClick(st.X, st.Y)
	case ActionHover:
		s.InjectHover(st.X, st.Y)
	case ActionScreenshot:
		s.Screenshot(st.Label)
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case ActionQuit:
		r.quit = true
		r.done = true
		return ebiten.Termination
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
	return nil
}
