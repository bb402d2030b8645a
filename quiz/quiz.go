// Package quiz implements single-answer multiple choice questions. A Session
// accepts exactly one selection and then shows permanent feedback.
package quiz

import (
	"errors"
	"fmt"

	"github.com/phanxgames/surprise/trigger"
)

var (
	// ErrNoQuestion is returned when a definition has an empty question.
	ErrNoQuestion = errors.New("quiz has no question")
	// ErrTooFewOptions is returned when a definition has fewer than two options.
	ErrTooFewOptions = errors.New("quiz needs at least two options")
	// ErrNoCorrectOption is returned when no option is marked correct.
	ErrNoCorrectOption = errors.New("quiz has no correct option")
	// ErrMultipleCorrect is returned when more than one option is marked correct.
	ErrMultipleCorrect = errors.New("quiz has more than one correct option")
)

// Default feedback used when the chosen option carries no response.
const (
	DefaultCorrectFeedback   = "¡Correcto!"
	DefaultIncorrectFeedback = "Intenta de nuevo"
)

// Option is one possible answer.
type Option struct {
	Text     string `yaml:"text" json:"text"`
	Correct  bool   `yaml:"correct" json:"correct"`
	Response string `yaml:"response,omitempty" json:"response,omitempty"`
}

// Definition is an immutable question with its options in display order.
type Definition struct {
	Question string   `yaml:"question" json:"question"`
	Options  []Option `yaml:"options" json:"options"`
}

// Validate checks that the definition has a question, at least two options
// and exactly one correct option.
func (d Definition) Validate() error {
	if d.Question == "" {
		return ErrNoQuestion
	}
	if len(d.Options) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewOptions, len(d.Options))
	}
	switch n := d.countCorrect(); {
	case n == 0:
		return ErrNoCorrectOption
	case n > 1:
		return fmt.Errorf("%w: got %d", ErrMultipleCorrect, n)
	}
	return nil
}

func (d Definition) countCorrect() int {
	n := 0
	for _, o := range d.Options {
		if o.Correct {
			n++
		}
	}
	return n
}

// CorrectIndex returns the index of the first option marked correct, or -1.
func (d Definition) CorrectIndex() int {
	for i, o := range d.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}

// OptionState is how an option should be presented.
type OptionState uint8

const (
	Pending   OptionState = iota // not answered yet, selectable
	Neutral                      // answered, neither correct nor picked
	Correct                      // the correct option, shown after answering
	Incorrect                    // the picked option when it was wrong
)

func (s OptionState) String() string {
	switch s {
	case Neutral:
		return "neutral"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	}
	return "pending"
}

// Feedback is the message shown after answering.
type Feedback struct {
	Text    string
	Correct bool
}

// Fallbacks are the feedback texts used when an option has no response.
type Fallbacks struct {
	Correct   string
	Incorrect string
}

// DefaultFallbacks returns the built-in feedback texts.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{Correct: DefaultCorrectFeedback, Incorrect: DefaultIncorrectFeedback}
}

// Session is one presentation of a Definition. The first valid Select wins;
// there is no undo and no reset.
type Session struct {
	def       Definition
	fallbacks Fallbacks
	pick      trigger.Once[int]
}

// New validates d and starts a session with the default fallbacks.
func New(d Definition) (*Session, error) {
	return NewWithFallbacks(d, DefaultFallbacks())
}

// NewWithFallbacks validates d and starts a session. Empty fallback texts are
// replaced with the defaults.
func NewWithFallbacks(d Definition, fb Fallbacks) (*Session, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if fb.Correct == "" {
		fb.Correct = DefaultCorrectFeedback
	}
	if fb.Incorrect == "" {
		fb.Incorrect = DefaultIncorrectFeedback
	}
	opts := make([]Option, len(d.Options))
	copy(opts, d.Options)
	d.Options = opts
	return &Session{def: d, fallbacks: fb}, nil
}

// Definition returns the session's question.
func (s *Session) Definition() Definition {
	return s.def
}

// Select answers the quiz with option i. It reports whether this call
// recorded the answer: false once answered or when i is out of range.
func (s *Session) Select(i int) bool {
	if i < 0 || i >= len(s.def.Options) {
		return false
	}
	return s.pick.Fire(i)
}

// Answered reports whether an option has been selected.
func (s *Session) Answered() bool {
	return s.pick.Fired()
}

// Selected returns the selected index and whether the quiz is answered.
func (s *Session) Selected() (int, bool) {
	return s.pick.Value()
}

// Interactive reports whether option i can still be clicked.
func (s *Session) Interactive(i int) bool {
	return !s.Answered() && i >= 0 && i < len(s.def.Options)
}

// OptionState returns the presentation state of option i.
func (s *Session) OptionState(i int) OptionState {
	sel, answered := s.pick.Value()
	if !answered {
		return Pending
	}
	if i < 0 || i >= len(s.def.Options) {
		return Neutral
	}
	if s.def.Options[i].Correct {
		return Correct
	}
	if i == sel {
		return Incorrect
	}
	return Neutral
}

// Feedback returns the message for the chosen option, and false while
// unanswered.
func (s *Session) Feedback() (Feedback, bool) {
	sel, answered := s.pick.Value()
	if !answered {
		return Feedback{}, false
	}
	opt := s.def.Options[sel]
	fb := Feedback{Text: opt.Response, Correct: opt.Correct}
	if fb.Text == "" {
		if opt.Correct {
			fb.Text = s.fallbacks.Correct
		} else {
			fb.Text = s.fallbacks.Incorrect
		}
	}
	return fb, true
}
