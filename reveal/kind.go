package reveal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phanxgames/surprise/quiz"
)

// ErrUnknownKind is returned by ParseKind for names it does not recognize.
var ErrUnknownKind = errors.New("unknown object kind")

// Kind selects the family and silhouette of an Object.
type Kind uint8

const (
	KindHeart     Kind = iota // easter egg drawn as a sphere
	KindStar                  // easter egg drawn as an octahedron
	KindGift                  // easter egg drawn as a cube
	KindButterfly             // easter egg drawn as a torus
	KindBox                   // gift box with ribbon and hinged lid
)

var kindNames = [...]string{"heart", "star", "gift", "butterfly", "box"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a name such as "heart" or "box" to its Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// IsEgg reports whether k is one of the hidden easter egg kinds.
func (k Kind) IsEgg() bool {
	return k <= KindButterfly
}

// Payload is the content revealed when an Object is discovered. Empty Image
// and Audio and a nil Quiz mean "none".
type Payload struct {
	Message string
	Image   string
	Audio   string
	Quiz    *quiz.Definition
}

// HasImage reports whether the payload carries an image reference.
func (p Payload) HasImage() bool { return p.Image != "" }

// HasAudio reports whether the payload carries an audio reference.
func (p Payload) HasAudio() bool { return p.Audio != "" }

// HasQuiz reports whether the payload carries a quiz.
func (p Payload) HasQuiz() bool { return p.Quiz != nil }

// clone returns a deep copy so that callers cannot mutate the payload held by
// an Object.
func (p Payload) clone() Payload {
	if p.Quiz != nil {
		q := *p.Quiz
		q.Options = append([]quiz.Option(nil), p.Quiz.Options...)
		p.Quiz = &q
	}
	return p
}
