package surprise

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		steps   int
		wantErr bool
	}{
		{"yaml", "steps:\n  - action: click\n    x: 10\n    y: 20\n  - action: quit\n", 2, false},
		{"json", `{"steps": [{"action": "wait", "frames": 3}, {"action": "screenshot", "label": "a"}]}`, 2, false},
		{"empty", "steps: []\n", 0, true},
		{"unknown action", "steps:\n  - action: drag\n", 0, true},
		{"malformed", "steps: [", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := ParseScript([]byte(tt.src))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(sc.steps) != tt.steps {
				t.Errorf("steps = %d, want %d", len(sc.steps), tt.steps)
			}
		})
	}
}

func TestParseScriptFields(t *testing.T) {
	sc, err := ParseScript([]byte("steps:\n  - action: click\n    x: 12.5\n    y: 7\n  - action: wait\n    frames: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	if st := sc.steps[0]; st.X != 12.5 || st.Y != 7 {
		t.Errorf("click = %+v", st)
	}
	if st := sc.steps[1]; st.Frames != 4 {
		t.Errorf("wait = %+v", st)
	}
}

func TestScriptReplay(t *testing.T) {
	s := newHeadlessScene()
	n := addTarget(s, "gift", 50, 50)
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }

	sc, err := ParseScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "wait", "frames": 2},
		{"action": "quit"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(sc)

	// click (2 frames) + wait (2 frames) + quit
	frames := 0
	for frames < 10 {
		frames++
		if err = s.Step(1.0 / 60); err != nil {
			break
		}
	}
	if !errors.Is(err, ebiten.Termination) {
		t.Fatalf("err = %v, want ebiten.Termination", err)
	}
	if frames != 5 {
		t.Errorf("quit on frame %d, want 5", frames)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if !sc.Done() {
		t.Error("script should be done")
	}
	if err := s.Step(1.0 / 60); !errors.Is(err, ebiten.Termination) {
		t.Error("a quit script keeps terminating")
	}
}

func TestScriptHover(t *testing.T) {
	s := newHeadlessScene()
	n := addTarget(s, "egg", 50, 50)
	sc, err := ParseScript([]byte("steps:\n  - action: hover\n    x: 50\n    y: 50\n"))
	if err != nil {
		t.Fatal(err)
	}
	s.SetScript(sc)
	stepN(t, s, 2)
	if s.HoveredNode() != n {
		t.Error("hover step should hover the node")
	}
	if !sc.Done() {
		t.Error("script should be done")
	}
}

func TestScriptScreenshotQueued(t *testing.T) {
	src := []byte("steps:\n  - action: screenshot\n    label: opened box\n")

	s := newHeadlessScene()
	sc, _ := ParseScript(src)
	s.SetScript(sc)
	stepN(t, s, 1)
	if got := s.PendingScreenshots(); got != 0 {
		t.Errorf("queued %d screenshots without a directory", got)
	}

	s = newHeadlessScene()
	s.ScreenshotDir = t.TempDir()
	sc, _ = ParseScript(src)
	s.SetScript(sc)
	stepN(t, s, 1)
	if got := s.PendingScreenshots(); got != 1 {
		t.Errorf("PendingScreenshots = %d, want 1", got)
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"opened box", "opened_box"},
		{"  ", "unlabeled"},
		{"quiz-1.final", "quiz-1.final"},
		{"a/b\\c", "a_b_c"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
