package surprise

import "testing"

func TestInjectClickTakesTwoFrames(t *testing.T) {
	s := newHeadlessScene()
	n := addTarget(s, "n", 50, 50)
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }

	s.InjectClick(50, 50)
	if got := s.PendingInjections(); got != 2 {
		t.Fatalf("PendingInjections = %d, want 2", got)
	}
	stepN(t, s, 1)
	if got := s.PendingInjections(); got != 1 {
		t.Errorf("PendingInjections = %d after one frame, want 1", got)
	}
	if clicks != 0 {
		t.Error("click should not fire on press")
	}
	stepN(t, s, 1)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestProcessInjectedInputEmpty(t *testing.T) {
	s := newHeadlessScene()
	if s.processInjectedInput() {
		t.Error("empty queue should report no event")
	}
}

func TestInjectHoverNeverClicks(t *testing.T) {
	s := newHeadlessScene()
	n := addTarget(s, "n", 50, 50)
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }
	s.InjectHover(50, 50)
	s.InjectHover(50, 50)
	stepN(t, s, 2)
	if clicks != 0 {
		t.Errorf("hover produced %d clicks", clicks)
	}
}
