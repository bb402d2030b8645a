package surprise

import (
	"math"
	"testing"
)

func TestLightFadeIn(t *testing.T) {
	ll := NewLightLayer()
	l := &Light{Radius: 40, Intensity: 1}
	l.FadeIn(0.5)
	ll.AddLight(l)

	if !l.Enabled || l.Fade != 0 {
		t.Fatalf("after FadeIn: enabled=%v fade=%v", l.Enabled, l.Fade)
	}
	ll.update(0.25)
	if l.Fade <= 0 || l.Fade >= 1 {
		t.Errorf("Fade = %v halfway, want in (0, 1)", l.Fade)
	}
	ll.update(0.25)
	if math.Abs(l.Fade-1) > 1e-3 {
		t.Errorf("Fade = %v, want 1", l.Fade)
	}
	if l.fadeTween != nil {
		t.Error("finished fade tween should be released")
	}
}

func TestLightFollowsTarget(t *testing.T) {
	ll := NewLightLayer()
	target := NewShape("t", ShapeRect, 10, 10, ColorWhite)
	target.SetPosition(100, 100)
	refreshTree(target)

	l := &Light{Target: target, OffsetX: 5, OffsetY: -3}
	ll.AddLight(l)
	ll.update(0)

	if !approx(l.X, 105) || !approx(l.Y, 97) {
		t.Errorf("light at (%v, %v), want (105, 97)", l.X, l.Y)
	}
}

func TestLightDroppedWithTarget(t *testing.T) {
	ll := NewLightLayer()
	target := NewContainer("t")
	kept := &Light{}
	ll.AddLight(&Light{Target: target})
	ll.AddLight(kept)

	target.Dispose()
	ll.update(0)
	if got := ll.Lights(); len(got) != 1 || got[0] != kept {
		t.Errorf("lights = %v, want only the untargeted light", got)
	}
}

func TestRemoveLight(t *testing.T) {
	ll := NewLightLayer()
	a, b := &Light{}, &Light{}
	ll.AddLight(a)
	ll.AddLight(b)
	ll.RemoveLight(a)
	ll.RemoveLight(&Light{})
	if got := ll.Lights(); len(got) != 1 || got[0] != b {
		t.Errorf("lights = %v, want [b]", got)
	}
}

func TestSceneUpdatesLights(t *testing.T) {
	s := newHeadlessScene()
	n := addTarget(s, "n", 50, 60)
	l := &Light{Target: n}
	s.Lights().AddLight(l)
	stepN(t, s, 1)
	if !approx(l.X, 50) || !approx(l.Y, 60) {
		t.Errorf("light at (%v, %v), want (50, 60)", l.X, l.Y)
	}
}
