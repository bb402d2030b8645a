package surprise

import (
	"math"
	"testing"
)

var (
	testViewport = Rect{Width: 800, Height: 600}
	testEye      = Vec3{Y: 2.5, Z: 6}
	testLookAt   = Vec3{Y: 0.3}
)

func TestProjectLookAtIsCentered(t *testing.T) {
	p := NewProjector(testEye, testLookAt, testViewport)
	pr, ok := p.Project(testLookAt)
	if !ok {
		t.Fatal("look-at point should project")
	}
	if !approx(pr.X, 400) || !approx(pr.Y, 300) {
		t.Errorf("look-at at (%v, %v), want (400, 300)", pr.X, pr.Y)
	}
	dist := math.Hypot(testEye.Y-testLookAt.Y, testEye.Z-testLookAt.Z)
	if !approx(pr.Depth, dist) {
		t.Errorf("Depth = %v, want %v", pr.Depth, dist)
	}
	focal := 300 / math.Tan(p.FOV/2)
	if !approx(pr.PixelsPerUnit, focal/dist) {
		t.Errorf("PixelsPerUnit = %v, want %v", pr.PixelsPerUnit, focal/dist)
	}
}

func TestProjectAxes(t *testing.T) {
	p := NewProjector(testEye, testLookAt, testViewport)
	right, _ := p.Project(Vec3{X: 1, Y: 0.3})
	up, _ := p.Project(Vec3{Y: 1.3})
	if right.X <= 400 {
		t.Errorf("+X projected to x=%v, want right of center", right.X)
	}
	if up.Y >= 300 {
		t.Errorf("+Y projected to y=%v, want above center", up.Y)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	p := NewProjector(testEye, testLookAt, testViewport)
	if _, ok := p.Project(Vec3{Y: 2.5, Z: 10}); ok {
		t.Error("point behind the eye should not project")
	}
}

func TestNearerIsLargerAndDrawnLater(t *testing.T) {
	p := NewProjector(testEye, testLookAt, testViewport)
	near, _ := p.Project(Vec3{Y: 0.3, Z: 3})
	far, _ := p.Project(Vec3{Y: 0.3, Z: -3})
	if near.PixelsPerUnit <= far.PixelsPerUnit {
		t.Error("nearer point should span more pixels per unit")
	}
	if DepthOrder(near.Depth) <= DepthOrder(far.Depth) {
		t.Error("nearer point should get a higher ZIndex")
	}
}

func TestViewportOffset(t *testing.T) {
	vp := Rect{X: 100, Y: 50, Width: 800, Height: 600}
	p := NewProjector(testEye, testLookAt, vp)
	pr, _ := p.Project(testLookAt)
	if !approx(pr.X, 500) || !approx(pr.Y, 350) {
		t.Errorf("center = (%v, %v), want (500, 350)", pr.X, pr.Y)
	}
}
