package surprise

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	node := NewContainer("pos")
	node.X = 10
	node.Y = 20

	g := TweenPosition(node, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if g.Done {
		t.Fatal("Done too early")
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 || math.Abs(node.Y-200) > 0.5 {
		t.Errorf("position = (%f, %f), want ~(100, 200)", node.X, node.Y)
	}
}

func TestTweenScaleReachesTarget(t *testing.T) {
	node := NewContainer("scale")
	g := TweenScale(node, 2.0, 3.0, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.ScaleX-2.0) > 0.01 || math.Abs(node.ScaleY-3.0) > 0.01 {
		t.Errorf("scale = (%f, %f), want ~(2, 3)", node.ScaleX, node.ScaleY)
	}
}

func TestTweenAlphaMarksDirty(t *testing.T) {
	node := NewContainer("alpha")
	refreshTree(node)
	g := TweenAlpha(node, 0, 1.0, ease.Linear)
	g.Update(0.5)

	if math.Abs(node.Alpha-0.5) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.5", node.Alpha)
	}
	if !node.transformDirty {
		t.Error("tween should mark the node dirty")
	}
}

func TestTweenStopsOnDisposedNode(t *testing.T) {
	node := NewContainer("gone")
	node.X = 5
	g := TweenPosition(node, 100, 100, 1.0, ease.Linear)
	node.Dispose()
	g.Update(0.5)

	if !g.Done {
		t.Error("tween on a disposed node should finish")
	}
	if node.X != 5 {
		t.Errorf("X = %f, disposed node was written to", node.X)
	}
}

func TestTweenValue(t *testing.T) {
	v := 0.0
	g := TweenValue(&v, 10, 1, ease.Linear)
	g.Update(0.5)
	if math.Abs(v-5) > 0.01 {
		t.Errorf("v = %f, want ~5", v)
	}
	g.Update(0.5)
	if !g.Done || math.Abs(v-10) > 0.01 {
		t.Errorf("v = %f done=%v, want 10 and done", v, g.Done)
	}
	// Updates after Done are ignored.
	v = 3
	g.Update(1)
	if v != 3 {
		t.Errorf("finished tween wrote %f", v)
	}
}
