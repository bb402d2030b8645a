package surprise

import (
	"testing"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewShapeDefaults(t *testing.T) {
	c := Color{1, 0, 0, 1}
	n := NewShape("box", ShapeRect, 40, 20, c)
	assertNodeDefaults(t, n, "box", NodeTypeShape)
	if n.Color != c {
		t.Errorf("Color = %v, want %v", n.Color, c)
	}
	if n.PivotX != 20 || n.PivotY != 10 {
		t.Errorf("Pivot = (%v, %v), want center (20, 10)", n.PivotX, n.PivotY)
	}
}

func TestNewImageNil(t *testing.T) {
	n := NewImage("img", nil)
	if n.Type != NodeTypeImage {
		t.Errorf("Type = %d, want %d", n.Type, NodeTypeImage)
	}
	if n.Width != 0 || n.Height != 0 {
		t.Errorf("size = (%v, %v), want zero for nil image", n.Width, n.Height)
	}
}

func TestNewTextDefaults(t *testing.T) {
	n := NewText("text", "hola", nil)
	if n.Type != NodeTypeText {
		t.Errorf("Type = %d, want %d", n.Type, NodeTypeText)
	}
	if n.Text == nil || n.Text.Content != "hola" {
		t.Fatal("text block not set")
	}
	if n.Text.Color != ColorWhite {
		t.Errorf("text Color = %v, want white", n.Text.Color)
	}
}

func TestNewEmitterDefaults(t *testing.T) {
	n := NewEmitter("sparkles", EmitterConfig{})
	assertNodeDefaults(t, n, "sparkles", NodeTypeParticles)
	if n.Emitter == nil {
		t.Fatal("Emitter not set")
	}
	if n.BlendMode != BlendAdd {
		t.Errorf("BlendMode = %d, want BlendAdd", n.BlendMode)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if n.Interactable {
		t.Error("Interactable should default to false")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should be unique, both = %d", a.ID)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Error("parent should have exactly the child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent has %d children, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child should belong to the new parent")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewContainer("p").AddChild(nil) }},
		{"self", func() {
			n := NewContainer("n")
			n.AddChild(n)
		}},
		{"cycle", func() {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewContainer("a")
	child := NewContainer("child")
	NewContainer("b").AddChild(child)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.RemoveChild(child)
}

func TestRemoveFromParent(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	child.RemoveFromParent()
	if child.Parent != nil || parent.NumChildren() != 0 {
		t.Error("child should be detached")
	}
	// No-op without parent.
	child.RemoveFromParent()
}

func TestRemoveChildrenDoesNotDispose(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	if a.Parent != nil || b.Parent != nil {
		t.Error("children should have no parent")
	}
	if a.IsDisposed() || b.IsDisposed() {
		t.Error("RemoveChildren must not dispose")
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	n := NewContainer("n")
	grandchild := NewShape("gc", ShapeCircle, 4, 4, ColorWhite)
	parent.AddChild(n)
	n.AddChild(grandchild)
	n.OnClick = func(ClickContext) {}
	n.OnUpdate = func(float64) {}
	n.UserData = "payload"

	n.Dispose()

	if !n.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("node and descendants should be disposed")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed node should leave its parent")
	}
	if n.OnClick != nil || n.OnUpdate != nil || n.UserData != nil {
		t.Error("callbacks and user data should be cleared")
	}
	if n.ID != 0 {
		t.Errorf("ID = %d, want 0", n.ID)
	}
	// Second call is a no-op.
	n.Dispose()
}

// --- Ordering ---

func TestPaintOrderStableByZIndex(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)
	a.SetZIndex(5)
	// b and c share ZIndex 0 and keep insertion order.

	got := parent.paintOrder()
	want := []*Node{b, c, a}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("paint order[%d] = %q, want %q", i, got[i].Name, want[i].Name)
		}
	}
	if parent.Children()[0] != a {
		t.Error("Children() should keep insertion order")
	}
}

func TestNodeDimensions(t *testing.T) {
	tests := []struct {
		name string
		n    *Node
		w, h float64
	}{
		{"shape", NewShape("s", ShapeRect, 30, 10, ColorWhite), 30, 10},
		{"container", NewContainer("c"), 0, 0},
		{"text without font", NewText("t", "x", nil), 0, 0},
		{"emitter", NewEmitter("e", EmitterConfig{}), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := nodeDimensions(tt.n)
			if w != tt.w || h != tt.h {
				t.Errorf("nodeDimensions = (%v, %v), want (%v, %v)", w, h, tt.w, tt.h)
			}
		})
	}
}
