package surprise

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape replaces a node's bounding box for hit testing. Points are in the
// node's local space.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext describes a pointer event on a node, in screen and local
// coordinates.
type PointerContext struct {
	Node      *Node
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
}

// ClickContext describes a completed press and release on the same node.
type ClickContext PointerContext

// lastNodeID is only touched from the game loop.
var lastNodeID uint32

// Node is one element of the scene tree. Every kind of node shares this
// struct; Type selects how it draws.
type Node struct {
	ID   uint32
	Name string
	Type NodeType

	Parent   *Node
	children []*Node

	// Local transform. Assigning these directly needs a MarkDirty.
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	world          affine
	worldAlpha     float64
	transformDirty bool

	Alpha        float64
	Visible      bool
	Interactable bool
	// CursorPointer asks for the hand cursor while the node is hovered.
	CursorPointer bool

	ZIndex int

	UserData any
	EntityID uint32

	Shape     Shape
	Width     float64
	Height    float64
	Color     Color
	BlendMode BlendMode
	Image     *ebiten.Image
	Text      *TextBlock
	Emitter   *Emitter

	HitShape HitShape

	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(ClickContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)
	// OnUpdate runs once per scene step with the frame delta in seconds.
	OnUpdate func(dt float64)

	disposed bool
	// painted caches children in ZIndex order; nil means rebuild.
	painted []*Node
}

func newNode(name string, typ NodeType) *Node {
	lastNodeID++
	return &Node{
		ID:             lastNodeID,
		Name:           name,
		Type:           typ,
		ScaleX:         1,
		ScaleY:         1,
		Alpha:          1,
		Color:          ColorWhite,
		Visible:        true,
		transformDirty: true,
	}
}

// NewContainer creates a node that only groups its children.
func NewContainer(name string) *Node {
	return newNode(name, NodeTypeContainer)
}

// NewShape creates a w×h procedural shape tinted c, pivoted on its centre.
func NewShape(name string, shape Shape, w, h float64, c Color) *Node {
	n := newNode(name, NodeTypeShape)
	n.Shape = shape
	n.Width, n.Height = w, h
	n.Color = c
	n.PivotX, n.PivotY = w/2, h/2
	return n
}

// NewImage creates a node that draws img at its native size.
func NewImage(name string, img *ebiten.Image) *Node {
	n := newNode(name, NodeTypeImage)
	n.Image = img
	if img != nil {
		size := img.Bounds().Size()
		n.Width, n.Height = float64(size.X), float64(size.Y)
	}
	return n
}

// NewText creates a text node.
func NewText(name string, content string, font *Font) *Node {
	n := newNode(name, NodeTypeText)
	n.Text = &TextBlock{Content: content, Font: font, Color: ColorWhite, dirty: true}
	return n
}

// AddChild appends child, taking it from its previous parent if it had one.
// It panics on a nil child or when child is an ancestor of n.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("surprise: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	for p := n; p != nil; p = p.Parent {
		if p == child {
			panic("surprise: adding child would create a cycle")
		}
	}
	child.RemoveFromParent()
	child.Parent = n
	n.children = append(n.children, child)
	n.painted = nil
	child.dirtySubtree()
}

// RemoveChild detaches child. It panics if child belongs to another node.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("surprise: child's parent is not this node")
	}
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.Parent = nil
	n.painted = nil
	child.dirtySubtree()
}

// RemoveFromParent detaches n. Without a parent it does nothing.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// RemoveChildren detaches every child without disposing them.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		child.dirtySubtree()
	}
	clear(n.children)
	n.children = n.children[:0]
	n.painted = nil
}

// Children returns the children in insertion order. Callers must not modify
// the slice.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex changes the node's paint order among its siblings.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.painted = nil
	}
}

// Dispose detaches n and releases it and every descendant. Disposed nodes
// keep their name but drop their ID, callbacks and payloads. Calling it
// twice is harmless.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.release()
}

func (n *Node) release() {
	for _, child := range n.children {
		child.Parent = nil
		child.release()
	}
	*n = Node{Name: n.Name, Type: n.Type, disposed: true}
}

// IsDisposed reports whether Dispose has run on n or an ancestor.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func (n *Node) dirtySubtree() {
	n.transformDirty = true
	for _, child := range n.children {
		child.dirtySubtree()
	}
}

// paintOrder returns the children sorted by ZIndex; equal indexes keep
// insertion order.
func (n *Node) paintOrder() []*Node {
	if n.painted == nil && len(n.children) > 0 {
		n.painted = slices.Clone(n.children)
		slices.SortStableFunc(n.painted, func(a, b *Node) int {
			return cmp.Compare(a.ZIndex, b.ZIndex)
		})
	}
	return n.painted
}

// nodeDimensions returns the local extent used for hit testing.
func nodeDimensions(n *Node) (w, h float64) {
	switch n.Type {
	case NodeTypeShape, NodeTypeImage:
		return n.Width, n.Height
	case NodeTypeText:
		if n.Text != nil {
			return n.Text.Measure()
		}
	}
	return 0, 0
}
