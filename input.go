package surprise

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	button    MouseButton
	seen      bool
}

// --- Scene-level handlers ---

type sceneHandler struct {
	id      uint32
	pointer func(PointerContext)
	click   func(ClickContext)
}

type handlerRegistry struct {
	byEvent map[EventType][]sceneHandler
	lastID  uint32
}

func (r *handlerRegistry) add(event EventType, h sceneHandler) CallbackHandle {
	if r.byEvent == nil {
		r.byEvent = make(map[EventType][]sceneHandler)
	}
	r.lastID++
	h.id = r.lastID
	r.byEvent[event] = append(r.byEvent[event], h)
	return CallbackHandle{id: h.id, reg: r, event: event}
}

// CallbackHandle identifies a scene-level callback so it can be removed.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the callback. Removing twice, or through a zero handle,
// does nothing.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.byEvent[h.event] = slices.DeleteFunc(h.reg.byEvent[h.event], func(x sceneHandler) bool {
		return x.id == h.id
	})
}

// OnPointerDown calls fn whenever a button goes down, over a node or not.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerDown, sceneHandler{pointer: fn})
}

// OnPointerUp calls fn whenever a button is released.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerUp, sceneHandler{pointer: fn})
}

// OnPointerMove calls fn when the pointer moves with no button held.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerMove, sceneHandler{pointer: fn})
}

// OnPointerEnter calls fn when the pointer starts hovering a node.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerEnter, sceneHandler{pointer: fn})
}

// OnPointerLeave calls fn when the pointer stops hovering a node, whether it
// moved to another node or to empty space.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerLeave, sceneHandler{pointer: fn})
}

// OnClick calls fn for every click, including clicks on empty space.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return s.handlers.add(EventClick, sceneHandler{click: fn})
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise derives AABB from node dimensions.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order, appending interactable
// nodes to buf. Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.paintOrder() {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle pointer input.
// Injected events take priority over the real mouse for the frame.
func (s *Scene) processInput() {
	if !s.processInjectedInput() && !s.headless {
		s.processMousePointer()
	}
	s.applyCursor()
}

// mouseButtons maps ebiten buttons in priority order.
var mouseButtons = [...]struct {
	from ebiten.MouseButton
	to   MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// processMousePointer feeds the real mouse as pointer 0.
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed, button := false, MouseButtonLeft
	for _, b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b.from) {
			pressed, button = true, b.to
			break
		}
	}
	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]
	target := s.hitTest(wx, wy)

	// Disposed nodes never receive leave events.
	if ps.hoverNode != nil && ps.hoverNode.IsDisposed() {
		ps.hoverNode = nil
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointer(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, pointerID, wx, wy, button)
		}
		ps.hoverNode = target
	}

	moved := !ps.seen || wx != ps.lastX || wy != ps.lastY
	ps.seen = true

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.firePointer(EventPointerDown, target, pointerID, wx, wy, button)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button)
		}
		s.firePointer(EventPointerUp, target, pointerID, wx, wy, ps.button)
		ps.down = false
		ps.hitNode = nil
	case !pressed && !ps.down && moved:
		s.firePointer(EventPointerMove, target, pointerID, wx, wy, button)
	}
	ps.lastX = wx
	ps.lastY = wy
}

// applyCursor shows the pointer cursor while the mouse hovers a node that
// requests it.
func (s *Scene) applyCursor() {
	want := ebiten.CursorShapeDefault
	if n := s.pointers[0].hoverNode; n != nil && n.CursorPointer {
		want = ebiten.CursorShapePointer
	}
	if want == s.cursor {
		return
	}
	s.cursor = want
	if !s.headless {
		ebiten.SetCursorShape(want)
	}
}

// HoveredNode returns the node currently under the mouse pointer, or nil.
func (s *Scene) HoveredNode() *Node {
	return s.pointers[0].hoverNode
}

// CursorShape returns the cursor shape most recently requested by the scene.
func (s *Scene) CursorShape() ebiten.CursorShapeType {
	return s.cursor
}

// --- Event dispatch ---

func (s *Scene) pointerContext(node *Node, pointerID int, wx, wy float64, button MouseButton) PointerContext {
	ctx := PointerContext{GlobalX: wx, GlobalY: wy, Button: button, PointerID: pointerID, Node: node}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}
	return ctx
}

// nodePointerFunc returns node's own callback for event, if any.
func nodePointerFunc(node *Node, event EventType) func(PointerContext) {
	if node == nil {
		return nil
	}
	switch event {
	case EventPointerDown:
		return node.OnPointerDown
	case EventPointerUp:
		return node.OnPointerUp
	case EventPointerMove:
		return node.OnPointerMove
	case EventPointerEnter:
		return node.OnPointerEnter
	case EventPointerLeave:
		return node.OnPointerLeave
	}
	return nil
}

// firePointer runs scene handlers, then the node's callback, then forwards the
// event to the entity store.
func (s *Scene) firePointer(event EventType, node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := s.pointerContext(node, pointerID, wx, wy, button)
	for _, h := range s.handlers.byEvent[event] {
		h.pointer(ctx)
	}
	if fn := nodePointerFunc(node, event); fn != nil {
		fn(ctx)
	}
	s.emitInteractionEvent(event, node, ctx.GlobalX, ctx.GlobalY, ctx.LocalX, ctx.LocalY, button)
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	ctx := ClickContext(s.pointerContext(node, pointerID, wx, wy, button))
	for _, h := range s.handlers.byEvent[EventClick] {
		h.click(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
	s.emitInteractionEvent(EventClick, node, wx, wy, ctx.LocalX, ctx.LocalY, button)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(eventType EventType, node *Node, wx, wy, lx, ly float64, button MouseButton) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:     eventType,
		EntityID: node.EntityID,
		GlobalX:  wx,
		GlobalY:  wy,
		LocalX:   lx,
		LocalY:   ly,
		Button:   button,
	})
}
