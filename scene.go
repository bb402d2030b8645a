package surprise

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	GlobalX  float64
	GlobalY  float64
	LocalX   float64
	LocalY   float64
	Button   MouseButton
}

const maxPointers = 1 // pointer 0 = mouse

// Scene is the top-level object that owns the node tree, input state, the
// frame clock and the light layer.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor fills the screen before the tree is drawn. Zero leaves the
	// screen untouched.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNGs. Empty disables capture.
	ScreenshotDir string

	// Clock
	elapsed float64
	delta   float64
	frame   uint64

	updateFunc func() error
	lights     *LightLayer

	// Input state
	handlers    handlerRegistry
	pointers    [maxPointers]pointerState
	hitBuf      []*Node
	injectQueue []pointerSample
	cursor      ebiten.CursorShapeType
	headless    bool

	script          *Script
	screenshotQueue []string

	drawOp ebiten.DrawImageOptions
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:   root,
		lights: NewLightLayer(),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Lights returns the scene's light layer.
func (s *Scene) Lights() *LightLayer {
	return s.lights
}

// SetHeadless disables reading the real mouse and changing the OS cursor.
// Injected input still works. Used by tests and tooling without a window.
func (s *Scene) SetHeadless(headless bool) {
	s.headless = headless
}

// SetUpdateFunc registers a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Elapsed returns the seconds accumulated by the scene clock.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Delta returns the duration of the last frame in seconds.
func (s *Scene) Delta() float64 {
	return s.delta
}

// Frame returns the number of completed updates.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Update advances the clock by one tick at the current TPS.
func (s *Scene) Update() error {
	return s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances the clock by dt seconds, advances the attached script,
// processes input, runs per-node OnUpdate callbacks, then the scene update
// func.
func (s *Scene) Step(dt float64) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.delta = dt
	s.elapsed += dt
	s.frame++

	// Refresh world transforms first so hit testing has accurate positions.
	refreshTree(s.root)
	if s.script != nil {
		if err := s.script.step(s); err != nil {
			return err
		}
	}
	s.processInput()
	runNodeUpdates(s.root, dt)
	s.lights.update(dt)

	var err error
	if s.updateFunc != nil {
		err = s.updateFunc()
	}
	if s.debug {
		s.debugLog(debugStats{updateTime: time.Since(t0), nodeCount: countNodes(s.root)})
	}
	return err
}

// runNodeUpdates calls OnUpdate and advances emitters depth-first. Nodes disposed by an earlier
// callback in the same frame are skipped.
func runNodeUpdates(n *Node, dt float64) {
	if n.disposed {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	if n.Emitter != nil && !n.disposed {
		n.Emitter.update(dt)
	}
	// Callbacks may detach children; iterate over a snapshot.
	if len(n.children) == 0 {
		return
	}
	children := append([]*Node(nil), n.children...)
	for _, child := range children {
		runNodeUpdates(child, dt)
	}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and per-frame stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
