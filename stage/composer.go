// Package stage assembles a playable surprise scene: the revealable objects
// projected into the scene graph, the overlay that presents what was found
// and the music bar.
package stage

import (
	"math"

	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/reveal"
)

// Discovery describes one object being found.
type Discovery struct {
	// Index is the object's position in the composer's configuration list.
	Index    int
	EntityID uint32
	Kind     reveal.Kind
	Payload  reveal.Payload
}

// Tracker mirrors the composer's objects into an external system such as an
// ECS world.
type Tracker interface {
	Register(entityID uint32, index int, kind reveal.Kind)
	EmitDiscovery(d Discovery)
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithTracker forwards object registration and discoveries to t.
func WithTracker(t Tracker) ComposerOption {
	return func(c *Composer) { c.tracker = t }
}

// WithPhases fixes the motion phase of every object, for reproducible
// layouts.
func WithPhases(phase float64) ComposerOption {
	return func(c *Composer) { c.phase = &phase }
}

// lightFadeSeconds is how long discovery lights take to reach full brightness.
const lightFadeSeconds = 0.6

// sparkleCount is the size of the burst released on discovery.
const sparkleCount = 40

// sparkleConfig returns the burst emitter config for an object whose lights
// use the given colors.
func sparkleConfig(colors []surprise.Color) surprise.EmitterConfig {
	return surprise.EmitterConfig{
		MaxParticles: sparkleCount,
		Lifetime:     surprise.Range{Min: 0.6, Max: 1.2},
		Speed:        surprise.Range{Min: 60, Max: 160},
		Angle:        surprise.Range{Min: 0, Max: 2 * math.Pi},
		StartSize:    surprise.Range{Min: 10, Max: 18},
		EndSize:      surprise.Range{Min: 2, Max: 4},
		Gravity:      surprise.Vec2{Y: 120},
		Colors:       colors,
		EndColor:     surprise.ColorWhite,
	}
}

// baseEntityID offsets composer entity IDs away from zero, which means "none".
const baseEntityID = 1000

// Composer owns one reveal.Object and one node subtree per configured object.
// It projects every object into screen space once per frame and translates
// pointer events on the nodes into object state changes.
type Composer struct {
	scene      *surprise.Scene
	proj       *surprise.Projector
	layer      *surprise.Node
	entries    []*entry
	onDiscover func(Discovery)
	tracker    Tracker
	phase      *float64
	found      int
	torn       bool
}

// entry binds one object to its nodes.
type entry struct {
	index    int
	obj      *reveal.Object
	node     *surprise.Node
	body     *surprise.Node
	ribbon   *surprise.Node
	lid      *surprise.Node
	knot     *surprise.Node
	hit      *surprise.HitCircle
	sparkles *surprise.Node
	lights   []*surprise.Light
	specs    []reveal.LightSpec
	ppu      float64
}

// NewComposer creates the object nodes under a new "objects" container added
// to the scene root. onDiscover may be nil.
func NewComposer(scene *surprise.Scene, proj *surprise.Projector, objects []reveal.Config, onDiscover func(Discovery), opts ...ComposerOption) *Composer {
	c := &Composer{
		scene:      scene,
		proj:       proj,
		layer:      surprise.NewContainer("objects"),
		onDiscover: onDiscover,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.layer.Interactable = true
	scene.Root().AddChild(c.layer)
	if ln := scene.Lights().Node(); ln.Parent == nil {
		ln.SetZIndex(zLights)
		scene.Root().AddChild(ln)
	}
	for i, cfg := range objects {
		c.add(i, cfg)
	}
	return c
}

func (c *Composer) add(index int, cfg reveal.Config) {
	e := &entry{index: index}
	var objOpts []reveal.Option
	if c.phase != nil {
		objOpts = append(objOpts, reveal.WithPhase(*c.phase))
	}
	e.obj = reveal.New(cfg, func(p reveal.Payload) { c.discovered(e, p) }, objOpts...)

	e.node = surprise.NewContainer(cfg.Kind.String())
	e.node.Interactable = true
	e.node.EntityID = uint32(baseEntityID + index)
	e.node.UserData = e.obj
	e.hit = &surprise.HitCircle{}
	e.node.HitShape = e.hit
	c.buildVisuals(e, cfg)

	e.node.OnPointerEnter = func(surprise.PointerContext) {
		e.obj.PointerEnter()
		e.node.CursorPointer = e.obj.CursorPointer()
	}
	e.node.OnPointerLeave = func(surprise.PointerContext) {
		e.obj.PointerExit()
		e.node.CursorPointer = false
	}
	e.node.OnClick = func(surprise.ClickContext) {
		e.obj.Click()
		e.node.CursorPointer = e.obj.CursorPointer()
	}
	e.node.OnUpdate = func(dt float64) {
		c.updateEntry(e, dt)
	}

	c.layer.AddChild(e.node)
	c.entries = append(c.entries, e)
	if c.tracker != nil {
		c.tracker.Register(e.node.EntityID, index, cfg.Kind)
	}
	c.updateEntry(e, 0)
}

// eggShapes maps egg kinds to the silhouette that stands in for their mesh,
// with the mesh's extent in model units.
var eggShapes = map[reveal.Kind]struct {
	shape  surprise.Shape
	extent float64
}{
	reveal.KindHeart:     {surprise.ShapeCircle, 2},
	reveal.KindStar:      {surprise.ShapeDiamond, 2},
	reveal.KindGift:      {surprise.ShapeRect, 1.5},
	reveal.KindButterfly: {surprise.ShapeRing, 2.2},
}

func (c *Composer) buildVisuals(e *entry, cfg reveal.Config) {
	if cfg.Kind != reveal.KindBox {
		s := eggShapes[cfg.Kind]
		e.body = surprise.NewShape("body", s.shape, 1, 1, surprise.ColorWhite)
		e.node.AddChild(e.body)
		return
	}
	e.body = surprise.NewShape("box", surprise.ShapeRect, 1, 1, cfg.BoxColor)
	e.ribbon = surprise.NewShape("ribbon", surprise.ShapeRect, 1, 1, cfg.RibbonColor)
	e.lid = surprise.NewShape("lid", surprise.ShapeRect, 1, 1, cfg.BoxColor)
	e.knot = surprise.NewShape("knot", surprise.ShapeCircle, 1, 1, cfg.RibbonColor)
	e.ribbon.SetZIndex(1)
	e.lid.SetZIndex(2)
	e.knot.SetZIndex(3)
	e.node.AddChild(e.body)
	e.node.AddChild(e.ribbon)
	e.node.AddChild(e.lid)
	e.node.AddChild(e.knot)
}

// spin approximates a rotation about the vertical axis by narrowing the
// silhouette.
func spin(rotY float64) float64 {
	return 0.35 + 0.65*math.Abs(math.Cos(rotY))
}

// lit flattens a material into a single tint: base color plus emissive glow,
// with opacity as alpha.
func lit(m reveal.Material) surprise.Color {
	g := m.Glow()
	return surprise.Color{
		R: math.Min(1, m.Color.R+g.R),
		G: math.Min(1, m.Color.G+g.G),
		B: math.Min(1, m.Color.B+g.B),
		A: m.Opacity,
	}
}

func (c *Composer) updateEntry(e *entry, dt float64) {
	if c.torn {
		return
	}
	f := e.obj.Update(c.scene.Elapsed(), dt)
	pr, ok := c.proj.Project(f.Position)
	e.node.Visible = ok
	if !ok {
		return
	}
	e.ppu = pr.PixelsPerUnit
	e.node.SetPosition(pr.X, pr.Y)
	e.node.SetZIndex(surprise.DepthOrder(pr.Depth))

	if e.obj.Kind() == reveal.KindBox {
		c.layoutBox(e, f)
	} else {
		c.layoutEgg(e, f)
	}
	c.layoutLights(e)
}

func (c *Composer) layoutEgg(e *entry, f reveal.Frame) {
	s := eggShapes[e.obj.Kind()]
	size := s.extent * f.Scale * e.ppu
	e.body.Width, e.body.Height = size, size
	e.body.SetPivot(size/2, size/2)
	e.body.SetScale(spin(f.Rotation.Y), 1)
	e.body.SetRotation(f.Rotation.Z)

	e.body.Color = lit(e.obj.Appearance().Body)
	// Keep a comfortable click target for tiny eggs.
	e.hit.Radius = math.Max(size/2, 12)
}

func (c *Composer) layoutBox(e *entry, f reveal.Frame) {
	size := e.obj.Config().Size * e.ppu
	narrow := spin(f.Rotation.Y)
	body := lit(e.obj.Appearance().Body)

	// The object origin is the center of the box body; the lid rests on top.
	e.body.Width, e.body.Height = size*narrow, size
	e.body.SetPivot(e.body.Width/2, size/2)
	e.body.Color = body

	e.ribbon.Width, e.ribbon.Height = size*0.15, size
	e.ribbon.SetPivot(e.ribbon.Width/2, size/2)

	lidY := f.Lid.Y * e.ppu
	e.lid.Width, e.lid.Height = size*1.1*narrow, size*0.2
	e.lid.SetPivot(e.lid.Width/2, e.lid.Height/2)
	e.lid.SetPosition(0, -lidY)
	e.lid.SetRotation(-f.Lid.RotZ)
	e.lid.Color = body

	knot := size * 0.25
	e.knot.Width, e.knot.Height = knot, knot
	e.knot.SetPivot(knot/2, knot/2)
	e.knot.SetPosition(0, -lidY-e.lid.Height/2)

	e.hit.Radius = math.Max(size*0.75, 12)
}

func (c *Composer) layoutLights(e *entry) {
	for i, l := range e.lights {
		spec := e.specs[i]
		l.OffsetX = spec.Offset.X * e.ppu
		l.OffsetY = -spec.Offset.Y * e.ppu
		l.Radius = spec.Distance * e.ppu
	}
}

// discovered runs inside reveal.Object.Click, once per object.
func (c *Composer) discovered(e *entry, p reveal.Payload) {
	c.found++
	e.specs = e.obj.Lights()
	for _, spec := range e.specs {
		l := &surprise.Light{
			Target:    e.node,
			Color:     spec.Color,
			Intensity: spec.Intensity / 2,
		}
		l.FadeIn(lightFadeSeconds)
		c.scene.Lights().AddLight(l)
		e.lights = append(e.lights, l)
	}
	c.layoutLights(e)
	c.burst(e)

	d := Discovery{Index: e.index, EntityID: e.node.EntityID, Kind: e.obj.Kind(), Payload: p}
	if c.tracker != nil {
		c.tracker.EmitDiscovery(d)
	}
	if c.onDiscover != nil {
		c.onDiscover(d)
	}
}

// burst releases sparkles from the object, tinted like its lights.
func (c *Composer) burst(e *entry) {
	colors := make([]surprise.Color, 0, len(e.specs))
	for _, spec := range e.specs {
		colors = append(colors, spec.Color)
	}
	e.sparkles = surprise.NewEmitter("sparkles", sparkleConfig(colors))
	e.sparkles.SetZIndex(4)
	e.node.AddChild(e.sparkles)
	e.sparkles.Emitter.Burst(sparkleCount)
}

// Len returns the number of objects.
func (c *Composer) Len() int { return len(c.entries) }

// Found returns how many objects have been discovered.
func (c *Composer) Found() int { return c.found }

// Object returns the i-th object.
func (c *Composer) Object(i int) *reveal.Object { return c.entries[i].obj }

// Node returns the container node of the i-th object.
func (c *Composer) Node(i int) *surprise.Node { return c.entries[i].node }

// ScreenPosition returns where the i-th object was last drawn, and whether it
// is in front of the camera.
func (c *Composer) ScreenPosition(i int) (x, y float64, ok bool) {
	n := c.entries[i].node
	return n.X, n.Y, n.Visible
}

// Sparkles returns the emitter node of the i-th object, or nil before it is
// discovered.
func (c *Composer) Sparkles(i int) *surprise.Node { return c.entries[i].sparkles }

// Layer returns the container holding every object node.
func (c *Composer) Layer() *surprise.Node { return c.layer }

// Teardown detaches every object from the frame loop and disposes the nodes.
// Lights targeting the nodes are dropped by the light layer on the next frame.
func (c *Composer) Teardown() {
	if c.torn {
		return
	}
	c.torn = true
	for _, e := range c.entries {
		e.obj.Teardown()
	}
	c.layer.Dispose()
}
