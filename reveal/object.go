// Package reveal implements hidden, clickable objects that reveal a payload
// the first time they are clicked. An Object tracks its hover and discovery
// state and computes its own per-frame pose; drawing it is left to the caller.
package reveal

import (
	"math"
	"math/rand/v2"

	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/trigger"
)

// DiscoverFunc receives the payload of a newly discovered Object.
type DiscoverFunc func(Payload)

// Config describes one Object. Rotation, Size, BoxColor, RibbonColor and
// Float apply to boxes only.
type Config struct {
	Kind        Kind
	Position    surprise.Vec3
	Rotation    surprise.Vec3
	Size        float64
	BoxColor    surprise.Color
	RibbonColor surprise.Color
	Float       bool
	Payload     Payload
}

// Default box appearance.
var (
	DefaultBoxColor    = surprise.MustHexColor("#ff69b4")
	DefaultRibbonColor = surprise.MustHexColor("#ffd700")
)

// Frame is the pose computed by one Update.
type Frame struct {
	Transform
	// Lid is meaningful for boxes only.
	Lid LidPose
}

// Option configures an Object.
type Option func(*Object)

// WithPhase fixes the motion phase offset instead of picking a random one.
func WithPhase(phase float64) Option {
	return func(o *Object) { o.phase = phase }
}

// Object is one revealable thing in the scene: an easter egg or a gift box.
// The zero value is not usable; create Objects with New.
type Object struct {
	cfg        Config
	phase      float64
	onDiscover DiscoverFunc

	hovered   bool
	discovery trigger.Once[struct{}]
	torn      bool

	last Frame
}

// New creates an Object in the idle state. onDiscover may be nil.
func New(cfg Config, onDiscover DiscoverFunc, opts ...Option) *Object {
	if cfg.Kind == KindBox {
		if cfg.Size <= 0 {
			cfg.Size = 1
		}
		if cfg.BoxColor == (surprise.Color{}) {
			cfg.BoxColor = DefaultBoxColor
		}
		if cfg.RibbonColor == (surprise.Color{}) {
			cfg.RibbonColor = DefaultRibbonColor
		}
	}
	cfg.Payload = cfg.Payload.clone()
	o := &Object{
		cfg:        cfg,
		phase:      rand.Float64() * 2 * math.Pi,
		onDiscover: onDiscover,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.last = o.restFrame()
	return o
}

func (o *Object) restFrame() Frame {
	f := Frame{Transform: Transform{Position: o.cfg.Position, Rotation: o.cfg.Rotation, Scale: 1}}
	if o.cfg.Kind == KindBox {
		f.Lid = LidPoseAt(0, o.cfg.Size)
	} else {
		f.Scale = eggRestScale
	}
	return f
}

// Kind returns the object's kind.
func (o *Object) Kind() Kind { return o.cfg.Kind }

// Config returns the object's configuration after defaults were applied.
func (o *Object) Config() Config { return o.cfg }

// Phase returns the motion phase offset in radians.
func (o *Object) Phase() float64 { return o.phase }

// Payload returns a copy of the payload revealed on discovery.
func (o *Object) Payload() Payload { return o.cfg.Payload.clone() }

// PointerEnter marks the object hovered.
func (o *Object) PointerEnter() {
	if o.torn {
		return
	}
	o.hovered = true
}

// PointerExit clears the hovered flag.
func (o *Object) PointerExit() {
	if o.torn {
		return
	}
	o.hovered = false
}

// Hovered reports whether the pointer is over the object.
func (o *Object) Hovered() bool { return o.hovered }

// Click discovers the object. The first click invokes the discovery callback
// with the payload and reports true; every later click is a no-op.
func (o *Object) Click() bool {
	if o.torn || !o.discovery.Fire(struct{}{}) {
		return false
	}
	if o.onDiscover != nil {
		o.onDiscover(o.Payload())
	}
	return true
}

// Discovered reports whether the object has been clicked. Once true it stays
// true.
func (o *Object) Discovered() bool { return o.discovery.Fired() }

// State returns the discovery state.
func (o *Object) State() trigger.State { return o.discovery.State() }

// CursorPointer reports whether the pointer cursor should be shown. Eggs stop
// asking for it once discovered; boxes keep it while hovered.
func (o *Object) CursorPointer() bool {
	if !o.hovered {
		return false
	}
	return o.cfg.Kind == KindBox || !o.Discovered()
}

// Update advances the object to elapsed seconds on the scene clock; delta is
// the time since the previous frame. After Teardown it returns the last frame
// unchanged.
func (o *Object) Update(elapsed, delta float64) Frame {
	if o.torn {
		return o.last
	}
	if o.cfg.Kind == KindBox {
		o.last = o.updateBox(elapsed, delta)
	} else {
		m := EggMotion{Base: o.cfg.Position, Phase: o.phase}
		o.last = Frame{Transform: m.Compute(elapsed, o.hovered, o.Discovered(), o.last.Scale)}
	}
	return o.last
}

func (o *Object) updateBox(elapsed, delta float64) Frame {
	m := BoxMotion{Base: o.cfg.Position, Rotation: o.cfg.Rotation, Phase: o.phase, Float: o.cfg.Float}
	target := 0.0
	if o.Discovered() {
		target = 1
	}
	p := LidStep(o.last.Lid.Progress, target, delta)
	return Frame{
		Transform: m.Compute(elapsed, o.last.Transform),
		Lid:       LidPoseAt(p, o.cfg.Size),
	}
}

// Last returns the frame computed by the most recent Update.
func (o *Object) Last() Frame { return o.last }

// Teardown detaches the object from the frame loop. Later calls to Update,
// Click and the pointer methods do nothing.
func (o *Object) Teardown() { o.torn = true }

// TornDown reports whether Teardown has been called.
func (o *Object) TornDown() bool { return o.torn }
