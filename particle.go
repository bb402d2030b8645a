package surprise

import (
	"math"
	"math/rand/v2"
)

// Range is a min/max range sampled uniformly.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// particle holds per-particle simulation state. Managed by Emitter.
type particle struct {
	pos, vel   Vec2
	life       float64 // seconds left
	maxLife    float64
	startSize  float64
	endSize    float64
	size       float64
	alpha      float64
	start, end Color
	color      Color
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial particle speeds in pixels per second.
	Speed Range
	// Angle is the range of emission angles in radians.
	Angle Range
	// StartSize and EndSize are the glow diameters in pixels at birth and
	// death.
	StartSize Range
	EndSize   Range
	// Gravity is the constant acceleration applied to all particles.
	Gravity Vec2
	// Colors are picked from at random for each particle. EndColor, when
	// set, is the tint every particle fades towards.
	Colors   []Color
	EndColor Color
}

// Emitter is a pool of short-lived glows drawn around its node. Particles
// live in the node's local space, so they follow it.
type Emitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
}

// NewEmitter creates a particle node with an idle emitter.
func NewEmitter(name string, cfg EmitterConfig) *Node {
	pool := cfg.MaxParticles
	if pool <= 0 {
		pool = 128
	}
	n := newNode(name, NodeTypeParticles)
	n.BlendMode = BlendAdd
	n.Emitter = &Emitter{config: cfg, particles: make([]particle, pool)}
	return n
}

// Burst spawns count particles at once, limited by the free pool slots.
func (e *Emitter) Burst(count int) {
	for i := 0; i < count && e.alive < len(e.particles); i++ {
		e.spawnParticle()
	}
}

// Reset kills all alive particles.
func (e *Emitter) Reset() {
	e.alive = 0
}

// AliveCount returns the number of alive particles.
func (e *Emitter) AliveCount() int {
	return e.alive
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *Emitter) Config() *EmitterConfig {
	return &e.config
}

// update ages every particle by dt seconds. Dead particles are replaced by
// the last alive one, so order is not kept.
func (e *Emitter) update(dt float64) {
	g := e.config.Gravity
	for i := 0; i < e.alive; {
		p := &e.particles[i]
		if p.life -= dt; p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}
		p.vel = Vec2{p.vel.X + g.X*dt, p.vel.Y + g.Y*dt}
		p.pos = Vec2{p.pos.X + p.vel.X*dt, p.pos.Y + p.vel.Y*dt}
		p.age()
		i++
	}
}

// age derives size, alpha and tint from how much of the life is spent.
func (p *particle) age() {
	t := 1 - p.life/p.maxLife
	p.size = lerp(p.startSize, p.endSize, t)
	p.alpha = 1 - t
	p.color = Color{
		R: lerp(p.start.R, p.end.R, t),
		G: lerp(p.start.G, p.end.G, t),
		B: lerp(p.start.B, p.end.B, t),
		A: 1,
	}
}

// spawnParticle starts a particle at the emitter origin in slot e.alive.
func (e *Emitter) spawnParticle() {
	cfg := &e.config
	sin, cos := math.Sincos(cfg.Angle.Random())
	speed := cfg.Speed.Random()
	life := cfg.Lifetime.Random()
	if life <= 0 {
		life = 1
	}
	start := ColorWhite
	if n := len(cfg.Colors); n > 0 {
		start = cfg.Colors[rand.IntN(n)]
	}
	end := start
	if cfg.EndColor != (Color{}) {
		end = cfg.EndColor
	}
	size := cfg.StartSize.Random()
	e.particles[e.alive] = particle{
		vel:       Vec2{cos * speed, sin * speed},
		life:      life,
		maxLife:   life,
		startSize: size,
		endSize:   cfg.EndSize.Random(),
		size:      size,
		alpha:     1,
		start:     start,
		end:       end,
		color:     start,
	}
	e.alive++
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
