package surprise

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// Light is an additive glow that follows a node. Lights approximate the point
// lights of a lit 3D scene: Radius plays the role of falloff distance and
// Intensity scales the glow's brightness.
type Light struct {
	// X and Y are the light's screen position, refreshed from Target each frame.
	X, Y float64
	// Radius is the glow radius in screen pixels.
	Radius float64
	// Intensity scales the brightness. Values above 1 saturate faster.
	Intensity float64
	// Enabled determines whether this light is drawn.
	Enabled bool
	// Color is the glow color.
	Color Color
	// Target, if set, makes the light follow this node's pivot point.
	Target *Node
	// OffsetX and OffsetY offset the light from the target's pivot in screen space.
	OffsetX float64
	OffsetY float64
	// Fade multiplies Intensity; tweened from 0 to 1 when a light switches on.
	Fade float64

	fadeTween *TweenGroup
}

// LightLayer draws a set of glows at the position of its node in the tree.
type LightLayer struct {
	node   *Node
	lights []*Light
	op     ebiten.DrawImageOptions
}

// NewLightLayer creates an empty light layer. Add Node() to the tree to
// choose where in painter order the glows are drawn.
func NewLightLayer() *LightLayer {
	return &LightLayer{node: NewContainer("light_layer")}
}

// Node returns the container node whose position in the tree decides the
// draw order of the glows.
func (ll *LightLayer) Node() *Node {
	return ll.node
}

// AddLight adds a light to the layer.
func (ll *LightLayer) AddLight(l *Light) {
	ll.lights = append(ll.lights, l)
}

// RemoveLight removes a light from the layer.
func (ll *LightLayer) RemoveLight(l *Light) {
	if i := slices.Index(ll.lights, l); i >= 0 {
		ll.lights = slices.Delete(ll.lights, i, i+1)
	}
}

// Lights returns the layer's lights. Callers must not modify the slice.
func (ll *LightLayer) Lights() []*Light {
	return ll.lights
}

// update advances fade tweens and follows targets. Lights whose target was
// disposed are dropped.
func (ll *LightLayer) update(dt float64) {
	kept := ll.lights[:0]
	for _, l := range ll.lights {
		if l.Target != nil && l.Target.IsDisposed() {
			continue
		}
		if l.fadeTween != nil {
			l.fadeTween.Update(float32(dt))
			if l.fadeTween.Done {
				l.fadeTween = nil
			}
		}
		if l.Target != nil {
			wx, wy := l.Target.LocalToWorld(l.Target.PivotX, l.Target.PivotY)
			l.X = wx + l.OffsetX
			l.Y = wy + l.OffsetY
		}
		kept = append(kept, l)
	}
	for i := len(kept); i < len(ll.lights); i++ {
		ll.lights[i] = nil
	}
	ll.lights = kept
}

func (ll *LightLayer) draw(dst *ebiten.Image) int {
	count := 0
	img := shapeImage(ShapeGlow)
	op := &ll.op
	for _, l := range ll.lights {
		if !l.Enabled || l.Radius <= 0 {
			continue
		}
		i := float32(clamp01(l.Intensity * l.Fade))
		if i == 0 {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Scale(2*l.Radius/shapeResolution, 2*l.Radius/shapeResolution)
		op.GeoM.Translate(l.X-l.Radius, l.Y-l.Radius)
		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(l.Color.R)*i, float32(l.Color.G)*i, float32(l.Color.B)*i, i)
		op.Blend = BlendAdd.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, op)
		count++
	}
	return count
}
