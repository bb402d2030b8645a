package surprise

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// channel drives one float64 field with one tween.
type channel struct {
	tween *gween.Tween
	field *float64
}

// TweenGroup eases one or more fields together. Owners call Update every frame;
// nothing advances it behind their back. A group bound to a node marks that
// node dirty on every write and finishes as soon as the node is disposed.
type TweenGroup struct {
	channels []channel
	target   *Node
	Done     bool
}

func newGroup(target *Node, duration float32, fn ease.TweenFunc, pairs ...any) *TweenGroup {
	g := &TweenGroup{target: target}
	for i := 0; i+1 < len(pairs); i += 2 {
		field := pairs[i].(*float64)
		to := pairs[i+1].(float64)
		g.channels = append(g.channels, channel{
			tween: gween.New(float32(*field), float32(to), duration, fn),
			field: field,
		})
	}
	return g
}

// Update advances the group by dt seconds.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	finished := 0
	for _, c := range g.channels {
		v, end := c.tween.Update(dt)
		*c.field = float64(v)
		if end {
			finished++
		}
	}
	g.Done = finished == len(g.channels)
	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition moves node to (x, y).
func TweenPosition(node *Node, x, y float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.X, x, &node.Y, y)
}

// TweenScale scales node to (sx, sy).
func TweenScale(node *Node, sx, sy float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.ScaleX, sx, &node.ScaleY, sy)
}

// TweenAlpha fades node to alpha a.
func TweenAlpha(node *Node, a float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(node, duration, fn, &node.Alpha, a)
}

// TweenValue eases any float64. Without a node it only stops when finished.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newGroup(nil, duration, fn, field, to)
}

// FadeIn switches the light on and ramps its Fade from 0 to 1.
func (l *Light) FadeIn(duration float32) {
	l.Enabled = true
	l.Fade = 0
	l.fadeTween = TweenValue(&l.Fade, 1, duration, ease.OutQuad)
}
