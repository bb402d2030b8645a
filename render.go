package surprise

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw traverses the scene tree in painter order and draws every visible node
// onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	if s.ClearColor != (Color{}) {
		screen.Fill(s.ClearColor.toRGBA())
	}
	refreshTree(s.root)

	draws := s.drawNode(screen, s.root)
	s.flushScreenshots(screen)

	if s.debug {
		s.debugLog(debugStats{drawTime: time.Since(t0), drawCount: draws})
	}
}

// drawNode draws n and its subtree, returning the number of draw calls issued.
func (s *Scene) drawNode(dst *ebiten.Image, n *Node) int {
	if !n.Visible || n.worldAlpha <= 0 {
		return 0
	}
	count := 0
	op := &s.drawOp
	switch n.Type {
	case NodeTypeShape:
		if n.Width > 0 && n.Height > 0 {
			op.GeoM.Reset()
			op.GeoM.Scale(n.Width/shapeResolution, n.Height/shapeResolution)
			op.GeoM.Concat(n.world.geoM())
			s.setColor(op, n.Color, n.worldAlpha)
			op.Blend = n.BlendMode.EbitenBlend()
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(shapeImage(n.Shape), op)
			count++
		}
	case NodeTypeImage:
		if n.Image != nil {
			b := n.Image.Bounds()
			op.GeoM.Reset()
			if bw, bh := float64(b.Dx()), float64(b.Dy()); bw > 0 && bh > 0 {
				op.GeoM.Scale(n.Width/bw, n.Height/bh)
			}
			op.GeoM.Concat(n.world.geoM())
			s.setColor(op, n.Color, n.worldAlpha)
			op.Blend = n.BlendMode.EbitenBlend()
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(n.Image, op)
			count++
		}
	case NodeTypeText:
		if n.Text != nil {
			if img := n.Text.render(); img != nil {
				op.GeoM = n.world.geoM()
				s.setColor(op, n.Color, n.worldAlpha)
				op.Blend = n.BlendMode.EbitenBlend()
				op.Filter = ebiten.FilterLinear
				dst.DrawImage(img, op)
				count++
			}
		}
	case NodeTypeParticles:
		if n.Emitter != nil {
			count += s.drawParticles(dst, n)
		}
	}
	if n == s.lights.node {
		count += s.lights.draw(dst)
	}
	for _, child := range n.paintOrder() {
		count += s.drawNode(dst, child)
	}
	return count
}

// drawParticles draws each alive particle as a glow centred on its local
// position.
func (s *Scene) drawParticles(dst *ebiten.Image, n *Node) int {
	e := n.Emitter
	if e.alive == 0 {
		return 0
	}
	op := &s.drawOp
	img := shapeImage(ShapeGlow)
	world := n.world.geoM()
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		if p.size <= 0 || p.alpha <= 0 {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Scale(p.size/shapeResolution, p.size/shapeResolution)
		op.GeoM.Translate(p.pos.X-p.size/2, p.pos.Y-p.size/2)
		op.GeoM.Concat(world)
		s.setColor(op, p.color, n.worldAlpha*p.alpha)
		op.Blend = n.BlendMode.EbitenBlend()
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(img, op)
	}
	return e.alive
}

func (s *Scene) setColor(op *ebiten.DrawImageOptions, c Color, alpha float64) {
	a := float32(c.A * alpha)
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}
