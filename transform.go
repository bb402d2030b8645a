package surprise

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// affine is a 2D affine matrix stored column-major as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

// singularDet is the determinant below which a matrix has no usable inverse.
const singularDet = 1e-12

// localAffine builds the node's matrix: move the pivot to the origin, scale,
// rotate, then translate to (X, Y).
func (n *Node) localAffine() affine {
	sin, cos := math.Sincos(n.Rotation)
	a, b := cos*n.ScaleX, sin*n.ScaleX
	c, d := -sin*n.ScaleY, cos*n.ScaleY
	return affine{
		a, b, c, d,
		n.X - (a*n.PivotX + c*n.PivotY),
		n.Y - (b*n.PivotX + d*n.PivotY),
	}
}

// mul returns m·o, which applies o first.
func (m affine) mul(o affine) affine {
	return affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// inverse returns the inverse of m, or identity when m is singular.
func (m affine) inverse() affine {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < singularDet {
		return identity
	}
	r := affine{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det}
	r[4] = -(r[0]*m[4] + r[2]*m[5])
	r[5] = -(r[1]*m[4] + r[3]*m[5])
	return r
}

// apply maps the point (x, y) through m.
func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// geoM converts m for use in ebiten draw options.
func (m affine) geoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// refreshWorld recomputes the cached world matrix and alpha of n and its
// subtree. Clean subtrees under a clean parent are skipped.
func refreshWorld(n *Node, parent affine, parentAlpha float64, force bool) {
	force = force || n.transformDirty
	if force {
		n.world = parent.mul(n.localAffine())
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		refreshWorld(child, n.world, n.worldAlpha, force)
	}
}

// refreshTree refreshes n as a root.
func refreshTree(n *Node) {
	refreshWorld(n, identity, 1, false)
}

// --- Transform setters ---

// SetPosition moves the node within its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

// SetScale sets the horizontal and vertical scale.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.transformDirty = true
}

// SetRotation sets the rotation in radians, clockwise on screen.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetPivot sets the local point that X and Y place and that rotation and
// scale are applied around.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX, n.PivotY = px, py
	n.transformDirty = true
}

// SetAlpha sets the node's own opacity; children inherit it multiplicatively.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty schedules a refresh after fields were assigned directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldToLocal maps a screen point into the node's local space, using the
// world matrix from the last refresh.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return n.world.inverse().apply(wx, wy)
}

// LocalToWorld maps a local point to the screen, using the world matrix from
// the last refresh.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.world.apply(lx, ly)
}

// WorldAlpha returns the node's alpha multiplied by all ancestors' alpha, as of
// the last refresh.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}
