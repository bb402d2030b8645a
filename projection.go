package surprise

import "math"

// nearPlane is the minimum camera-space depth that still projects.
const nearPlane = 0.05

// Projector maps world-space points (Y up) onto the screen with a pinhole
// perspective camera that looks from Eye towards LookAt with no roll and no
// yaw.
type Projector struct {
	Eye    Vec3
	LookAt Vec3
	// FOV is the vertical field of view in radians.
	FOV float64
	// Viewport is the screen rectangle the camera renders into.
	Viewport Rect
}

// Projection is the screen-space result of projecting one point.
type Projection struct {
	X, Y float64
	// PixelsPerUnit is how many screen pixels one world unit spans at this depth.
	PixelsPerUnit float64
	// Depth is the camera-space distance along the view direction.
	Depth float64
}

// NewProjector returns a projector with a 50° vertical field of view.
func NewProjector(eye, lookAt Vec3, viewport Rect) *Projector {
	return &Projector{Eye: eye, LookAt: lookAt, FOV: 50 * math.Pi / 180, Viewport: viewport}
}

func (p *Projector) basis() (forward, up Vec3) {
	dy := p.Eye.Y - p.LookAt.Y
	dz := p.Eye.Z - p.LookAt.Z
	pitch := math.Atan2(dy, dz)
	sin, cos := math.Sincos(pitch)
	return Vec3{0, -sin, -cos}, Vec3{0, cos, -sin}
}

func (p *Projector) focal() float64 {
	return p.Viewport.Height / 2 / math.Tan(p.FOV/2)
}

// Project maps world point w to the screen. ok is false when the point lies
// behind the near plane.
func (p *Projector) Project(w Vec3) (pr Projection, ok bool) {
	forward, up := p.basis()
	d := Vec3{w.X - p.Eye.X, w.Y - p.Eye.Y, w.Z - p.Eye.Z}
	zc := d.X*forward.X + d.Y*forward.Y + d.Z*forward.Z
	if zc < nearPlane {
		return Projection{}, false
	}
	yc := d.X*up.X + d.Y*up.Y + d.Z*up.Z
	ppu := p.focal() / zc
	cx := p.Viewport.X + p.Viewport.Width/2
	cy := p.Viewport.Y + p.Viewport.Height/2
	return Projection{
		X:             cx + d.X*ppu,
		Y:             cy - yc*ppu,
		PixelsPerUnit: ppu,
		Depth:         zc,
	}, true
}

// DepthOrder converts a depth into a ZIndex so that nearer points draw later.
func DepthOrder(depth float64) int {
	return -int(math.Round(depth * 1000))
}
