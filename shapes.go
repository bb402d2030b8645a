package surprise

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// shapeResolution is the edge length, in pixels, of the cached shape masks.
// Nodes scale the mask to their Width and Height.
const shapeResolution = 64

// ringInner is the inner radius of ShapeRing relative to its outer radius.
const ringInner = 0.55

var shapeCache = map[Shape]*ebiten.Image{}

// shapeImage returns the white mask for shape, generating it on first use.
func shapeImage(shape Shape) *ebiten.Image {
	if img, ok := shapeCache[shape]; ok {
		return img
	}
	img := ebiten.NewImage(shapeResolution, shapeResolution)
	img.WritePixels(shapePixels(shape, shapeResolution))
	shapeCache[shape] = img
	return img
}

// shapeCoverage returns the alpha of shape at normalized coordinates
// (nx, ny) in [-1, 1], origin at the center.
func shapeCoverage(shape Shape, nx, ny float64) float64 {
	switch shape {
	case ShapeRect:
		return 1
	case ShapeCircle:
		if nx*nx+ny*ny <= 1 {
			return 1
		}
	case ShapeDiamond:
		if math.Abs(nx)+math.Abs(ny) <= 1 {
			return 1
		}
	case ShapeRing:
		d := math.Sqrt(nx*nx + ny*ny)
		if d <= 1 && d >= ringInner {
			return 1
		}
	case ShapeGlow:
		d := math.Sqrt(nx*nx + ny*ny)
		if d >= 1 {
			return 0
		}
		// smoothstep: 1 at center, 0 at edge
		t := 1 - d
		return t * t * (3 - 2*t)
	}
	return 0
}

// shapePixels rasterizes shape into a premultiplied white RGBA buffer.
func shapePixels(shape Shape, size int) []byte {
	pix := make([]byte, size*size*4)
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			nx := (float64(x) + 0.5 - half) / half
			ny := (float64(y) + 0.5 - half) / half
			a := uint8(shapeCoverage(shape, nx, ny) * 255)
			off := (y*size + x) * 4
			pix[off+0] = a
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	return pix
}
