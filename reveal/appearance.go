package reveal

import "github.com/phanxgames/surprise"

// Material is the surface look of one part of an Object.
type Material struct {
	Color             surprise.Color
	Emissive          surprise.Color
	EmissiveIntensity float64
	Opacity           float64
	Metalness         float64
	Roughness         float64
}

// Glow returns the emissive contribution as a color.
func (m Material) Glow() surprise.Color {
	return m.Emissive.Scale(m.EmissiveIntensity)
}

// Appearance groups the materials of an Object. Ribbon is the zero Material
// for eggs.
type Appearance struct {
	Body   Material
	Ribbon Material
}

var (
	eggIdleColor          = surprise.MustHexColor("#ffffff")
	eggIdleEmissive       = surprise.MustHexColor("#444444")
	eggDiscoveredColor    = surprise.MustHexColor("#ff69b4")
	eggDiscoveredEmissive = surprise.MustHexColor("#ff1493")
	black                 = surprise.MustHexColor("#000000")
)

// EggMaterial returns the egg surface for the given discovery state.
func EggMaterial(discovered bool) Material {
	if discovered {
		return Material{
			Color:             eggDiscoveredColor,
			Emissive:          eggDiscoveredEmissive,
			EmissiveIntensity: 0.5,
			Opacity:           1,
			Metalness:         0.5,
			Roughness:         0.3,
		}
	}
	return Material{
		Color:             eggIdleColor,
		Emissive:          eggIdleEmissive,
		EmissiveIntensity: 0.1,
		Opacity:           0.3,
		Metalness:         0.5,
		Roughness:         0.3,
	}
}

// BoxAppearance returns the box and ribbon surfaces. Hovering makes the box
// glow faintly in its own color.
func BoxAppearance(box, ribbon surprise.Color, hovered bool) Appearance {
	body := Material{Color: box, Emissive: black, Opacity: 1, Metalness: 0.1, Roughness: 0.3}
	if hovered {
		body.Emissive = box
		body.EmissiveIntensity = 0.2
	}
	return Appearance{
		Body:   body,
		Ribbon: Material{Color: ribbon, Emissive: black, Opacity: 1, Metalness: 0.3, Roughness: 0.2},
	}
}

// Appearance returns the object's current materials.
func (o *Object) Appearance() Appearance {
	if o.cfg.Kind == KindBox {
		return BoxAppearance(o.cfg.BoxColor, o.cfg.RibbonColor, o.hovered)
	}
	return Appearance{Body: EggMaterial(o.Discovered())}
}

// LightSpec is a point light attached to an Object, positioned relative to
// the object's origin.
type LightSpec struct {
	Offset    surprise.Vec3
	Color     surprise.Color
	Intensity float64
	Distance  float64
	Decay     float64
}

var (
	lightPink = surprise.MustHexColor("#ff69b4")
	lightGold = surprise.MustHexColor("#ffd700")
	lightCyan = surprise.MustHexColor("#00ffff")
)

// EggLights returns the sparkle lights of a discovered egg.
func EggLights() []LightSpec {
	return []LightSpec{
		{Offset: surprise.Vec3{}, Color: lightPink, Intensity: 2, Distance: 2, Decay: 2},
		{Offset: surprise.Vec3{X: 0.5, Y: 0.5}, Color: lightGold, Intensity: 1, Distance: 1.5, Decay: 2},
		{Offset: surprise.Vec3{X: -0.5, Y: 0.5}, Color: lightCyan, Intensity: 1, Distance: 1.5, Decay: 2},
	}
}

// BoxLights returns the lights of an opened box with edge size.
func BoxLights(size float64) []LightSpec {
	return []LightSpec{
		{Offset: surprise.Vec3{Y: size * 0.5}, Color: lightGold, Intensity: 2, Distance: 2, Decay: 2},
		{Offset: surprise.Vec3{X: size * 0.3, Y: size * 0.7}, Color: lightPink, Intensity: 1.5, Distance: 1.5, Decay: 2},
		{Offset: surprise.Vec3{X: -size * 0.3, Y: size * 0.7}, Color: lightCyan, Intensity: 1.5, Distance: 1.5, Decay: 2},
	}
}

// Lights returns the emphasis lights that are on. Nothing is lit until the
// object is discovered; afterwards the set never changes.
func (o *Object) Lights() []LightSpec {
	if !o.Discovered() {
		return nil
	}
	if o.cfg.Kind == KindBox {
		return BoxLights(o.cfg.Size)
	}
	return EggLights()
}
