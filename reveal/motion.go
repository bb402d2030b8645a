package reveal

import (
	"math"

	"github.com/phanxgames/surprise"
)

// Easter egg motion constants.
const (
	eggRestScale      = 0.1
	eggHoverScale     = 0.12
	eggDiscoveredSize = 0.15
	// eggSmoothing is the per-update exponential smoothing factor. It is not
	// scaled by the frame delta.
	eggSmoothing = 0.1

	eggIdleBob           = 0.01
	eggHoverBob          = 0.02
	eggHoverBobFreq      = 3
	eggDiscoveredBob     = 0.15
	eggDiscoveredBobFreq = 2
	eggSpinRate          = 2
	eggPulseFreq         = 4
	eggPulseAmount       = 0.1
)

// Gift box motion constants.
const (
	// lidRate scales the per-frame delta in the lid tween, so convergence
	// speed depends on the frame rate.
	lidRate      = 5
	lidRestY     = 0.5
	lidLift      = 0.8
	lidTilt      = 0.3
	boxFloatStep = 0.0005
	boxFloatFreq = 2
	boxSwayFreq  = 0.5
	boxSway      = 0.05
)

// Transform is an object's pose for one frame.
type Transform struct {
	Position surprise.Vec3
	Rotation surprise.Vec3
	Scale    float64
}

// Ease moves current towards target by factor, once.
func Ease(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// EggMotion computes the per-frame pose of an easter egg. The bob and spin
// are functions of wall-clock elapsed time; the scale eases one step per call.
type EggMotion struct {
	Base  surprise.Vec3
	Phase float64
}

// Compute returns the pose at elapsed seconds given the hover/discovered
// state and the scale of the previous frame. It has no side effects.
func (m EggMotion) Compute(elapsed float64, hovered, discovered bool, prevScale float64) Transform {
	t := Transform{Position: m.Base}
	switch {
	case discovered:
		t.Position.Y = m.Base.Y + math.Sin(elapsed*eggDiscoveredBobFreq+m.Phase)*eggDiscoveredBob
		t.Rotation.Y = elapsed * eggSpinRate
		pulse := 1 + math.Sin(elapsed*eggPulseFreq)*eggPulseAmount
		t.Scale = pulse * eggDiscoveredSize
	case hovered:
		t.Position.Y = m.Base.Y + math.Sin(elapsed*eggHoverBobFreq)*eggHoverBob
		t.Scale = Ease(prevScale, eggHoverScale, eggSmoothing)
	default:
		t.Position.Y = m.Base.Y + math.Sin(elapsed+m.Phase)*eggIdleBob
		t.Scale = Ease(prevScale, eggRestScale, eggSmoothing)
	}
	return t
}

// LidStep advances the lid-open progress towards target over one frame of
// delta seconds.
func LidStep(progress, target, delta float64) float64 {
	return progress + (target-progress)*delta*lidRate
}

// LidPose is the lid's local offset for a given open progress.
type LidPose struct {
	Progress float64
	// Y is the lid's height above the box origin.
	Y float64
	// RotZ tilts the lid as it opens.
	RotZ float64
}

// LidPoseAt returns the lid pose for progress on a box of edge size.
func LidPoseAt(progress, size float64) LidPose {
	return LidPose{
		Progress: progress,
		Y:        size*lidRestY + progress*size*lidLift,
		RotZ:     progress * lidTilt,
	}
}

// BoxMotion computes the pose of a gift box body.
type BoxMotion struct {
	Base     surprise.Vec3
	Rotation surprise.Vec3
	Phase    float64
	// Float enables the gentle drift and sway animation.
	Float bool
}

// Compute returns the box pose at elapsed seconds. prev is the previous
// frame's pose; the float drift accumulates onto its height.
func (m BoxMotion) Compute(elapsed float64, prev Transform) Transform {
	t := Transform{Position: m.Base, Rotation: m.Rotation, Scale: 1}
	if !m.Float {
		return t
	}
	t.Position.Y = prev.Position.Y + math.Sin(elapsed*boxFloatFreq+m.Phase)*boxFloatStep
	t.Rotation.Y = math.Sin(elapsed*boxSwayFreq) * boxSway
	return t
}
