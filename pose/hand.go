package pose

import "math"

// Handedness identifies which hand a controller is held in.
type Handedness uint8

const (
	// Left is the controller held in the left hand.
	Left Handedness = iota
	// Right is the controller held in the right hand.
	Right
)

// String returns "left" or "right".
func (h Handedness) String() string {
	switch h {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// PoseState is a raw 6-DOF sample reported by a tracked controller.
type PoseState struct {
	// Position is the controller centroid in tracking space.
	Position Vec3

	// Orientation is the controller's local frame in tracking space.
	// Expected to be a unit quaternion.
	Orientation Quat

	// LinearVelocity in meters per second.
	LinearVelocity Vec3

	// AngularVelocity in radians per second.
	AngularVelocity Vec3
}

// HandPose is a controller pose re-anchored to the grip point of the hand.
type HandPose struct {
	Translation     Vec3
	Rotation        Quat
	Velocity        Vec3
	AngularVelocity Vec3
	Valid           bool
}

// controllerLength is the measured length of a tracked hand controller.
const controllerLength = 0.0762 // three inches

var (
	// Controller axes to canonical hand axes when the hands are held out,
	// palms down: a half turn about Y followed by a quarter turn about X.
	controllerToHand = AngleAxis(math.Pi, UnitY).Mul(AngleAxis(math.Pi/2, UnitX))

	// The controller sits in the grip at an angle. The offset is the inverse
	// of the rotation measured with the hand posed fingers forward, which is
	// a quarter turn about Z (mirrored per hand) and an eighth turn about X.
	eighthX             = AngleAxis(math.Pi/4, UnitX)
	leftRotationOffset  = AngleAxis(-math.Pi/2, UnitZ).Mul(eighthX).Inverse().Mul(controllerToHand)
	rightRotationOffset = AngleAxis(math.Pi/2, UnitZ).Mul(eighthX).Inverse().Mul(controllerToHand)

	// Centroid to grip point, in controller-local axes.
	rightTranslationOffset = Vec3{X: controllerLength / 2, Y: controllerLength / 2, Z: controllerLength * 2}
	leftTranslationOffset  = rightTranslationOffset.ReflectX()
)

// RotationOffset returns the constant rotation applied after the raw
// orientation for the given hand.
func RotationOffset(h Handedness) Quat {
	if h == Left {
		return leftRotationOffset
	}
	return rightRotationOffset
}

// TranslationOffset returns the constant controller-local displacement from
// the controller centroid to the grip point for the given hand.
func TranslationOffset(h Handedness) Vec3 {
	if h == Left {
		return leftTranslationOffset
	}
	return rightTranslationOffset
}

// ComputeHandPose maps a raw controller sample to an anchored hand pose.
//
//	rotation    = R * RotationOffset(hand)
//	translation = P + R.Rotate(TranslationOffset(hand))
//
// Velocities are carried through unchanged and the result is always marked
// valid; tracking quality is judged by the caller. Any value other than Left
// is treated as Right.
func ComputeHandPose(hand Handedness, raw PoseState) HandPose {
	r := raw.Orientation
	return HandPose{
		Translation:     raw.Position.Add(r.Rotate(TranslationOffset(hand))),
		Rotation:        r.Mul(RotationOffset(hand)),
		Velocity:        raw.LinearVelocity,
		AngularVelocity: raw.AngularVelocity,
		Valid:           true,
	}
}
