// Package pose converts raw tracked-controller samples into hand poses.
//
// A tracked controller reports its pose in the controller's own frame: the
// centroid of the device and the orientation of its local axes. Input layers
// want a pose anchored at the grip point of the hand, with axes aligned to a
// canonical palm-down, fingers-forward hand frame. [ComputeHandPose] applies
// the fixed per-hand rotation and translation offsets that bridge the two.
//
// All values use a right-handed coordinate system with +Y up, +X to the
// user's right and -Z forward. Distances are in meters.
//
// Example:
//
//	raw := pose.PoseState{
//	    Position:    pose.V3(0.2, 1.1, -0.3),
//	    Orientation: pose.IdentityQuat(),
//	}
//	hand := pose.ComputeHandPose(pose.Right, raw)
//	fmt.Println(hand.Translation, hand.Rotation)
//
// Everything in this package is a pure value computation and safe for
// concurrent use.
package pose
