package snapshot

// BoneID names a skeletal joint supplied per tracked player.
type BoneID int

const (
	BoneHead BoneID = iota
	BoneNeck
	BoneSpineTop
	BoneSpineMid
	BoneSpineLow
	BonePelvis
	BoneLeftUpperArm
	BoneLeftForearm
	BoneLeftHand
	BoneRightUpperArm
	BoneRightForearm
	BoneRightHand
	BoneLeftThigh
	BoneLeftCalf
	BoneLeftFoot
	BoneLeftToe
	BoneRightThigh
	BoneRightCalf
	BoneRightFoot
	BoneRightToe

	boneCount
)

var boneNames = map[string]BoneID{
	"head":            BoneHead,
	"neck":            BoneNeck,
	"spine_top":       BoneSpineTop,
	"spine_mid":       BoneSpineMid,
	"spine_low":       BoneSpineLow,
	"pelvis":          BonePelvis,
	"left_upper_arm":  BoneLeftUpperArm,
	"left_forearm":    BoneLeftForearm,
	"left_hand":       BoneLeftHand,
	"right_upper_arm": BoneRightUpperArm,
	"right_forearm":   BoneRightForearm,
	"right_hand":      BoneRightHand,
	"left_thigh":      BoneLeftThigh,
	"left_calf":       BoneLeftCalf,
	"left_foot":       BoneLeftFoot,
	"left_toe":        BoneLeftToe,
	"right_thigh":     BoneRightThigh,
	"right_calf":      BoneRightCalf,
	"right_foot":      BoneRightFoot,
	"right_toe":       BoneRightToe,
}

// BoneByName resolves a wire-format bone name.
func BoneByName(name string) (BoneID, bool) {
	id, ok := boneNames[name]
	return id, ok
}

// BoneEdge is one line segment of the drawn skeleton.
type BoneEdge struct {
	From BoneID
	To   BoneID
}

// SkeletonEdges is the fixed connectivity graph the skeleton overlay draws:
// the head-to-pelvis spine chain, arm chains hanging off the neck, and leg
// chains hanging off the pelvis down to the toes.
var SkeletonEdges = []BoneEdge{
	{BoneHead, BoneNeck},
	{BoneNeck, BoneSpineTop},
	{BoneSpineTop, BoneSpineMid},
	{BoneSpineMid, BoneSpineLow},
	{BoneSpineLow, BonePelvis},

	{BoneNeck, BoneLeftUpperArm},
	{BoneLeftUpperArm, BoneLeftForearm},
	{BoneLeftForearm, BoneLeftHand},
	{BoneNeck, BoneRightUpperArm},
	{BoneRightUpperArm, BoneRightForearm},
	{BoneRightForearm, BoneRightHand},

	{BonePelvis, BoneLeftThigh},
	{BoneLeftThigh, BoneLeftCalf},
	{BoneLeftCalf, BoneLeftFoot},
	{BoneLeftFoot, BoneLeftToe},
	{BonePelvis, BoneRightThigh},
	{BoneRightThigh, BoneRightCalf},
	{BoneRightCalf, BoneRightFoot},
	{BoneRightFoot, BoneRightToe},
}
