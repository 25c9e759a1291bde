package sdf

// Joint connects two links within a model. It is a valid, terminal
// reference target for attachment and pose edges.
type Joint struct {
	name       string
	jointType  string
	parent     string
	child      string
	relativeTo string
	rawPose    Pose
}

// Name returns the joint name.
func (j *Joint) Name() string {
	return j.name
}

// Type returns the joint type attribute verbatim.
func (j *Joint) Type() string {
	return j.jointType
}

// ParentLinkName returns the declared parent link reference.
func (j *Joint) ParentLinkName() string {
	return j.parent
}

// ChildLinkName returns the declared child link reference.
func (j *Joint) ChildLinkName() string {
	return j.child
}

// PoseRelativeTo returns the verbatim relative_to reference of the
// joint's pose, empty if unset.
func (j *Joint) PoseRelativeTo() string {
	return j.relativeTo
}

// RawPose returns the joint's stored pose value without any composition.
func (j *Joint) RawPose() Pose {
	return j.rawPose
}
