package sdf

// Link is a physical body belonging to a model. It is always a valid
// attachment and pose-reference target within its model's scope.
type Link struct {
	name       string
	relativeTo string
	rawPose    Pose
}

// Name returns the link name.
func (l *Link) Name() string {
	return l.name
}

// PoseRelativeTo returns the verbatim relative_to reference of the
// link's pose, empty if unset.
func (l *Link) PoseRelativeTo() string {
	return l.relativeTo
}

// RawPose returns the link's stored pose value without any composition.
func (l *Link) RawPose() Pose {
	return l.rawPose
}
