package sdf

// Light is a world-scope light source. It participates in the pose graph
// and the scope namespace but carries no attachment reference.
type Light struct {
	name       string
	lightType  string
	relativeTo string
	rawPose    Pose
}

// Name returns the light name.
func (l *Light) Name() string {
	return l.name
}

// Type returns the light type attribute verbatim.
func (l *Light) Type() string {
	return l.lightType
}

// PoseRelativeTo returns the verbatim relative_to reference of the
// light's pose, empty if unset.
func (l *Light) PoseRelativeTo() string {
	return l.relativeTo
}

// RawPose returns the light's stored pose value without any composition.
func (l *Light) RawPose() Pose {
	return l.rawPose
}
