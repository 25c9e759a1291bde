package sdf

import "github.com/jacoelho/sdf/internal/framegraph"

// Frame is a named coordinate reference. Its raw accessors return the
// stored attribute strings verbatim and never trigger graph resolution;
// a malformed document stays queryable through them.
type Frame struct {
	name       string
	attachedTo string
	relativeTo string
	rawPose    Pose

	attachment *framegraph.Graph
}

// Name returns the frame name.
func (f *Frame) Name() string {
	return f.name
}

// AttachedTo returns the verbatim attached_to reference, empty if unset.
func (f *Frame) AttachedTo() string {
	return f.attachedTo
}

// PoseRelativeTo returns the verbatim relative_to reference of the
// frame's pose, empty if unset.
func (f *Frame) PoseRelativeTo() string {
	return f.relativeTo
}

// RawPose returns the frame's stored pose value without any composition.
func (f *Frame) RawPose() Pose {
	return f.rawPose
}

// ResolveAttachedTo walks the scope's attachment graph from this frame
// to the rigid body it ultimately moves with: a link, joint, model, or
// the scope's canonical body. It fails when the attachment graph has
// outstanding validation defects.
func (f *Frame) ResolveAttachedTo() (string, error) {
	return f.attachment.ResolveBody(f.name)
}
