package sdf

import (
	"github.com/jacoelho/sdf/errors"
	"github.com/jacoelho/sdf/internal/framegraph"
	"github.com/jacoelho/sdf/internal/scope"
)

// Model is a scope containing links, joints, frames, and nested models.
// Its own pose is expressed against the enclosing scope (parent model or
// world); its attachment graph terminates at the canonical link.
type Model struct {
	name          string
	canonicalName string // canonical_link attribute, verbatim
	relativeTo    string
	rawPose       Pose

	links  []*Link
	joints []*Joint
	frames []*Frame
	models []*Model

	table      *scope.Table
	attachment *framegraph.Graph
	poseGraph  *framegraph.Graph
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// RawPose returns the model's stored pose value without any composition.
func (m *Model) RawPose() Pose {
	return m.rawPose
}

// PoseRelativeTo returns the verbatim relative_to reference of the
// model's own pose, empty if unset. It never triggers resolution.
func (m *Model) PoseRelativeTo() string {
	return m.relativeTo
}

// CanonicalLinkName returns the canonical_link attribute verbatim; empty
// when the canonical link is inferred from declaration order.
func (m *Model) CanonicalLinkName() string {
	return m.canonicalName
}

// LinkCount returns the number of links declared in the model.
func (m *Model) LinkCount() int {
	return len(m.links)
}

// LinkByIndex returns the link at the given document-order index, or nil
// when the index is out of range.
func (m *Model) LinkByIndex(index int) *Link {
	if index < 0 || index >= len(m.links) {
		return nil
	}
	return m.links[index]
}

// LinkByName returns the named link, or nil when absent.
func (m *Model) LinkByName(name string) *Link {
	for _, link := range m.links {
		if link.name == name {
			return link
		}
	}
	return nil
}

// LinkNameExists reports whether the model declares the named link.
func (m *Model) LinkNameExists(name string) bool {
	return m.LinkByName(name) != nil
}

// JointCount returns the number of joints declared in the model.
func (m *Model) JointCount() int {
	return len(m.joints)
}

// JointByIndex returns the joint at the given index, or nil when the
// index is out of range.
func (m *Model) JointByIndex(index int) *Joint {
	if index < 0 || index >= len(m.joints) {
		return nil
	}
	return m.joints[index]
}

// JointByName returns the named joint, or nil when absent.
func (m *Model) JointByName(name string) *Joint {
	for _, joint := range m.joints {
		if joint.name == name {
			return joint
		}
	}
	return nil
}

// JointNameExists reports whether the model declares the named joint.
func (m *Model) JointNameExists(name string) bool {
	return m.JointByName(name) != nil
}

// FrameCount returns the number of frames declared in the model.
func (m *Model) FrameCount() int {
	return len(m.frames)
}

// FrameByIndex returns the frame at the given index, or nil when the
// index is out of range.
func (m *Model) FrameByIndex(index int) *Frame {
	if index < 0 || index >= len(m.frames) {
		return nil
	}
	return m.frames[index]
}

// FrameByName returns the named frame, or nil when absent.
func (m *Model) FrameByName(name string) *Frame {
	for _, frame := range m.frames {
		if frame.name == name {
			return frame
		}
	}
	return nil
}

// FrameNameExists reports whether the model declares the named frame.
func (m *Model) FrameNameExists(name string) bool {
	return m.FrameByName(name) != nil
}

// ModelCount returns the number of directly nested models.
func (m *Model) ModelCount() int {
	return len(m.models)
}

// ModelByIndex returns the nested model at the given index, or nil when
// the index is out of range.
func (m *Model) ModelByIndex(index int) *Model {
	if index < 0 || index >= len(m.models) {
		return nil
	}
	return m.models[index]
}

// ModelByName returns the named nested model, or nil when absent.
func (m *Model) ModelByName(name string) *Model {
	for _, nested := range m.models {
		if nested.name == name {
			return nested
		}
	}
	return nil
}

// ModelNameExists reports whether the model declares the named nested
// model.
func (m *Model) ModelNameExists(name string) bool {
	return m.ModelByName(name) != nil
}

// NameExists reports whether any entity of any kind in the model scope
// uses the name.
func (m *Model) NameExists(name string) bool {
	return m.table.Exists(name)
}

// ValidateFrameSemantics validates the model's attachment and pose
// graphs and, recursively, every nested model scope.
func (m *Model) ValidateFrameSemantics() errors.DiagnosticList {
	var diags errors.DiagnosticList
	diags = append(diags, m.attachment.Validate()...)
	diags = append(diags, m.poseGraph.Validate()...)
	for _, nested := range m.models {
		diags = append(diags, nested.ValidateFrameSemantics()...)
	}
	return diags
}

// ResolvePose expresses the frame named from in the coordinates of the
// frame named to within the model scope. Either name may be the implicit
// model origin, ModelOriginName.
func (m *Model) ResolvePose(from, to string) (Pose, error) {
	return m.poseGraph.Resolve(from, to)
}
