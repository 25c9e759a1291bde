package sdf

import (
	"github.com/jacoelho/sdf/errors"
	"github.com/jacoelho/sdf/internal/framegraph"
	"github.com/jacoelho/sdf/internal/scope"
)

// World is a top-level scope containing models, frames, and lights. It
// carries an implicit frame named "world" that every attachment and pose
// walk in the scope terminates at.
type World struct {
	name   string
	models []*Model
	frames []*Frame
	lights []*Light

	table      *scope.Table
	attachment *framegraph.Graph
	poseGraph  *framegraph.Graph
	worldFrame *Frame
}

// Name returns the world name.
func (w *World) Name() string {
	return w.name
}

// ModelCount returns the number of models declared in the world.
func (w *World) ModelCount() int {
	return len(w.models)
}

// ModelByIndex returns the model at the given document-order index, or
// nil when the index is out of range.
func (w *World) ModelByIndex(index int) *Model {
	if index < 0 || index >= len(w.models) {
		return nil
	}
	return w.models[index]
}

// ModelByName returns the named model, or nil when absent.
func (w *World) ModelByName(name string) *Model {
	for _, model := range w.models {
		if model.name == name {
			return model
		}
	}
	return nil
}

// ModelNameExists reports whether the world declares the named model.
func (w *World) ModelNameExists(name string) bool {
	return w.ModelByName(name) != nil
}

// FrameCount returns the number of explicit frames declared in the
// world. The implicit "world" frame is not counted.
func (w *World) FrameCount() int {
	return len(w.frames)
}

// FrameByIndex returns the declared frame at the given index, or nil
// when the index is out of range.
func (w *World) FrameByIndex(index int) *Frame {
	if index < 0 || index >= len(w.frames) {
		return nil
	}
	return w.frames[index]
}

// FrameByName returns the named frame. The implicit "world" frame is
// reachable by name; unknown names return nil.
func (w *World) FrameByName(name string) *Frame {
	if name == framegraph.WorldName {
		return w.worldFrame
	}
	for _, frame := range w.frames {
		if frame.name == name {
			return frame
		}
	}
	return nil
}

// FrameNameExists reports whether the name refers to a frame in the
// world scope, including the implicit "world" frame.
func (w *World) FrameNameExists(name string) bool {
	return w.FrameByName(name) != nil
}

// LightCount returns the number of lights declared in the world.
func (w *World) LightCount() int {
	return len(w.lights)
}

// LightByIndex returns the light at the given index, or nil when the
// index is out of range.
func (w *World) LightByIndex(index int) *Light {
	if index < 0 || index >= len(w.lights) {
		return nil
	}
	return w.lights[index]
}

// LightByName returns the named light, or nil when absent.
func (w *World) LightByName(name string) *Light {
	for _, light := range w.lights {
		if light.name == name {
			return light
		}
	}
	return nil
}

// LightNameExists reports whether the world declares the named light.
func (w *World) LightNameExists(name string) bool {
	return w.LightByName(name) != nil
}

// NameExists reports whether any entity of any kind in the world scope
// uses the name. The implicit "world" frame counts.
func (w *World) NameExists(name string) bool {
	return name == framegraph.WorldName || w.table.Exists(name)
}

// ValidateFrameSemantics validates the world's attachment and pose
// graphs and, recursively, every model scope it contains. The full
// defect report is returned; loading succeeds independently of it.
func (w *World) ValidateFrameSemantics() errors.DiagnosticList {
	var diags errors.DiagnosticList
	diags = append(diags, w.attachment.Validate()...)
	diags = append(diags, w.poseGraph.Validate()...)
	for _, model := range w.models {
		diags = append(diags, model.ValidateFrameSemantics()...)
	}
	return diags
}

// ResolvePose expresses the frame named from in the coordinates of the
// frame named to, composing the scope's pose graph. Either name may be
// "world". It fails when the scope's pose graph has outstanding defects
// or when a name does not exist in the scope.
func (w *World) ResolvePose(from, to string) (Pose, error) {
	return w.poseGraph.Resolve(from, to)
}
