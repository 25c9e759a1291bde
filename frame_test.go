package sdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/sdf/errors"
)

const tol = 1e-9

func loadString(t *testing.T, text string) *Root {
	t.Helper()
	var root Root
	diags := root.LoadString(text)
	require.True(t, diags.Empty(), "load diagnostics: %v", diags)
	return &root
}

func TestModelFrameRawParse(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<model name="my_model">
			<frame name="mframe"><pose relative_to="/world">1 1 0 0 0 0</pose></frame>
			<pose relative_to="mframe">1 0 0 0 0 0</pose>
			<link name="link"/>
		</model>
	</sdf>`)

	model := root.ModelByIndex(0)
	require.NotNil(t, model)
	assert.Equal(t, "my_model", model.Name())

	// Raw access performs no composition and no resolution.
	frame := model.FrameByName("mframe")
	require.NotNil(t, frame)
	assert.Equal(t, "/world", frame.PoseRelativeTo())
	assert.True(t, frame.RawPose().ApproxEqual(NewPose(1, 1, 0, 0, 0, 0), tol))

	assert.Equal(t, "mframe", model.PoseRelativeTo())
	assert.True(t, model.RawPose().ApproxEqual(NewPose(1, 0, 0, 0, 0, 0), tol))
}

func TestFrameDefaultPose(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<model name="my_model">
			<frame name="mframe"/>
			<link name="link"/>
		</model>
	</sdf>`)

	frame := root.ModelByIndex(0).FrameByName("mframe")
	require.NotNil(t, frame)
	assert.Equal(t, "", frame.PoseRelativeTo())
	assert.Equal(t, "", frame.AttachedTo())
	assert.True(t, frame.RawPose().ApproxEqual(IdentityPose(), tol))
}

func TestLoadModelFramesAttachedTo(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<model name="model_frame_attached_to">
			<link name="L"/>
			<frame name="F00"/>
			<frame name="F0" attached_to=""/>
			<frame name="F1" attached_to="L"/>
			<frame name="F2" attached_to="F1"/>
		</model>
	</sdf>`)

	model := root.ModelByIndex(0)
	require.NotNil(t, model)
	assert.Equal(t, "model_frame_attached_to", model.Name())
	assert.Equal(t, 1, model.LinkCount())
	assert.NotNil(t, model.LinkByIndex(0))
	assert.Nil(t, model.LinkByIndex(1))
	assert.True(t, model.RawPose().ApproxEqual(IdentityPose(), tol))
	assert.Equal(t, "", model.PoseRelativeTo())
	assert.True(t, model.LinkNameExists("L"))
	assert.Equal(t, "", model.CanonicalLinkName())

	assert.Equal(t, 0, model.JointCount())
	assert.Nil(t, model.JointByIndex(0))

	assert.Equal(t, 4, model.FrameCount())
	assert.NotNil(t, model.FrameByIndex(3))
	assert.Nil(t, model.FrameByIndex(4))

	assert.Equal(t, "", model.FrameByName("F00").AttachedTo())
	assert.Equal(t, "", model.FrameByName("F0").AttachedTo())
	assert.Equal(t, "L", model.FrameByName("F1").AttachedTo())
	assert.Equal(t, "F1", model.FrameByName("F2").AttachedTo())

	require.True(t, model.ValidateFrameSemantics().Empty())
	for _, name := range []string{"F00", "F0", "F1", "F2"} {
		body, err := model.FrameByName(name).ResolveAttachedTo()
		require.NoError(t, err)
		assert.Equal(t, "L", body, "frame %s", name)
	}
}

func TestLoadModelFramesInvalidAttachedTo(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<model name="model_frame_invalid_attached_to">
			<link name="L"/>
			<frame name="F1" attached_to="L"/>
			<frame name="F2" attached_to="F1"/>
			<frame name="F3" attached_to="A"/>
			<frame name="F4" attached_to="F4"/>
		</model>
	</sdf>`)

	model := root.ModelByIndex(0)
	require.NotNil(t, model)
	assert.Equal(t, 4, model.FrameCount())

	// Malformed references load and are queryable verbatim.
	assert.Equal(t, "A", model.FrameByName("F3").AttachedTo())
	assert.Equal(t, "F4", model.FrameByName("F4").AttachedTo())

	diags := model.ValidateFrameSemantics()
	require.Len(t, diags, 2)
	assert.Equal(t, errors.ErrUnresolvedReference, diags[0].Code)
	assert.Equal(t, "F3", diags[0].Source)
	assert.Equal(t, "A", diags[0].Target)
	assert.Equal(t, errors.ErrCycle, diags[1].Code)
	assert.Equal(t, []string{"F4", "F4"}, diags[1].Path)

	// Resolution is blocked while defects are outstanding.
	_, err := model.FrameByName("F1").ResolveAttachedTo()
	require.Error(t, err)
	got, ok := errors.AsDiagnostics(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnresolvedGraph, got[0].Code)
}

func TestLoadModelFramesAttachedToJoint(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<model name="model_frame_attached_to_joint">
			<link name="P"/>
			<link name="C"/>
			<joint name="J" type="fixed">
				<parent>P</parent>
				<child>C</child>
			</joint>
			<frame name="F1" attached_to="P"/>
			<frame name="F2" attached_to="C"/>
			<frame name="F3" attached_to="J"/>
			<frame name="F4" attached_to="F3"/>
		</model>
	</sdf>`)

	model := root.ModelByIndex(0)
	require.NotNil(t, model)
	assert.Equal(t, 2, model.LinkCount())
	assert.Equal(t, 1, model.JointCount())
	assert.True(t, model.JointNameExists("J"))
	assert.Equal(t, "P", model.JointByName("J").ParentLinkName())
	assert.Equal(t, "C", model.JointByName("J").ChildLinkName())

	assert.Equal(t, "P", model.FrameByName("F1").AttachedTo())
	assert.Equal(t, "C", model.FrameByName("F2").AttachedTo())
	assert.Equal(t, "J", model.FrameByName("F3").AttachedTo())
	assert.Equal(t, "F3", model.FrameByName("F4").AttachedTo())

	require.True(t, model.ValidateFrameSemantics().Empty())

	// A joint is a terminal attachment target.
	body, err := model.FrameByName("F3").ResolveAttachedTo()
	require.NoError(t, err)
	assert.Equal(t, "J", body)
	body, err = model.FrameByName("F4").ResolveAttachedTo()
	require.NoError(t, err)
	assert.Equal(t, "J", body)
}

func TestLoadWorldFramesAttachedTo(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<world name="world_frame_attached_to">
			<model name="M1">
				<link name="L"/>
				<frame name="F0" attached_to="L"/>
			</model>
			<frame name="F0"/>
			<frame name="F1" attached_to="F0"/>
			<frame name="F2" attached_to="M1"/>
		</world>
	</sdf>`)

	world := root.WorldByIndex(0)
	require.NotNil(t, world)
	assert.Equal(t, "world_frame_attached_to", world.Name())
	assert.Equal(t, 1, world.ModelCount())
	assert.True(t, world.ModelNameExists("M1"))

	model := world.ModelByIndex(0)
	require.NotNil(t, model)
	assert.Equal(t, "L", model.FrameByName("F0").AttachedTo())

	// Declared frames only; the implicit world frame is reachable by
	// name but not by index.
	assert.Equal(t, 3, world.FrameCount())
	assert.NotNil(t, world.FrameByIndex(2))
	assert.Nil(t, world.FrameByIndex(3))
	assert.True(t, world.FrameNameExists("world"))
	assert.Equal(t, "", world.FrameByName("world").AttachedTo())
	assert.Equal(t, "", world.FrameByName("world").PoseRelativeTo())

	assert.Equal(t, "F0", world.FrameByName("F1").AttachedTo())
	assert.Equal(t, "M1", world.FrameByName("F2").AttachedTo())

	require.True(t, world.ValidateFrameSemantics().Empty())

	body, err := world.FrameByName("F1").ResolveAttachedTo()
	require.NoError(t, err)
	assert.Equal(t, "world", body)
	body, err = world.FrameByName("F2").ResolveAttachedTo()
	require.NoError(t, err)
	assert.Equal(t, "M1", body)
}

func TestLoadWorldFramesInvalidAttachedTo(t *testing.T) {
	var root Root
	diags := root.LoadString(`<sdf version="1.7">
		<world name="world_frame_invalid_attached_to">
			<frame name="self_cycle" attached_to="self_cycle"/>
			<frame name="F" attached_to="A"/>
		</world>
	</sdf>`)

	// Loading succeeds; loading and semantic validity are independent.
	require.True(t, diags.Empty(), "load diagnostics: %v", diags)

	world := root.WorldByIndex(0)
	require.NotNil(t, world)
	assert.Equal(t, 2, world.FrameCount())
	assert.Equal(t, "self_cycle", world.FrameByName("self_cycle").AttachedTo())
	assert.Equal(t, "A", world.FrameByName("F").AttachedTo())

	report := world.ValidateFrameSemantics()
	require.Len(t, report, 2)

	var cycles, unresolved int
	for _, d := range report {
		switch d.Code {
		case errors.ErrCycle:
			cycles++
			assert.Equal(t, "self_cycle", d.Source)
		case errors.ErrUnresolvedReference:
			unresolved++
			assert.Equal(t, "F", d.Source)
			assert.Equal(t, "A", d.Target)
		}
	}
	assert.Equal(t, 1, cycles)
	assert.Equal(t, 1, unresolved)
}

func TestLoadModelFramesRelativeTo(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<model name="model_frame_relative_to">
			<link name="L"/>
			<frame name="F0"/>
			<frame name="F1" attached_to="L"/>
			<frame name="F2" attached_to="L"/>
			<frame name="F3"><pose relative_to="L">0 0 0 0 0 0</pose></frame>
		</model>
	</sdf>`)

	model := root.ModelByIndex(0)
	require.NotNil(t, model)
	assert.Equal(t, 4, model.FrameCount())

	assert.Equal(t, "", model.FrameByName("F0").PoseRelativeTo())
	assert.Equal(t, "", model.FrameByName("F1").PoseRelativeTo())
	assert.Equal(t, "", model.FrameByName("F2").PoseRelativeTo())
	assert.Equal(t, "L", model.FrameByName("F3").PoseRelativeTo())

	require.True(t, model.ValidateFrameSemantics().Empty())
}

func TestLoadModelFramesInvalidRelativeTo(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<model name="model_invalid_frame_relative_to">
			<link name="L"/>
			<frame name="F"><pose relative_to="A">0 0 0 0 0 0</pose></frame>
			<frame name="cycle"><pose relative_to="cycle">0 0 0 0 0 0</pose></frame>
		</model>
	</sdf>`)

	model := root.ModelByIndex(0)
	require.NotNil(t, model)
	assert.Equal(t, "A", model.FrameByName("F").PoseRelativeTo())
	assert.Equal(t, "cycle", model.FrameByName("cycle").PoseRelativeTo())

	report := model.ValidateFrameSemantics()
	require.Len(t, report, 2)
	assert.Equal(t, errors.ErrUnresolvedReference, report[0].Code)
	assert.Equal(t, errors.ErrCycle, report[1].Code)

	_, err := model.ResolvePose("F", "L")
	require.Error(t, err)
	got, ok := errors.AsDiagnostics(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrUnresolvedGraph, got[0].Code)
}

func TestLoadModelFramesRelativeToJoint(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<model name="model_frame_relative_to_joint">
			<link name="P"/>
			<link name="C"/>
			<joint name="J" type="revolute">
				<parent>P</parent>
				<child>C</child>
			</joint>
			<frame name="F1"><pose relative_to="P">0 0 0 0 0 0</pose></frame>
			<frame name="F2"><pose relative_to="C">0 0 0 0 0 0</pose></frame>
			<frame name="F3"><pose relative_to="J">0 0 0 0 0 0</pose></frame>
			<frame name="F4"><pose relative_to="F3">0 0 0 0 0 0</pose></frame>
		</model>
	</sdf>`)

	model := root.ModelByIndex(0)
	require.NotNil(t, model)

	assert.Equal(t, "P", model.FrameByName("F1").PoseRelativeTo())
	assert.Equal(t, "C", model.FrameByName("F2").PoseRelativeTo())
	assert.Equal(t, "J", model.FrameByName("F3").PoseRelativeTo())
	assert.Equal(t, "F3", model.FrameByName("F4").PoseRelativeTo())

	for _, name := range []string{"F1", "F2", "F3", "F4"} {
		assert.Equal(t, "", model.FrameByName(name).AttachedTo())
	}

	require.True(t, model.ValidateFrameSemantics().Empty())
}

func TestLoadWorldFramesRelativeTo(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<world name="world_frame_relative_to">
			<model name="M1">
				<link name="L"/>
				<frame name="F0"><pose relative_to="L">0 0 0 0 0 0</pose></frame>
			</model>
			<model name="M2">
				<link name="L"/>
			</model>
			<model name="M3">
				<pose relative_to="M2">0 0 0 0 0 0</pose>
				<link name="L"/>
			</model>
			<model name="M4">
				<pose relative_to="F1">0 0 0 0 0 0</pose>
				<link name="L"/>
			</model>
			<frame name="F0"/>
			<frame name="F1"><pose relative_to="F0">0 0 0 0 0 0</pose></frame>
			<frame name="F2"><pose relative_to="M1">0 0 0 0 0 0</pose></frame>
		</world>
	</sdf>`)

	world := root.WorldByIndex(0)
	require.NotNil(t, world)
	assert.Equal(t, 4, world.ModelCount())
	assert.NotNil(t, world.ModelByIndex(3))
	assert.Nil(t, world.ModelByIndex(4))
	for _, name := range []string{"M1", "M2", "M3", "M4"} {
		assert.True(t, world.ModelNameExists(name), "model %s", name)
	}

	assert.Equal(t, "L", world.ModelByName("M1").FrameByName("F0").PoseRelativeTo())

	// Model poses resolve against the enclosing world scope; the raw
	// references are returned verbatim.
	assert.Equal(t, "", world.ModelByName("M1").PoseRelativeTo())
	assert.Equal(t, "", world.ModelByName("M2").PoseRelativeTo())
	assert.Equal(t, "M2", world.ModelByName("M3").PoseRelativeTo())
	assert.Equal(t, "F1", world.ModelByName("M4").PoseRelativeTo())
	assert.True(t, world.FrameNameExists("F1"))

	assert.Equal(t, 3, world.FrameCount())
	assert.Equal(t, "F0", world.FrameByName("F1").PoseRelativeTo())
	assert.Equal(t, "M1", world.FrameByName("F2").PoseRelativeTo())

	require.True(t, world.ValidateFrameSemantics().Empty())
}

func TestLoadWorldFramesInvalidRelativeTo(t *testing.T) {
	root := loadString(t, `<sdf version="1.7">
		<world name="world_frame_invalid_relative_to">
			<model name="cycle">
				<pose relative_to="cycle">0 0 0 0 0 0</pose>
				<link name="L"/>
			</model>
			<model name="M">
				<pose relative_to="A">0 0 0 0 0 0</pose>
				<link name="L"/>
			</model>
			<frame name="self_cycle"><pose relative_to="self_cycle">0 0 0 0 0 0</pose></frame>
			<frame name="F"><pose relative_to="A">0 0 0 0 0 0</pose></frame>
		</world>
	</sdf>`)

	world := root.WorldByIndex(0)
	require.NotNil(t, world)
	assert.Equal(t, "cycle", world.ModelByName("cycle").PoseRelativeTo())
	assert.Equal(t, "A", world.ModelByName("M").PoseRelativeTo())
	assert.Equal(t, "self_cycle", world.FrameByName("self_cycle").PoseRelativeTo())
	assert.Equal(t, "A", world.FrameByName("F").PoseRelativeTo())

	report := world.ValidateFrameSemantics()

	var cycles, unresolved int
	for _, d := range report {
		switch d.Code {
		case errors.ErrCycle:
			cycles++
		case errors.ErrUnresolvedReference:
			unresolved++
		}
	}
	assert.Equal(t, 2, cycles, "report: %v", report)
	assert.Equal(t, 2, unresolved, "report: %v", report)
}
