// Package sdf parses SDF-style scene description documents and resolves
// their frame semantics: which rigid body every named frame is attached
// to, and the composed pose of any frame relative to any other frame in
// the same scope.
//
// Loading and semantic validity are independent gates. Load returns only
// structural defects; a document with broken attachment or pose
// references still loads and stays queryable through the raw accessors.
// Frame-graph defects are collected by ValidateFrameSemantics on each
// scope, and block pose resolution until fixed.
package sdf

import (
	"github.com/jacoelho/sdf/internal/framegraph"
	"github.com/jacoelho/sdf/internal/pose"
)

// Pose is a 6 degree-of-freedom rigid transform: translation plus
// orientation.
type Pose = pose.Pose

// NewPose builds a pose from a translation and roll/pitch/yaw Euler
// angles in radians.
func NewPose(x, y, z, roll, pitch, yaw float64) Pose {
	return pose.New(x, y, z, roll, pitch, yaw)
}

// IdentityPose returns the zero translation, zero rotation pose.
func IdentityPose() Pose {
	return pose.Identity()
}

const (
	// WorldFrameName is the implicit root frame of every world scope.
	WorldFrameName = framegraph.WorldName
	// ModelOriginName is the implicit origin frame of every model scope.
	ModelOriginName = framegraph.ModelOriginName
)
