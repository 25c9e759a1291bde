// Package scope implements the per-scope entity table: the name-keyed
// registry of links, joints, frames, nested models, and lights that the
// frame-graph builders resolve references against. Names share a single
// kind-blind namespace within a scope.
package scope

import (
	"github.com/jacoelho/sdf/errors"
	"github.com/jacoelho/sdf/internal/pose"
)

// Kind identifies what a scope entity is.
type Kind int

const (
	// KindLink is a physical body belonging to a model.
	KindLink Kind = iota
	// KindJoint connects two links within a model.
	KindJoint
	// KindFrame is a named coordinate reference.
	KindFrame
	// KindModel is a nested or world-level model.
	KindModel
	// KindLight is a world-scope light source.
	KindLight
)

// String returns the document element name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindJoint:
		return "joint"
	case KindFrame:
		return "frame"
	case KindModel:
		return "model"
	case KindLight:
		return "light"
	default:
		return "unknown"
	}
}

// IsBody reports whether entities of this kind are rigid bodies, valid as
// terminal attachment targets.
func (k Kind) IsBody() bool {
	return k == KindLink || k == KindJoint || k == KindModel
}

// Entity is one named member of a scope with its raw, unresolved
// reference strings exactly as they appeared in the document.
type Entity struct {
	Name       string
	Kind       Kind
	AttachedTo string // frames only; empty means the scope default
	RelativeTo string // empty means the scope default
	RawPose    pose.Pose
	ParentLink string // joints only
	ChildLink  string // joints only
}

// Table is a scope's name-keyed entity registry with stable document order.
type Table struct {
	entities []*Entity
	byName   map[string]*Entity
}

// NewTable builds the registry from a scope's entities in declaration
// order. Name collisions between siblings of any kind are reported as
// duplicate-name diagnostics; colliding entries keep their first binding.
func NewTable(scopeName string, entities []*Entity) (*Table, errors.DiagnosticList) {
	t := &Table{
		entities: make([]*Entity, 0, len(entities)),
		byName:   make(map[string]*Entity, len(entities)),
	}

	var diags errors.DiagnosticList
	for _, e := range entities {
		if prev, ok := t.byName[e.Name]; ok {
			d := errors.Newf(errors.ErrDuplicateName, scopeName,
				"%s name %q collides with sibling %s", e.Kind, e.Name, prev.Kind)
			d.Source = e.Name
			diags = append(diags, d)
			continue
		}
		t.byName[e.Name] = e
		t.entities = append(t.entities, e)
	}
	return t, diags
}

// Exists reports whether any entity in the scope uses the name.
func (t *Table) Exists(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Lookup returns the entity with the given name, or false when absent.
// Absence is a normal outcome, not an error.
func (t *Table) Lookup(name string) (*Entity, bool) {
	e, ok := t.byName[name]
	return e, ok
}

// Len returns the number of entities in the scope.
func (t *Table) Len() int {
	return len(t.entities)
}

// All returns the entities in declaration order. The slice is shared and
// must not be mutated.
func (t *Table) All() []*Entity {
	return t.entities
}
