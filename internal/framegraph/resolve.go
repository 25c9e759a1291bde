package framegraph

import (
	"fmt"

	"github.com/jacoelho/sdf/errors"
	"github.com/jacoelho/sdf/internal/pose"
)

// Resolve composes the transform expressing the source frame in the
// destination frame's coordinates. It is defined only on a pose graph
// with no outstanding validation defects; requesting it triggers
// validation lazily.
func (g *Graph) Resolve(from, to string) (pose.Pose, error) {
	if g.kind != PoseRelative {
		return pose.Identity(), fmt.Errorf("resolve pose on %s graph", g.kind.edgeName())
	}
	if defects := g.Validate(); !defects.Empty() {
		d := errors.Newf(errors.ErrUnresolvedGraph, g.scope,
			"pose graph of scope %q has %d unresolved defects", g.scope, len(defects))
		return pose.Identity(), &d
	}
	if err := g.checkVertex(from); err != nil {
		return pose.Identity(), err
	}
	if err := g.checkVertex(to); err != nil {
		return pose.Identity(), err
	}

	src := g.chainToSink(from)
	dst := g.chainToSink(to)
	return dst.Inverse().Mul(src), nil
}

// ResolveBody walks the attachment graph from the named entity to the
// first rigid body: a link, joint, model, or the scope sink. It is
// defined only on a defect-free attachment graph.
func (g *Graph) ResolveBody(from string) (string, error) {
	if g.kind != Attachment {
		return "", fmt.Errorf("resolve body on %s graph", g.kind.edgeName())
	}
	if defects := g.Validate(); !defects.Empty() {
		d := errors.Newf(errors.ErrUnresolvedGraph, g.scope,
			"attachment graph of scope %q has %d unresolved defects", g.scope, len(defects))
		return "", &d
	}
	if err := g.checkVertex(from); err != nil {
		return "", err
	}

	cur := g.vertices[from]
	for hops := 0; hops <= len(g.order); hops++ {
		if cur.body {
			return cur.name, nil
		}
		if cur.target == "" {
			return cur.name, nil
		}
		cur = g.vertices[cur.target]
	}
	// Unreachable on a validated graph.
	d := errors.Newf(errors.ErrCycle, g.scope, "attachment walk from %q did not terminate", from)
	d.Source = from
	return "", &d
}

// chainToSink accumulates the composed transform mapping the named frame
// into the sink frame. Callers guarantee the graph is validated and the
// name exists.
func (g *Graph) chainToSink(name string) pose.Pose {
	acc := pose.Identity()
	cur := g.vertices[name]
	for cur.name != g.sinkName() {
		acc = cur.pose.Mul(acc)
		cur = g.vertices[cur.target]
	}
	return acc
}

func (g *Graph) checkVertex(name string) error {
	if g.Exists(name) {
		return nil
	}
	d := errors.Newf(errors.ErrUnresolvedReference, g.scope,
		"frame %q does not exist in scope %q", name, g.scope)
	d.Target = name
	return &d
}
