// Package framegraph builds and resolves the two directed graphs frame
// semantics is defined by: the attachment graph ("this entity rigidly
// moves with that body") and the pose graph ("this entity's pose is
// expressed relative to that frame"). Both graphs share one validator and
// the single synthetic sink their walks must terminate at.
package framegraph

import (
	"sync"

	"github.com/jacoelho/sdf/errors"
	"github.com/jacoelho/sdf/internal/pose"
	"github.com/jacoelho/sdf/internal/scope"
)

// ModelOriginName is the vertex name of a model scope's implicit origin.
const ModelOriginName = "__model__"

// WorldName is the vertex name of a world scope's implicit root frame.
const WorldName = "world"

// Kind distinguishes the two graph flavors.
type Kind int

const (
	// Attachment graphs encode attached_to edges.
	Attachment Kind = iota
	// PoseRelative graphs encode pose relative_to edges.
	PoseRelative
)

func (k Kind) edgeName() string {
	if k == Attachment {
		return "attached_to"
	}
	return "relative_to"
}

// SinkKind selects what a scope's graphs terminate at.
type SinkKind int

const (
	// SinkWorld terminates world-scope graphs at the implicit world frame.
	SinkWorld SinkKind = iota
	// SinkCanonicalLink terminates a model attachment graph at its
	// canonical link.
	SinkCanonicalLink
	// SinkModelOrigin terminates a model pose graph at the model's own
	// implicit origin frame.
	SinkModelOrigin
)

// Sink is the tagged variant consumed uniformly by the validator and
// resolver: the world frame, a model's canonical link, or a model's
// implicit origin.
type Sink struct {
	Kind SinkKind
	Name string // canonical link name, for SinkCanonicalLink
}

// WorldSink terminates at the implicit "world" frame.
func WorldSink() Sink {
	return Sink{Kind: SinkWorld}
}

// CanonicalLinkSink terminates at the named canonical link.
func CanonicalLinkSink(name string) Sink {
	return Sink{Kind: SinkCanonicalLink, Name: name}
}

// ModelOriginSink terminates at the model's implicit origin frame.
func ModelOriginSink() Sink {
	return Sink{Kind: SinkModelOrigin}
}

// VertexName returns the graph vertex name the sink occupies.
func (s Sink) VertexName() string {
	switch s.Kind {
	case SinkCanonicalLink:
		return s.Name
	case SinkModelOrigin:
		return ModelOriginName
	default:
		return WorldName
	}
}

// vertex is one graph node. An empty target means the vertex has no
// outgoing edge: it is the sink or a terminal body.
type vertex struct {
	name   string
	kind   scope.Kind
	body   bool // terminal attachment target
	target string
	pose   pose.Pose // edge transform, pose graphs only
}

// Graph is one scope's attachment or pose graph. Building never fails:
// dangling edges are kept verbatim and reported by Validate.
type Graph struct {
	kind  Kind
	scope string
	sink  Sink

	vertices map[string]*vertex
	order    []string

	// canonical link sink that names no declared entity; reported by
	// Validate rather than rejected at build time.
	sinkDangling bool

	validateOnce sync.Once
	defects      errors.DiagnosticList
}

// NewAttachment builds the scope's attachment graph. Frames, lights, and
// models edge to their attached_to target, defaulting to the sink; links
// and joints are terminal bodies with no outgoing edge.
func NewAttachment(scopeName string, sink Sink, table *scope.Table) *Graph {
	g := newGraph(Attachment, scopeName, sink, table)

	for _, e := range table.All() {
		v := &vertex{name: e.Name, kind: e.Kind, body: e.Kind.IsBody()}
		switch {
		case e.Kind == scope.KindLink || e.Kind == scope.KindJoint:
			// Definitionally attached to the canonical body.
		case e.AttachedTo != "":
			v.target = e.AttachedTo
		default:
			v.target = g.sinkName()
		}
		g.add(v)
	}
	return g
}

// NewPose builds the scope's pose graph. Every entity carries one edge to
// its relative_to target, defaulting to the scope's implicit origin.
func NewPose(scopeName string, sink Sink, table *scope.Table) *Graph {
	g := newGraph(PoseRelative, scopeName, sink, table)

	for _, e := range table.All() {
		v := &vertex{name: e.Name, kind: e.Kind, pose: e.RawPose}
		if e.RelativeTo != "" {
			v.target = e.RelativeTo
		} else {
			v.target = g.sinkName()
		}
		g.add(v)
	}
	return g
}

func newGraph(kind Kind, scopeName string, sink Sink, table *scope.Table) *Graph {
	g := &Graph{
		kind:     kind,
		scope:    scopeName,
		sink:     sink,
		vertices: make(map[string]*vertex, table.Len()+1),
	}
	g.add(&vertex{name: g.sinkName(), body: true})
	if sink.Kind == SinkCanonicalLink && !table.Exists(sink.Name) {
		g.sinkDangling = true
	}
	return g
}

func (g *Graph) add(v *vertex) {
	if _, ok := g.vertices[v.name]; ok {
		// The canonical link occupies the pre-added sink slot; the
		// declared entity's record wins.
		g.vertices[v.name] = v
		return
	}
	g.vertices[v.name] = v
	g.order = append(g.order, v.name)
}

func (g *Graph) sinkName() string {
	return g.sink.VertexName()
}

// SinkName returns the vertex name the scope's walks terminate at.
func (g *Graph) SinkName() string {
	return g.sinkName()
}

// Exists reports whether the name is a vertex of the graph.
func (g *Graph) Exists(name string) bool {
	_, ok := g.vertices[name]
	return ok
}
