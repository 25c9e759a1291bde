package sdf

import (
	"strings"

	"github.com/jacoelho/sdf/errors"
	"github.com/jacoelho/sdf/internal/framegraph"
	"github.com/jacoelho/sdf/internal/pose"
	"github.com/jacoelho/sdf/internal/scope"
	"github.com/jacoelho/sdf/internal/xmltree"
)

// readRoot interprets the parsed element tree. Structural defects
// (unknown root, missing names, duplicate names, malformed pose values)
// are collected here; frame-graph defects never are.
func readRoot(elem *xmltree.Element) (*Root, errors.DiagnosticList) {
	var diags errors.DiagnosticList

	if elem.Name != "sdf" {
		diags = append(diags, errors.Newf(errors.ErrUnknownRoot, "",
			"root element is <%s>, expected <sdf>", elem.Name))
		return nil, diags
	}

	root := &Root{version: elem.GetAttribute("version")}
	for _, child := range elem.Children() {
		switch child.Name {
		case "world":
			world, worldDiags := readWorld(child)
			diags = append(diags, worldDiags...)
			if world != nil {
				root.worlds = append(root.worlds, world)
			}
		case "model":
			model, modelDiags := readModel(child)
			diags = append(diags, modelDiags...)
			if model != nil {
				root.models = append(root.models, model)
			}
		}
	}

	if !diags.Empty() {
		return nil, diags
	}
	return root, nil
}

func readWorld(elem *xmltree.Element) (*World, errors.DiagnosticList) {
	var diags errors.DiagnosticList

	name, ok := readName(elem, "", &diags)
	if !ok {
		return nil, diags
	}

	world := &World{name: name}
	var entities []*scope.Entity

	for _, child := range elem.Children() {
		switch child.Name {
		case "model":
			model, modelDiags := readModel(child)
			diags = append(diags, modelDiags...)
			if model == nil {
				continue
			}
			world.models = append(world.models, model)
			entities = append(entities, &scope.Entity{
				Name:       model.name,
				Kind:       scope.KindModel,
				RelativeTo: model.relativeTo,
				RawPose:    model.rawPose,
			})
		case "frame":
			frame, entity, frameDiags := readFrame(child, name)
			diags = append(diags, frameDiags...)
			if frame == nil {
				continue
			}
			world.frames = append(world.frames, frame)
			entities = append(entities, entity)
		case "light":
			light, entity, lightDiags := readLight(child, name)
			diags = append(diags, lightDiags...)
			if light == nil {
				continue
			}
			world.lights = append(world.lights, light)
			entities = append(entities, entity)
		}
	}

	// "world" names the implicit root frame and cannot be redeclared.
	for _, e := range entities {
		if e.Name == framegraph.WorldName {
			d := errors.Newf(errors.ErrReservedName, name,
				"%s name %q is reserved in a world scope", e.Kind, e.Name)
			d.Source = e.Name
			diags = append(diags, d)
		}
	}

	table, tableDiags := scope.NewTable(name, entities)
	diags = append(diags, tableDiags...)
	world.table = table

	world.attachment = framegraph.NewAttachment(name, framegraph.WorldSink(), table)
	world.poseGraph = framegraph.NewPose(name, framegraph.WorldSink(), table)
	world.worldFrame = &Frame{name: framegraph.WorldName, rawPose: pose.Identity(), attachment: world.attachment}
	for _, frame := range world.frames {
		frame.attachment = world.attachment
	}

	if !diags.Empty() {
		return nil, diags
	}
	return world, nil
}

func readModel(elem *xmltree.Element) (*Model, errors.DiagnosticList) {
	var diags errors.DiagnosticList

	name, ok := readName(elem, "", &diags)
	if !ok {
		return nil, diags
	}

	model := &Model{
		name:          name,
		canonicalName: elem.GetAttribute("canonical_link"),
	}
	model.relativeTo, model.rawPose = readPose(elem, name, name, &diags)

	var entities []*scope.Entity
	for _, child := range elem.Children() {
		switch child.Name {
		case "link":
			link, entity, linkDiags := readLink(child, name)
			diags = append(diags, linkDiags...)
			if link == nil {
				continue
			}
			model.links = append(model.links, link)
			entities = append(entities, entity)
		case "joint":
			joint, entity, jointDiags := readJoint(child, name)
			diags = append(diags, jointDiags...)
			if joint == nil {
				continue
			}
			model.joints = append(model.joints, joint)
			entities = append(entities, entity)
		case "frame":
			frame, entity, frameDiags := readFrame(child, name)
			diags = append(diags, frameDiags...)
			if frame == nil {
				continue
			}
			model.frames = append(model.frames, frame)
			entities = append(entities, entity)
		case "model":
			nested, nestedDiags := readModel(child)
			diags = append(diags, nestedDiags...)
			if nested == nil {
				continue
			}
			model.models = append(model.models, nested)
			entities = append(entities, &scope.Entity{
				Name:       nested.name,
				Kind:       scope.KindModel,
				RelativeTo: nested.relativeTo,
				RawPose:    nested.rawPose,
			})
		}
	}

	if len(model.links) == 0 && model.canonicalName == "" {
		diags = append(diags, errors.Newf(errors.ErrMissingLink, name,
			"model %q has no link and no canonical_link", name))
	}

	table, tableDiags := scope.NewTable(name, entities)
	diags = append(diags, tableDiags...)
	model.table = table

	canonical := model.canonicalName
	if canonical == "" && len(model.links) > 0 {
		canonical = model.links[0].name
	}
	model.attachment = framegraph.NewAttachment(name, framegraph.CanonicalLinkSink(canonical), table)
	model.poseGraph = framegraph.NewPose(name, framegraph.ModelOriginSink(), table)
	for _, frame := range model.frames {
		frame.attachment = model.attachment
	}

	if !diags.Empty() {
		return nil, diags
	}
	return model, nil
}

func readLink(elem *xmltree.Element, scopeName string) (*Link, *scope.Entity, errors.DiagnosticList) {
	var diags errors.DiagnosticList

	name, ok := readName(elem, scopeName, &diags)
	if !ok {
		return nil, nil, diags
	}

	link := &Link{name: name}
	link.relativeTo, link.rawPose = readPose(elem, scopeName, name, &diags)
	entity := &scope.Entity{
		Name:       name,
		Kind:       scope.KindLink,
		RelativeTo: link.relativeTo,
		RawPose:    link.rawPose,
	}
	return link, entity, diags
}

func readJoint(elem *xmltree.Element, scopeName string) (*Joint, *scope.Entity, errors.DiagnosticList) {
	var diags errors.DiagnosticList

	name, ok := readName(elem, scopeName, &diags)
	if !ok {
		return nil, nil, diags
	}

	joint := &Joint{
		name:      name,
		jointType: elem.GetAttribute("type"),
		parent:    childText(elem, "parent"),
		child:     childText(elem, "child"),
	}
	joint.relativeTo, joint.rawPose = readPose(elem, scopeName, name, &diags)
	entity := &scope.Entity{
		Name:       name,
		Kind:       scope.KindJoint,
		RelativeTo: joint.relativeTo,
		RawPose:    joint.rawPose,
		ParentLink: joint.parent,
		ChildLink:  joint.child,
	}
	return joint, entity, diags
}

func readFrame(elem *xmltree.Element, scopeName string) (*Frame, *scope.Entity, errors.DiagnosticList) {
	var diags errors.DiagnosticList

	name, ok := readName(elem, scopeName, &diags)
	if !ok {
		return nil, nil, diags
	}

	frame := &Frame{
		name:       name,
		attachedTo: elem.GetAttribute("attached_to"),
	}
	frame.relativeTo, frame.rawPose = readPose(elem, scopeName, name, &diags)
	entity := &scope.Entity{
		Name:       name,
		Kind:       scope.KindFrame,
		AttachedTo: frame.attachedTo,
		RelativeTo: frame.relativeTo,
		RawPose:    frame.rawPose,
	}
	return frame, entity, diags
}

func readLight(elem *xmltree.Element, scopeName string) (*Light, *scope.Entity, errors.DiagnosticList) {
	var diags errors.DiagnosticList

	name, ok := readName(elem, scopeName, &diags)
	if !ok {
		return nil, nil, diags
	}

	light := &Light{
		name:      name,
		lightType: elem.GetAttribute("type"),
	}
	light.relativeTo, light.rawPose = readPose(elem, scopeName, name, &diags)
	entity := &scope.Entity{
		Name:       name,
		Kind:       scope.KindLight,
		RelativeTo: light.relativeTo,
		RawPose:    light.rawPose,
	}
	return light, entity, diags
}

// readName extracts the mandatory name attribute.
func readName(elem *xmltree.Element, scopeName string, diags *errors.DiagnosticList) (string, bool) {
	name := elem.GetAttribute("name")
	if name == "" {
		*diags = append(*diags, errors.Newf(errors.ErrMissingName, scopeName,
			"<%s> element is missing its name attribute", elem.Name))
		return "", false
	}
	return name, true
}

// readPose extracts an entity's <pose> child: the verbatim relative_to
// string and the parsed six-number value. A missing <pose> means an empty
// reference and the identity transform.
func readPose(elem *xmltree.Element, scopeName, owner string, diags *errors.DiagnosticList) (string, pose.Pose) {
	poseElem := elem.FirstChild("pose")
	if poseElem == nil {
		return "", pose.Identity()
	}

	value, err := pose.Parse(poseElem.Text())
	if err != nil {
		d := errors.Newf(errors.ErrPoseSyntax, scopeName, "pose of %q: %v", owner, err)
		d.Source = owner
		*diags = append(*diags, d)
	}
	return poseElem.GetAttribute("relative_to"), value
}

func childText(elem *xmltree.Element, name string) string {
	child := elem.FirstChild(name)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
