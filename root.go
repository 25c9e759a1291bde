package sdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/jacoelho/sdf/errors"
	"github.com/jacoelho/sdf/internal/xmltree"
)

// Root is a loaded SDF document: the top-level collection of worlds and
// standalone models. The zero value is empty and ready for Load.
// Once loaded, a Root is immutable and safe for concurrent readers.
type Root struct {
	version string
	worlds  []*World
	models  []*Model
}

// Load reads and interprets the document at path. The returned list
// carries structural defects only; an empty list means the document
// loaded, not that its frame graphs are valid. Frame-graph validity is a
// separate gate, queried per scope via ValidateFrameSemantics.
func (r *Root) Load(path string) errors.DiagnosticList {
	f, err := os.Open(path)
	if err != nil {
		return errors.DiagnosticList{
			errors.Newf(errors.ErrParse, "", "open %s: %v", path, err),
		}
	}
	defer f.Close() //nolint:errcheck // read-only descriptor.

	tree, err := xmltree.Parse(f)
	if err != nil {
		return errors.DiagnosticList{
			errors.Newf(errors.ErrParse, "", "parse %s: %v", path, err),
		}
	}
	return r.load(tree)
}

// LoadString interprets document text.
func (r *Root) LoadString(text string) errors.DiagnosticList {
	tree, err := xmltree.Parse(strings.NewReader(text))
	if err != nil {
		return errors.DiagnosticList{
			errors.Newf(errors.ErrParse, "", "parse document: %v", err),
		}
	}
	return r.load(tree)
}

func (r *Root) load(tree *xmltree.Element) errors.DiagnosticList {
	loaded, diags := readRoot(tree)
	if loaded == nil {
		return diags
	}
	*r = *loaded
	return nil
}

// Version returns the document's declared format version, verbatim.
func (r *Root) Version() string {
	return r.version
}

// WorldCount returns the number of worlds in the document.
func (r *Root) WorldCount() int {
	return len(r.worlds)
}

// WorldByIndex returns the world at the given document-order index, or
// nil when the index is out of range.
func (r *Root) WorldByIndex(index int) *World {
	if index < 0 || index >= len(r.worlds) {
		return nil
	}
	return r.worlds[index]
}

// WorldByName returns the named world, or nil when absent.
func (r *Root) WorldByName(name string) *World {
	for _, world := range r.worlds {
		if world.name == name {
			return world
		}
	}
	return nil
}

// WorldNameExists reports whether the document declares the named world.
func (r *Root) WorldNameExists(name string) bool {
	return r.WorldByName(name) != nil
}

// ModelCount returns the number of standalone models in the document.
func (r *Root) ModelCount() int {
	return len(r.models)
}

// ModelByIndex returns the standalone model at the given index, or nil
// when the index is out of range.
func (r *Root) ModelByIndex(index int) *Model {
	if index < 0 || index >= len(r.models) {
		return nil
	}
	return r.models[index]
}

// ModelByName returns the named standalone model, or nil when absent.
func (r *Root) ModelByName(name string) *Model {
	for _, model := range r.models {
		if model.name == name {
			return model
		}
	}
	return nil
}

// ModelNameExists reports whether the document declares the named
// standalone model.
func (r *Root) ModelNameExists(name string) bool {
	return r.ModelByName(name) != nil
}

// Validate runs frame-semantics validation over every scope of the
// document and returns the combined report.
func (r *Root) Validate() errors.DiagnosticList {
	var diags errors.DiagnosticList
	for _, world := range r.worlds {
		diags = append(diags, world.ValidateFrameSemantics()...)
	}
	for _, model := range r.models {
		diags = append(diags, model.ValidateFrameSemantics()...)
	}
	return diags
}

// String summarizes the document for diagnostics.
func (r *Root) String() string {
	return fmt.Sprintf("sdf %s (%d worlds, %d models)", r.version, len(r.worlds), len(r.models))
}
