// Package xmltree builds the minimal attributed-element tree the document
// loader reads. It keeps only what frame semantics needs: element names,
// attributes, direct text, and document-order children.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"unicode"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the parsed document tree.
type Element struct {
	Name     string
	attrs    []Attr
	children []*Element
	parent   *Element
	text     string
}

// Parse builds the element tree from document text.
func Parse(r io.Reader) (*Element, error) {
	decoder := xml.NewDecoder(r)

	var stack []*Element
	var root *Element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element %s after document end", t.Name.Local)
			}
			elem := &Element{
				Name:  t.Name.Local,
				attrs: convertAttrs(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, elem)
				elem.parent = parent
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 && root != nil {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return nil, fmt.Errorf("unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].text += string(t)
		}
	}

	if root == nil {
		return nil, io.ErrUnexpectedEOF
	}

	return root, nil
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	result := make([]Attr, len(attrs))
	for i, a := range attrs {
		result[i] = Attr{Name: a.Name.Local, Value: a.Value}
	}
	return result
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// HasAttribute reports whether the attribute is present on the element.
func (e *Element) HasAttribute(name string) bool {
	for _, attr := range e.attrs {
		if attr.Name == name {
			return true
		}
	}
	return false
}

// GetAttribute returns the attribute value, or the empty string when the
// attribute is absent. Absence is not an error at this layer.
func (e *Element) GetAttribute(name string) string {
	for _, attr := range e.attrs {
		if attr.Name == name {
			return attr.Value
		}
	}
	return ""
}

// Attributes returns a copy of the element attributes in document order.
func (e *Element) Attributes() []Attr {
	result := make([]Attr, len(e.attrs))
	copy(result, e.attrs)
	return result
}

// Children returns the child elements in document order.
func (e *Element) Children() []*Element {
	return e.children
}

// ChildrenNamed returns the child elements with the given name, in order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var result []*Element
	for _, child := range e.children {
		if child.Name == name {
			result = append(result, child)
		}
	}
	return result
}

// FirstChild returns the first child element with the given name, or nil.
func (e *Element) FirstChild(name string) *Element {
	for _, child := range e.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Parent returns the parent element; nil for the root.
func (e *Element) Parent() *Element {
	return e.parent
}

// Text returns the text directly under the element.
func (e *Element) Text() string {
	return e.text
}
