// =============================================================================
// SEPA XML Export - XML Writer Module
// =============================================================================
//
// This module serializes an ordered element tree to XML text. The pain
// schemas prescribe a fixed element sequence, so children are kept in the
// order they were appended and never reordered.
//
// XML STRUCTURE:
//   The generated XML follows this nesting pattern:
//
//   <Document xmlns="..." xmlns:xsi="..." xsi:schemaLocation="...">
//     <CstmrCdtTrfInitn>
//       <GrpHdr>...</GrpHdr>
//       <PmtInf>...</PmtInf>
//     </CstmrCdtTrfInitn>
//   </Document>
//
// Output is compact (no indentation or line breaks) so generated files are
// byte-stable across runs and settings.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"strings"
)

// =============================================================================
// ELEMENT TREE
// =============================================================================

// Attr is one XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the document tree. An element carries either Text
// or Children, never both.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// New creates an element with the given name and attributes.
func New(name string, attrs ...Attr) *Element {
	return &Element{Name: name, Attrs: attrs}
}

// Text creates a leaf element holding a text value.
func Text(name, value string) *Element {
	return &Element{Name: name, Text: value}
}

// Add appends children in order and returns the element for chaining.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// AddText appends a text leaf and returns the parent for chaining.
func (e *Element) AddText(name, value string) *Element {
	return e.Add(Text(name, value))
}

// Child creates a child element, appends it and returns the child so
// callers can descend while building.
func (e *Element) Child(name string, attrs ...Attr) *Element {
	c := New(name, attrs...)
	e.Children = append(e.Children, c)
	return c
}

// =============================================================================
// SERIALIZATION
// =============================================================================

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Render serializes the tree to a complete XML document, including the
// XML declaration.
func Render(root *Element) []byte {
	var buffer bytes.Buffer
	buffer.WriteString(xmlDeclaration)
	writeElement(&buffer, root)
	return buffer.Bytes()
}

// writeElement writes one element and its subtree to the buffer.
func writeElement(buffer *bytes.Buffer, element *Element) {
	buffer.WriteByte('<')
	buffer.WriteString(element.Name)

	for _, attr := range element.Attrs {
		buffer.WriteByte(' ')
		buffer.WriteString(attr.Name)
		buffer.WriteString(`="`)
		buffer.WriteString(escapeXML(attr.Value))
		buffer.WriteByte('"')
	}

	if len(element.Children) == 0 && element.Text == "" {
		buffer.WriteString("/>")
		return
	}

	buffer.WriteByte('>')

	if element.Text != "" {
		buffer.WriteString(escapeXML(element.Text))
	} else {
		for _, child := range element.Children {
			writeElement(buffer, child)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.Name)
	buffer.WriteByte('>')
}

// escapeXML escapes special characters for XML content and attributes.
func escapeXML(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}

	var buffer bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteRune(r)
		}
	}
	return buffer.String()
}
