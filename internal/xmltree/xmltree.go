// Package xmltree parses XML into a namespace-aware element tree. The
// harvested metadata arrives in several dialects that differ only in how the
// payload is wrapped, so the tree keeps full (namespace, local) names and
// leaves interpretation to the dialect and normalize packages.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Node is one XML element: its qualified name, attributes, concatenated
// character data and child elements in document order.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Text     string
	Children []*Node
}

// Parse decodes the document and returns its root element.
func Parse(raw string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return decodeElement(dec, start)
		}
	}
}

func decodeElement(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := &Node{Name: start.Name, Attrs: start.Attr}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return n, nil
		}
	}
}

// Child returns the first child element with the given namespace and local
// name, or nil.
func (n *Node) Child(space, local string) *Node {
	for _, c := range n.Children {
		if c.Name.Space == space && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// ChildAnyNS returns the first child element with the given local name in any
// namespace, or nil.
func (n *Node) ChildAnyNS(local string) *Node {
	for _, c := range n.Children {
		if c.Name.Local == local {
			return c
		}
	}
	return nil
}

// ChildrenOf returns all child elements with the given namespace and local
// name, in document order.
func (n *Node) ChildrenOf(space, local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name.Space == space && c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Attr returns the value of the attribute with the given namespace and local
// name, or "". Unprefixed attributes have an empty namespace.
func (n *Node) Attr(space, local string) string {
	for _, a := range n.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
