// Package dialect locates the DataCite payload inside a harvested OAI-PMH
// record. Repositories wrap the same resource element in different envelopes;
// detection is an ordered list of extractors tried in sequence.
package dialect

import (
	"errors"

	"meta_indexer/internal/xmltree"
)

// Namespaces seen across the harvested repositories.
const (
	NSOAI         = "http://www.openarchives.org/OAI/2.0/"
	NSDataCite    = "http://datacite.org/schema/kernel-4"
	NSOAIDataCite = "http://schema.datacite.org/oai/oai-1.0/"
)

// ErrUnknownDialect is returned when no extractor recognizes the document.
var ErrUnknownDialect = errors.New("metadata payload matches no known dialect")

type extractor struct {
	name    string
	extract func(root *xmltree.Node) *xmltree.Node
}

// Tried in order; first match wins.
var extractors = []extractor{
	{"datacite", extractDataCite},
	{"oai-resource", extractOAIResource},
	{"oai-datacite", extractWrappedDataCite},
}

// Resource finds the resource element in a raw OAI-PMH record and reports
// which dialect matched. The input may be the record element itself or a
// document that contains it.
func Resource(root *xmltree.Node) (*xmltree.Node, string, error) {
	meta := metadataElement(root)
	if meta == nil {
		return nil, "", ErrUnknownDialect
	}

	for _, e := range extractors {
		if res := e.extract(meta); res != nil {
			return res, e.name, nil
		}
	}
	return nil, "", ErrUnknownDialect
}

func metadataElement(root *xmltree.Node) *xmltree.Node {
	if root.Name.Space == NSOAI && root.Name.Local == "metadata" {
		return root
	}
	rec := root
	if rec.Name.Local != "record" {
		rec = root.Child(NSOAI, "record")
		if rec == nil {
			return nil
		}
	}
	return rec.Child(NSOAI, "metadata")
}

// Plain DataCite: metadata > datacite:resource.
func extractDataCite(meta *xmltree.Node) *xmltree.Node {
	return meta.Child(NSDataCite, "resource")
}

// Some repositories emit the resource element in the OAI namespace.
func extractOAIResource(meta *xmltree.Node) *xmltree.Node {
	return meta.Child(NSOAI, "resource")
}

// oai_datacite wraps the resource in an envelope with a payload element.
func extractWrappedDataCite(meta *xmltree.Node) *xmltree.Node {
	env := meta.Child(NSOAIDataCite, "oai_datacite")
	if env == nil {
		return nil
	}
	payload := env.Child(NSOAIDataCite, "payload")
	if payload == nil {
		return nil
	}
	if res := payload.Child(NSDataCite, "resource"); res != nil {
		return res
	}
	return payload.ChildAnyNS("resource")
}
