// Package normalize maps a DataCite resource tree to the canonical document
// schema. Sources disagree on multiplicity (one title vs many) and on whether
// a value is bare text or text plus attributes; the canonical form always
// uses ordered sequences of flat objects, with empty values dropped.
package normalize

import (
	"fmt"

	"meta_indexer/internal/dialect"
	"meta_indexer/internal/xmltree"
)

// Document is the canonical normalized record.
type Document = map[string]any

// attrSpec maps an XML attribute to its key in the flattened object.
type attrSpec struct {
	space string
	local string
	key   string
}

var langAttr = attrSpec{space: "", local: "lang", key: "lang"}

// Normalize builds the canonical document for a DataCite resource element.
// Any malformed value (an unparseable date, a structureless creator) fails
// the whole record; callers isolate the failure per record.
func Normalize(res *xmltree.Node) (Document, error) {
	titles, err := harmonizeGroup(res, "titles", "title", []attrSpec{
		langAttr,
		{local: "titleType", key: "titleType"},
	}, nil)
	if err != nil {
		return nil, err
	}

	subjects, err := harmonizeGroup(res, "subjects", "subject", []attrSpec{
		langAttr,
		{local: "subjectScheme", key: "subjectScheme"},
		{local: "schemeURI", key: "schemaUri"},
		{local: "valueURI", key: "valueUri"},
		{local: "classificationCode", key: "classificationCode"},
	}, nil)
	if err != nil {
		return nil, err
	}

	descriptions, err := harmonizeGroup(res, "descriptions", "description", []attrSpec{
		{local: "descriptionType", key: "descriptionType"},
		langAttr,
	}, nil)
	if err != nil {
		return nil, err
	}

	dates, err := harmonizeGroup(res, "dates", "date", []attrSpec{
		{local: "dateType", key: "dateType"},
	}, NormalizeDateString)
	if err != nil {
		return nil, err
	}

	creators, err := harmonizeCreators(res)
	if err != nil {
		return nil, err
	}

	doc := Document{}
	putIfSet(doc, "doi", identifier(res, "DOI"))
	putIfSet(doc, "url", identifier(res, "URL"))
	putListIfSet(doc, "titles", titles)
	putListIfSet(doc, "subjects", subjects)
	putListIfSet(doc, "creators", creators)
	putListIfSet(doc, "descriptions", descriptions)
	putListIfSet(doc, "dates", dates)

	if year := childText(res, "publicationYear"); year != "" {
		doc["publicationYear"] = year
	}
	if rt := ResourceType(res); len(rt) > 0 {
		doc["resourceType"] = rt
	}

	return doc, nil
}

// identifier returns the identifier value of the given identifierType, or "".
func identifier(res *xmltree.Node, idType string) string {
	id := res.Child(dialect.NSDataCite, "identifier")
	if id == nil {
		return ""
	}
	if id.Attr("", "identifierType") != idType {
		return ""
	}
	return id.Text
}

// ResourceType flattens the resourceType element and its resourceTypeGeneral
// attribute into one object. Returns an empty map when the element is absent.
func ResourceType(res *xmltree.Node) map[string]any {
	rt := res.Child(dialect.NSDataCite, "resourceType")
	if rt == nil {
		return nil
	}

	out := map[string]any{}
	if rt.Text != "" {
		out["resourceType"] = rt.Text
	}
	if general := rt.Attr("", "resourceTypeGeneral"); general != "" {
		out["resourceTypeGeneral"] = general
	}
	return out
}

// DocumentID derives the search document id: the DOI resolver URL when a doi
// is present, the landing page url otherwise.
func DocumentID(doc Document) string {
	if doi, ok := doc["doi"].(string); ok && doi != "" {
		return "https://doi.org/" + doi
	}
	if url, ok := doc["url"].(string); ok {
		return url
	}
	return ""
}

// harmonizeGroup flattens a multi-valued DataCite group (e.g. titles/title)
// into an ordered sequence of objects. The element text lands under the
// subfield name, mapped attributes land beside it.
func harmonizeGroup(res *xmltree.Node, groupName, itemName string, attrs []attrSpec, normalizeValue func(string) (string, error)) ([]map[string]any, error) {
	group := res.Child(dialect.NSDataCite, groupName)
	if group == nil {
		return nil, nil
	}

	items := group.ChildrenOf(dialect.NSDataCite, itemName)
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		obj, err := harmonizeItem(item, itemName, attrs, normalizeValue)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func harmonizeItem(item *xmltree.Node, key string, attrs []attrSpec, normalizeValue func(string) (string, error)) (map[string]any, error) {
	obj := map[string]any{}

	if item.Text != "" {
		value := item.Text
		if normalizeValue != nil {
			normalized, err := normalizeValue(value)
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", key, value, err)
			}
			value = normalized
		}
		obj[key] = value
	}

	for _, a := range attrs {
		if v := attrValue(item, a); v != "" {
			if a.key == "lang" {
				v = NormalizeLang(v)
			}
			obj[a.key] = v
		}
	}
	return obj, nil
}

// attrValue resolves an attrSpec, treating the predeclared xml prefix and its
// namespace URI as equivalent for the lang attribute.
func attrValue(n *xmltree.Node, a attrSpec) string {
	if a.local == "lang" {
		if v := n.Attr("xml", "lang"); v != "" {
			return v
		}
		return n.Attr("http://www.w3.org/XML/1998/namespace", "lang")
	}
	return n.Attr(a.space, a.local)
}

// harmonizeCreators flattens creators/creator elements, each combining the
// creatorName, givenName, familyName and nameIdentifier subelements with
// their attributes.
func harmonizeCreators(res *xmltree.Node) ([]map[string]any, error) {
	group := res.Child(dialect.NSDataCite, "creators")
	if group == nil {
		return nil, nil
	}

	creators := group.ChildrenOf(dialect.NSDataCite, "creator")
	out := make([]map[string]any, 0, len(creators))
	for _, cr := range creators {
		obj := map[string]any{}
		mergeSubfield(obj, cr, "creatorName", []attrSpec{{local: "nameType", key: "nameType"}})
		mergeSubfield(obj, cr, "givenName", nil)
		mergeSubfield(obj, cr, "familyName", nil)
		mergeSubfield(obj, cr, "nameIdentifier", []attrSpec{{local: "nameIdentifierScheme", key: "nameIdentifierScheme"}})
		out = append(out, obj)
	}
	return out, nil
}

func mergeSubfield(obj map[string]any, parent *xmltree.Node, name string, attrs []attrSpec) {
	el := parent.Child(dialect.NSDataCite, name)
	if el == nil {
		return
	}
	if el.Text != "" {
		obj[name] = el.Text
	}
	for _, a := range attrs {
		if v := attrValue(el, a); v != "" {
			obj[a.key] = v
		}
	}
}

func childText(res *xmltree.Node, name string) string {
	if c := res.Child(dialect.NSDataCite, name); c != nil {
		return c.Text
	}
	return ""
}

func putIfSet(doc Document, key, value string) {
	if value != "" {
		doc[key] = value
	}
}

func putListIfSet(doc Document, key string, list []map[string]any) {
	if len(list) > 0 {
		doc[key] = list
	}
}
