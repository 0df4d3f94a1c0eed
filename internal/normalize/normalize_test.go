package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meta_indexer/internal/xmltree"
)

func parseResource(t *testing.T, body string) *xmltree.Node {
	t.Helper()
	root, err := xmltree.Parse(`<resource xmlns="http://datacite.org/schema/kernel-4">` + body + `</resource>`)
	require.NoError(t, err)
	return root
}

func TestNormalize_SingleTitleBecomesSequence(t *testing.T) {
	res := parseResource(t, `
		<identifier identifierType="DOI">10.1234/abc</identifier>
		<titles><title>Soil moisture dataset</title></titles>`)

	doc, err := Normalize(res)
	require.NoError(t, err)

	assert.Equal(t, "10.1234/abc", doc["doi"])
	assert.Equal(t, []map[string]any{
		{"title": "Soil moisture dataset"},
	}, doc["titles"])
}

func TestNormalize_MultipleTitlesKeepOrder(t *testing.T) {
	res := parseResource(t, `
		<titles>
			<title xml:lang="eng">Main title</title>
			<title titleType="Subtitle">A subtitle</title>
		</titles>`)

	doc, err := Normalize(res)
	require.NoError(t, err)

	assert.Equal(t, []map[string]any{
		{"title": "Main title", "lang": "en"},
		{"title": "A subtitle", "titleType": "Subtitle"},
	}, doc["titles"])
}

func TestNormalize_SubjectAttributes(t *testing.T) {
	res := parseResource(t, `
		<titles><title>t</title></titles>
		<subjects>
			<subject subjectScheme="DDC" schemeURI="https://dewey.info" classificationCode="550">Earth sciences</subject>
		</subjects>`)

	doc, err := Normalize(res)
	require.NoError(t, err)

	assert.Equal(t, []map[string]any{
		{
			"subject":            "Earth sciences",
			"subjectScheme":      "DDC",
			"schemaUri":          "https://dewey.info",
			"classificationCode": "550",
		},
	}, doc["subjects"])
}

func TestNormalize_DatesAreNormalized(t *testing.T) {
	res := parseResource(t, `
		<titles><title>t</title></titles>
		<dates>
			<date dateType="Issued">2025-04</date>
			<date dateType="Collected">2021-11-08/2021-11-23</date>
		</dates>`)

	doc, err := Normalize(res)
	require.NoError(t, err)

	assert.Equal(t, []map[string]any{
		{"date": "2025-04-01", "dateType": "Issued"},
		{"date": "2021-11-08", "dateType": "Collected"},
	}, doc["dates"])
}

func TestNormalize_BadDateFailsRecord(t *testing.T) {
	res := parseResource(t, `
		<titles><title>t</title></titles>
		<dates><date dateType="Issued">sometime</date></dates>`)

	_, err := Normalize(res)
	assert.Error(t, err)
}

func TestNormalize_Creators(t *testing.T) {
	res := parseResource(t, `
		<titles><title>t</title></titles>
		<creators>
			<creator>
				<creatorName nameType="Personal">Doe, Jane</creatorName>
				<givenName>Jane</givenName>
				<familyName>Doe</familyName>
				<nameIdentifier nameIdentifierScheme="ORCID">0000-0001-2345-6789</nameIdentifier>
			</creator>
			<creator>
				<creatorName>Example Consortium</creatorName>
			</creator>
		</creators>`)

	doc, err := Normalize(res)
	require.NoError(t, err)

	assert.Equal(t, []map[string]any{
		{
			"creatorName":          "Doe, Jane",
			"nameType":             "Personal",
			"givenName":            "Jane",
			"familyName":           "Doe",
			"nameIdentifier":       "0000-0001-2345-6789",
			"nameIdentifierScheme": "ORCID",
		},
		{"creatorName": "Example Consortium"},
	}, doc["creators"])
}

func TestNormalize_URLIdentifier(t *testing.T) {
	res := parseResource(t, `
		<identifier identifierType="URL">https://hal.science/hal-01</identifier>
		<titles><title>t</title></titles>`)

	doc, err := Normalize(res)
	require.NoError(t, err)

	assert.Equal(t, "https://hal.science/hal-01", doc["url"])
	_, hasDOI := doc["doi"]
	assert.False(t, hasDOI)
}

func TestNormalize_PublicationYearAndResourceType(t *testing.T) {
	res := parseResource(t, `
		<titles><title>t</title></titles>
		<publicationYear>2024</publicationYear>
		<resourceType resourceTypeGeneral="Dataset">Survey data</resourceType>`)

	doc, err := Normalize(res)
	require.NoError(t, err)

	assert.Equal(t, "2024", doc["publicationYear"])
	assert.Equal(t, map[string]any{
		"resourceType":        "Survey data",
		"resourceTypeGeneral": "Dataset",
	}, doc["resourceType"])
}

func TestNormalize_EmptyValuesDropped(t *testing.T) {
	res := parseResource(t, `
		<titles><title>t</title></titles>
		<subjects></subjects>
		<descriptions><description descriptionType="Abstract"></description></descriptions>`)

	doc, err := Normalize(res)
	require.NoError(t, err)

	_, hasSubjects := doc["subjects"]
	assert.False(t, hasSubjects)
	// empty text keeps the attribute-only object
	assert.Equal(t, []map[string]any{
		{"descriptionType": "Abstract"},
	}, doc["descriptions"])
}

func TestDocumentID(t *testing.T) {
	assert.Equal(t, "https://doi.org/10.1234/abc", DocumentID(Document{"doi": "10.1234/abc"}))
	assert.Equal(t, "https://hal.science/hal-01", DocumentID(Document{"url": "https://hal.science/hal-01"}))
	// doi wins when both are present
	assert.Equal(t, "https://doi.org/10.1234/abc", DocumentID(Document{"doi": "10.1234/abc", "url": "https://x"}))
	assert.Equal(t, "", DocumentID(Document{}))
}
