package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meta_indexer/internal/xmltree"
)

const dataciteRecord = `<record xmlns="http://www.openarchives.org/OAI/2.0/">
	<header><identifier>oai:zenodo.org:1</identifier></header>
	<metadata>
		<resource xmlns="http://datacite.org/schema/kernel-4">
			<titles><title>plain datacite</title></titles>
		</resource>
	</metadata>
</record>`

const oaiResourceRecord = `<record xmlns="http://www.openarchives.org/OAI/2.0/">
	<header><identifier>oai:hal.science:hal-01</identifier></header>
	<metadata>
		<resource>
			<titles><title>resource in oai namespace</title></titles>
		</resource>
	</metadata>
</record>`

const wrappedRecord = `<record xmlns="http://www.openarchives.org/OAI/2.0/">
	<header><identifier>oai:easy.dans.knaw.nl:1</identifier></header>
	<metadata>
		<oai_datacite xmlns="http://schema.datacite.org/oai/oai-1.0/">
			<schemaVersion>4.1</schemaVersion>
			<payload>
				<resource xmlns="http://datacite.org/schema/kernel-4">
					<titles><title>wrapped datacite</title></titles>
				</resource>
			</payload>
		</oai_datacite>
	</metadata>
</record>`

func parse(t *testing.T, raw string) *xmltree.Node {
	t.Helper()
	root, err := xmltree.Parse(raw)
	require.NoError(t, err)
	return root
}

func TestResource_DataCite(t *testing.T) {
	res, name, err := Resource(parse(t, dataciteRecord))
	require.NoError(t, err)
	assert.Equal(t, "datacite", name)
	assert.Equal(t, NSDataCite, res.Name.Space)
	assert.Equal(t, "resource", res.Name.Local)
}

func TestResource_OAINamespaceResource(t *testing.T) {
	res, name, err := Resource(parse(t, oaiResourceRecord))
	require.NoError(t, err)
	assert.Equal(t, "oai-resource", name)
	assert.Equal(t, NSOAI, res.Name.Space)
}

func TestResource_WrappedDataCite(t *testing.T) {
	res, name, err := Resource(parse(t, wrappedRecord))
	require.NoError(t, err)
	assert.Equal(t, "oai-datacite", name)
	assert.Equal(t, NSDataCite, res.Name.Space)
	assert.Equal(t, "resource", res.Name.Local)
}

func TestResource_AcceptsEnclosingDocument(t *testing.T) {
	wrapped := `<GetRecord xmlns="http://www.openarchives.org/OAI/2.0/">` + dataciteRecord + `</GetRecord>`
	_, name, err := Resource(parse(t, wrapped))
	require.NoError(t, err)
	assert.Equal(t, "datacite", name)
}

func TestResource_AcceptsBareMetadataElement(t *testing.T) {
	root := parse(t, dataciteRecord)
	meta := root.Child(NSOAI, "metadata")
	require.NotNil(t, meta)

	_, name, err := Resource(meta)
	require.NoError(t, err)
	assert.Equal(t, "datacite", name)
}

func TestResource_UnknownDialect(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"foreign payload", `<record xmlns="http://www.openarchives.org/OAI/2.0/">
			<metadata><dc xmlns="http://purl.org/dc/elements/1.1/"><title>t</title></dc></metadata>
		</record>`},
		{"no metadata element", `<record xmlns="http://www.openarchives.org/OAI/2.0/">
			<header status="deleted"><identifier>oai:x:1</identifier></header>
		</record>`},
		{"unrelated document", `<html><body>error page</body></html>`},
		{"envelope without payload", `<record xmlns="http://www.openarchives.org/OAI/2.0/">
			<metadata><oai_datacite xmlns="http://schema.datacite.org/oai/oai-1.0/"><schemaVersion>4.1</schemaVersion></oai_datacite></metadata>
		</record>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Resource(parse(t, tc.raw))
			assert.ErrorIs(t, err, ErrUnknownDialect)
		})
	}
}
