package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRejectsEmptyInput(t *testing.T) {
	_, err := Parse(nil)
	require.Error(t, err)

	_, err = Parse([]byte{})
	require.Error(t, err)
}

func TestParseRejectsNonDocumentRoot(t *testing.T) {
	_, err := Parse([]byte(`{"type":"paragraph","content":[]}`))
	require.ErrorIs(t, err, ErrNotADocument)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"type":"doc",`))
	require.Error(t, err)
}

func TestImageURLsCollectsNestedImages(t *testing.T) {
	doc := []byte(`{
		"type": "doc",
		"content": [
			{"type": "paragraph", "content": [
				{"type": "text", "text": "hello"},
				{"type": "image", "attrs": {"src": "https://cdn.example.com/a.png"}}
			]},
			{"type": "blockquote", "content": [
				{"type": "paragraph", "content": [
					{"type": "image", "attrs": {"src": "https://cdn.example.com/b.png", "alt": "b"}}
				]}
			]},
			{"type": "image", "attrs": {"src": "https://cdn.example.com/a.png"}}
		]
	}`)

	root, err := Parse(doc)
	require.NoError(t, err)

	urls := ImageURLs(root)
	assert.Len(t, urls, 2)
	assert.Contains(t, urls, "https://cdn.example.com/a.png")
	assert.Contains(t, urls, "https://cdn.example.com/b.png")
}

func TestImageURLsIgnoresImagesWithoutSrc(t *testing.T) {
	doc := []byte(`{
		"type": "doc",
		"content": [
			{"type": "image"},
			{"type": "image", "attrs": {"src": ""}},
			{"type": "image", "attrs": {"src": 42}}
		]
	}`)

	root, err := Parse(doc)
	require.NoError(t, err)

	assert.Empty(t, ImageURLs(root))
}

func TestImageURLsNilRoot(t *testing.T) {
	assert.Empty(t, ImageURLs(nil))
}
