// Package richtext parses the editor's JSON document tree. The shape is
// external: nodes with a type tag, optional attrs, and nested content.
// This system only ever reads it to find embedded image references.
package richtext

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DocType is the expected root node type of a well-formed document.
const DocType = "doc"

const imageNodeType = "image"

var ErrNotADocument = errors.New("content root is not a document node")

// Node is a single node of the rich-content tree.
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
}

// Parse decodes raw content JSON and verifies the root is a document node.
// A nil or empty input is an error: callers must not walk half a tree.
func Parse(raw []byte) (*Node, error) {
	if len(raw) == 0 {
		return nil, errors.New("content is empty")
	}

	var root Node
	err := json.Unmarshal(raw, &root)
	if err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	if root.Type != DocType {
		return nil, ErrNotADocument
	}

	return &root, nil
}

// ImageURLs walks the tree depth-first and collects the src attribute of
// every image node.
func ImageURLs(root *Node) map[string]struct{} {
	urls := make(map[string]struct{})
	if root == nil {
		return urls
	}
	collectImageURLs(root, urls)
	return urls
}

func collectImageURLs(node *Node, urls map[string]struct{}) {
	if node.Type == imageNodeType {
		src, ok := node.Attrs["src"].(string)
		if ok && src != "" {
			urls[src] = struct{}{}
		}
	}
	for i := range node.Content {
		collectImageURLs(&node.Content[i], urls)
	}
}
