// Package convert turns raw document files into a structured tree of text
// elements carrying heading and page provenance, the input shape the chunker
// consumes.
package convert

import "context"

// Element is a leaf of the converted document: a run of body text together
// with the heading path above it and the page(s) it was extracted from.
type Element struct {
	Text     string   `json:"text"`
	Headings []string `json:"headings,omitempty"`
	Pages    []int    `json:"pages,omitempty"`
}

// Tree is the ordered result of converting one document.
type Tree struct {
	Elements  []Element `json:"elements"`
	PageCount int       `json:"page_count"`
}

// Converter produces a Tree from a local file.
type Converter interface {
	Convert(ctx context.Context, path string) (*Tree, error)
}
