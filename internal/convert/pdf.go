package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPDFSize caps in-memory extraction to avoid OOM on pathological files.
const maxPDFSize = 200 << 20

// PDFConverter extracts per-page text from a PDF and reconstructs a heading
// hierarchy from layout heuristics. Text quality depends on the source PDF;
// scanned images without a text layer convert to an empty tree.
type PDFConverter struct{}

func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

func (c *PDFConverter) Convert(ctx context.Context, path string) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat PDF file: %w", err)
	}
	if stat.Size() > maxPDFSize {
		return nil, fmt.Errorf("pdf too large for in-memory extraction (%d bytes)", stat.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF file: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	tree := &Tree{PageCount: reader.NumPage()}
	var headings []string

	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			// One unreadable page does not fail the document.
			continue
		}

		elems, next := segmentPage(text, i, headings)
		tree.Elements = append(tree.Elements, elems...)
		headings = next
	}

	return tree, nil
}

// segmentPage splits one page of text into body elements, updating the
// running heading path as heading lines are encountered. Consecutive body
// lines under the same heading collapse into a single element.
func segmentPage(text string, pageNo int, headings []string) ([]Element, []string) {
	var elements []Element
	var body strings.Builder

	flush := func() {
		trimmed := strings.TrimSpace(body.String())
		if trimmed != "" {
			elements = append(elements, Element{
				Text:     trimmed,
				Headings: append([]string(nil), headings...),
				Pages:    []int{pageNo},
			})
		}
		body.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if isHeading(trimmed) {
			flush()
			title, level := headingInfo(trimmed)
			headings = pushHeading(headings, title, level)
			continue
		}
		if body.Len() > 0 {
			body.WriteString(" ")
		}
		body.WriteString(trimmed)
	}
	flush()

	return elements, headings
}

// pushHeading truncates the path to level-1 entries and appends the new
// heading, so a level-2 heading replaces any deeper path but keeps its
// level-1 ancestor.
func pushHeading(path []string, title string, level int) []string {
	if level < 1 {
		level = 1
	}
	if level-1 < len(path) {
		path = path[:level-1]
	}
	return append(path, title)
}
