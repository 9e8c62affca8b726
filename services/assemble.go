package services

import (
	"strconv"
	"strings"

	"techdocs-rag-platform/models"
)

// AssembleContext turns ranked search results into a single grounded text
// block for the language model. One block per result, in rank order: a
// section line, an optional page line, and the full untruncated chunk text.
func AssembleContext(results []models.SearchResult) string {
	blocks := make([]string, 0, len(results))
	for _, result := range results {
		var sb strings.Builder
		title := result.Title
		if title == "" {
			title = models.DefaultTitle
		}
		sb.WriteString("Section: ")
		sb.WriteString(title)
		if len(result.Pages) > 0 {
			sb.WriteString("\nPage(s): ")
			sb.WriteString(joinPages(result.Pages))
		}
		sb.WriteString("\nContent: ")
		sb.WriteString(result.Text)
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}

func joinPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
