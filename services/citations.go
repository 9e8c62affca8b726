package services

import (
	"strings"

	"techdocs-rag-platform/models"
)

// citationSnippetLen bounds the quoted text on each citation.
const citationSnippetLen = 200

// ExtractCitations matches retrieved chunks against a generated answer. A
// chunk is cited when its full text occurs case-insensitively as a substring
// of the answer. This is literal containment, not semantic attribution:
// paraphrased answer text will not match even when the model used the chunk.
func ExtractCitations(results []models.SearchResult, answer string) []models.Citation {
	loweredAnswer := strings.ToLower(answer)

	var citations []models.Citation
	for _, result := range results {
		if result.Text == "" {
			continue
		}
		if !strings.Contains(loweredAnswer, strings.ToLower(result.Text)) {
			continue
		}
		title := result.Title
		if title == "" {
			title = models.DefaultTitle
		}
		citations = append(citations, models.Citation{
			Section:     title,
			PageNumbers: result.Pages,
			Text:        citationText(result.Text),
		})
	}
	return citations
}

func citationText(text string) string {
	runes := []rune(text)
	if len(runes) > citationSnippetLen {
		runes = runes[:citationSnippetLen]
	}
	return string(runes) + "..."
}
