package services

import (
	"reflect"
	"strings"
	"testing"

	"techdocs-rag-platform/models"
)

func TestExtractCitationsSubstringMatch(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Setup", Pages: []int{2}, Text: "plug in the power cable"},
		{Title: "Warranty", Pages: []int{9}, Text: "coverage lasts two years"},
	}
	answer := "First, PLUG IN THE POWER CABLE, then press the start button."

	citations := ExtractCitations(results, answer)

	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].Section != "Setup" {
		t.Errorf("section = %q, want Setup", citations[0].Section)
	}
	if !reflect.DeepEqual(citations[0].PageNumbers, []int{2}) {
		t.Errorf("pages = %v, want [2]", citations[0].PageNumbers)
	}
	if citations[0].Text != "plug in the power cable..." {
		t.Errorf("citation text = %q", citations[0].Text)
	}
}

func TestExtractCitationsNoMatch(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Setup", Text: "plug in the power cable"},
	}
	citations := ExtractCitations(results, "The answer paraphrases everything in its own words.")
	if len(citations) != 0 {
		t.Errorf("expected no citations, got %v", citations)
	}
}

func TestExtractCitationsSkipsEmptyChunks(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Blank", Text: ""},
	}
	// An empty chunk text is contained in every answer; it must not cite.
	citations := ExtractCitations(results, "any answer at all")
	if len(citations) != 0 {
		t.Errorf("empty chunk produced a citation: %v", citations)
	}
}

func TestExtractCitationsTruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", 450)
	results := []models.SearchResult{
		{Title: "Long", Text: long},
	}

	citations := ExtractCitations(results, "prefix "+long+" suffix")
	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	want := strings.Repeat("a", 200) + "..."
	if citations[0].Text != want {
		t.Errorf("truncated snippet is %d chars: %q...", len(citations[0].Text), citations[0].Text[:20])
	}
}

func TestExtractCitationsDefaultSection(t *testing.T) {
	citations := ExtractCitations([]models.SearchResult{
		{Title: "", Text: "orphan text"},
	}, "the orphan text appears here")
	if len(citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(citations))
	}
	if citations[0].Section != models.DefaultTitle {
		t.Errorf("section = %q, want default", citations[0].Section)
	}
}
