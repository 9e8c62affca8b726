package services

import (
	"strings"
	"testing"

	"techdocs-rag-platform/models"
)

func TestAssembleContext(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Installation", Pages: []int{3, 4}, Text: "Mount the bracket first."},
		{Title: "", Pages: []int{7}, Text: "Torque to 12 Nm."},
	}

	got := AssembleContext(results)

	want := "Section: Installation\nPage(s): 3, 4\nContent: Mount the bracket first.\n\n" +
		"Section: Untitled\nPage(s): 7\nContent: Torque to 12 Nm."
	if got != want {
		t.Errorf("assembled context mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestAssembleContextOmitsPageLineWhenUnknown(t *testing.T) {
	got := AssembleContext([]models.SearchResult{
		{Title: "Overview", Text: "No page provenance here."},
	})
	if strings.Contains(got, "Page(s):") {
		t.Errorf("page line present without page numbers: %q", got)
	}
	if !strings.Contains(got, "Section: Overview") || !strings.Contains(got, "Content: No page provenance here.") {
		t.Errorf("section or content line missing: %q", got)
	}
}

func TestAssembleContextEmpty(t *testing.T) {
	if got := AssembleContext(nil); got != "" {
		t.Errorf("expected empty context for no results, got %q", got)
	}
}

func TestAssembleContextPreservesRankOrder(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Second-best", Text: "bbb"},
		{Title: "Best", Text: "aaa"},
	}
	got := AssembleContext(results)
	if strings.Index(got, "Second-best") > strings.Index(got, "Best") {
		t.Errorf("blocks reordered: %q", got)
	}
}
