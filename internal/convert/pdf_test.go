package convert

import (
	"reflect"
	"testing"
)

func TestSegmentPage(t *testing.T) {
	text := "# Introduction\nThis manual covers the device.\nRead it fully before operating.\n\n## Setup\nPlug in the power cable.\n"

	elems, headings := segmentPage(text, 1, nil)

	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}

	first := elems[0]
	if first.Text != "This manual covers the device. Read it fully before operating." {
		t.Errorf("unexpected first element text: %q", first.Text)
	}
	if !reflect.DeepEqual(first.Headings, []string{"Introduction"}) {
		t.Errorf("unexpected first element headings: %v", first.Headings)
	}
	if !reflect.DeepEqual(first.Pages, []int{1}) {
		t.Errorf("unexpected first element pages: %v", first.Pages)
	}

	second := elems[1]
	if second.Text != "Plug in the power cable." {
		t.Errorf("unexpected second element text: %q", second.Text)
	}
	if !reflect.DeepEqual(second.Headings, []string{"Introduction", "Setup"}) {
		t.Errorf("unexpected second element headings: %v", second.Headings)
	}

	if !reflect.DeepEqual(headings, []string{"Introduction", "Setup"}) {
		t.Errorf("running heading path not carried forward: %v", headings)
	}
}

func TestSegmentPageCarriesHeadingsAcrossPages(t *testing.T) {
	elems, _ := segmentPage("Continued body text from the previous section.", 2, []string{"Introduction", "Setup"})

	if len(elems) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elems))
	}
	if !reflect.DeepEqual(elems[0].Headings, []string{"Introduction", "Setup"}) {
		t.Errorf("inherited headings lost: %v", elems[0].Headings)
	}
	if !reflect.DeepEqual(elems[0].Pages, []int{2}) {
		t.Errorf("unexpected pages: %v", elems[0].Pages)
	}
}

func TestPushHeading(t *testing.T) {
	path := pushHeading(nil, "Introduction", 1)
	path = pushHeading(path, "Setup", 2)
	path = pushHeading(path, "Wiring", 3)
	if !reflect.DeepEqual(path, []string{"Introduction", "Setup", "Wiring"}) {
		t.Fatalf("unexpected path after descent: %v", path)
	}

	// A new level-2 heading replaces the deeper path but keeps its ancestor.
	path = pushHeading(path, "Operation", 2)
	if !reflect.DeepEqual(path, []string{"Introduction", "Operation"}) {
		t.Fatalf("unexpected path after sibling heading: %v", path)
	}

	// A new level-1 heading resets the whole path.
	path = pushHeading(path, "Maintenance", 1)
	if !reflect.DeepEqual(path, []string{"Maintenance"}) {
		t.Fatalf("unexpected path after top-level heading: %v", path)
	}
}
