package convert

import "testing"

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"# Introduction", true},
		{"## Getting Started", true},
		{"3.2 Installation", true},
		{"1. Overview", true},
		{"10.4.1 Advanced Options", true},
		{"SAFETY WARNINGS", true},
		{"API REFERENCE", true},
		{"", false},
		{"   ", false},
		{"This is an ordinary sentence about the product.", false},
		{"the quick brown fox jumps over the lazy dog and keeps going for a while longer here", false},
		{"3.14159 is an approximation of pi", true}, // numbered-prefix heuristic accepts this
	}

	for _, tt := range tests {
		if got := isHeading(tt.line); got != tt.want {
			t.Errorf("isHeading(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestHeadingInfo(t *testing.T) {
	tests := []struct {
		line      string
		wantTitle string
		wantLevel int
	}{
		{"# Introduction", "Introduction", 1},
		{"## Getting Started", "Getting Started", 2},
		{"### Deep Dive", "Deep Dive", 3},
		{"3.2 Installation", "3.2 Installation", 2},
		{"1. Overview", "1. Overview", 1},
		{"10.4.1 Advanced Options", "10.4.1 Advanced Options", 3},
		{"SAFETY WARNINGS", "SAFETY WARNINGS", 1},
	}

	for _, tt := range tests {
		title, level := headingInfo(tt.line)
		if title != tt.wantTitle || level != tt.wantLevel {
			t.Errorf("headingInfo(%q) = (%q, %d), want (%q, %d)",
				tt.line, title, level, tt.wantTitle, tt.wantLevel)
		}
	}
}
