package convert

import (
	"regexp"
	"strings"
	"unicode"
)

var headingNumberPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*[.)]?\s+`)

// isHeading reports whether a line looks like a section heading: markdown
// hashes, numbered headings ("3.2 Installation"), or short mostly-uppercase
// lines, which are common in extracted PDF text.
func isHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if headingNumberPattern.MatchString(trimmed) {
		return true
	}
	if len([]rune(trimmed)) <= 80 {
		totalLetters := 0
		upperLetters := 0
		for _, r := range trimmed {
			if unicode.IsLetter(r) {
				totalLetters++
				if unicode.IsUpper(r) {
					upperLetters++
				}
			}
		}
		if totalLetters > 0 && float64(upperLetters) >= 0.6*float64(totalLetters) {
			return true
		}
	}
	return false
}

// headingInfo returns the heading title and its level. Markdown levels come
// from the hash count; numbered headings derive depth from the dotted number
// ("3.2" is level 2); uppercase headings are level 1.
func headingInfo(line string) (string, int) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		level := 0
		for i := 0; i < len(trimmed) && trimmed[i] == '#'; i++ {
			level++
		}
		return strings.TrimSpace(trimmed[level:]), level
	}
	if m := headingNumberPattern.FindString(trimmed); m != "" {
		level := strings.Count(strings.TrimRight(strings.TrimSpace(m), ".)"), ".") + 1
		return trimmed, level
	}
	return trimmed, 1
}
