package tokenizer

import "testing"

func TestEstimatorCountTokens(t *testing.T) {
	e := NewEstimator()

	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single rune", "a", 1},
		{"exactly four runes", "abcd", 1},
		{"five runes rounds up", "abcde", 2},
		{"eight runes", "abcdefgh", 2},
		{"multibyte runes count as runes", "日本語の文書です", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CountTokens(tt.text); got != tt.want {
				t.Errorf("CountTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimatorDeterministic(t *testing.T) {
	e := NewEstimator()
	text := "The same text must always produce the same count."
	first := e.CountTokens(text)
	for i := 0; i < 10; i++ {
		if got := e.CountTokens(text); got != first {
			t.Fatalf("count changed between calls: %d != %d", got, first)
		}
	}
}
