package services

import (
	"regexp"
	"sort"
	"strings"

	"techdocs-rag-platform/internal/convert"
	"techdocs-rag-platform/internal/tokenizer"
	"techdocs-rag-platform/models"
)

// Chunker merges adjacent document elements under the same local heading
// into chunks bounded by a token budget. Pure function of the tree and the
// budget; no side effects.
type Chunker struct {
	counter   tokenizer.Counter
	maxTokens int
	sentences *regexp.Regexp
}

func NewChunker(counter tokenizer.Counter, maxTokens int) *Chunker {
	if maxTokens <= 0 {
		maxTokens = 8191
	}
	return &Chunker{
		counter:   counter,
		maxTokens: maxTokens,
		sentences: regexp.MustCompile(`[^.!?]+[.!?]*[\s]*`),
	}
}

// Chunk turns a converted tree into an ordered sequence of bounded chunks.
// A tree yielding zero chunks fails with ErrEmptyDocument.
func (c *Chunker) Chunk(tree *convert.Tree) ([]models.Chunk, error) {
	if tree == nil {
		return nil, ErrEmptyDocument
	}

	var chunks []models.Chunk
	var buf chunkBuffer

	flush := func() {
		if buf.empty() {
			return
		}
		text := buf.text()
		chunks = append(chunks, models.Chunk{
			Index:      len(chunks),
			Text:       text,
			TokenCount: c.counter.CountTokens(text),
			Title:      buf.title,
			Pages:      buf.sortedPages(),
		})
		buf.reset()
	}

	for _, el := range tree.Elements {
		elText := strings.TrimSpace(el.Text)
		if elText == "" {
			continue
		}
		title := localTitle(el.Headings)

		// An element that alone exceeds the budget is split on sentence
		// boundaries and emitted as its own run of chunks.
		if c.counter.CountTokens(elText) > c.maxTokens {
			flush()
			for _, piece := range c.splitOversized(elText) {
				chunks = append(chunks, models.Chunk{
					Index:      len(chunks),
					Text:       piece,
					TokenCount: c.counter.CountTokens(piece),
					Title:      title,
					Pages:      uniqueSorted(el.Pages),
				})
			}
			continue
		}

		// Close the running chunk on a heading change or when the merged
		// text would exceed the budget.
		if !buf.empty() {
			merged := buf.text() + "\n" + elText
			if buf.title != title || c.counter.CountTokens(merged) > c.maxTokens {
				flush()
			}
		}

		buf.add(elText, title, el.Pages)
	}
	flush()

	if len(chunks) == 0 {
		return nil, ErrEmptyDocument
	}
	return chunks, nil
}

// splitOversized packs sentences greedily up to the budget. A single
// sentence that alone exceeds the budget is hard-split at the budget.
func (c *Chunker) splitOversized(text string) []string {
	sentences := c.sentences.FindAllString(text, -1)
	if strings.Join(sentences, "") != text {
		// The text did not partition cleanly (e.g. all punctuation);
		// fall back to a hard split of the whole element.
		return c.hardSplit(text)
	}

	var pieces []string
	var sb strings.Builder
	for _, sentence := range sentences {
		if c.counter.CountTokens(sentence) > c.maxTokens {
			if sb.Len() > 0 {
				pieces = append(pieces, strings.TrimSpace(sb.String()))
				sb.Reset()
			}
			pieces = append(pieces, c.hardSplit(sentence)...)
			continue
		}
		if sb.Len() > 0 && c.counter.CountTokens(sb.String()+sentence) > c.maxTokens {
			pieces = append(pieces, strings.TrimSpace(sb.String()))
			sb.Reset()
		}
		sb.WriteString(sentence)
	}
	if sb.Len() > 0 {
		pieces = append(pieces, strings.TrimSpace(sb.String()))
	}
	return pieces
}

// hardSplit cuts text into rune slices that each fit the budget.
func (c *Chunker) hardSplit(text string) []string {
	var parts []string
	runes := []rune(text)
	for len(runes) > 0 {
		cut := len(runes)
		for tokens := c.counter.CountTokens(string(runes[:cut])); tokens > c.maxTokens; tokens = c.counter.CountTokens(string(runes[:cut])) {
			next := cut * c.maxTokens / tokens
			if next >= cut {
				next = cut - 1
			}
			if next < 1 {
				next = 1
			}
			cut = next
		}
		parts = append(parts, strings.TrimSpace(string(runes[:cut])))
		runes = runes[cut:]
	}
	return parts
}

// localTitle is the nearest-preceding heading of an element.
func localTitle(headings []string) string {
	for i := len(headings) - 1; i >= 0; i-- {
		if h := strings.TrimSpace(headings[i]); h != "" {
			return h
		}
	}
	return models.DefaultTitle
}

type chunkBuffer struct {
	parts []string
	title string
	pages map[int]struct{}
}

func (b *chunkBuffer) empty() bool { return len(b.parts) == 0 }

func (b *chunkBuffer) add(text, title string, pages []int) {
	if b.empty() {
		b.title = title
		b.pages = make(map[int]struct{})
	}
	b.parts = append(b.parts, text)
	for _, p := range pages {
		b.pages[p] = struct{}{}
	}
}

func (b *chunkBuffer) text() string { return strings.Join(b.parts, "\n") }

func (b *chunkBuffer) sortedPages() []int {
	pages := make([]int, 0, len(b.pages))
	for p := range b.pages {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

func (b *chunkBuffer) reset() {
	b.parts = nil
	b.title = ""
	b.pages = nil
}

func uniqueSorted(pages []int) []int {
	seen := make(map[int]struct{}, len(pages))
	out := make([]int, 0, len(pages))
	for _, p := range pages {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// chunkSnippet truncates chunk text for structure mapping entries.
func chunkSnippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
