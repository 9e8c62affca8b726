package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"techdocs-rag-platform/models"
)

type fakeGenerator struct {
	answer     string
	err        error
	lastSystem string
	lastPrompt string
	history    []models.ChatMessage
}

func (f *fakeGenerator) Generate(ctx context.Context, system string, history []models.ChatMessage, prompt string) (string, error) {
	f.lastSystem = system
	f.lastPrompt = prompt
	f.history = history
	return f.answer, f.err
}

func TestRespondGroundsPromptInRetrievedContext(t *testing.T) {
	idx := &fakeIndex{matches: map[string][]models.Match{
		"doc-a": {{
			ID:    "doc-a_chunk_0",
			Score: 0.9,
			Metadata: models.ChunkMetadata{
				Title:       "Setup",
				PageNumbers: []int{2},
				ChunkText:   "plug in the power cable",
			},
		}},
	}}
	gen := &fakeGenerator{answer: "You should plug in the power cable before anything else."}
	svc := NewChatService(NewRetrievalEngine(&fakeEmbedder{}, idx), gen, 3)

	answer, err := svc.Respond(context.Background(), "how do I start?", []string{"doc-a"}, nil)
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}

	if !strings.Contains(gen.lastPrompt, "Section: Setup") {
		t.Errorf("prompt missing retrieved section: %q", gen.lastPrompt)
	}
	if !strings.Contains(gen.lastPrompt, "how do I start?") {
		t.Errorf("prompt missing user question: %q", gen.lastPrompt)
	}
	if gen.lastSystem == "" {
		t.Error("system prompt not passed to generator")
	}
	if answer.Response != gen.answer {
		t.Errorf("response = %q", answer.Response)
	}
	if len(answer.Citations) != 1 {
		t.Fatalf("expected 1 citation, got %d", len(answer.Citations))
	}
	if answer.Citations[0].Section != "Setup" {
		t.Errorf("citation section = %q", answer.Citations[0].Section)
	}
}

func TestRespondDegradedRetrievalStillAnswers(t *testing.T) {
	// Retrieval failure yields an empty context block, not a chat error.
	idx := &fakeIndex{queryErr: errors.New("index down")}
	gen := &fakeGenerator{answer: "I don't have document context for that."}
	svc := NewChatService(NewRetrievalEngine(&fakeEmbedder{}, idx), gen, 3)

	answer, err := svc.Respond(context.Background(), "anything", []string{"doc-a"}, nil)
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if answer.Response == "" {
		t.Error("no answer produced under degraded retrieval")
	}
	if len(answer.Citations) != 0 {
		t.Errorf("citations produced without retrieved chunks: %v", answer.Citations)
	}
}

func TestRespondGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := NewChatService(NewRetrievalEngine(&fakeEmbedder{}, &fakeIndex{}), gen, 3)

	if _, err := svc.Respond(context.Background(), "q", []string{"doc-a"}, nil); err == nil {
		t.Fatal("expected error from failed generation")
	}
}

func TestRespondPassesHistoryThrough(t *testing.T) {
	gen := &fakeGenerator{answer: "ok"}
	svc := NewChatService(NewRetrievalEngine(&fakeEmbedder{}, &fakeIndex{}), gen, 3)
	history := []models.ChatMessage{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	if _, err := svc.Respond(context.Background(), "followup", []string{"doc-a"}, history); err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if len(gen.history) != 2 || gen.history[1].Content != "earlier answer" {
		t.Errorf("history not forwarded: %v", gen.history)
	}
}
