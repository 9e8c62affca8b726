package services

import (
	"context"
	"fmt"

	"techdocs-rag-platform/internal/logger"
	"techdocs-rag-platform/models"
)

const systemPrompt = `You are a helpful technical assistant with access to various technical documents.
When answering questions:
1. Always cite your sources with page numbers, section titles, and relevant quotes
2. If you're referencing multiple documents, clearly indicate which document you're citing
3. If you're not sure about something, say so rather than making assumptions
4. If the context contains technical information, explain it clearly and accurately
5. When discussing code or technical concepts, provide practical examples if relevant`

// ChatService runs one retrieval-augmented answer turn: retrieve, assemble
// context, generate, extract citations.
type ChatService struct {
	retrieval *RetrievalEngine
	generator Generator
	topK      int
}

func NewChatService(retrieval *RetrievalEngine, generator Generator, topK int) *ChatService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &ChatService{retrieval: retrieval, generator: generator, topK: topK}
}

// ChatAnswer is the outcome of one chat turn.
type ChatAnswer struct {
	Response  string            `json:"response"`
	Citations []models.Citation `json:"citations"`
}

// Respond answers a question against the given document scope. A failed
// retrieval degrades to answering without context; only a generation
// failure is returned as an error.
func (s *ChatService) Respond(ctx context.Context, query string, documentIDs []string, history []models.ChatMessage) (*ChatAnswer, error) {
	results := s.retrieval.Search(ctx, query, documentIDs, s.topK)
	logger.Debug("retrieved context", "query_chars", len(query), "chunks", len(results))

	grounding := AssembleContext(results)

	prompt := fmt.Sprintf(`Context from documents:
%s

User question: %s

Please provide a response based on the context above. Include specific citations with section titles and page numbers where available.`, grounding, query)

	answer, err := s.generator.Generate(ctx, systemPrompt, history, prompt)
	if err != nil {
		return nil, err
	}

	citations := ExtractCitations(results, answer)
	logger.Info("generated answer", "citations", len(citations), "context_chunks", len(results))

	return &ChatAnswer{Response: answer, Citations: citations}, nil
}
