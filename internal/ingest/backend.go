package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/jobcatalog-backend/internal/platform/ollama"
)

// The four extraction capabilities, each backed by an external model call.
// Implementations may fail; the Generator absorbs every failure into a
// documented fallback so ingestion never aborts on a model outage. The
// language tag selects the prompt and vectorization language.

type KeywordExtractor interface {
	ExtractKeywords(ctx context.Context, text, lang string) ([]string, error)
}

type StatisticalVectorizer interface {
	StatisticalVector(ctx context.Context, keywordText, lang string) ([]float64, error)
}

type AttentionVectorizer interface {
	AttentionVector(ctx context.Context, text string) ([]float64, error)
}

// TripleGenerator returns the raw model response. The response is untrusted
// text; parsing it defensively is the Generator's job.
type TripleGenerator interface {
	GenerateTriples(ctx context.Context, text string, keywords []string, lang string) (string, error)
}

type Backend interface {
	KeywordExtractor
	StatisticalVectorizer
	AttentionVectorizer
	TripleGenerator
}

// ollamaBackend implements all four capabilities against one Ollama server.
type ollamaBackend struct {
	client         ollama.Client
	keywordModel   string
	attentionModel string
}

func NewOllamaBackend(client ollama.Client, keywordModel, attentionModel string) Backend {
	return &ollamaBackend{
		client:         client,
		keywordModel:   keywordModel,
		attentionModel: attentionModel,
	}
}

func (b *ollamaBackend) ExtractKeywords(ctx context.Context, text, lang string) ([]string, error) {
	prompt := fmt.Sprintf(promptsFor(lang).Keywords, text)
	raw, err := b.client.Generate(ctx, "", prompt, keywordSchema)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	if err := decodeLoose(raw, &parsed); err != nil {
		// Garbage output is not an outage: the submission proceeds with
		// whatever keywords we got, here none.
		return []string{}, nil
	}
	return parsed.Keywords, nil
}

func (b *ollamaBackend) StatisticalVector(ctx context.Context, keywordText, lang string) ([]float64, error) {
	_ = lang // one embedding model covers both languages for now
	return b.client.Embed(ctx, b.keywordModel, keywordText)
}

func (b *ollamaBackend) AttentionVector(ctx context.Context, text string) ([]float64, error) {
	return b.client.Embed(ctx, b.attentionModel, text)
}

func (b *ollamaBackend) GenerateTriples(ctx context.Context, text string, keywords []string, lang string) (string, error) {
	p := promptsFor(lang).Triple
	user := fmt.Sprintf(p.User, text, strings.Join(keywords, ", "))
	return b.client.Generate(ctx, p.System, user, tripleSchema)
}
