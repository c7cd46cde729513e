package ingest

import (
	"context"
	"math/rand"

	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
)

// Fallback values substituted when an external extraction call fails. They
// keep the pipeline live at the cost of injecting low-information placeholder
// data; knowingly storing a degraded record beats blocking the submission.
var (
	fallbackKeywords   = []string{"job", "offer", "position"}
	fallbackTripleRows = [][]string{
		{"job", "requires", "skills"},
		{"company", "offers", "position"},
	}
)

type GeneratorConfig struct {
	// KeywordDim is the length of the lightweight statistical vector.
	KeywordDim int
	// AttentionDim is the length of the LLM embedding vector.
	AttentionDim int
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{KeywordDim: 300, AttentionDim: 5120}
}

// Generator wraps a Backend with the mandatory per-stage fallbacks. Its
// methods never fail; an absorbed outage is logged and replaced by the
// documented placeholder.
type Generator struct {
	backend Backend
	cfg     GeneratorConfig
	log     *logger.Logger
}

func NewGenerator(backend Backend, cfg GeneratorConfig, log *logger.Logger) *Generator {
	if cfg.KeywordDim <= 0 {
		cfg.KeywordDim = DefaultGeneratorConfig().KeywordDim
	}
	if cfg.AttentionDim <= 0 {
		cfg.AttentionDim = DefaultGeneratorConfig().AttentionDim
	}
	return &Generator{backend: backend, cfg: cfg, log: log.With("service", "Generator")}
}

func (g *Generator) Keywords(ctx context.Context, text, lang string) []string {
	kws, err := g.backend.ExtractKeywords(ctx, text, lang)
	if err != nil {
		g.log.Warn("Keyword extraction failed, using fallback keywords", "error", err)
		return append([]string(nil), fallbackKeywords...)
	}
	return kws
}

func (g *Generator) KeywordVector(ctx context.Context, keywordText, lang string) []float64 {
	vec, err := g.backend.StatisticalVector(ctx, keywordText, lang)
	if err != nil {
		g.log.Warn("Keyword vectorization failed, using random fallback vector", "error", err)
		return randomVector(g.cfg.KeywordDim)
	}
	return vec
}

func (g *Generator) AttentionVector(ctx context.Context, text string) []float64 {
	vec, err := g.backend.AttentionVector(ctx, text)
	if err != nil || len(vec) == 0 {
		g.log.Warn("Attention vectorization failed, using random fallback vector", "error", err)
		return randomVector(g.cfg.AttentionDim)
	}
	return vec
}

// Triples asks the backend for subject-predicate-object rows and parses the
// response defensively: strict JSON first, then literal-data syntax (single
// quotes, parenthesized tuples). Both failing yields the placeholder rows.
func (g *Generator) Triples(ctx context.Context, text string, keywords []string, lang string) [][]string {
	raw, err := g.backend.GenerateTriples(ctx, text, keywords, lang)
	if err != nil {
		g.log.Warn("Triple generation failed, using placeholder triples", "error", err)
		return fallbackRows()
	}
	var parsed struct {
		TripleList [][]string `json:"triple_list"`
	}
	if err := decodeLoose(raw, &parsed); err != nil || parsed.TripleList == nil {
		g.log.Warn("Triple response unparseable, using placeholder triples", "error", err)
		return fallbackRows()
	}
	return parsed.TripleList
}

func fallbackRows() [][]string {
	out := make([][]string, len(fallbackTripleRows))
	for i, row := range fallbackTripleRows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Degraded, non-semantic placeholder: independent uniform samples in [-1, 1].
func randomVector(n int) []float64 {
	vec := make([]float64, n)
	for i := range vec {
		vec[i] = rand.Float64()*2 - 1
	}
	return vec
}
