package ingest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type fakeBackend struct {
	keywords    []string
	keywordsErr error
	statVec     []float64
	statErr     error
	attVec      []float64
	attErr      error
	tripleRaw   string
	tripleErr   error
}

func (f *fakeBackend) ExtractKeywords(ctx context.Context, text, lang string) ([]string, error) {
	return f.keywords, f.keywordsErr
}
func (f *fakeBackend) StatisticalVector(ctx context.Context, keywordText, lang string) ([]float64, error) {
	return f.statVec, f.statErr
}
func (f *fakeBackend) AttentionVector(ctx context.Context, text string) ([]float64, error) {
	return f.attVec, f.attErr
}
func (f *fakeBackend) GenerateTriples(ctx context.Context, text string, keywords []string, lang string) (string, error) {
	return f.tripleRaw, f.tripleErr
}

var errBackendDown = errors.New("backend unreachable")

func newTestGenerator(backend Backend) *Generator {
	return NewGenerator(backend, DefaultGeneratorConfig(), newTestLogger())
}

func TestKeywordsFallbackOnError(t *testing.T) {
	g := newTestGenerator(&fakeBackend{keywordsErr: errBackendDown})
	got := g.Keywords(context.Background(), "some text", LangEnglish)
	want := []string{"job", "offer", "position"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestKeywordsPassThrough(t *testing.T) {
	g := newTestGenerator(&fakeBackend{keywords: []string{"python", "sql"}})
	got := g.Keywords(context.Background(), "some text", LangEnglish)
	if !reflect.DeepEqual(got, []string{"python", "sql"}) {
		t.Fatalf("got %v", got)
	}
}

func TestKeywordVectorFallback(t *testing.T) {
	g := newTestGenerator(&fakeBackend{statErr: errBackendDown})
	vec := g.KeywordVector(context.Background(), "python sql", LangEnglish)
	if len(vec) != 300 {
		t.Fatalf("expected 300-dim fallback, got %d", len(vec))
	}
	for _, v := range vec {
		if v < -1 || v > 1 {
			t.Fatalf("fallback sample %v out of [-1, 1]", v)
		}
	}
}

func TestAttentionVectorFallbackOnError(t *testing.T) {
	g := newTestGenerator(&fakeBackend{attErr: errBackendDown})
	if vec := g.AttentionVector(context.Background(), "full text"); len(vec) != 5120 {
		t.Fatalf("expected 5120-dim fallback, got %d", len(vec))
	}
}

func TestAttentionVectorFallbackOnEmptyResult(t *testing.T) {
	g := newTestGenerator(&fakeBackend{attVec: []float64{}})
	if vec := g.AttentionVector(context.Background(), "full text"); len(vec) != 5120 {
		t.Fatalf("expected fallback for empty embedding, got %d dims", len(vec))
	}
}

func TestTriplesParsesStrictJSON(t *testing.T) {
	g := newTestGenerator(&fakeBackend{tripleRaw: `{"triple_list": [["job", "requires", "skills"]]}`})
	got := g.Triples(context.Background(), "text", nil, LangEnglish)
	if !reflect.DeepEqual(got, [][]string{{"job", "requires", "skills"}}) {
		t.Fatalf("got %v", got)
	}
}

func TestTriplesParsesLiteralSyntax(t *testing.T) {
	g := newTestGenerator(&fakeBackend{
		tripleRaw: `{'triple_list': [('backend_engineer', 'requires', 'sql')]}`,
	})
	got := g.Triples(context.Background(), "text", nil, LangEnglish)
	if !reflect.DeepEqual(got, [][]string{{"backend_engineer", "requires", "sql"}}) {
		t.Fatalf("got %v", got)
	}
}

func TestTriplesPlaceholderOnUnparseable(t *testing.T) {
	g := newTestGenerator(&fakeBackend{tripleRaw: "sorry, I could not extract anything"})
	got := g.Triples(context.Background(), "text", nil, LangEnglish)
	want := [][]string{
		{"job", "requires", "skills"},
		{"company", "offers", "position"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTriplesPlaceholderOnError(t *testing.T) {
	g := newTestGenerator(&fakeBackend{tripleErr: errBackendDown})
	got := g.Triples(context.Background(), "text", nil, LangEnglish)
	if len(got) != 2 {
		t.Fatalf("expected the two placeholder triples, got %v", got)
	}
}
