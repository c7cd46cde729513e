package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yungbote/jobcatalog-backend/internal/domain/catalog"
	"github.com/yungbote/jobcatalog-backend/internal/ingest"
	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type stubBackend struct{}

func (stubBackend) ExtractKeywords(ctx context.Context, text, lang string) ([]string, error) {
	return []string{"go"}, nil
}
func (stubBackend) StatisticalVector(ctx context.Context, keywordText, lang string) ([]float64, error) {
	return []float64{0.1}, nil
}
func (stubBackend) AttentionVector(ctx context.Context, text string) ([]float64, error) {
	return []float64{0.2}, nil
}
func (stubBackend) GenerateTriples(ctx context.Context, text string, keywords []string, lang string) (string, error) {
	return `{"triple_list": [["a", "b", "c"]]}`, nil
}

type stubStore struct {
	insertErr error
}

func (s *stubStore) InsertDocument(ctx context.Context, rec *catalog.Record) error { return s.insertErr }
func (s *stubStore) InsertTriple(ctx context.Context, subject, predicate, object, documentID string) error {
	return nil
}
func (s *stubStore) Close(ctx context.Context) error { return nil }

func newSubmitRouter(st *stubStore, openErr error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := newTestLogger()
	gen := ingest.NewGenerator(stubBackend{}, ingest.DefaultGeneratorConfig(), log)
	open := func(ctx context.Context) (ingest.Store, error) {
		if openErr != nil {
			return nil, openErr
		}
		return st, nil
	}
	svc := ingest.NewService(gen, open, ingest.LangEnglish, log)
	h := NewSubmitHandler(log, svc)
	r := gin.New()
	r.POST("/api/offers", h.Submit)
	return r
}

const sampleBody = `{
	"platform": "LinkedIn",
	"title": "Backend Engineer",
	"company": "Acme",
	"location": "Milano",
	"mode": "Remote",
	"relevant": "Go and SQL",
	"full_text": "Acme is hiring.",
	"link": "https://example.com/offer/1",
	"lang": "eng"
}`

func TestSubmitOK(t *testing.T) {
	r := newSubmitRouter(&stubStore{}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/offers", strings.NewReader(sampleBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"status":"success"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestSubmitRejectsMalformedJSON(t *testing.T) {
	r := newSubmitRouter(&stubStore{}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/offers", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"failure"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	r := newSubmitRouter(&stubStore{insertErr: errors.New("insert rejected")}, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/offers", strings.NewReader(sampleBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSubmitStoreUnavailable(t *testing.T) {
	r := newSubmitRouter(nil, errors.New("connect refused"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/offers", strings.NewReader(sampleBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}
