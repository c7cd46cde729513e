package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/jobcatalog-backend/internal/domain/catalog"
	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Fields is the normalized input set one submission arrives with.
type Fields struct {
	Platform string `json:"platform"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Mode     string `json:"mode"`
	Relevant string `json:"relevant"`
	FullText string `json:"full_text"`
	Link     string `json:"link"`
	Lang     string `json:"lang"`
}

// Result is what the submitting UI renders: a success/failure flag and, on
// failure, the reason.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Store is the persistence surface the pipeline needs. The concrete store
// owns one database connection for the duration of one submission.
type Store interface {
	InsertDocument(ctx context.Context, rec *catalog.Record) error
	InsertTriple(ctx context.Context, subject, predicate, object, documentID string) error
	Close(ctx context.Context) error
}

// StoreOpener connects a Store; opening runs the idempotent schema bootstrap.
type StoreOpener func(ctx context.Context) (Store, error)

type Service struct {
	gen         *Generator
	openStore   StoreOpener
	defaultLang string
	log         *logger.Logger
}

func NewService(gen *Generator, openStore StoreOpener, defaultLang string, log *logger.Logger) *Service {
	if defaultLang == "" {
		defaultLang = LangItalian
	}
	return &Service{
		gen:         gen,
		openStore:   openStore,
		defaultLang: defaultLang,
		log:         log.With("service", "IngestService"),
	}
}

// Submit runs the whole ingestion of one job offer: normalization, feature
// extraction (fallbacks keep it total), record assembly and the dual-store
// writes. Extraction failures never abort a submission; storage failures
// abort the current write and surface as a failure result, with no rollback
// of writes already committed.
func (s *Service) Submit(ctx context.Context, f Fields) Result {
	lang := f.Lang
	if lang == "" {
		lang = s.defaultLang
	}
	cleanedRelevant := Clean(f.Relevant)

	// Keyword extraction and the full-text embedding are independent.
	var keywords []string
	var attVector []float64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		keywords = s.gen.Keywords(gctx, cleanedRelevant, s.defaultLang)
		return nil
	})
	g.Go(func() error {
		attVector = s.gen.AttentionVector(gctx, f.FullText)
		return nil
	})
	_ = g.Wait()

	cleanedKeywords := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if c := Clean(kw); c != "" {
			cleanedKeywords = append(cleanedKeywords, strings.ToLower(c))
		}
	}
	sortedKeywords := append([]string(nil), cleanedKeywords...)
	sort.Strings(sortedKeywords)

	// The keyword vector and the triples both need the keywords, nothing
	// else; run them side by side.
	var kwVector []float64
	var tripleRows [][]string
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		kwVector = s.gen.KeywordVector(g2ctx, strings.Join(sortedKeywords, " "), lang)
		return nil
	})
	g2.Go(func() error {
		tripleRows = s.gen.Triples(g2ctx, cleanedRelevant, cleanedKeywords, lang)
		return nil
	})
	_ = g2.Wait()

	title := strings.TrimSpace(fmt.Sprintf("%s - %s - %s - %s",
		Clean(f.Title), Clean(f.Company), Clean(f.Location), Clean(f.Mode)))
	rec := catalog.NewRecord(
		Clean(f.Platform),
		title,
		map[string]any{
			"Link":     f.Link,
			"Lang":     lang,
			"Detail":   Clean(f.FullText),
			"Relevant": cleanedRelevant,
			"Keywords": cleanedKeywords,
		},
		attVector,
		kwVector,
	)

	st, err := s.openStore(ctx)
	if err != nil {
		s.log.Error("Store open failed", "error", err)
		return Result{Status: StatusFailure, Error: err.Error()}
	}
	defer st.Close(ctx)

	if err := st.InsertDocument(ctx, rec); err != nil {
		s.log.Error("Document insert failed", "tuid", rec.TUID, "error", err)
		return Result{Status: StatusFailure, Error: err.Error()}
	}

	for i, row := range tripleRows {
		triple, err := catalog.NewTriple(row)
		if err != nil {
			s.log.Error("Malformed triple", "index", i, "error", err)
			return Result{Status: StatusFailure, Error: err.Error()}
		}
		subject := GraphToken(triple.Subject, lang)
		predicate := GraphToken(triple.Predicate, lang)
		object := GraphToken(triple.Object, lang)
		if err := st.InsertTriple(ctx, subject, predicate, object, rec.TUID); err != nil {
			s.log.Error("Triple insert failed", "tuid", rec.TUID, "index", i, "error", err)
			return Result{Status: StatusFailure, Error: err.Error()}
		}
	}

	s.log.Info("Submission ingested", "tuid", rec.TUID, "triples", len(tripleRows))
	return Result{Status: StatusSuccess}
}
