package store

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yungbote/jobcatalog-backend/internal/domain/catalog"
	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
)

// conn is the slice of pgx.Conn the store uses. One dedicated connection per
// store, no pool; the store owns it until Close.
type conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close(ctx context.Context) error
}

// Store coordinates the dual writes of one ingestion: the relational record
// row and the property-graph vertices and edges, all in one Postgres carrying
// pgvector, TimescaleDB and AGE. Each logical write commits independently;
// there is no cross-write transaction.
type Store struct {
	cfg Config
	db  conn
	log *logger.Logger
}

// Open connects the store's single connection and runs the bootstrap check:
// when the configured schema is absent, extensions, graph namespace, record
// table and hypertable are provisioned in one commit. Bootstrap failure is
// fatal; callers must Close the store on every exit path afterwards.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	c, err := pgx.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, storageError("connect", err)
	}
	s := &Store{cfg: cfg, db: c, log: log.With("service", "Store")}
	if err := s.bootstrap(ctx); err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	if err := s.execList(ctx, ageSessionStatements); err != nil {
		_ = c.Close(ctx)
		return nil, bootstrapError("prepare graph session", err)
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.db.Close(ctx)
	s.db = nil
	return err
}

func (s *Store) execList(ctx context.Context, statements []string) error {
	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, expand(stmt, s.cfg.baseParams())); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) bootstrap(ctx context.Context) error {
	provisioned, err := s.schemaExists(ctx)
	if err != nil {
		return bootstrapError("check schema", err)
	}
	if provisioned {
		s.log.Debug("Schema already provisioned", "schema", s.cfg.Schema)
		return nil
	}

	s.log.Info("Provisioning schema", "schema", s.cfg.Schema, "table", s.cfg.Table)

	// Extensions cannot go inside the provisioning transaction and are
	// idempotent on their own.
	if err := s.execList(ctx, extensionStatements); err != nil {
		return bootstrapError("create extensions", err)
	}
	if err := s.execList(ctx, ageSessionStatements); err != nil {
		return bootstrapError("prepare graph session", err)
	}

	graphExists, err := s.graphExists(ctx)
	if err != nil {
		return bootstrapError("check graph", err)
	}

	if _, err := s.db.Exec(ctx, "BEGIN"); err != nil {
		return bootstrapError("begin provisioning", err)
	}
	statements := make([]string, 0, 3)
	if !graphExists {
		statements = append(statements, createGraphQuery)
	}
	statements = append(statements, createTableQuery, createHypertableQuery)
	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, expand(stmt, s.cfg.baseParams())); err != nil {
			_, _ = s.db.Exec(ctx, "ROLLBACK")
			return bootstrapError("provision schema", err)
		}
	}
	if _, err := s.db.Exec(ctx, "COMMIT"); err != nil {
		return bootstrapError("commit provisioning", err)
	}
	s.log.Info("Schema provisioned", "schema", s.cfg.Schema)
	return nil
}

func (s *Store) schemaExists(ctx context.Context) (bool, error) {
	rows, err := s.db.Query(ctx, expand(checkSchemaQuery, s.cfg.baseParams()))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == s.cfg.Schema {
			return true, nil
		}
	}
	return false, rows.Err()
}

func (s *Store) graphExists(ctx context.Context) (bool, error) {
	rows, err := s.db.Query(ctx, expand(checkGraphQuery, s.cfg.baseParams()))
	if err != nil {
		return false, err
	}
	defer rows.Close()
	exists := rows.Next()
	return exists, rows.Err()
}

// InsertDocument validates the record, writes the relational row, then writes
// the document's own vertex (entity name = record type). The two writes
// commit independently; a failure between them leaves the row without its
// vertex, which callers accept and observe.
func (s *Store) InsertDocument(ctx context.Context, rec *catalog.Record) error {
	if err := rec.Validate(); err != nil {
		return validationError(err)
	}
	payload, err := json.Marshal(rec.Data)
	if err != nil {
		return validationError(err)
	}
	q := expand(insertRecordQuery, s.cfg.baseParams())
	if _, err := s.db.Exec(ctx, q,
		rec.Type,
		rec.Title,
		payload,
		vectorLiteral(rec.AttentionVector),
		vectorLiteral(rec.KeywordVector),
		rec.TUID,
		rec.Time,
	); err != nil {
		return storageError("insert record", err)
	}
	s.log.Debug("Record row inserted", "tuid", rec.TUID, "type", rec.Type)
	return s.insertVertex(ctx, rec.TUID, rec.Type)
}

// InsertTriple materializes one fact: both entity vertices (idempotent MERGE,
// re-creating an existing id neither errors nor duplicates) and the directed
// edge carrying the predicate.
func (s *Store) InsertTriple(ctx context.Context, subject, predicate, object, documentID string) error {
	t := catalog.Triple{Subject: subject, Predicate: predicate, Object: object}
	if err := t.Validate(); err != nil {
		return validationError(err)
	}
	sourceID := catalog.EntityID(subject, documentID)
	targetID := catalog.EntityID(object, documentID)

	if err := s.insertVertex(ctx, sourceID, subject); err != nil {
		return err
	}
	if err := s.insertVertex(ctx, targetID, object); err != nil {
		return err
	}
	return s.insertEdge(ctx, sourceID, predicate, targetID)
}

func (s *Store) insertVertex(ctx context.Context, vertexID, entity string) error {
	if strings.TrimSpace(entity) == "" {
		entity = defaultEntityName
	}
	q := expand(insertVertexQuery, s.cfg.params(map[string]string{
		"vertex_id": quoteCypher(vertexID),
		"entity":    quoteCypher(entity),
	}))
	if _, err := s.db.Exec(ctx, q); err != nil {
		return storageError("insert vertex", err)
	}
	s.log.Debug("Vertex upserted", "entity", entity)
	return nil
}

func (s *Store) insertEdge(ctx context.Context, sourceID, label, targetID string) error {
	if strings.TrimSpace(label) == "" {
		label = DefaultEdgeLabel
	}
	q := expand(insertEdgeQuery, s.cfg.params(map[string]string{
		"source_id": quoteCypher(sourceID),
		"target_id": quoteCypher(targetID),
		"label":     quoteCypher(label),
	}))
	if _, err := s.db.Exec(ctx, q); err != nil {
		return storageError("insert edge", err)
	}
	s.log.Debug("Edge created", "label", label)
	return nil
}

// ListVertices returns the entity name of every vertex in the graph.
func (s *Store) ListVertices(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, expand(listVerticesQuery, s.cfg.baseParams()))
	if err != nil {
		return nil, storageError("list vertices", err)
	}
	defer rows.Close()

	vertices := make([]string, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, storageError("scan vertex", err)
		}
		entity, err := vertexEntity(raw)
		if err != nil {
			s.log.Warn("Skipping unparseable vertex", "error", err)
			continue
		}
		vertices = append(vertices, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list vertices", err)
	}
	return vertices, nil
}

// ListEdges returns every directed relation with its endpoints' entity names.
func (s *Store) ListEdges(ctx context.Context) ([]catalog.Edge, error) {
	rows, err := s.db.Query(ctx, expand(listEdgesQuery, s.cfg.baseParams()))
	if err != nil {
		return nil, storageError("list edges", err)
	}
	defer rows.Close()

	edges := make([]catalog.Edge, 0)
	for rows.Next() {
		var rawSource, rawRel, rawTarget string
		if err := rows.Scan(&rawSource, &rawRel, &rawTarget); err != nil {
			return nil, storageError("scan edge", err)
		}
		source, err := vertexEntity(rawSource)
		if err != nil {
			s.log.Warn("Skipping edge with unparseable source", "error", err)
			continue
		}
		target, err := vertexEntity(rawTarget)
		if err != nil {
			s.log.Warn("Skipping edge with unparseable target", "error", err)
			continue
		}
		label, err := edgeLabel(rawRel)
		if err != nil {
			s.log.Warn("Skipping edge with unparseable relation", "error", err)
			continue
		}
		edges = append(edges, catalog.Edge{Source: source, Target: target, Label: label})
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list edges", err)
	}
	return edges, nil
}

// vectorLiteral renders a vector in the text form pgvector accepts.
func vectorLiteral(vec []float64) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.String()
}
