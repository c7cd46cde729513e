package store

import (
	"strconv"
	"strings"
)

// DefaultEdgeLabel is the relation written when triple extraction yields an
// empty predicate.
const DefaultEdgeLabel = "LINKS_TO"

// defaultEntityName stands in for a blank entity so the vertex stays valid.
const defaultEntityName = "unknown_entity"

// Literal SQL/Cypher templates. {name} tokens are interpolated from the
// schema constants with expand; positional parameters travel as query args.

const (
	checkSchemaQuery = `SELECT schema_name FROM information_schema.schemata WHERE schema_name = '{schema_name}';`

	checkGraphQuery = `SELECT 1 FROM ag_catalog.ag_graph WHERE name = '{schema_name}';`

	createGraphQuery = `SELECT * FROM ag_catalog.create_graph('{schema_name}');`

	createTableQuery = `
CREATE TABLE IF NOT EXISTS {schema_name}.{table_name} (
    type TEXT,
    title TEXT,
    sink BOOLEAN NOT NULL DEFAULT TRUE,
    attention_vector vector({attention_dim}),
    keyword_vector vector({keyword_dim}),
    data JSONB,
    tuid TEXT,
    time TIMESTAMPTZ NOT NULL,
    PRIMARY KEY (time, tuid)
);`

	createHypertableQuery = `SELECT create_hypertable('{schema_name}.{table_name}', 'time', if_not_exists => TRUE);`

	insertRecordQuery = `INSERT INTO {schema_name}.{table_name} (type, title, data, attention_vector, keyword_vector, tuid, time) VALUES ($1, $2, $3::jsonb, $4::vector, $5::vector, $6, $7);`

	insertVertexQuery = `
SELECT * FROM cypher('{schema_name}', $$
    MERGE (n:Node {id: '{vertex_id}'})
    SET n.entity = '{entity}'
$$) AS (result agtype);`

	insertEdgeQuery = `
SELECT * FROM cypher('{schema_name}', $$
    MATCH (a:Node {id: '{source_id}'}), (b:Node {id: '{target_id}'})
    CREATE (a)-[:LINKS_TO {label: '{label}'}]->(b)
$$) AS (result agtype);`

	listVerticesQuery = `SELECT * FROM cypher('{schema_name}', $$ MATCH (n) RETURN n $$) AS (node agtype);`

	listEdgesQuery = `SELECT * FROM cypher('{schema_name}', $$ MATCH (n)-[r]->(m) RETURN n, r, m $$) AS (source agtype, rel agtype, target agtype);`
)

// Extension setup. Idempotent, so a racing first run is harmless.
var extensionStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector;`,
	`CREATE EXTENSION IF NOT EXISTS age;`,
	`CREATE EXTENSION IF NOT EXISTS timescaledb;`,
}

// Per-session AGE setup; cypher() is not callable without it.
var ageSessionStatements = []string{
	`LOAD 'age';`,
	`SET search_path = ag_catalog, "$user", public;`,
}

func expand(template string, params map[string]string) string {
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func (c Config) baseParams() map[string]string {
	return map[string]string{
		"schema_name":   c.Schema,
		"table_name":    c.Table,
		"attention_dim": strconv.Itoa(c.AttentionDim),
		"keyword_dim":   strconv.Itoa(c.KeywordDim),
	}
}

func (c Config) params(extra map[string]string) map[string]string {
	out := c.baseParams()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// quoteCypher escapes a value bound for a single-quoted Cypher string.
// Entity names arrive as graph-safe tokens; this is the backstop.
func quoteCypher(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
