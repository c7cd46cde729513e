package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
	"github.com/yungbote/jobcatalog-backend/internal/utils"
)

// Config carries the schema constants of one deployment: connection target,
// schema/graph name, table name and vector dimensions. It is constructed once
// per store and read-only thereafter.
type Config struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	// Schema names both the relational schema and the AGE graph; the graph
	// extension creates the schema, the record table lives inside it.
	Schema string `yaml:"schema"`
	Table  string `yaml:"table"`

	AttentionDim int `yaml:"attention_dim"`
	KeywordDim   int `yaml:"keyword_dim"`
}

func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         "5432",
		User:         "postgres",
		Password:     "",
		Database:     "job_catalog",
		Schema:       "job_catalog",
		Table:        "offer_nodes",
		AttentionDim: 5120,
		KeywordDim:   300,
	}
}

// FromEnv builds a Config from environment variables, falling back to the
// defaults above.
func FromEnv(log *logger.Logger) Config {
	def := DefaultConfig()
	return Config{
		Host:         utils.GetEnv("POSTGRES_HOST", def.Host, log),
		Port:         utils.GetEnv("POSTGRES_PORT", def.Port, log),
		User:         utils.GetEnv("POSTGRES_USER", def.User, log),
		Password:     utils.GetEnv("POSTGRES_PASSWORD", def.Password, log),
		Database:     utils.GetEnv("POSTGRES_NAME", def.Database, log),
		Schema:       utils.GetEnv("CATALOG_SCHEMA", def.Schema, log),
		Table:        utils.GetEnv("CATALOG_TABLE", def.Table, log),
		AttentionDim: utils.GetEnvAsInt("ATTENTION_VECTOR_DIM", def.AttentionDim, log),
		KeywordDim:   utils.GetEnvAsInt("KEYWORD_VECTOR_DIM", def.KeywordDim, log),
	}
}

// LoadConfig starts from the environment and overlays an optional YAML file.
func LoadConfig(path string, log *logger.Logger) (Config, error) {
	cfg := FromEnv(log)
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read store config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse store config: %w", err)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Database,
	)
}
