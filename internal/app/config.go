package app

import (
	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
	"github.com/yungbote/jobcatalog-backend/internal/utils"
)

type Config struct {
	Port            string
	DefaultLang     string
	StoreConfigPath string
	KeywordModel    string
	AttentionModel  string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:            utils.GetEnv("PORT", "8080", log),
		DefaultLang:     utils.GetEnv("CATALOG_LANG", "ita", log),
		StoreConfigPath: utils.GetEnv("STORE_CONFIG_PATH", "", log),
		KeywordModel:    utils.GetEnv("OLLAMA_KEYWORD_EMBED_MODEL", "nomic-embed-text", log),
		AttentionModel:  utils.GetEnv("OLLAMA_ATTENTION_EMBED_MODEL", "phi4", log),
	}
}
