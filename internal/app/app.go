package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jobcatalog-backend/internal/handlers"
	"github.com/yungbote/jobcatalog-backend/internal/ingest"
	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
	"github.com/yungbote/jobcatalog-backend/internal/platform/ollama"
	"github.com/yungbote/jobcatalog-backend/internal/server"
	"github.com/yungbote/jobcatalog-backend/internal/store"
)

type App struct {
	Log    *logger.Logger
	Router *gin.Engine
	Cfg    Config
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	storeCfg, err := store.LoadConfig(cfg.StoreConfigPath, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load store config: %w", err)
	}

	client, err := ollama.NewClient(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init ollama client: %w", err)
	}

	backend := ingest.NewOllamaBackend(client, cfg.KeywordModel, cfg.AttentionModel)
	gen := ingest.NewGenerator(backend, ingest.GeneratorConfig{
		KeywordDim:   storeCfg.KeywordDim,
		AttentionDim: storeCfg.AttentionDim,
	}, log)

	openStore := func(ctx context.Context) (*store.Store, error) {
		return store.Open(ctx, storeCfg, log)
	}
	svc := ingest.NewService(gen, func(ctx context.Context) (ingest.Store, error) {
		return openStore(ctx)
	}, cfg.DefaultLang, log)

	router := server.NewRouter(server.RouterConfig{
		SubmitHandler: handlers.NewSubmitHandler(log, svc),
		GraphHandler:  handlers.NewGraphHandler(log, openStore),
	})

	return &App{
		Log:    log,
		Router: router,
		Cfg:    cfg,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
