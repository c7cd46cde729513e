package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/jobcatalog-backend/internal/handlers"
)

type RouterConfig struct {
	SubmitHandler *handlers.SubmitHandler
	GraphHandler  *handlers.GraphHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors: the submission form and the graph viewer run on their own ports.
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:7860",
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/offers", cfg.SubmitHandler.Submit)
		api.GET("/graph/vertices", cfg.GraphHandler.ListVertices)
		api.GET("/graph/edges", cfg.GraphHandler.ListEdges)
	}

	return router
}
