package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
	"github.com/yungbote/jobcatalog-backend/internal/store"
)

// StoreOpener connects a store for the duration of one request.
type StoreOpener func(ctx context.Context) (*store.Store, error)

// GraphHandler serves the read path of the visualizer: all entity vertices
// and all labeled edges of the configured graph.
type GraphHandler struct {
	log       *logger.Logger
	openStore StoreOpener
}

func NewGraphHandler(log *logger.Logger, openStore StoreOpener) *GraphHandler {
	return &GraphHandler{
		log:       log.With("handler", "GraphHandler"),
		openStore: openStore,
	}
}

// GET /api/graph/vertices
func (h *GraphHandler) ListVertices(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.openStore(ctx)
	if err != nil {
		h.log.Error("Store open failed", "error", err)
		RespondError(c, http.StatusServiceUnavailable, "store_unavailable", err)
		return
	}
	defer st.Close(ctx)

	vertices, err := st.ListVertices(ctx)
	if err != nil {
		h.log.Error("Vertex listing failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "graph_read_failed", err)
		return
	}
	RespondOK(c, gin.H{"vertices": vertices})
}

// GET /api/graph/edges
func (h *GraphHandler) ListEdges(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.openStore(ctx)
	if err != nil {
		h.log.Error("Store open failed", "error", err)
		RespondError(c, http.StatusServiceUnavailable, "store_unavailable", err)
		return
	}
	defer st.Close(ctx)

	edges, err := st.ListEdges(ctx)
	if err != nil {
		h.log.Error("Edge listing failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "graph_read_failed", err)
		return
	}
	RespondOK(c, gin.H{"edges": edges})
}
