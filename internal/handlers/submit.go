package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/jobcatalog-backend/internal/ingest"
	"github.com/yungbote/jobcatalog-backend/internal/platform/logger"
)

type SubmitHandler struct {
	log *logger.Logger
	svc *ingest.Service
}

func NewSubmitHandler(log *logger.Logger, svc *ingest.Service) *SubmitHandler {
	return &SubmitHandler{
		log: log.With("handler", "SubmitHandler"),
		svc: svc,
	}
}

// POST /api/offers
// Ingest one job-offer submission. The response always carries the
// success/failure status the form renders; extraction outages degrade the
// stored data instead of failing the request.
func (h *SubmitHandler) Submit(c *gin.Context) {
	var fields ingest.Fields
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, ingest.Result{
			Status: ingest.StatusFailure,
			Error:  fmt.Sprintf("invalid submission payload: %v", err),
		})
		return
	}
	res := h.svc.Submit(c.Request.Context(), fields)
	if res.Status != ingest.StatusSuccess {
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
