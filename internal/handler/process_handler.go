package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"posyandu/internal/service"
)

// ProcessRequest is the payload accepted by POST /process.
type ProcessRequest struct {
	DocumentID  string `json:"document_id" binding:"required"`
	StoragePath string `json:"storage_path" binding:"required"`
}

// ProcessHandler accepts OCR jobs and runs the pipeline in the background.
type ProcessHandler struct {
	pipeline        *service.PipelineService
	pipelineTimeout time.Duration
}

// NewProcessHandler creates a ProcessHandler.
func NewProcessHandler(pipeline *service.PipelineService, pipelineTimeout time.Duration) *ProcessHandler {
	return &ProcessHandler{pipeline: pipeline, pipelineTimeout: pipelineTimeout}
}

// Process validates the job and returns 202 immediately; the pipeline runs
// as a background goroutine with its own timeout, independent of the
// request's lifetime.
func (h *ProcessHandler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	docID, err := uuid.Parse(req.DocumentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_id must be a UUID"})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.pipelineTimeout)
		defer cancel()
		h.pipeline.Run(ctx, docID, req.StoragePath)
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"status":      "accepted",
		"document_id": req.DocumentID,
	})
}
