package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"posyandu/internal/domain"
	"posyandu/internal/export"
	"posyandu/internal/port"
)

// ExportHandler serves a document's extracted rows as an XLSX review
// workbook.
type ExportHandler struct {
	docRepo port.DocumentRepository
	rowRepo port.ExtractedRowRepository
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(docRepo port.DocumentRepository, rowRepo port.ExtractedRowRepository) *ExportHandler {
	return &ExportHandler{docRepo: docRepo, rowRepo: rowRepo}
}

func (h *ExportHandler) Export(c *gin.Context) {
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a UUID"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.docRepo.GetByID(ctx, docID); err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	records, err := h.rowRepo.ListByDocument(ctx, docID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="document-%s.xlsx"`, docID))
	if err := export.WriteWorkbook(c.Writer, records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
