package port

import (
	"context"

	"github.com/google/uuid"

	"posyandu/internal/domain"
)

// ExtractedRowRepository persists the structured rows produced for a document.
type ExtractedRowRepository interface {
	InsertRows(ctx context.Context, records []domain.ExtractedRowRecord) error
	ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.ExtractedRowRecord, error)
}
