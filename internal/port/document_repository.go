package port

import (
	"context"

	"github.com/google/uuid"

	"posyandu/internal/domain"
)

// DocumentRepository persists pipeline status at stage boundaries.
// Status writes are idempotent last-write-wins; nothing is ever rolled back.
type DocumentRepository interface {
	GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error)
	UpdateStatus(ctx context.Context, docID uuid.UUID, status domain.DocumentStatus, update domain.StatusUpdate) error
}
