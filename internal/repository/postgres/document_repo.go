package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"posyandu/internal/domain"
	"posyandu/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM ocr_documents WHERE id = $1", docID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

// UpdateStatus writes the status plus whatever stage data the update carries.
// Last write wins; prior annexes are left in place so partial progress stays
// observable after a later stage fails.
func (r *documentRepo) UpdateStatus(ctx context.Context, docID uuid.UUID, status domain.DocumentStatus, update domain.StatusUpdate) error {
	sets := []string{"status = $1", "updated_at = $2"}
	args := []interface{}{status, time.Now().UTC()}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.PreprocessedPath != nil {
		addSet("preprocessed_path", *update.PreprocessedPath)
	}
	if update.TableDetectionResult != nil {
		addSet("table_detection_result", []byte(update.TableDetectionResult))
	}
	if update.CellExtractionResult != nil {
		addSet("cell_extraction_result", []byte(update.CellExtractionResult))
	}
	if update.StructuredResult != nil {
		addSet("ocr_structured_result", []byte(update.StructuredResult))
	}
	if update.OverallConfidence != nil {
		addSet("overall_confidence", *update.OverallConfidence)
	}
	if update.ErrorMessage != nil {
		addSet("error_message", *update.ErrorMessage)
	}

	args = append(args, docID)
	query := fmt.Sprintf("UPDATE ocr_documents SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("documentRepo.UpdateStatus: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
