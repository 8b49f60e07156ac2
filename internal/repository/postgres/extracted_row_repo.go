package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"posyandu/internal/domain"
	"posyandu/internal/port"
)

type extractedRowRepo struct {
	db *sqlx.DB
}

// NewExtractedRowRepo creates a new PostgreSQL-backed ExtractedRowRepository.
func NewExtractedRowRepo(db *sqlx.DB) port.ExtractedRowRepository {
	return &extractedRowRepo{db: db}
}

const insertRowsQuery = `INSERT INTO ocr_extracted_rows (
	document_id, row_index,
	nama_anak, nama_anak_confidence,
	tanggal_lahir, tanggal_lahir_confidence,
	umur, umur_confidence,
	jenis_kelamin, jenis_kelamin_confidence,
	nama_ibu, nama_ibu_confidence,
	alamat, alamat_confidence,
	bb_lalu, bb_lalu_confidence,
	bb_sekarang, bb_sekarang_confidence,
	tb, tb_confidence,
	status_nt, status_nt_confidence,
	bbox, is_reviewed, is_approved
) VALUES (
	:document_id, :row_index,
	:nama_anak, :nama_anak_confidence,
	:tanggal_lahir, :tanggal_lahir_confidence,
	:umur, :umur_confidence,
	:jenis_kelamin, :jenis_kelamin_confidence,
	:nama_ibu, :nama_ibu_confidence,
	:alamat, :alamat_confidence,
	:bb_lalu, :bb_lalu_confidence,
	:bb_sekarang, :bb_sekarang_confidence,
	:tb, :tb_confidence,
	:status_nt, :status_nt_confidence,
	:bbox, :is_reviewed, :is_approved
)`

func (r *extractedRowRepo) InsertRows(ctx context.Context, records []domain.ExtractedRowRecord) error {
	if len(records) == 0 {
		return nil
	}
	if _, err := r.db.NamedExecContext(ctx, insertRowsQuery, records); err != nil {
		return fmt.Errorf("extractedRowRepo.InsertRows: %w", err)
	}
	return nil
}

func (r *extractedRowRepo) ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.ExtractedRowRecord, error) {
	var rows []domain.ExtractedRowRecord
	err := r.db.SelectContext(ctx, &rows,
		`SELECT document_id, row_index,
			nama_anak, nama_anak_confidence,
			tanggal_lahir, tanggal_lahir_confidence,
			umur, umur_confidence,
			jenis_kelamin, jenis_kelamin_confidence,
			nama_ibu, nama_ibu_confidence,
			alamat, alamat_confidence,
			bb_lalu, bb_lalu_confidence,
			bb_sekarang, bb_sekarang_confidence,
			tb, tb_confidence,
			status_nt, status_nt_confidence,
			bbox, is_reviewed, is_approved
		 FROM ocr_extracted_rows
		 WHERE document_id = $1
		 ORDER BY row_index ASC`, docID)
	if err != nil {
		return nil, fmt.Errorf("extractedRowRepo.ListByDocument: %w", err)
	}
	return rows, nil
}
