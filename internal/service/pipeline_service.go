package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"posyandu/internal/domain"
	"posyandu/internal/extract"
	"posyandu/internal/port"
	"posyandu/internal/preprocess"
	"posyandu/internal/recognize"
	"posyandu/internal/schemamap"
)

// Failure diagnostics persisted on the document are capped at this length.
const maxErrorMessageLen = 1000

// PipelineService runs the OCR pipeline for one document: preprocess,
// detect table, extract cells, recognize text, map rows. Status is persisted
// at every stage boundary; the first unrecovered stage error aborts the rest
// and marks the document failed. Stages of one document never overlap.
type PipelineService struct {
	docRepo      port.DocumentRepository
	rowRepo      port.ExtractedRowRepository
	storage      port.ObjectStorage
	preprocessor *preprocess.Preprocessor
	detector     port.TableDetector
	recognizer   *recognize.Recognizer
	bucket       string
}

// NewPipelineService creates a PipelineService.
func NewPipelineService(
	docRepo port.DocumentRepository,
	rowRepo port.ExtractedRowRepository,
	storage port.ObjectStorage,
	preprocessor *preprocess.Preprocessor,
	detector port.TableDetector,
	recognizer *recognize.Recognizer,
	bucket string,
) *PipelineService {
	return &PipelineService{
		docRepo:      docRepo,
		rowRepo:      rowRepo,
		storage:      storage,
		preprocessor: preprocessor,
		detector:     detector,
		recognizer:   recognizer,
		bucket:       bucket,
	}
}

// Run processes one document end to end. A stage error is recorded as the
// document's terminal failed state with a truncated diagnostic; nothing is
// retried.
func (s *PipelineService) Run(ctx context.Context, docID uuid.UUID, storagePath string) {
	if err := s.run(ctx, docID, storagePath); err != nil {
		log.Printf("pipeline: document %s failed: %v", docID, err)
		s.markFailed(ctx, docID, err)
	}
}

func (s *PipelineService) run(ctx context.Context, docID uuid.UUID, storagePath string) error {
	imageBytes, err := s.storage.Download(ctx, s.bucket, storagePath)
	if err != nil {
		return fmt.Errorf("downloading original image: %w", err)
	}

	// Stage 1: preprocess.
	if err := s.updateStatus(ctx, docID, domain.StatusPreprocessing, domain.StatusUpdate{}); err != nil {
		return err
	}
	img, preprocessedPath, err := s.preprocessor.Process(ctx, imageBytes, storagePath)
	if err != nil {
		return err
	}
	if err := s.updateStatus(ctx, docID, domain.StatusPreprocessing, domain.StatusUpdate{
		PreprocessedPath: &preprocessedPath,
	}); err != nil {
		return err
	}

	// Stage 2: detect table structure.
	if err := s.updateStatus(ctx, docID, domain.StatusDetectingTable, domain.StatusUpdate{}); err != nil {
		return err
	}
	tableCells, err := s.detector.Detect(ctx, img)
	if err != nil {
		return err
	}
	if err := s.updateStatus(ctx, docID, domain.StatusDetectingTable, domain.StatusUpdate{
		TableDetectionResult: mustAnnex(map[string]interface{}{"cell_count": len(tableCells)}),
	}); err != nil {
		return err
	}

	// Stage 3: extract cells.
	if err := s.updateStatus(ctx, docID, domain.StatusExtractingCells, domain.StatusUpdate{}); err != nil {
		return err
	}
	cells := extract.Cells(img, tableCells)
	if err := s.updateStatus(ctx, docID, domain.StatusExtractingCells, domain.StatusUpdate{
		CellExtractionResult: mustAnnex(map[string]interface{}{"crop_count": len(cells)}),
	}); err != nil {
		return err
	}

	// Stage 4: recognize text.
	if err := s.updateStatus(ctx, docID, domain.StatusRecognizingText, domain.StatusUpdate{}); err != nil {
		return err
	}
	recognized := s.recognizer.RecognizeAll(ctx, cells)

	// Stage 5: map rows and persist.
	rows := schemamap.MapRows(recognized)
	records := schemamap.RenderRecords(docID, rows)
	if err := s.rowRepo.InsertRows(ctx, records); err != nil {
		return err
	}

	avg := 0.0
	if len(rows) > 0 {
		sum := 0.0
		for _, row := range rows {
			sum += row.AvgConfidence
		}
		avg = math.Round(sum/float64(len(rows))*100) / 100
	}

	return s.updateStatus(ctx, docID, domain.StatusAwaitingReview, domain.StatusUpdate{
		OverallConfidence: &avg,
		StructuredResult: mustAnnex(map[string]interface{}{
			"row_count":      len(rows),
			"avg_confidence": avg,
		}),
	})
}

func (s *PipelineService) updateStatus(ctx context.Context, docID uuid.UUID, status domain.DocumentStatus, update domain.StatusUpdate) error {
	if err := s.docRepo.UpdateStatus(ctx, docID, status, update); err != nil {
		return fmt.Errorf("recording status %s: %w", status, err)
	}
	return nil
}

// markFailed records the terminal failure state. The write uses a context
// detached from the (possibly canceled) pipeline context so the diagnostic
// still lands.
func (s *PipelineService) markFailed(ctx context.Context, docID uuid.UUID, cause error) {
	msg := cause.Error()
	if len(msg) > maxErrorMessageLen {
		msg = msg[:maxErrorMessageLen]
	}

	writeCtx := context.WithoutCancel(ctx)
	if err := s.docRepo.UpdateStatus(writeCtx, docID, domain.StatusFailed, domain.StatusUpdate{
		ErrorMessage: &msg,
	}); err != nil {
		log.Printf("pipeline: recording failure for document %s: %v", docID, err)
	}
}

func mustAnnex(v map[string]interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return b
}
