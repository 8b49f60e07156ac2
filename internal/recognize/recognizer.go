// Package recognize reads handwritten content out of extracted cell crops
// via an external vision model, with bounded fan-out and per-field
// confidence scoring.
package recognize

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/disintegration/imaging"

	"posyandu/internal/domain"
	"posyandu/internal/port"
)

const cropJPEGQuality = 90

// Recognizer fans cell crops out to the vision model, at most concurrency
// calls in flight at a time.
type Recognizer struct {
	client      port.CellRecognizer
	concurrency int
}

// New creates a Recognizer. A non-positive concurrency falls back to 5.
func New(client port.CellRecognizer, concurrency int) *Recognizer {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Recognizer{client: client, concurrency: concurrency}
}

// RecognizeAll returns one RecognizedCell per input cell, in input order,
// regardless of the completion order of the underlying calls. A failed call
// degrades that cell to empty text and zero confidence; it never affects
// the other cells and never fails the stage.
func (r *Recognizer) RecognizeAll(ctx context.Context, cells []domain.ExtractedCell) []domain.RecognizedCell {
	results := make([]domain.RecognizedCell, len(cells))

	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup
	for i := range cells {
		sem <- struct{}{} // acquire
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }() // release
			results[i] = r.recognizeOne(ctx, cells[i])
		}(i)
	}
	wg.Wait()

	return results
}

func (r *Recognizer) recognizeOne(ctx context.Context, cell domain.ExtractedCell) domain.RecognizedCell {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cell.Crop, imaging.JPEG, imaging.JPEGQuality(cropJPEGQuality)); err != nil {
		return failedCell(cell, fmt.Errorf("encoding crop: %w", err))
	}

	text, err := r.client.RecognizeCell(ctx, buf.Bytes(), cell.FieldContext)
	if err != nil {
		return failedCell(cell, err)
	}

	return domain.RecognizedCell{
		ExtractedCell: cell,
		Text:          text,
		Confidence:    Confidence(text, cell.FieldName, cell.TextHint),
	}
}

func failedCell(cell domain.ExtractedCell, err error) domain.RecognizedCell {
	log.Printf("recognize: cell r%dc%d (%s) failed: %v", cell.RowIdx, cell.ColIdx, cell.FieldName, err)
	return domain.RecognizedCell{
		ExtractedCell:    cell,
		Text:             "",
		Confidence:       0.0,
		RecognitionError: err.Error(),
	}
}
