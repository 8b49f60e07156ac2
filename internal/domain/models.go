package domain

import (
	"encoding/json"
	"image"
	"time"

	"github.com/google/uuid"
)

// Document represents one photographed register page moving through the
// OCR pipeline. Mutated only at stage boundaries; never deleted by the worker.
type Document struct {
	ID                   uuid.UUID       `db:"id" json:"id"`
	StoragePath          string          `db:"storage_path" json:"storage_path"`
	Status               DocumentStatus  `db:"status" json:"status"`
	PreprocessedPath     *string         `db:"preprocessed_path" json:"preprocessed_path"`
	TableDetectionResult json.RawMessage `db:"table_detection_result" json:"table_detection_result"`
	CellExtractionResult json.RawMessage `db:"cell_extraction_result" json:"cell_extraction_result"`
	StructuredResult     json.RawMessage `db:"ocr_structured_result" json:"ocr_structured_result"`
	OverallConfidence    *float64        `db:"overall_confidence" json:"overall_confidence"`
	ErrorMessage         *string         `db:"error_message" json:"error_message"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at" json:"updated_at"`
}

// StatusUpdate carries the stage-specific data persisted alongside a status
// transition. Nil fields are left untouched so partial progress survives a
// later stage failing.
type StatusUpdate struct {
	PreprocessedPath     *string
	TableDetectionResult json.RawMessage
	CellExtractionResult json.RawMessage
	StructuredResult     json.RawMessage
	OverallConfidence    *float64
	ErrorMessage         *string
}

// BBox is an axis-aligned box in normalized-image pixel coordinates.
type BBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Union returns the smallest box containing both b and o.
func (b BBox) Union(o BBox) BBox {
	x1 := min(b.X, o.X)
	y1 := min(b.Y, o.Y)
	x2 := max(b.X+b.Width, o.X+o.Width)
	y2 := max(b.Y+b.Height, o.Y+o.Height)
	return BBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// TableCell is one detected cell of the register grid. Row 0 is the header
// row and is discarded during extraction.
type TableCell struct {
	RowIdx   int
	ColIdx   int
	X1       int
	Y1       int
	X2       int
	Y2       int
	TextHint string
}

// ExtractedCell is a table cell bound to a register field, with its pixel
// crop and bbox clipped to the image bounds.
type ExtractedCell struct {
	RowIdx       int
	ColIdx       int
	FieldName    string
	FieldContext string
	Crop         image.Image
	TextHint     string
	BBox         BBox
}

// RecognizedCell is an extracted cell plus the recognition model's reading.
// RecognitionError is set when the model call failed for this cell; the cell
// then carries empty text and zero confidence rather than being dropped.
type RecognizedCell struct {
	ExtractedCell
	Text             string
	Confidence       float64
	RecognitionError string
}

// Row is one assembled register row: parsed value and confidence per field,
// the union bbox of its cells, and the mean confidence over populated fields.
type Row struct {
	RowIndex      int
	Values        map[string]*string
	Confidences   map[string]float64
	BBox          BBox
	AvgConfidence float64
}

// ExtractedRowRecord is the persistence shape of a Row: one value and one
// confidence column per register field, matching ocr_extracted_rows.
type ExtractedRowRecord struct {
	DocumentID uuid.UUID `db:"document_id"`
	RowIndex   int       `db:"row_index"`

	NamaAnak                *string  `db:"nama_anak"`
	NamaAnakConfidence      *float64 `db:"nama_anak_confidence"`
	TanggalLahir            *string  `db:"tanggal_lahir"`
	TanggalLahirConfidence  *float64 `db:"tanggal_lahir_confidence"`
	Umur                    *string  `db:"umur"`
	UmurConfidence          *float64 `db:"umur_confidence"`
	JenisKelamin            *string  `db:"jenis_kelamin"`
	JenisKelaminConfidence  *float64 `db:"jenis_kelamin_confidence"`
	NamaIbu                 *string  `db:"nama_ibu"`
	NamaIbuConfidence       *float64 `db:"nama_ibu_confidence"`
	Alamat                  *string  `db:"alamat"`
	AlamatConfidence        *float64 `db:"alamat_confidence"`
	BBLalu                  *string  `db:"bb_lalu"`
	BBLaluConfidence        *float64 `db:"bb_lalu_confidence"`
	BBSekarang              *string  `db:"bb_sekarang"`
	BBSekarangConfidence    *float64 `db:"bb_sekarang_confidence"`
	TB                      *string  `db:"tb"`
	TBConfidence            *float64 `db:"tb_confidence"`
	StatusNT                *string  `db:"status_nt"`
	StatusNTConfidence      *float64 `db:"status_nt_confidence"`

	BBox       json.RawMessage `db:"bbox"`
	IsReviewed bool            `db:"is_reviewed"`
	IsApproved bool            `db:"is_approved"`
}
