package domain

// DocumentStatus represents the processing lifecycle of an uploaded register page.
// A document only ever moves forward through the sequence below, or jumps to
// StatusFailed, which is terminal.
type DocumentStatus string

const (
	StatusUploaded        DocumentStatus = "uploaded"
	StatusPreprocessing   DocumentStatus = "preprocessing"
	StatusDetectingTable  DocumentStatus = "detecting_table"
	StatusExtractingCells DocumentStatus = "extracting_cells"
	StatusRecognizingText DocumentStatus = "recognizing_text"
	StatusAwaitingReview  DocumentStatus = "awaiting_review"
	StatusFailed          DocumentStatus = "failed"
)

// FileType represents the allowed image types for register uploads.
type FileType string

const (
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"image/jpeg": FileTypeJPG,
	"image/png":  FileTypePNG,
}
