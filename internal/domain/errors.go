package domain

import "errors"

var (
	ErrDocumentNotFound    = errors.New("document not found")
	ErrNoTableDetected     = errors.New("no table structure detected")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyImage          = errors.New("image decoded to zero pixels")
)
