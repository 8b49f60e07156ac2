package port

import "context"

// CellRecognizer abstracts the external vision model that reads one cell
// crop. It returns the literal cell value, or an empty string for a blank or
// unreadable cell.
type CellRecognizer interface {
	RecognizeCell(ctx context.Context, cropJPEG []byte, fieldContext string) (string, error)
}
