package port

import (
	"context"
	"image"

	"posyandu/internal/domain"
)

// TableDetector recovers the register's cell grid from a normalized image.
// A detector that finds no cells returns domain.ErrNoTableDetected.
type TableDetector interface {
	Detect(ctx context.Context, img image.Image) ([]domain.TableCell, error)
}
