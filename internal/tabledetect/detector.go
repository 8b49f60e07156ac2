// Package tabledetect recovers the register's cell grid from a normalized
// image. Two interchangeable strategies are tried in priority order: the
// external layout model first, then the morphological line detector. Only
// total failure of both is surfaced to the caller.
package tabledetect

import (
	"context"
	"fmt"
	"image"
	"log"

	"posyandu/internal/domain"
	"posyandu/internal/port"
)

// FallbackDetector tries detection strategies in order. It implements
// port.TableDetector.
type FallbackDetector struct {
	strategies []port.TableDetector
	names      []string
}

// NewFallbackDetector creates a FallbackDetector from an ordered list of
// strategies and their names.
func NewFallbackDetector(strategies []port.TableDetector, names []string) *FallbackDetector {
	return &FallbackDetector{strategies: strategies, names: names}
}

// Detect returns the first strategy's non-empty cell list. A strategy
// failure is logged and the next strategy tried; the caller only sees
// domain.ErrNoTableDetected once every strategy has come up empty.
func (d *FallbackDetector) Detect(ctx context.Context, img image.Image) ([]domain.TableCell, error) {
	for i, s := range d.strategies {
		cells, err := s.Detect(ctx, img)
		if err != nil {
			log.Printf("tabledetect.FallbackDetector: %s failed: %v", d.names[i], err)
			continue
		}
		if len(cells) == 0 {
			log.Printf("tabledetect.FallbackDetector: %s returned no cells", d.names[i])
			continue
		}
		log.Printf("tabledetect.FallbackDetector: %s detected %d cells", d.names[i], len(cells))
		return cells, nil
	}
	return nil, fmt.Errorf("all detection strategies exhausted: %w", domain.ErrNoTableDetected)
}
