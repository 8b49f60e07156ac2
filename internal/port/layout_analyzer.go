package port

import "context"

// LayoutRegion is one region reported by the external layout model. A table
// region carries its structural markup (nested row/cell elements) and a
// single table-level bounding box as [x1, y1, x2, y2].
type LayoutRegion struct {
	Type        string
	BBox        [4]int
	TableMarkup string
}

// LayoutAnalyzer abstracts the external layout/table-structure model.
type LayoutAnalyzer interface {
	Analyze(ctx context.Context, imageJPEG []byte) ([]LayoutRegion, error)
}
