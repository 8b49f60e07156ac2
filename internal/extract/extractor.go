// Package extract crops detected table cells and binds each one to its
// register field.
package extract

import (
	"image"

	"github.com/disintegration/imaging"

	"posyandu/internal/domain"
)

// Cells crops every field-mapped, non-header cell from the normalized
// image. The header row (row 0) and columns outside the field schema are
// dropped, bboxes are clipped to the image bounds, and cells whose clipped
// bbox has no area are discarded.
func Cells(img image.Image, tableCells []domain.TableCell) []domain.ExtractedCell {
	b := img.Bounds()
	wImg, hImg := b.Dx(), b.Dy()

	var extracted []domain.ExtractedCell
	for _, cell := range tableCells {
		if cell.RowIdx == 0 {
			continue
		}

		fieldName, ok := domain.ColumnFieldMap[cell.ColIdx]
		if !ok {
			continue
		}

		x1 := max(0, cell.X1)
		y1 := max(0, cell.Y1)
		x2 := min(wImg, cell.X2)
		y2 := min(hImg, cell.Y2)
		if x2 <= x1 || y2 <= y1 {
			continue
		}

		crop := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

		extracted = append(extracted, domain.ExtractedCell{
			RowIdx:       cell.RowIdx,
			ColIdx:       cell.ColIdx,
			FieldName:    fieldName,
			FieldContext: domain.FieldContext[fieldName],
			Crop:         crop,
			TextHint:     cell.TextHint,
			BBox:         domain.BBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1},
		})
	}
	return extracted
}
