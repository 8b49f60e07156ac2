package tabledetect

import (
	"context"
	"image"
	"sort"

	"github.com/disintegration/imaging"

	"posyandu/internal/domain"
)

// Structuring element sizes and plausibility thresholds for thin grid
// lines on an upscaled register scan.
const (
	hKernelLen = 40
	vKernelLen = 40
	morphIters = 3

	minCellWidth  = 30
	minCellHeight = 15

	// A component covering this fraction of the image is the page outline,
	// not a cell.
	maxCellAreaFrac = 0.8

	// Cells whose top edges sit within this many pixels belong to the
	// same row.
	rowClusterTolerance = 15
)

// MorphologicalStrategy recovers the cell grid from the pixel data alone:
// binarize, pull out the long horizontal and vertical line structures, and
// read the cells off the holes of the combined grid mask.
type MorphologicalStrategy struct{}

// NewMorphologicalStrategy creates the fallback line-based detector.
func NewMorphologicalStrategy() *MorphologicalStrategy {
	return &MorphologicalStrategy{}
}

func (s *MorphologicalStrategy) Detect(_ context.Context, img image.Image) ([]domain.TableCell, error) {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, domain.ErrEmptyImage
	}

	lum := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lum[y*w+x] = gray.Pix[y*gray.Stride+x*4]
		}
	}

	// Inverse binarization: ink and grid lines become foreground.
	thresh := otsuThreshold(lum)
	bin := make([]bool, w*h)
	for i, v := range lum {
		bin[i] = v <= thresh
	}

	// Long-line extraction via directional erosion-then-dilation.
	hLines := opened(bin, w, h, hKernelLen, 1, morphIters)
	vLines := opened(bin, w, h, 1, vKernelLen, morphIters)

	grid := make([]bool, w*h)
	for i := range grid {
		grid[i] = hLines[i] || vLines[i]
	}

	rects := cellCandidates(grid, w, h)
	cells := assignRowCol(rects)
	if len(cells) == 0 {
		return nil, domain.ErrNoTableDetected
	}
	return cells, nil
}

// otsuThreshold picks the global binarization threshold maximizing
// between-class variance.
func otsuThreshold(lum []uint8) uint8 {
	var hist [256]int
	for _, v := range lum {
		hist[v]++
	}
	total := len(lum)

	sum := 0.0
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	bestVar, best := 0.0, 127
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	return uint8(best)
}

// opened erodes then dilates the mask with a kw-by-kh rectangular kernel,
// iters times each. Only line structures longer than roughly iters*kernel
// survive.
func opened(mask []bool, w, h, kw, kh, iters int) []bool {
	out := mask
	for i := 0; i < iters; i++ {
		out = erode(out, w, h, kw, kh)
	}
	for i := 0; i < iters; i++ {
		out = dilate(out, w, h, kw, kh)
	}
	return out
}

func erode(mask []bool, w, h, kw, kh int) []bool {
	out := make([]bool, w*h)
	rx, ry := kw/2, kh/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			keep := true
		scan:
			for dy := -ry; dy <= kh-1-ry; dy++ {
				ny := y + dy
				for dx := -rx; dx <= kw-1-rx; dx++ {
					nx := x + dx
					if ny < 0 || ny >= h || nx < 0 || nx >= w || !mask[ny*w+nx] {
						keep = false
						break scan
					}
				}
			}
			out[y*w+x] = keep
		}
	}
	return out
}

func dilate(mask []bool, w, h, kw, kh int) []bool {
	out := make([]bool, w*h)
	rx, ry := kw/2, kh/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hit := false
		scan:
			for dy := -ry; dy <= kh-1-ry; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -rx; dx <= kw-1-rx; dx++ {
					nx := x + dx
					if nx >= 0 && nx < w && mask[ny*w+nx] {
						hit = true
						break scan
					}
				}
			}
			out[y*w+x] = hit
		}
	}
	return out
}

type rect struct {
	x1, y1, x2, y2 int
}

// cellCandidates labels the connected holes of the grid mask (the regions
// the grid lines enclose) and keeps those of plausible cell size. The
// surrounding page background is rejected by the whole-image area test.
func cellCandidates(grid []bool, w, h int) []rect {
	imgArea := w * h
	visited := make([]bool, w*h)
	queue := make([]int, 0, 1024)

	var rects []rect
	for start := range grid {
		if grid[start] || visited[start] {
			continue
		}

		minX, minY := w, h
		maxX, maxY := 0, 0
		visited[start] = true
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			i := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := i%w, i/w
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}

			if x > 0 && !grid[i-1] && !visited[i-1] {
				visited[i-1] = true
				queue = append(queue, i-1)
			}
			if x < w-1 && !grid[i+1] && !visited[i+1] {
				visited[i+1] = true
				queue = append(queue, i+1)
			}
			if y > 0 && !grid[i-w] && !visited[i-w] {
				visited[i-w] = true
				queue = append(queue, i-w)
			}
			if y < h-1 && !grid[i+w] && !visited[i+w] {
				visited[i+w] = true
				queue = append(queue, i+w)
			}
		}

		cw := maxX - minX + 1
		ch := maxY - minY + 1
		if cw > minCellWidth && ch > minCellHeight && float64(cw*ch) < maxCellAreaFrac*float64(imgArea) {
			rects = append(rects, rect{x1: minX, y1: minY, x2: maxX + 1, y2: maxY + 1})
		}
	}
	return rects
}

// assignRowCol clusters boxes into rows by top-y proximity after a (y, x)
// sort, then numbers rows top to bottom and columns left to right.
func assignRowCol(rects []rect) []domain.TableCell {
	if len(rects) == 0 {
		return nil
	}

	sort.Slice(rects, func(i, j int) bool {
		if rects[i].y1 != rects[j].y1 {
			return rects[i].y1 < rects[j].y1
		}
		return rects[i].x1 < rects[j].x1
	})

	var rows [][]rect
	current := []rect{rects[0]}
	rowY := rects[0].y1
	for _, r := range rects[1:] {
		if absInt(r.y1-rowY) < rowClusterTolerance {
			current = append(current, r)
		} else {
			rows = append(rows, current)
			current = []rect{r}
			rowY = r.y1
		}
	}
	rows = append(rows, current)

	var cells []domain.TableCell
	for rowIdx, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].x1 < row[j].x1 })
		for colIdx, r := range row {
			cells = append(cells, domain.TableCell{
				RowIdx: rowIdx,
				ColIdx: colIdx,
				X1:     r.x1,
				Y1:     r.y1,
				X2:     r.x2,
				Y2:     r.y2,
			})
		}
	}
	return cells
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
