package preprocess

import (
	"image"
	"image/color"
)

const (
	claheTiles     = 8
	claheClipLimit = 2.0
)

// equalizeLuminance applies tile-based, contrast-limited histogram
// equalization to the luminance channel of a YCbCr decomposition, then
// recomposes the original chrominance. Operating on luminance only avoids
// the color-cast artifacts of equalizing RGB channels independently.
func equalizeLuminance(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < claheTiles || h < claheTiles {
		return img
	}

	yPlane := make([]uint8, w*h)
	cbPlane := make([]uint8, w*h)
	crPlane := make([]uint8, w*h)
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			i := py*img.Stride + px*4
			yy, cb, cr := color.RGBToYCbCr(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			yPlane[py*w+px] = yy
			cbPlane[py*w+px] = cb
			crPlane[py*w+px] = cr
		}
	}

	tileW := (w + claheTiles - 1) / claheTiles
	tileH := (h + claheTiles - 1) / claheTiles

	// Per-tile clipped-histogram equalization mappings.
	maps := make([][256]uint8, claheTiles*claheTiles)
	for ty := 0; ty < claheTiles; ty++ {
		for tx := 0; tx < claheTiles; tx++ {
			x0, y0 := tx*tileW, ty*tileH
			x1, y1 := min(x0+tileW, w), min(y0+tileH, h)
			maps[ty*claheTiles+tx] = tileMapping(yPlane, w, x0, y0, x1, y1)
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			v := yPlane[py*w+px]

			// Bilinear interpolation between the four surrounding tile
			// mappings, clamped at the image border.
			fx := (float64(px) - float64(tileW)/2) / float64(tileW)
			fy := (float64(py) - float64(tileH)/2) / float64(tileH)
			tx0 := clampInt(int(fx), 0, claheTiles-1)
			ty0 := clampInt(int(fy), 0, claheTiles-1)
			tx1 := clampInt(tx0+1, 0, claheTiles-1)
			ty1 := clampInt(ty0+1, 0, claheTiles-1)
			wx := fx - float64(tx0)
			wy := fy - float64(ty0)
			if wx < 0 {
				wx = 0
			}
			if wy < 0 {
				wy = 0
			}

			top := (1-wx)*float64(maps[ty0*claheTiles+tx0][v]) + wx*float64(maps[ty0*claheTiles+tx1][v])
			bot := (1-wx)*float64(maps[ty1*claheTiles+tx0][v]) + wx*float64(maps[ty1*claheTiles+tx1][v])
			newY := uint8((1-wy)*top + wy*bot + 0.5)

			r, g, bb := color.YCbCrToRGB(newY, cbPlane[py*w+px], crPlane[py*w+px])
			i := py*out.Stride + px*4
			out.Pix[i] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = bb
			out.Pix[i+3] = img.Pix[py*img.Stride+px*4+3]
		}
	}
	return out
}

// tileMapping builds the equalization lookup for one tile, clipping the
// histogram at claheClipLimit times the uniform bin height and
// redistributing the excess evenly.
func tileMapping(yPlane []uint8, stride, x0, y0, x1, y1 int) [256]uint8 {
	var hist [256]int
	n := 0
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			hist[yPlane[py*stride+px]]++
			n++
		}
	}

	var mapping [256]uint8
	if n == 0 {
		for i := range mapping {
			mapping[i] = uint8(i)
		}
		return mapping
	}

	limit := int(claheClipLimit * float64(n) / 256)
	if limit < 1 {
		limit = 1
	}

	excess := 0
	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}
	share := excess / 256
	rem := excess % 256
	for i := range hist {
		hist[i] += share
		if i < rem {
			hist[i]++
		}
	}

	cum := 0
	for i := range hist {
		cum += hist[i]
		mapping[i] = uint8(cum * 255 / n)
	}
	return mapping
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
