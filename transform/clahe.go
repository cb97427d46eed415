package transform

import (
	"image"
	"math"
)

const levels = 256

// equalize applies contrast-limited adaptive histogram equalization.
//
// The image is split into a grid x grid set of tiles (fewer when the image is
// smaller than the grid). Each tile gets a lookup table from its clipped,
// redistributed histogram, and every pixel is bilinearly interpolated between
// the tables of the four nearest tile centers.
func equalize(src *image.Gray, clipLimit float64, grid int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	tilesX := min(grid, w)
	tilesY := min(grid, h)

	luts := make([][levels]uint8, tilesX*tilesY)

	for ty := range tilesY {
		y0, y1 := ty*h/tilesY, (ty+1)*h/tilesY

		for tx := range tilesX {
			x0, x1 := tx*w/tilesX, (tx+1)*w/tilesX

			var hist [levels]int

			for y := y0; y < y1; y++ {
				row := src.Pix[y*src.Stride:]
				for x := x0; x < x1; x++ {
					hist[row[x]]++
				}
			}

			luts[ty*tilesX+tx] = tileLUT(&hist, (x1-x0)*(y1-y0), clipLimit)
		}
	}

	dst := image.NewGray(b)
	tileW := float64(w) / float64(tilesX)
	tileH := float64(h) / float64(tilesY)

	for y := range h {
		ty1, ty2, ya := neighbors(y, tileH, tilesY)

		for x := range w {
			tx1, tx2, xa := neighbors(x, tileW, tilesX)

			v := src.Pix[y*src.Stride+x]

			top := (1-xa)*float64(luts[ty1*tilesX+tx1][v]) + xa*float64(luts[ty1*tilesX+tx2][v])
			bot := (1-xa)*float64(luts[ty2*tilesX+tx1][v]) + xa*float64(luts[ty2*tilesX+tx2][v])

			dst.Pix[y*dst.Stride+x] = uint8(math.Round((1-ya)*top + ya*bot))
		}
	}

	return dst
}

// tileLUT builds the mapping for one tile of area pixels.
func tileLUT(hist *[levels]int, area int, clipLimit float64) [levels]uint8 {
	var lut [levels]uint8

	if area == 0 {
		return lut
	}

	limit := max(int(clipLimit*float64(area)/levels), 1)

	excess := 0

	for i := range hist {
		if hist[i] > limit {
			excess += hist[i] - limit
			hist[i] = limit
		}
	}

	if excess > 0 {
		add, rem := excess/levels, excess%levels
		for i := range hist {
			hist[i] += add
		}

		for i := range rem {
			hist[i*levels/rem]++
		}
	}

	scale := float64(levels-1) / float64(area)
	sum := 0

	for i := range hist {
		sum += hist[i]
		lut[i] = uint8(min(math.Round(float64(sum)*scale), levels-1))
	}

	return lut
}

// neighbors returns the two tile indices whose centers bracket pos, and the
// weight of the second.
func neighbors(pos int, size float64, count int) (int, int, float64) {
	f := (float64(pos)+0.5)/size - 0.5

	i1 := int(math.Floor(f))
	frac := f - float64(i1)
	i2 := i1 + 1

	if i1 < 0 {
		i1, frac = 0, 0
	}

	if i2 > count-1 {
		i2 = count - 1
	}

	if i1 > count-1 {
		i1 = count - 1
	}

	return i1, i2, frac
}
