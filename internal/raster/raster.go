// Package raster is test-only tooling: it rasterizes a flattened stroke
// outline with golang.org/x/image/vector and reports pixel coverage, so
// the test suite can cross-check the shoelace area of a stroked outline
// against an independent pixel count without hand-rolling a scanline
// filler.
//
// Grounded on golang.org/x/image/vector's use as the rasterizer of choice
// in golang-freetype, gogpu-gg and seehuhn-go-render (all retrieved
// examples reach for it, or a close equivalent, rather than writing their
// own scan converter from scratch).
package raster

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/xlloss/strokepath/f32"
)

// Coverage rasterizes the given contours (each a closed polygon, as
// produced by path.Path.Flatten) into a w x h alpha mask using the
// nonzero winding rule and returns the fraction of pixels with nonzero
// coverage.
func Coverage(contours [][]f32.Point, w, h int) float64 {
	r := vector.NewRasterizer(w, h)
	for _, poly := range contours {
		if len(poly) < 2 {
			continue
		}
		r.MoveTo(poly[0].X, poly[0].Y)
		for _, p := range poly[1:] {
			r.LineTo(p.X, p.Y)
		}
		r.ClosePath()
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

	var covered int
	for _, a := range dst.Pix {
		if a != 0 {
			covered++
		}
	}
	return float64(covered) / float64(w*h)
}
