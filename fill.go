package pixfill

import (
	"image"
)

// neighbours are the offsets of the 4-connected adjacent pixels.
var neighbours = [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Fill replaces the color of the region 4-connected to seed having exactly
// the same RGBA value as the seed pixel with c. It returns the number of repainted pixels.
//
// The buffer is modified in place. Filling a region with its own color, starting
// from a seed outside of the buffer or using an invalid fill color does nothing.
//
// The region is traversed iteratively in waves: every repainted pixel pushes its four
// neighbours into the next wave, and a queued pixel which no longer has the target color
// (repainted in the meantime, or outside of the buffer) is dropped. Every pixel of the
// region is therefore painted exactly once and at most 4*n+1 points are ever queued.
func Fill(buf *Buffer, seed image.Point, c Color) int {
	target := buf.Get(seed)
	if target == c || target == NoColor || !c.Valid() {
		return 0
	}

	var (
		filled int
		waves  int
		wave   = []image.Point{seed}
		next   []image.Point
	)
	for len(wave) > 0 {
		next = next[:0]
		for _, p := range wave {
			if buf.Get(p) != target {
				continue
			}
			buf.Set(p, c)
			filled++
			for _, d := range neighbours {
				next = append(next, p.Add(d))
			}
		}
		wave, next = next, wave
		waves++
	}

	Logger().Debug("flood fill",
		"seed", seed,
		"target", target.String(),
		"color", c.String(),
		"filled", filled,
		"waves", waves,
	)
	return filled
}
