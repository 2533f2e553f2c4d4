// Package imop implements the Porter-Duff composition operations
// used for mixing a tool layer with the canvas backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations.
//
// The paint tools render their strokes into a separate layer which is then
// composited over the canvas (SrcOver) and the eraser punches out the canvas
// with an opaque mask (DstOut).
package imop

import (
	"fmt"
	"image"
	"math"

	"github.com/esimov/pixfill/utils"
)

const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

var compositeOps = []string{
	Clear,
	Copy,
	Dst,
	SrcOver,
	DstOver,
	SrcIn,
	DstIn,
	SrcOut,
	DstOut,
	SrcAtop,
	DstAtop,
	Xor,
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
}

// InitOp initializes a new composition with SrcOver as the active operation.
func InitOp() *Composite {
	return &Composite{current: SrcOver}
}

// Set changes the active composition operation.
func (op *Composite) Set(opType string) error {
	if !utils.Contains(compositeOps, opType) {
		return fmt.Errorf("unsupported composition operation: %q", opType)
	}
	op.current = opType
	return nil
}

// Get returns the active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff coefficients Fa and Fb applied
// to the source and the backdrop for the source alpha as and backdrop alpha ab.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// Draw composites the src image over dst inside the r rectangle (in dst coordinates).
// sp is the point of src aligned with r.Min. The result is written back into dst.
// Pixels of r falling outside of src or dst are left untouched.
func (op *Composite) Draw(dst *image.NRGBA, r image.Rectangle, src *image.NRGBA, sp image.Point) {
	r = r.Intersect(dst.Bounds())
	sr := r.Add(sp.Sub(r.Min)).Intersect(src.Bounds())
	r = sr.Add(r.Min.Sub(sp))
	if r.Empty() {
		return
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(sr.Min.X, sr.Min.Y+y-r.Min.Y)

		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			as := float64(s[3]) / 255
			ab := float64(d[3]) / 255
			fa, fb := op.factors(as, ab)
			if as*fa == 0 && fb == 1 {
				// The backdrop is kept as is, including the color of transparent pixels.
				di += 4
				si += 4
				continue
			}

			ao := as*fa + ab*fb
			if ao <= 0 {
				d[0], d[1], d[2], d[3] = 0, 0, 0, 0
			} else {
				for c := 0; c < 3; c++ {
					co := (as*fa*float64(s[c]) + ab*fb*float64(d[c])) / ao
					d[c] = clamp(co)
				}
				d[3] = clamp(ao * 255)
			}
			di += 4
			si += 4
		}
	}
}

func clamp(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
