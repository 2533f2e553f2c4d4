package imop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComp_Basic(t *testing.T) {
	assert := assert.New(t)

	op := InitOp()
	assert.Equal(SrcOver, op.Get())

	assert.NoError(op.Set(Clear))
	assert.Equal(Clear, op.Get())

	assert.Error(op.Set("unsupported_composite_operation"))
	assert.Equal(Clear, op.Get())

	assert.NoError(op.Set(Dst))
	assert.Equal(Dst, op.Get())
}

func TestComp_Ops(t *testing.T) {
	transparent := color.NRGBA{R: 0, G: 0, B: 0, A: 0}
	cyan := color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	magenta := color.NRGBA{R: 233, G: 30, B: 99, A: 255}

	rect := image.Rect(0, 0, 10, 10)
	source := image.NewNRGBA(rect)
	draw.Draw(source, image.Rect(0, 4, 6, 10), &image.Uniform{cyan}, image.Point{}, draw.Src)

	// Pick three representative points/pixels from the generated image output.
	// Depending on the applied composition operation the colors of the
	// selected pixels should be the source color, the destination color or transparent.
	testCases := []struct {
		op                            string
		topRight, bottomLeft, overlap color.NRGBA
	}{
		{Clear, transparent, transparent, transparent},
		{Copy, transparent, cyan, cyan},
		{Dst, magenta, transparent, magenta},
		{SrcOver, magenta, cyan, cyan},
		{DstOver, magenta, cyan, magenta},
		{SrcIn, transparent, transparent, cyan},
		{DstIn, transparent, transparent, magenta},
		{SrcOut, transparent, cyan, transparent},
		{DstOut, magenta, transparent, transparent},
		{SrcAtop, magenta, transparent, cyan},
		{DstAtop, transparent, cyan, magenta},
		{Xor, magenta, cyan, transparent},
	}

	for _, tc := range testCases {
		t.Run(tc.op, func(t *testing.T) {
			backdrop := image.NewNRGBA(rect)
			draw.Draw(backdrop, image.Rect(4, 0, 10, 6), &image.Uniform{magenta}, image.Point{}, draw.Src)

			op := InitOp()
			assert.NoError(t, op.Set(tc.op))
			op.Draw(backdrop, rect, source, image.Point{})

			assert.Equal(t, tc.topRight, backdrop.NRGBAAt(9, 0))
			assert.Equal(t, tc.bottomLeft, backdrop.NRGBAAt(0, 9))
			assert.Equal(t, tc.overlap, backdrop.NRGBAAt(5, 5))
		})
	}
}

func TestComp_SrcOverHalfTransparent(t *testing.T) {
	rect := image.Rect(0, 0, 1, 1)
	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)
	source.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})
	backdrop.SetNRGBA(0, 0, color.NRGBA{B: 255, A: 255})

	InitOp().Draw(backdrop, rect, source, image.Point{})

	got := backdrop.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.InDelta(t, 127, int(got.B), 1)
}

func TestComp_DrawOffsetAndClipping(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}

	backdrop := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	layer := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(layer, layer.Bounds(), &image.Uniform{red}, image.Point{}, draw.Src)

	// The layer is aligned with (6, 6), so only a 2x2 block fits inside the backdrop.
	InitOp().Draw(backdrop, image.Rect(6, 6, 10, 10), layer, image.Point{})

	painted := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if backdrop.NRGBAAt(x, y) == red {
				painted++
			}
		}
	}
	assert.Equal(t, 4, painted)
	assert.Equal(t, red, backdrop.NRGBAAt(7, 7))
	assert.Equal(t, color.NRGBA{}, backdrop.NRGBAAt(5, 5))
}

func TestComp_TransparentSourceKeepsBackdrop(t *testing.T) {
	rect := image.Rect(0, 0, 2, 1)
	clearWhite := color.NRGBA{R: 255, G: 255, B: 255, A: 0}

	source := image.NewNRGBA(rect)
	backdrop := image.NewNRGBA(rect)
	draw.Draw(backdrop, rect, &image.Uniform{clearWhite}, image.Point{}, draw.Src)

	for _, opType := range []string{SrcOver, Dst, SrcAtop, DstOut} {
		op := InitOp()
		assert.NoError(t, op.Set(opType))
		op.Draw(backdrop, rect, source, image.Point{})

		assert.Equal(t, clearWhite, backdrop.NRGBAAt(0, 0), opType)
		assert.Equal(t, clearWhite, backdrop.NRGBAAt(1, 0), opType)
	}
}
