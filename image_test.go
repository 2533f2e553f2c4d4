package pixfill

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"testing"

	"github.com/esimov/pixfill/utils"
	"github.com/stretchr/testify/assert"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9
	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "Paletted",
			img:  makePalettedImage(rect, colors),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.img.Bounds()
			dst := imgToNRGBA(tc.img)

			assert.Equal(t, image.Rect(0, 0, r.Dx(), r.Dy()), dst.Bounds())
			for y := r.Min.Y; y < r.Max.Y; y++ {
				got := readRow(dst, y-r.Min.Y)
				want := readRow(tc.img, y)
				if !compareBytes(got, want, 1) {
					t.Errorf("scan horizontal line (y=%d): got %v want %v", y, got, want)
				}
			}
		})
	}
}

func TestImage_BufferFromSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	img.SetNRGBA(5, 6, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
	sub := img.SubImage(image.Rect(4, 4, 8, 8))

	b := BufferFromImage(sub)

	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Equal(t, NewColor(9, 8, 7, 6), b.Get(image.Pt(1, 2)))

	// The buffer does not share memory with the source image.
	b.Set(image.Pt(1, 2), red)
	assert.Equal(t, color.NRGBA{R: 9, G: 8, B: 7, A: 6}, img.NRGBAAt(5, 6))
}

func TestImage_EncodeDecode(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(0, 0, 3, 4), &image.Uniform{color.NRGBA{R: 255, A: 255}}, image.Point{}, draw.Src)

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, encodeImgExt(&buf, ext, src))

			dst, err := decodeImg(&buf)
			assert.NoError(t, err)
			assert.Equal(t, src.Bounds(), dst.Bounds())
			assert.Equal(t, color.NRGBA{R: 255, A: 255}, dst.NRGBAAt(1, 1))
			assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, dst.NRGBAAt(5, 3))
		})
	}
}

func TestImage_EncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := encodeImgExt(&buf, ".webp", image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func makePalettedImage(rect image.Rectangle, colors []color.Color) *image.Paletted {
	img := image.NewPaletted(rect, colors)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.SetColorIndex(x, y, uint8(i%len(colors)))
			i++
		}
	}
	return img
}

func fillDrawImage(img draw.Image, colors []color.Color) {
	colorsNRGBA := make([]color.NRGBA, len(colors))
	for i, c := range colors {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		nrgba.A = uint8(i % 256)
		colorsNRGBA[i] = nrgba
	}
	rect := img.Bounds()
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colorsNRGBA[i])
			i++
		}
	}
}

func readRow(img image.Image, y int) []uint8 {
	row := make([]byte, img.Bounds().Dx()*4)
	i := 0
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
		i += 4
	}
	return row
}

func compareBytes(a, b []uint8, delta int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if utils.Abs(int(a[i])-int(b[i])) > delta {
			return false
		}
	}
	return true
}
